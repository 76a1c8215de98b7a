package domain

// Apply merges one CharacterUpdate onto a Character and returns the result.
// It is pure: the input character is never modified, and the returned value
// shares no mutable structure with either input. Fields absent from the
// update are preserved; scalars replace (including explicit empty/zero);
// abilityScores, deathSaves and currency merge key by key; spellcasting
// merges, clears on explicit null, or stays untouched; list fields replace
// wholesale.
func Apply(c Character, u CharacterUpdate) Character {
	out := c
	out.Proficiencies = copyStrings(c.Proficiencies)
	out.Equipment = copyStrings(c.Equipment)
	out.Languages = copyStrings(c.Languages)
	out.Features = copyStrings(c.Features)
	out.SavingThrowProficiencies = copyStrings(c.SavingThrowProficiencies)
	out.SkillProficiencies = copyStrings(c.SkillProficiencies)
	out.Attacks = copyAttacks(c.Attacks)
	out.DeathSaves = copyDeathSaves(c.DeathSaves)
	out.Currency = copyCurrency(c.Currency)
	out.Spellcasting = copySpellcasting(c.Spellcasting)

	setString(&out.Name, u.Name)
	setString(&out.Race, u.Race)
	setString(&out.Class, u.Class)
	setString(&out.Subrace, u.Subrace)
	setString(&out.Subclass, u.Subclass)
	setInt(&out.Level, u.Level)
	setInt(&out.ExperiencePoints, u.ExperiencePoints)
	setString(&out.Alignment, u.Alignment)
	setString(&out.Background, u.Background)
	setString(&out.Backstory, u.Backstory)
	setString(&out.Appearance, u.Appearance)
	setString(&out.Edition, u.Edition)
	setInt(&out.HitPoints, u.HitPoints)
	setString(&out.Age, u.Age)
	setString(&out.Height, u.Height)
	setString(&out.Weight, u.Weight)
	setString(&out.Eyes, u.Eyes)
	setString(&out.Skin, u.Skin)
	setString(&out.Hair, u.Hair)
	setString(&out.PortraitURL, u.PortraitURL)

	if s := u.AbilityScores; s != nil {
		setInt(&out.AbilityScores.Strength, s.Strength)
		setInt(&out.AbilityScores.Dexterity, s.Dexterity)
		setInt(&out.AbilityScores.Constitution, s.Constitution)
		setInt(&out.AbilityScores.Intelligence, s.Intelligence)
		setInt(&out.AbilityScores.Wisdom, s.Wisdom)
		setInt(&out.AbilityScores.Charisma, s.Charisma)
	}

	if d := u.DeathSaves; d != nil {
		if out.DeathSaves == nil {
			out.DeathSaves = &DeathSaves{}
		}
		setInt(&out.DeathSaves.Successes, d.Successes)
		setInt(&out.DeathSaves.Failures, d.Failures)
	}

	if cu := u.Currency; cu != nil {
		if out.Currency == nil {
			out.Currency = &Currency{}
		}
		setInt(&out.Currency.CP, cu.CP)
		setInt(&out.Currency.SP, cu.SP)
		setInt(&out.Currency.EP, cu.EP)
		setInt(&out.Currency.GP, cu.GP)
		setInt(&out.Currency.PP, cu.PP)
	}

	if u.Spellcasting.Set {
		if p := u.Spellcasting.Value; p == nil {
			out.Spellcasting = nil
		} else {
			if out.Spellcasting == nil {
				out.Spellcasting = &Spellcasting{}
			}
			setString(&out.Spellcasting.SpellcastingAbility, p.SpellcastingAbility)
			if p.CantripsKnown != nil {
				out.Spellcasting.CantripsKnown = copyStrings(*p.CantripsKnown)
			}
			if p.SpellsKnown != nil {
				out.Spellcasting.SpellsKnown = copyStrings(*p.SpellsKnown)
			}
			if p.SpellSlots != nil {
				out.Spellcasting.SpellSlots = copySlots(*p.SpellSlots)
			}
		}
	}

	if u.Proficiencies != nil {
		out.Proficiencies = copyStrings(*u.Proficiencies)
	}
	if u.Equipment != nil {
		out.Equipment = copyStrings(*u.Equipment)
	}
	if u.Languages != nil {
		out.Languages = copyStrings(*u.Languages)
	}
	if u.Features != nil {
		out.Features = copyStrings(*u.Features)
	}
	if u.SavingThrowProficiencies != nil {
		out.SavingThrowProficiencies = copyStrings(*u.SavingThrowProficiencies)
	}
	if u.SkillProficiencies != nil {
		out.SkillProficiencies = copyStrings(*u.SkillProficiencies)
	}
	if u.Attacks != nil {
		out.Attacks = copyAttacks(*u.Attacks)
	}

	return out
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func copyStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func copyAttacks(in []Attack) []Attack {
	if in == nil {
		return nil
	}
	out := make([]Attack, len(in))
	copy(out, in)
	return out
}

func copySlots(in map[string]int) map[string]int {
	if in == nil {
		return nil
	}
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func copyDeathSaves(in *DeathSaves) *DeathSaves {
	if in == nil {
		return nil
	}
	out := *in
	return &out
}

func copyCurrency(in *Currency) *Currency {
	if in == nil {
		return nil
	}
	out := *in
	return &out
}

func copySpellcasting(in *Spellcasting) *Spellcasting {
	if in == nil {
		return nil
	}
	out := Spellcasting{
		SpellcastingAbility: in.SpellcastingAbility,
		CantripsKnown:       copyStrings(in.CantripsKnown),
		SpellsKnown:         copyStrings(in.SpellsKnown),
		SpellSlots:          copySlots(in.SpellSlots),
	}
	return &out
}
