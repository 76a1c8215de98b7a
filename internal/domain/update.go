package domain

import (
	"bytes"
	"encoding/json"
)

// CharacterUpdate is a sparse projection of Character: what the assistant
// decided to change this turn. Pointer fields distinguish "absent" from an
// explicit empty/zero value, which must replace the existing value.
type CharacterUpdate struct {
	Name             *string `json:"name,omitempty"`
	Race             *string `json:"race,omitempty"`
	Class            *string `json:"class,omitempty"`
	Subrace          *string `json:"subrace,omitempty"`
	Subclass         *string `json:"subclass,omitempty"`
	Level            *int    `json:"level,omitempty"`
	ExperiencePoints *int    `json:"experiencePoints,omitempty"`
	Alignment        *string `json:"alignment,omitempty"`
	Background       *string `json:"background,omitempty"`
	Backstory        *string `json:"backstory,omitempty"`
	Appearance       *string `json:"appearance,omitempty"`
	Edition          *string `json:"edition,omitempty"`

	AbilityScores *AbilityScoresUpdate `json:"abilityScores,omitempty"`
	HitPoints     *int                 `json:"hitPoints,omitempty"`

	Proficiencies            *[]string `json:"proficiencies,omitempty"`
	Equipment                *[]string `json:"equipment,omitempty"`
	Languages                *[]string `json:"languages,omitempty"`
	Features                 *[]string `json:"features,omitempty"`
	SavingThrowProficiencies *[]string `json:"savingThrowProficiencies,omitempty"`
	SkillProficiencies       *[]string `json:"skillProficiencies,omitempty"`

	Attacks      *[]Attack         `json:"attacks,omitempty"`
	DeathSaves   *DeathSavesUpdate `json:"deathSaves,omitempty"`
	Currency     *CurrencyUpdate   `json:"currency,omitempty"`
	Spellcasting SpellcastingField `json:"spellcasting,omitzero"`

	Age    *string `json:"age,omitempty"`
	Height *string `json:"height,omitempty"`
	Weight *string `json:"weight,omitempty"`
	Eyes   *string `json:"eyes,omitempty"`
	Skin   *string `json:"skin,omitempty"`
	Hair   *string `json:"hair,omitempty"`

	PortraitURL *string `json:"portraitUrl,omitempty"`
}

// AbilityScoresUpdate is a partial set of ability scores. Keys the assistant
// did not send stay nil and leave the existing score untouched.
type AbilityScoresUpdate struct {
	Strength     *int `json:"strength,omitempty"`
	Dexterity    *int `json:"dexterity,omitempty"`
	Constitution *int `json:"constitution,omitempty"`
	Intelligence *int `json:"intelligence,omitempty"`
	Wisdom       *int `json:"wisdom,omitempty"`
	Charisma     *int `json:"charisma,omitempty"`
}

// DeathSavesUpdate is a partial death-saves patch.
type DeathSavesUpdate struct {
	Successes *int `json:"successes,omitempty"`
	Failures  *int `json:"failures,omitempty"`
}

// CurrencyUpdate is a partial currency patch.
type CurrencyUpdate struct {
	CP *int `json:"cp,omitempty"`
	SP *int `json:"sp,omitempty"`
	EP *int `json:"ep,omitempty"`
	GP *int `json:"gp,omitempty"`
	PP *int `json:"pp,omitempty"`
}

// SpellcastingPatch is a partial spellcasting patch. List fields replace
// wholesale when present; SpellSlots replaces as a whole map.
type SpellcastingPatch struct {
	SpellcastingAbility *string         `json:"spellcastingAbility,omitempty"`
	CantripsKnown       *[]string       `json:"cantripsKnown,omitempty"`
	SpellsKnown         *[]string       `json:"spellsKnown,omitempty"`
	SpellSlots          *map[string]int `json:"spellSlots,omitempty"`
}

// SpellcastingField is a three-state JSON field: absent (leave untouched),
// explicit null (clear the section), or an object (shallow-merge).
type SpellcastingField struct {
	Set   bool
	Value *SpellcastingPatch // nil when the field was an explicit null
}

func (f *SpellcastingField) UnmarshalJSON(data []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		f.Value = nil
		return nil
	}
	f.Value = &SpellcastingPatch{}
	return json.Unmarshal(data, f.Value)
}

func (f SpellcastingField) MarshalJSON() ([]byte, error) {
	if f.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// IsZero reports whether the field was absent; encoding/json uses this for
// the omitzero option so an untouched field round-trips as absent.
func (f SpellcastingField) IsZero() bool {
	return !f.Set
}
