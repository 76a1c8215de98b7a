package domain

import (
	"encoding/json"
	"reflect"
	"testing"
)

func strptr(s string) *string { return &s }
func intptr(i int) *int       { return &i }

func sampleCharacter() Character {
	return Character{
		Name:  "Thorin",
		Race:  "Dwarf",
		Class: "Cleric",
		Level: 3,
		AbilityScores: AbilityScores{
			Strength: 14, Dexterity: 10, Constitution: 15,
			Intelligence: 8, Wisdom: 16, Charisma: 12,
		},
		HitPoints:     24,
		Proficiencies: []string{"Medicine", "Insight"},
		Equipment:     []string{"Mace", "Shield"},
		Currency:      &Currency{GP: 15},
		Spellcasting: &Spellcasting{
			SpellcastingAbility: "wisdom",
			CantripsKnown:       []string{"Guidance"},
			SpellSlots:          map[string]int{"1": 4, "2": 2},
		},
	}
}

func TestApplyScalarReplace(t *testing.T) {
	c := sampleCharacter()
	got := Apply(c, CharacterUpdate{
		Name:  strptr("Bruenor"),
		Level: intptr(4),
	})

	if got.Name != "Bruenor" || got.Level != 4 {
		t.Fatalf("scalar fields not replaced: %+v", got)
	}
	if got.Race != c.Race || got.Class != c.Class || got.HitPoints != c.HitPoints {
		t.Fatalf("untouched fields changed: %+v", got)
	}
}

func TestApplyExplicitEmptyScalar(t *testing.T) {
	c := sampleCharacter()
	got := Apply(c, CharacterUpdate{Name: strptr(""), HitPoints: intptr(0)})
	if got.Name != "" {
		t.Fatalf("explicit empty string must replace, got %q", got.Name)
	}
	if got.HitPoints != 0 {
		t.Fatalf("explicit zero must replace, got %d", got.HitPoints)
	}
}

func TestApplyEmptyUpdateIsIdentity(t *testing.T) {
	c := sampleCharacter()
	got := Apply(c, CharacterUpdate{})
	if !reflect.DeepEqual(got, c) {
		t.Fatalf("empty update changed character:\n got %+v\nwant %+v", got, c)
	}
}

func TestApplyPartialAbilityScores(t *testing.T) {
	c := sampleCharacter()
	got := Apply(c, CharacterUpdate{
		AbilityScores: &AbilityScoresUpdate{Strength: intptr(18)},
	})

	want := c.AbilityScores
	want.Strength = 18
	if got.AbilityScores != want {
		t.Fatalf("partial ability scores merge wrong:\n got %+v\nwant %+v", got.AbilityScores, want)
	}
}

func TestApplyListWholesaleReplace(t *testing.T) {
	c := sampleCharacter()
	got := Apply(c, CharacterUpdate{Equipment: &[]string{"Warhammer"}})
	if !reflect.DeepEqual(got.Equipment, []string{"Warhammer"}) {
		t.Fatalf("list not replaced wholesale: %v", got.Equipment)
	}
	if !reflect.DeepEqual(got.Proficiencies, c.Proficiencies) {
		t.Fatalf("absent list changed: %v", got.Proficiencies)
	}

	// An explicit empty list clears the field.
	got = Apply(c, CharacterUpdate{Equipment: &[]string{}})
	if len(got.Equipment) != 0 || got.Equipment == nil {
		t.Fatalf("explicit empty list should replace with empty, got %v", got.Equipment)
	}
}

func TestApplyDeathSavesAndCurrencyMergeByKey(t *testing.T) {
	c := sampleCharacter()
	c.DeathSaves = &DeathSaves{Successes: 1, Failures: 2}

	got := Apply(c, CharacterUpdate{
		DeathSaves: &DeathSavesUpdate{Successes: intptr(2)},
		Currency:   &CurrencyUpdate{SP: intptr(30)},
	})
	if got.DeathSaves.Successes != 2 || got.DeathSaves.Failures != 2 {
		t.Fatalf("death saves merge wrong: %+v", got.DeathSaves)
	}
	if got.Currency.GP != 15 || got.Currency.SP != 30 {
		t.Fatalf("currency merge wrong: %+v", got.Currency)
	}
}

func TestApplyNestedCreatedWhenAbsent(t *testing.T) {
	c := DefaultCharacter()
	got := Apply(c, CharacterUpdate{
		DeathSaves: &DeathSavesUpdate{Failures: intptr(1)},
	})
	if got.DeathSaves == nil || got.DeathSaves.Failures != 1 {
		t.Fatalf("death saves not created: %+v", got.DeathSaves)
	}
}

func TestApplySpellcastingThreeStates(t *testing.T) {
	c := sampleCharacter()

	// Absent: untouched.
	got := Apply(c, CharacterUpdate{})
	if !reflect.DeepEqual(got.Spellcasting, c.Spellcasting) {
		t.Fatalf("absent spellcasting changed: %+v", got.Spellcasting)
	}

	// Explicit null: cleared.
	var u CharacterUpdate
	if err := json.Unmarshal([]byte(`{"spellcasting":null}`), &u); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got = Apply(c, u)
	if got.Spellcasting != nil {
		t.Fatalf("explicit null should clear spellcasting, got %+v", got.Spellcasting)
	}

	// Object: shallow merge preserving unmentioned keys.
	u = CharacterUpdate{}
	if err := json.Unmarshal([]byte(`{"spellcasting":{"spellsKnown":["Bless"]}}`), &u); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got = Apply(c, u)
	if got.Spellcasting.SpellcastingAbility != "wisdom" {
		t.Fatalf("merge dropped existing key: %+v", got.Spellcasting)
	}
	if !reflect.DeepEqual(got.Spellcasting.SpellsKnown, []string{"Bless"}) {
		t.Fatalf("merge missed new key: %+v", got.Spellcasting)
	}
	if !reflect.DeepEqual(got.Spellcasting.CantripsKnown, []string{"Guidance"}) {
		t.Fatalf("merge dropped cantrips: %+v", got.Spellcasting)
	}
}

func TestApplySpellcastingCreatedWhenAbsent(t *testing.T) {
	c := DefaultCharacter()
	var u CharacterUpdate
	if err := json.Unmarshal([]byte(`{"spellcasting":{"spellcastingAbility":"intelligence"}}`), &u); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got := Apply(c, u)
	if got.Spellcasting == nil || got.Spellcasting.SpellcastingAbility != "intelligence" {
		t.Fatalf("spellcasting not created: %+v", got.Spellcasting)
	}
}

func TestApplyDoesNotAliasInputs(t *testing.T) {
	c := sampleCharacter()
	u := CharacterUpdate{Equipment: &[]string{"Warhammer"}}
	got := Apply(c, u)

	got.Equipment[0] = "mutated"
	got.Proficiencies[0] = "mutated"
	got.Currency.GP = 999
	got.Spellcasting.CantripsKnown[0] = "mutated"
	got.Spellcasting.SpellSlots["1"] = 999

	if (*u.Equipment)[0] != "Warhammer" {
		t.Fatalf("result aliases update slice")
	}
	if c.Proficiencies[0] != "Medicine" || c.Currency.GP != 15 {
		t.Fatalf("result aliases input character")
	}
	if c.Spellcasting.CantripsKnown[0] != "Guidance" || c.Spellcasting.SpellSlots["1"] != 4 {
		t.Fatalf("result aliases input spellcasting")
	}
}

func TestApplySequentialIsDeterministic(t *testing.T) {
	c := sampleCharacter()
	u1 := CharacterUpdate{Race: strptr("Elf"), Level: intptr(2)}
	u2 := CharacterUpdate{Level: intptr(5)}

	a := Apply(Apply(c, u1), u2)
	b := Apply(Apply(c, u1), u2)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("sequential application not reproducible")
	}
	if a.Race != "Elf" || a.Level != 5 {
		t.Fatalf("later update must win: %+v", a)
	}
}

func TestCharacterUpdateRoundTrip(t *testing.T) {
	raw := []byte(`{"race":"Elf","abilityScores":{"dexterity":16},"equipment":["Longbow"]}`)
	var u CharacterUpdate
	if err := json.Unmarshal(raw, &u); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if u.Race == nil || *u.Race != "Elf" {
		t.Fatalf("race not decoded: %+v", u)
	}
	if u.Spellcasting.Set {
		t.Fatalf("absent spellcasting decoded as set")
	}

	out, err := json.Marshal(u)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(out, &m); err != nil {
		t.Fatalf("remarshal: %v", err)
	}
	if _, ok := m["spellcasting"]; ok {
		t.Fatalf("absent spellcasting serialized: %s", out)
	}
}
