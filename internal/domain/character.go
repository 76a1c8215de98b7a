// Package domain defines the core domain models for arcanus.
package domain

import "time"

// AbilityScores holds the six ability scores. Zero means "not set yet".
type AbilityScores struct {
	Strength     int `json:"strength"`
	Dexterity    int `json:"dexterity"`
	Constitution int `json:"constitution"`
	Intelligence int `json:"intelligence"`
	Wisdom       int `json:"wisdom"`
	Charisma     int `json:"charisma"`
}

// DeathSaves tracks death saving throw results.
type DeathSaves struct {
	Successes int `json:"successes"`
	Failures  int `json:"failures"`
}

// Currency holds coinage by denomination.
type Currency struct {
	CP int `json:"cp"`
	SP int `json:"sp"`
	EP int `json:"ep"`
	GP int `json:"gp"`
	PP int `json:"pp"`
}

// Spellcasting holds the spellcasting section of the sheet.
// Nil on a Character means the character is not a spellcaster (yet).
type Spellcasting struct {
	SpellcastingAbility string         `json:"spellcastingAbility,omitempty"`
	CantripsKnown       []string       `json:"cantripsKnown,omitempty"`
	SpellsKnown         []string       `json:"spellsKnown,omitempty"`
	SpellSlots          map[string]int `json:"spellSlots,omitempty"`
}

// Attack is one row of the attacks table.
type Attack struct {
	Name   string `json:"name"`
	Bonus  string `json:"bonus"`
	Damage string `json:"damage"`
}

// Character is the canonical mutable character document. Field names on the
// wire are the camelCase names the web client expects.
type Character struct {
	ID     string `json:"id,omitempty"`
	UserID string `json:"-"`

	Name             string `json:"name"`
	Race             string `json:"race"`
	Class            string `json:"class"`
	Subrace          string `json:"subrace,omitempty"`
	Subclass         string `json:"subclass,omitempty"`
	Level            int    `json:"level"`
	ExperiencePoints int    `json:"experiencePoints,omitempty"`
	Alignment        string `json:"alignment,omitempty"`
	Background       string `json:"background"`
	Backstory        string `json:"backstory"`
	Appearance       string `json:"appearance"`
	Edition          string `json:"edition"`

	AbilityScores AbilityScores `json:"abilityScores"`
	HitPoints     int           `json:"hitPoints"`

	Proficiencies            []string `json:"proficiencies"`
	Equipment                []string `json:"equipment"`
	Languages                []string `json:"languages,omitempty"`
	Features                 []string `json:"features,omitempty"`
	SavingThrowProficiencies []string `json:"savingThrowProficiencies,omitempty"`
	SkillProficiencies       []string `json:"skillProficiencies,omitempty"`

	Attacks      []Attack      `json:"attacks,omitempty"`
	DeathSaves   *DeathSaves   `json:"deathSaves,omitempty"`
	Currency     *Currency     `json:"currency,omitempty"`
	Spellcasting *Spellcasting `json:"spellcasting,omitempty"`

	// Physical descriptors shown on the print sheet.
	Age    string `json:"age,omitempty"`
	Height string `json:"height,omitempty"`
	Weight string `json:"weight,omitempty"`
	Eyes   string `json:"eyes,omitempty"`
	Skin   string `json:"skin,omitempty"`
	Hair   string `json:"hair,omitempty"`

	PortraitURL string `json:"portraitUrl"`
}

// CharacterRecord is a character as stored, together with the chat history
// that produced it.
type CharacterRecord struct {
	ID          string        `json:"id"`
	UserID      string        `json:"-"`
	Character   Character     `json:"character"`
	ChatHistory []ChatMessage `json:"chatHistory,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// DefaultCharacter returns a fresh character with all fields at their
// documented defaults: empty strings, level 1, all six scores at zero.
func DefaultCharacter() Character {
	return Character{
		Level:         1,
		Edition:       "5e",
		Proficiencies: []string{},
		Equipment:     []string{},
	}
}
