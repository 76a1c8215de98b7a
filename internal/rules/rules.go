// Package rules implements the 5e sheet math consumed when rendering a
// character sheet, such as the chat client's sheet view. Everything here is
// a pure function of the character sheet values.
package rules

import (
	"regexp"
	"strconv"
	"strings"
)

// ProficiencyBonus returns the proficiency bonus for a character level.
func ProficiencyBonus(level int) int {
	return (level+3)/4 + 1
}

// AbilityModifier returns the modifier for an ability score. An unset score
// (zero or below) has no modifier rather than the nominal -5.
func AbilityModifier(score int) int {
	if score <= 0 {
		return 0
	}
	mod := score - 10
	if mod < 0 {
		mod-- // floor division for odd negative values
	}
	return mod / 2
}

// FormatModifier renders a modifier with an explicit sign.
func FormatModifier(mod int) string {
	if mod >= 0 {
		return "+" + strconv.Itoa(mod)
	}
	return strconv.Itoa(mod)
}

// SavingThrow returns the saving throw bonus for an ability.
func SavingThrow(score int, proficient bool, profBonus int) int {
	mod := AbilityModifier(score)
	if proficient {
		return mod + profBonus
	}
	return mod
}

// SkillBonus returns the bonus for a skill backed by the given ability score.
func SkillBonus(abilityScore int, proficient bool, profBonus int) int {
	mod := AbilityModifier(abilityScore)
	if proficient {
		return mod + profBonus
	}
	return mod
}

// PassivePerception is 10 plus the Perception skill bonus.
func PassivePerception(wisdomScore int, proficient bool, profBonus int) int {
	return 10 + SkillBonus(wisdomScore, proficient, profBonus)
}

// SpellSaveDC is 8 + proficiency bonus + spellcasting ability modifier.
func SpellSaveDC(abilityScore, profBonus int) int {
	return 8 + profBonus + AbilityModifier(abilityScore)
}

// SpellAttackBonus is proficiency bonus + spellcasting ability modifier.
func SpellAttackBonus(abilityScore, profBonus int) int {
	return profBonus + AbilityModifier(abilityScore)
}

// HitPointsAtLevel1 is the class hit-die maximum plus the CON modifier.
func HitPointsAtLevel1(hitDieMax, conScore int) int {
	return hitDieMax + AbilityModifier(conScore)
}

var classHitDice = map[string]string{
	"barbarian": "1d12",
	"bard":      "1d8",
	"cleric":    "1d8",
	"druid":     "1d8",
	"fighter":   "1d10",
	"monk":      "1d8",
	"paladin":   "1d10",
	"ranger":    "1d10",
	"rogue":     "1d8",
	"sorcerer":  "1d6",
	"warlock":   "1d8",
	"wizard":    "1d6",
}

// HitDieForClass returns the hit die notation for a class, or "" if unknown.
func HitDieForClass(class string) string {
	return classHitDice[strings.ToLower(class)]
}

var hitDieRe = regexp.MustCompile(`d(\d+)`)

// HitDieMax extracts the die size from hit-die notation like "1d10".
func HitDieMax(hitDice string) int {
	m := hitDieRe.FindStringSubmatch(hitDice)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

var classSpellcastingAbility = map[string]string{
	"bard":     "charisma",
	"cleric":   "wisdom",
	"druid":    "wisdom",
	"paladin":  "charisma",
	"ranger":   "wisdom",
	"sorcerer": "charisma",
	"warlock":  "charisma",
	"wizard":   "intelligence",
}

// SpellcastingAbility returns the casting ability for a class, or "" for
// non-casters and unknown classes.
func SpellcastingAbility(class string) string {
	return classSpellcastingAbility[strings.ToLower(class)]
}

// Skill maps a 5e skill to its governing ability.
type Skill struct {
	Name        string
	Ability     string
	Label       string
	AbilityAbbr string
}

// Skills lists the 18 skills in sheet order.
var Skills = []Skill{
	{"acrobatics", "dexterity", "Acrobatics", "DEX"},
	{"animal handling", "wisdom", "Animal Handling", "WIS"},
	{"arcana", "intelligence", "Arcana", "INT"},
	{"athletics", "strength", "Athletics", "STR"},
	{"deception", "charisma", "Deception", "CHA"},
	{"history", "intelligence", "History", "INT"},
	{"insight", "wisdom", "Insight", "WIS"},
	{"intimidation", "charisma", "Intimidation", "CHA"},
	{"investigation", "intelligence", "Investigation", "INT"},
	{"medicine", "wisdom", "Medicine", "WIS"},
	{"nature", "intelligence", "Nature", "INT"},
	{"perception", "wisdom", "Perception", "WIS"},
	{"performance", "charisma", "Performance", "CHA"},
	{"persuasion", "charisma", "Persuasion", "CHA"},
	{"religion", "intelligence", "Religion", "INT"},
	{"sleight of hand", "dexterity", "Sleight of Hand", "DEX"},
	{"stealth", "dexterity", "Stealth", "DEX"},
	{"survival", "wisdom", "Survival", "WIS"},
}

// Ability describes one of the six ability scores.
type Ability struct {
	Key   string
	Label string
	Abbr  string
}

// Abilities lists the six abilities in sheet order.
var Abilities = []Ability{
	{"strength", "Strength", "STR"},
	{"dexterity", "Dexterity", "DEX"},
	{"constitution", "Constitution", "CON"},
	{"intelligence", "Intelligence", "INT"},
	{"wisdom", "Wisdom", "WIS"},
	{"charisma", "Charisma", "CHA"},
}
