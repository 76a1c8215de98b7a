// Package portrait generates AI character portraits anchored to a set of
// reference renders.
package portrait

import "strings"

// ReferencePortrait maps a race and class pair to a static style reference.
type ReferencePortrait struct {
	Race  string
	Class string
	File  string
}

// References are the bundled style anchors, matched most specific first.
var References = []ReferencePortrait{
	{Race: "halfling", Class: "rogue", File: "halfling-rogue.png"},
	{Race: "human", Class: "fighter", File: "human-fighter.png"},
	{Race: "elf", Class: "ranger", File: "elf-ranger.png"},
	{Race: "dwarf", Class: "cleric", File: "dwarf-cleric.png"},
	{Race: "tiefling", Class: "warlock", File: "tiefling-warlock.png"},
	{Race: "half-orc", Class: "barbarian", File: "halforc-barbarian.png"},
	{Race: "dragonborn", Class: "paladin", File: "dragonborn-paladin.png"},
	{Race: "elf", Class: "wizard", File: "elf-wizard.png"},
}

// DefaultReference is used when nothing else matches.
const DefaultReference = "human-fighter.png"

// classFamily folds classes without a dedicated reference onto a visually
// close one.
var classFamily = map[string]string{
	"sorcerer": "wizard",
	"bard":     "rogue",
	"monk":     "fighter",
	"druid":    "cleric",
}

// FindReference picks the reference portrait for a race and class. It prefers
// an exact race and class match, then class, then race, then the class
// family, and finally the default. Race matching is substring-based so
// subrace labels like "High Elf" still match.
func FindReference(race, class string) string {
	r := strings.ToLower(race)
	c := strings.ToLower(class)

	for _, p := range References {
		if strings.Contains(r, p.Race) && c == p.Class {
			return p.File
		}
	}
	for _, p := range References {
		if c == p.Class {
			return p.File
		}
	}
	for _, p := range References {
		if strings.Contains(r, p.Race) {
			return p.File
		}
	}
	if family, ok := classFamily[c]; ok {
		for _, p := range References {
			if p.Class == family {
				return p.File
			}
		}
	}
	return DefaultReference
}
