package main

import (
	"strings"
	"testing"

	"github.com/arcanus/arcanus/internal/domain"
)

func TestDerivedSummaryFighter(t *testing.T) {
	ch := domain.Character{
		Class: "Fighter",
		Level: 5,
		AbilityScores: domain.AbilityScores{
			Strength:  16,
			Dexterity: 13,
		},
	}

	lines := derivedSummary(ch)
	joined := strings.Join(lines, "\n")

	if !strings.Contains(joined, "Proficiency bonus: +3") {
		t.Errorf("missing proficiency bonus in %q", joined)
	}
	if !strings.Contains(joined, "STR +3") || !strings.Contains(joined, "DEX +1") {
		t.Errorf("missing ability modifiers in %q", joined)
	}
	if !strings.Contains(joined, "Hit die: 1d10") {
		t.Errorf("missing hit die in %q", joined)
	}
	if strings.Contains(joined, "Spell save DC") {
		t.Errorf("non-caster got spell math: %q", joined)
	}
}

func TestDerivedSummaryWizardSpellMath(t *testing.T) {
	ch := domain.Character{
		Class: "Wizard",
		Level: 1,
		AbilityScores: domain.AbilityScores{
			Intelligence: 16,
		},
	}

	joined := strings.Join(derivedSummary(ch), "\n")
	if !strings.Contains(joined, "Spell save DC 13, spell attack +5") {
		t.Errorf("missing spell math in %q", joined)
	}
}

func TestDerivedSummaryUnsetScoresOmitted(t *testing.T) {
	lines := derivedSummary(domain.DefaultCharacter())
	if len(lines) != 1 {
		t.Fatalf("expected only the proficiency line, got %v", lines)
	}
	if lines[0] != "Proficiency bonus: +2" {
		t.Errorf("line = %q", lines[0])
	}
}
