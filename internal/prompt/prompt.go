// Package prompt builds the system prompt and the update_character tool
// definition sent to the completion provider.
package prompt

import (
	"encoding/json"
	"fmt"

	"github.com/arcanus/arcanus/internal/adapter/llm"
	"github.com/arcanus/arcanus/internal/domain"
)

// UpdateCharacterToolName is the only tool the assistant may call. Any other
// tool name in a provider response is out of contract.
const UpdateCharacterToolName = "update_character"

// BuildSystemPrompt renders the assistant persona, behavioral instructions
// and the current character state. The state is embedded as structured JSON
// so the model sees exactly what is already set.
func BuildSystemPrompt(character domain.Character) string {
	state, err := json.MarshalIndent(character, "", "  ")
	if err != nil {
		// Character contains only JSON-encodable fields; this cannot happen.
		state = []byte("{}")
	}
	return fmt.Sprintf(systemPromptTemplate, string(state))
}

// UpdateCharacterTool returns the update_character tool definition. The
// parameter schema mirrors the CharacterUpdate shape field for field.
func UpdateCharacterTool() llm.ToolDefinition {
	return llm.ToolDefinition{
		Name: UpdateCharacterToolName,
		Description: "Update the character sheet with new information based on the user's decisions. " +
			"Call this whenever the user makes a concrete choice about their character " +
			"(name, race, class, ability scores, equipment, backstory, etc.).",
		InputSchema: json.RawMessage(updateCharacterSchema),
	}
}

const systemPromptTemplate = `You are Arcanus the Guide, a wise and friendly character creation wizard for Dungeons & Dragons 5th Edition.

## Personality
Warm, encouraging, with a hint of fantasy flavor. Adapt to the player's experience level. Be conversational and fun, never dry.

## Your Job
Walk the user through creating a D&D 5e character. The general flow:
1. Experience level and edition (default 5e)
2. Character concept — what kind of hero?
3. Race
4. Class
5. Ability scores (point buy, standard array, or rolling)
6. Background
7. Skills and proficiencies
8. Starting equipment
9. Backstory and appearance
10. Review and finalize

Flow naturally. If they jump ahead or go back, follow their lead.

## Response Style
- **Be concise.** 1-3 short paragraphs max. No walls of text.
- When presenting choices, ALWAYS use the choice card format below.
- Celebrate choices briefly — one line, not a paragraph.
- Keep explanations short. Give the key info, not exhaustive details.
- After they choose, confirm quickly and move to the next step.

## Choice Cards
When presenting options for the user to pick from, format them as choice cards. This renders them as clickable buttons in the UI. Use this format:

{{choice:Label|Brief one-line description}}

Example:
{{choice:Human|Versatile and adaptable, +1 to all ability scores}}
{{choice:Elf|Graceful and perceptive, with Darkvision and Fey Ancestry}}
{{choice:Dwarf|Tough and resilient, with poison resistance and Stonecunning}}

Rules for choice cards:
- Always put each choice card on its own line
- Use 3-5 choices max to avoid overwhelming
- Keep descriptions to ONE short sentence (under 15 words)
- Use choice cards for races, classes, backgrounds, ability score methods, equipment choices, etc.
- Do NOT use choice cards for open-ended questions (name, backstory)
- You can include a brief intro sentence before the cards
- Do NOT use markdown bold/formatting inside choice card labels or descriptions

## Formatting
- Use **bold** for important terms and names when mentioned in regular text.
- Use short paragraphs.
- Never use headers (##) in responses.
- Keep numbered/bulleted lists to 3-4 items max if used at all.

## Structured Updates
When the user makes a character decision, call the update_character tool IMMEDIATELY. Do not wait for extra confirmation. Examples:
- User picks a race → call the tool with that race right away
- User picks a class → call the tool with that class right away
- User picks an ability score method (standard array, point buy, etc.) → suggest a smart class-appropriate assignment AND call the tool with those scores in the SAME response. Don't just list the numbers — actually assign them to specific abilities and update.
- User picks equipment, background, etc. → call the tool right away

For **ability scores specifically**:
- Standard Array is 15, 14, 13, 12, 10, 8. When the user picks this, assign the scores to abilities based on their class (e.g., Fighter gets STR 15, CON 14; Wizard gets INT 15, DEX 14, etc.) and call the tool with all six scores filled in. Tell the user how you assigned them and offer to rearrange.
- Point Buy: suggest an optimized spread for their class and call the tool.
- Rolling: simulate rolls (4d6 drop lowest), assign smartly, call the tool.

Always include ALL SIX ability scores when updating abilityScores (strength, dexterity, constitution, intelligence, wisdom, charisma). Never send a partial set.

When sending a list field (proficiencies, equipment, languages, features, attacks), always send the COMPLETE list — lists replace the previous value wholesale.

## Current Character State
%s

## AI Portrait
When the character has a race, class, and appearance filled in, mention ONCE that they can click the "Generate Portrait" button on their character preview to create a custom AI portrait of their character. Keep it brief — just one sentence, woven naturally into the conversation. Don't repeat this if you've already mentioned it.

## D&D Knowledge
You know all PHB races, classes, backgrounds, ability scores, skills, proficiencies, starting equipment, and HP calculation rules thoroughly.`

const updateCharacterSchema = `{
  "type": "object",
  "properties": {
    "name": {"type": "string", "description": "Character name"},
    "race": {"type": "string", "description": "Character race"},
    "class": {"type": "string", "description": "Character class"},
    "subrace": {"type": "string", "description": "Subrace, e.g. High Elf"},
    "subclass": {"type": "string", "description": "Subclass or archetype"},
    "level": {"type": "number", "description": "Character level"},
    "experiencePoints": {"type": "number", "description": "Experience points"},
    "alignment": {"type": "string", "description": "Alignment, e.g. Chaotic Good"},
    "background": {"type": "string", "description": "Character background"},
    "backstory": {"type": "string", "description": "Character backstory"},
    "appearance": {"type": "string", "description": "Physical appearance description"},
    "edition": {"type": "string", "description": "Game edition (e.g. 5e)"},
    "abilityScores": {
      "type": "object",
      "properties": {
        "strength": {"type": "number"},
        "dexterity": {"type": "number"},
        "constitution": {"type": "number"},
        "intelligence": {"type": "number"},
        "wisdom": {"type": "number"},
        "charisma": {"type": "number"}
      },
      "description": "Ability scores object — always include all six scores"
    },
    "hitPoints": {"type": "number", "description": "Hit points"},
    "proficiencies": {
      "type": "array",
      "items": {"type": "string"},
      "description": "Full list of proficiencies"
    },
    "equipment": {
      "type": "array",
      "items": {"type": "string"},
      "description": "Full list of equipment"
    },
    "languages": {
      "type": "array",
      "items": {"type": "string"},
      "description": "Full list of known languages"
    },
    "features": {
      "type": "array",
      "items": {"type": "string"},
      "description": "Full list of class and racial features"
    },
    "savingThrowProficiencies": {
      "type": "array",
      "items": {"type": "string"},
      "description": "Full list of saving throw proficiencies (ability names)"
    },
    "skillProficiencies": {
      "type": "array",
      "items": {"type": "string"},
      "description": "Full list of skill proficiencies"
    },
    "attacks": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "name": {"type": "string"},
          "bonus": {"type": "string", "description": "Attack bonus, e.g. +5"},
          "damage": {"type": "string", "description": "Damage, e.g. 1d8+3 slashing"}
        }
      },
      "description": "Full list of attacks"
    },
    "deathSaves": {
      "type": "object",
      "properties": {
        "successes": {"type": "number"},
        "failures": {"type": "number"}
      },
      "description": "Death saving throw tallies"
    },
    "currency": {
      "type": "object",
      "properties": {
        "cp": {"type": "number"},
        "sp": {"type": "number"},
        "ep": {"type": "number"},
        "gp": {"type": "number"},
        "pp": {"type": "number"}
      },
      "description": "Coinage by denomination"
    },
    "spellcasting": {
      "type": "object",
      "properties": {
        "spellcastingAbility": {"type": "string", "description": "e.g. intelligence"},
        "cantripsKnown": {"type": "array", "items": {"type": "string"}},
        "spellsKnown": {"type": "array", "items": {"type": "string"}},
        "spellSlots": {
          "type": "object",
          "additionalProperties": {"type": "number"},
          "description": "Mapping of spell level to slot count"
        }
      },
      "description": "Spellcasting section; send null to clear it for non-casters"
    },
    "age": {"type": "string", "description": "Age"},
    "height": {"type": "string", "description": "Height"},
    "weight": {"type": "string", "description": "Weight"},
    "eyes": {"type": "string", "description": "Eye color"},
    "skin": {"type": "string", "description": "Skin tone"},
    "hair": {"type": "string", "description": "Hair description"}
  }
}`
