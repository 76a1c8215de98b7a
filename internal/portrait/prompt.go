package portrait

import (
	"fmt"
	"strings"

	"github.com/arcanus/arcanus/internal/domain"
)

// maxPromptEquipment caps how many items are described to the image model.
const maxPromptEquipment = 6

// BuildPrompt renders the image generation prompt for a character. The style
// directives pin the output to the low-poly render look of the bundled
// reference portraits.
func BuildPrompt(c domain.Character) string {
	lines := []string{
		"Stylized 3D low-poly character portrait with soft matte textures, geometric faceted surfaces.",
		"Full body, centered, facing camera.",
		"Low-poly geometric environment matching character theme.",
		"Moody atmospheric lighting with subtle rim light.",
		"NOT photorealistic, NOT 2D illustration.",
		"Must look like a 3D low-poly game render with matte textures and geometric shapes.",
		"",
	}

	subject := fmt.Sprintf("Character: %s %s", c.Race, c.Class)
	if c.Name != "" {
		subject += " named " + c.Name
	}
	lines = append(lines, subject)

	if c.Appearance != "" {
		lines = append(lines, "Appearance: "+c.Appearance)
	}

	if len(c.Equipment) > 0 {
		items := c.Equipment
		if len(items) > maxPromptEquipment {
			items = items[:maxPromptEquipment]
		}
		lines = append(lines, "Equipment: "+strings.Join(items, ", "))
	}

	return strings.Join(lines, "\n")
}
