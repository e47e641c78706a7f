package classifier

import (
	"fmt"
	"strings"
)

const promptInstructions = `You are an environmental impact classifier. Analyze a user's climate action note and extract structured data.`

const promptSpec = `Respond ONLY with valid JSON like:
{
  "category": "transportation",
  "action_type": "car_to_bike",
  "quantity": 5,
  "unit": "miles",
  "confidence": 0.92,
  "reasoning": "User clearly states biking 5 miles instead of driving"
}

Rules:
- confidence: 0.0-1.0 (be conservative, only 0.9+ if very explicit)
- quantity: numeric value extracted from note, null if not mentioned
- unit: %s — null if not applicable
- If vague or unclear, set confidence below 0.7`

// Prompt composes the fixed instruction prompt for a note. The taxonomy and
// per-category action types are rendered from the same tables the calculator
// resolves against, so prompt and formula vocabulary cannot drift apart.
func Prompt(noteContent string) string {
	var sb strings.Builder

	sb.WriteString(promptInstructions)
	sb.WriteString("\n\nCATEGORIES: ")
	sb.WriteString(joinCategories())
	sb.WriteString("\n\nACTION TYPES per category:\n")

	for _, c := range categories {
		sb.WriteString(fmt.Sprintf("- %s: %s\n", c, strings.Join(actionTypes[c], ", ")))
	}

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf(promptSpec, strings.Join(Units, ", ")))
	sb.WriteString(fmt.Sprintf("\n\nClassify this climate action note: %q", noteContent))

	return sb.String()
}

func joinCategories() string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
