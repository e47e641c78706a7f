package classifier

import (
	"fmt"

	"github.com/verdantapp/verdant/pkg/formatting"
)

// Result is the structured extraction produced from a single note.
// Quantity and Unit are nil when the note states no explicit magnitude.
// Reasoning is a short justification kept for audit and review display;
// it plays no part in impact calculation.
type Result struct {
	Category   Category `json:"category"`
	ActionType string   `json:"action_type"`
	Quantity   *float64 `json:"quantity"`
	Unit       *string  `json:"unit"`
	Confidence float64  `json:"confidence"`
	Reasoning  string   `json:"reasoning"`
}

// wireResult mirrors the model's reply shape. Category and Confidence are
// declared so that absence is detectable, since both are required fields.
type wireResult struct {
	Category   string   `json:"category"`
	ActionType string   `json:"action_type"`
	Quantity   *float64 `json:"quantity"`
	Unit       *string  `json:"unit"`
	Confidence *float64 `json:"confidence"`
	Reasoning  string   `json:"reasoning"`
}

// Decode parses model reply content into a Result. Markdown code fences are
// stripped before JSON parsing. Replies missing the required category or
// confidence fields are rejected; out-of-set categories are coerced to other.
func Decode(content string) (Result, error) {
	wire, err := formatting.Parse[wireResult](content)
	if err != nil {
		return Result{}, err
	}

	if wire.Category == "" {
		return Result{}, fmt.Errorf("model reply missing category")
	}
	if wire.Confidence == nil {
		return Result{}, fmt.Errorf("model reply missing confidence")
	}

	confidence := *wire.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	actionType := wire.ActionType
	if actionType == "" {
		actionType = GeneralAction
	}

	return Result{
		Category:   Category(wire.Category).Normalize(),
		ActionType: actionType,
		Quantity:   wire.Quantity,
		Unit:       wire.Unit,
		Confidence: confidence,
		Reasoning:  wire.Reasoning,
	}, nil
}

// Fallback returns the deterministic result used when classification fails:
// category other, a generic action type, and zero confidence, which always
// routes the note to human review.
func Fallback(reason string) Result {
	return Result{
		Category:   CategoryOther,
		ActionType: GeneralAction,
		Confidence: 0,
		Reasoning:  reason,
	}
}
