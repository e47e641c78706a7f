// Package pipeline implements the note-impact workflow for Verdant.
// It sequences classification and impact calculation through a 2-node state
// graph (classify → calculate) and applies the confidence gate that decides
// whether a result requires human review. Persistence of the outcome is the
// impacts domain's concern.
package pipeline

import (
	"github.com/verdantapp/verdant/internal/classifier"
	"github.com/verdantapp/verdant/internal/formulas"
)

// State bag keys.
const (
	KeyNoteContent = "note_content"
	KeyResult      = "classification_result"
	KeyEstimate    = "impact_estimate"
)

// ReviewThreshold is the confidence below which an outcome is routed to
// human review. It applies uniformly across all categories.
const ReviewThreshold = 0.7

// RequiresReview reports whether a confidence score falls below the review
// threshold.
func RequiresReview(confidence float64) bool {
	return confidence < ReviewThreshold
}

// Outcome is the final output from one pipeline execution.
type Outcome struct {
	Result      classifier.Result `json:"result"`
	Estimate    formulas.Estimate `json:"estimate"`
	NeedsReview bool              `json:"needs_review"`
}
