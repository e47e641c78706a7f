// Package review implements the human-review queue for low-confidence
// classification outcomes. Entries are keyed by note id and move from
// pending to resolved exactly once.
package review

import (
	"time"

	"github.com/google/uuid"

	"github.com/verdantapp/verdant/internal/classifier"
)

// Entry status values.
const (
	StatusPending  = "pending"
	StatusResolved = "resolved"
)

// Entry represents one queued note awaiting human review, carrying the
// model's assessment alongside the original note content so a reviewer
// can judge without a second lookup.
type Entry struct {
	NoteID      uuid.UUID           `json:"note_id"`
	UserID      uuid.UUID           `json:"user_id"`
	NoteContent string              `json:"note_content"`
	Category    classifier.Category `json:"ai_category"`
	Confidence  float64             `json:"ai_confidence"`
	Reasoning   string              `json:"ai_reasoning"`
	Status      string              `json:"status"`
	ResolvedBy  *string             `json:"resolved_by"`
	ResolvedAt  *time.Time          `json:"resolved_at"`
	CreatedAt   time.Time           `json:"created_at"`
}

// ResolveCommand carries the reviewer identity for resolving an entry.
type ResolveCommand struct {
	ResolvedBy string `json:"resolved_by"`
}
