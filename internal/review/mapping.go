package review

import (
	"net/url"

	"github.com/google/uuid"

	"github.com/verdantapp/verdant/pkg/query"
	"github.com/verdantapp/verdant/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "impact_review_queue", "rq").
	Project("note_id", "NoteID").
	Project("user_id", "UserID").
	Project("note_content", "NoteContent").
	Project("ai_category", "Category").
	Project("ai_confidence", "Confidence").
	Project("ai_reasoning", "Reasoning").
	Project("status", "Status").
	Project("resolved_by", "ResolvedBy").
	Project("resolved_at", "ResolvedAt").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field: "CreatedAt",
}

// Filters contains optional filtering criteria for review-queue queries.
type Filters struct {
	Status   *string    `json:"status,omitempty"`
	Category *string    `json:"category,omitempty"`
	UserID   *uuid.UUID `json:"user_id,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Status", f.Status).
		WhereEquals("Category", f.Category).
		WhereEquals("UserID", f.UserID)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}

	if c := values.Get("category"); c != "" {
		f.Category = &c
	}

	if u := values.Get("user_id"); u != "" {
		if id, err := uuid.Parse(u); err == nil {
			f.UserID = &id
		}
	}

	return f
}

func scanEntry(s repository.Scanner) (Entry, error) {
	var e Entry
	err := s.Scan(
		&e.NoteID,
		&e.UserID,
		&e.NoteContent,
		&e.Category,
		&e.Confidence,
		&e.Reasoning,
		&e.Status,
		&e.ResolvedBy,
		&e.ResolvedAt,
		&e.CreatedAt,
	)
	return e, err
}
