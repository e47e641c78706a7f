package impacts

import (
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/verdantapp/verdant/pkg/query"
	"github.com/verdantapp/verdant/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "note_impacts", "ni").
	Project("note_id", "NoteID").
	Project("user_id", "UserID").
	Project("action_category", "Category").
	Project("action_type", "ActionType").
	Project("quantity", "Quantity").
	Project("unit", "Unit").
	Project("confidence", "Confidence").
	Project("ai_reasoning", "Reasoning").
	Project("co2_saved_kg", "CO2Kg").
	Project("plastic_saved_g", "PlasticG").
	Project("water_saved_liters", "WaterLiters").
	Project("energy_saved_kwh", "EnergyKwh").
	Project("formula_id", "FormulaID").
	Project("formula_source", "FormulaSource").
	Project("needs_review", "NeedsReview").
	Project("model_name", "ModelName").
	Project("provider_name", "ProviderName").
	Project("classified_at", "ClassifiedAt")

var defaultSort = query.SortField{
	Field:      "ClassifiedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for impact record queries.
// Nil fields are ignored; all matching is exact.
type Filters struct {
	Category    *string    `json:"category,omitempty"`
	ActionType  *string    `json:"action_type,omitempty"`
	UserID      *uuid.UUID `json:"user_id,omitempty"`
	FormulaID   *string    `json:"formula_id,omitempty"`
	NeedsReview *bool      `json:"needs_review,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Category", f.Category).
		WhereEquals("ActionType", f.ActionType).
		WhereEquals("UserID", f.UserID).
		WhereEquals("FormulaID", f.FormulaID).
		WhereEquals("NeedsReview", f.NeedsReview)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if c := values.Get("category"); c != "" {
		f.Category = &c
	}

	if at := values.Get("action_type"); at != "" {
		f.ActionType = &at
	}

	if u := values.Get("user_id"); u != "" {
		if id, err := uuid.Parse(u); err == nil {
			f.UserID = &id
		}
	}

	if fid := values.Get("formula_id"); fid != "" {
		f.FormulaID = &fid
	}

	if nr := values.Get("needs_review"); nr != "" {
		if v, err := strconv.ParseBool(nr); err == nil {
			f.NeedsReview = &v
		}
	}

	return f
}

func scanImpact(s repository.Scanner) (ImpactRecord, error) {
	var r ImpactRecord
	err := s.Scan(
		&r.NoteID,
		&r.UserID,
		&r.Category,
		&r.ActionType,
		&r.Quantity,
		&r.Unit,
		&r.Confidence,
		&r.Reasoning,
		&r.CO2Kg,
		&r.PlasticG,
		&r.WaterLiters,
		&r.EnergyKwh,
		&r.FormulaID,
		&r.FormulaSource,
		&r.NeedsReview,
		&r.ModelName,
		&r.ProviderName,
		&r.ClassifiedAt,
	)
	return r, err
}
