// Package impacts implements the note-impact domain for Verdant.
// It provides types, data access, and business logic for running the
// classification pipeline against action notes and persisting the quantified
// results, including the review-queue entries for low-confidence outcomes.
package impacts

import (
	"time"

	"github.com/google/uuid"

	"github.com/verdantapp/verdant/internal/classifier"
	"github.com/verdantapp/verdant/internal/pipeline"
)

// ImpactRecord represents a stored impact estimate for one action note.
// It mirrors the note_impacts table schema: the join of the classification
// fields and the calculated impact, keyed by note id. Re-classification
// overwrites the prior record for the note.
type ImpactRecord struct {
	NoteID        uuid.UUID           `json:"note_id"`
	UserID        uuid.UUID           `json:"user_id"`
	Category      classifier.Category `json:"action_category"`
	ActionType    string              `json:"action_type"`
	Quantity      *float64            `json:"quantity"`
	Unit          *string             `json:"unit"`
	Confidence    float64             `json:"confidence"`
	Reasoning     string              `json:"ai_reasoning"`
	CO2Kg         *float64            `json:"co2_saved_kg"`
	PlasticG      *float64            `json:"plastic_saved_g"`
	WaterLiters   *float64            `json:"water_saved_liters"`
	EnergyKwh     *float64            `json:"energy_saved_kwh"`
	FormulaID     string              `json:"formula_id"`
	FormulaSource *string             `json:"formula_source"`
	NeedsReview   bool                `json:"needs_review"`
	ModelName     string              `json:"model_name"`
	ProviderName  string              `json:"provider_name"`
	ClassifiedAt  time.Time           `json:"classified_at"`
}

// ProcessCommand carries the data needed to classify one action note.
// It matches the trigger payload sent when a note is created elsewhere
// in the platform.
type ProcessCommand struct {
	NoteID      uuid.UUID `json:"note_id"`
	UserID      uuid.UUID `json:"user_id"`
	NoteContent string    `json:"note_content"`
}

// BatchResult reports the outcome of a single note within a batch run.
// On success, Outcome is populated and Error is empty.
type BatchResult struct {
	NoteID  uuid.UUID         `json:"note_id"`
	Outcome *pipeline.Outcome `json:"outcome,omitempty"`
	Error   string            `json:"error,omitempty"`
}

// Summary aggregates impact totals across records, either for one user or
// platform-wide. Categories counts records per action category.
type Summary struct {
	TotalCO2Kg       float64        `json:"total_co2_kg"`
	TotalPlasticG    float64        `json:"total_plastic_g"`
	TotalWaterLiters float64        `json:"total_water_liters"`
	TotalEnergyKwh   float64        `json:"total_energy_kwh"`
	TotalNotes       int            `json:"total_notes"`
	Categories       map[string]int `json:"category_breakdown"`
}
