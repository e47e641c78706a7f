package formulas

import (
	"math"

	"github.com/verdantapp/verdant/internal/classifier"
)

// milesPerKm converts extracted km distances to the miles the table is
// calibrated in.
const milesPerKm = 0.621

// FallbackFormulaID marks an estimate produced with no formula at all:
// category other, where every impact dimension is null.
const FallbackFormulaID = "other"

// Estimate holds the quantified environmental savings derived from one
// classification result. Each dimension is nil when it does not apply to
// the resolved action. FormulaSource is nil only for the all-null case.
type Estimate struct {
	CO2Kg         *float64 `json:"co2_saved_kg"`
	PlasticG      *float64 `json:"plastic_saved_g"`
	WaterLiters   *float64 `json:"water_saved_liters"`
	EnergyKwh     *float64 `json:"energy_saved_kwh"`
	FormulaID     string   `json:"formula_id"`
	FormulaSource *string  `json:"formula_source"`
}

// Calculate converts a classification result into an impact estimate.
// It is a total function: every valid result, including the zero-confidence
// fallback, yields an estimate without error.
//
// Resolution order: a bound action type uses its table formula, scaled by the
// extracted quantity when one is present with a compatible unit (multiplier 1
// otherwise); an unbound action type falls back to its category default with
// multiplier 1; category other has no default and yields an all-null estimate.
func Calculate(result classifier.Result) Estimate {
	if b, ok := bindings[result.ActionType]; ok {
		mult, scaledByQuantity := multiplier(b.kind, result.Quantity, result.Unit)

		formulaID := b.formulaID
		if !scaledByQuantity && b.unquantified != "" {
			formulaID = b.unquantified
			mult = 1
		}

		return estimate(formulaID, table[formulaID], mult)
	}

	d, ok := categoryDefaults[result.Category]
	if !ok {
		return Estimate{FormulaID: FallbackFormulaID}
	}

	return estimate(d.formulaID, d.formula, 1)
}

// multiplier derives the scale factor from the extracted quantity. The
// second return reports whether the quantity actually scaled the formula;
// an absent, non-positive, or unit-incompatible quantity yields (1, false).
func multiplier(kind quantityKind, quantity *float64, unit *string) (float64, bool) {
	if quantity == nil || *quantity <= 0 {
		return 1, false
	}

	switch kind {
	case quantityDistance:
		if unit == nil {
			return 1, false
		}
		switch *unit {
		case "miles":
			return *quantity, true
		case "km":
			return *quantity * milesPerKm, true
		}
		return 1, false

	case quantityMinutes:
		if unit != nil && *unit == "minutes" {
			return *quantity, true
		}
		return 1, false

	default:
		return *quantity, true
	}
}

func estimate(formulaID string, f Formula, mult float64) Estimate {
	e := Estimate{
		CO2Kg:       scaled(f.CO2Kg, mult),
		PlasticG:    scaled(f.PlasticG, mult),
		WaterLiters: scaled(f.WaterLiters, mult),
		EnergyKwh:   scaled(f.EnergyKwh, mult),
		FormulaID:   formulaID,
	}

	if f.Source != "" {
		e.FormulaSource = &f.Source
	}
	return e
}

// scaled applies the multiplier and rounds to 4 decimal places, enough to
// keep sub-gram and sub-liter precision without floating-point noise.
func scaled(factor, mult float64) *float64 {
	if factor == 0 {
		return nil
	}
	v := math.Round(factor*mult*10000) / 10000
	return &v
}
