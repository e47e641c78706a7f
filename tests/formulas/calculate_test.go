package formulas_test

import (
	"testing"

	"github.com/verdantapp/verdant/internal/classifier"
	"github.com/verdantapp/verdant/internal/formulas"
)

func ptr[T any](v T) *T {
	return &v
}

func result(category classifier.Category, actionType string, quantity *float64, unit *string) classifier.Result {
	return classifier.Result{
		Category:   category,
		ActionType: actionType,
		Quantity:   quantity,
		Unit:       unit,
		Confidence: 0.9,
	}
}

func checkDim(t *testing.T, name string, got *float64, want *float64) {
	t.Helper()
	if want == nil {
		if got != nil {
			t.Errorf("%s: got %v, want nil", name, *got)
		}
		return
	}
	if got == nil {
		t.Errorf("%s: got nil, want %v", name, *want)
		return
	}
	if *got != *want {
		t.Errorf("%s: got %v, want %v", name, *got, *want)
	}
}

func TestCalculateDistanceScaling(t *testing.T) {
	tests := []struct {
		name       string
		actionType string
		quantity   *float64
		unit       *string
		wantCO2    *float64
		wantID     string
	}{
		{
			name:       "biked 5 miles",
			actionType: "car_to_bike",
			quantity:   ptr(5.0),
			unit:       ptr("miles"),
			wantCO2:    ptr(2.02),
			wantID:     "car_to_bike_per_mile",
		},
		{
			name:       "biked 10 km converts to miles",
			actionType: "car_to_bike",
			quantity:   ptr(10.0),
			unit:       ptr("km"),
			wantCO2:    ptr(2.5088),
			wantID:     "car_to_bike_per_mile",
		},
		{
			name:       "transit 8 miles",
			actionType: "car_to_transit",
			quantity:   ptr(8.0),
			unit:       ptr("miles"),
			wantCO2:    ptr(1.824),
			wantID:     "car_to_transit_per_mile",
		},
		{
			name:       "distance without unit uses base factor",
			actionType: "car_to_walk",
			quantity:   ptr(5.0),
			unit:       nil,
			wantCO2:    ptr(0.404),
			wantID:     "car_to_walk_per_mile",
		},
		{
			name:       "incompatible unit uses base factor",
			actionType: "flight_avoided",
			quantity:   ptr(3.0),
			unit:       ptr("hours"),
			wantCO2:    ptr(0.255),
			wantID:     "flight_avoided_per_mile",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formulas.Calculate(result(classifier.CategoryTransportation, tt.actionType, tt.quantity, tt.unit))

			if got.FormulaID != tt.wantID {
				t.Errorf("formula id: got %s, want %s", got.FormulaID, tt.wantID)
			}
			checkDim(t, "co2", got.CO2Kg, tt.wantCO2)
			checkDim(t, "plastic", got.PlasticG, nil)
		})
	}
}

func TestCalculateCountScaling(t *testing.T) {
	got := formulas.Calculate(result(classifier.CategoryWaste, "plastic_bottle_avoided", ptr(3.0), ptr("items")))

	checkDim(t, "co2", got.CO2Kg, ptr(0.246))
	checkDim(t, "plastic", got.PlasticG, ptr(75.0))
	checkDim(t, "water", got.WaterLiters, nil)
	checkDim(t, "energy", got.EnergyKwh, nil)
}

func TestCalculateUnquantifiedUsesBaseFactor(t *testing.T) {
	got := formulas.Calculate(result(classifier.CategoryWaste, "plastic_bottle_avoided", nil, nil))

	checkDim(t, "co2", got.CO2Kg, ptr(0.082))
	checkDim(t, "plastic", got.PlasticG, ptr(25.0))

	if got.FormulaSource == nil || *got.FormulaSource == "" {
		t.Error("formula source should be set")
	}
}

func TestCalculateMinutesScaling(t *testing.T) {
	t.Run("shower minutes scale per-minute formula", func(t *testing.T) {
		got := formulas.Calculate(result(classifier.CategoryWater, "shorter_shower", ptr(10.0), ptr("minutes")))

		if got.FormulaID != "shower_minute_saved" {
			t.Errorf("formula id: got %s, want shower_minute_saved", got.FormulaID)
		}
		checkDim(t, "water", got.WaterLiters, ptr(90.0))
		checkDim(t, "co2", got.CO2Kg, ptr(0.027))
	})

	t.Run("unquantified shower uses representative formula", func(t *testing.T) {
		got := formulas.Calculate(result(classifier.CategoryWater, "shorter_shower", nil, nil))

		if got.FormulaID != "shorter_shower_5min" {
			t.Errorf("formula id: got %s, want shorter_shower_5min", got.FormulaID)
		}
		checkDim(t, "water", got.WaterLiters, ptr(45.0))
		checkDim(t, "co2", got.CO2Kg, ptr(0.0135))
	})

	t.Run("non-minute unit uses representative formula", func(t *testing.T) {
		got := formulas.Calculate(result(classifier.CategoryWater, "shorter_shower", ptr(2.0), ptr("hours")))

		if got.FormulaID != "shorter_shower_5min" {
			t.Errorf("formula id: got %s, want shorter_shower_5min", got.FormulaID)
		}
	})
}

func TestCalculateCategoryDefaults(t *testing.T) {
	tests := []struct {
		name      string
		category  classifier.Category
		wantID    string
		wantCO2   *float64
		wantWater *float64
	}{
		{"transportation", classifier.CategoryTransportation, "car_trip_avoided_default", ptr(1.2), nil},
		{"food", classifier.CategoryFood, "meat_meal_to_veg", ptr(2.5), nil},
		{"waste", classifier.CategoryWaste, "plastic_bottle_avoided", ptr(0.082), nil},
		{"energy", classifier.CategoryEnergy, "lights_off_per_hour", ptr(0.046), nil},
		{"water", classifier.CategoryWater, "tap_off_brushing", ptr(0.0024), ptr(8.0)},
		{"shopping", classifier.CategoryShopping, "fast_fashion_item_avoided", ptr(10.0), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formulas.Calculate(result(tt.category, "unrecognized_action", nil, nil))

			if got.FormulaID != tt.wantID {
				t.Errorf("formula id: got %s, want %s", got.FormulaID, tt.wantID)
			}
			checkDim(t, "co2", got.CO2Kg, tt.wantCO2)
			checkDim(t, "water", got.WaterLiters, tt.wantWater)
		})
	}
}

// The energy and shopping defaults intentionally carry fewer dimensions
// than the table formulas with the same id.
func TestCalculateDefaultsTrimDimensions(t *testing.T) {
	energy := formulas.Calculate(result(classifier.CategoryEnergy, "unrecognized_action", nil, nil))
	checkDim(t, "energy default kwh", energy.EnergyKwh, nil)

	shopping := formulas.Calculate(result(classifier.CategoryShopping, "unrecognized_action", nil, nil))
	checkDim(t, "shopping default water", shopping.WaterLiters, nil)
}

func TestCalculateFallbackResult(t *testing.T) {
	got := formulas.Calculate(classifier.Fallback("model classification failed"))

	if got.FormulaID != formulas.FallbackFormulaID {
		t.Errorf("formula id: got %s, want %s", got.FormulaID, formulas.FallbackFormulaID)
	}
	checkDim(t, "co2", got.CO2Kg, nil)
	checkDim(t, "plastic", got.PlasticG, nil)
	checkDim(t, "water", got.WaterLiters, nil)
	checkDim(t, "energy", got.EnergyKwh, nil)

	if got.FormulaSource != nil {
		t.Errorf("formula source: got %v, want nil", *got.FormulaSource)
	}
}

func TestCalculateNegativeQuantityIgnored(t *testing.T) {
	got := formulas.Calculate(result(classifier.CategoryFood, "beef_to_veg", ptr(-2.0), ptr("meals")))

	checkDim(t, "co2", got.CO2Kg, ptr(3.5))
}

func TestCalculateRounding(t *testing.T) {
	// 0.404 * 3.7 = 1.4948, exact at 4 decimal places
	got := formulas.Calculate(result(classifier.CategoryTransportation, "car_to_bike", ptr(3.7), ptr("miles")))
	checkDim(t, "co2", got.CO2Kg, ptr(1.4948))

	// 0.003 * 7 straws = 0.021 co2, 3.5 g plastic
	got = formulas.Calculate(result(classifier.CategoryWaste, "straw_avoided", ptr(7.0), ptr("items")))
	checkDim(t, "co2", got.CO2Kg, ptr(0.021))
	checkDim(t, "plastic", got.PlasticG, ptr(3.5))
}

func TestEveryActionTypeHasBinding(t *testing.T) {
	for _, category := range classifier.Categories() {
		for _, actionType := range classifier.ActionTypes(category) {
			if actionType == classifier.GeneralAction {
				continue
			}

			got := formulas.Calculate(result(category, actionType, nil, nil))
			if got.FormulaID == formulas.FallbackFormulaID {
				t.Errorf("%s/%s resolved to the fallback formula", category, actionType)
			}
			if _, ok := formulas.Lookup(got.FormulaID); !ok {
				t.Errorf("%s/%s resolved to unknown formula %s", category, actionType, got.FormulaID)
			}
		}
	}
}
