// Package formulas implements the impact calculator for Verdant. It converts
// a structured classification result into quantified environmental savings
// using a static table of research-backed per-unit conversion factors.
//
// The table constants are a policy decision shared with downstream aggregate
// dashboards: every deployed instance must produce identical numbers for the
// same extraction, so the factors, the category-default fallback, and the
// multiplier rules are fixed here rather than configured.
package formulas

import "github.com/verdantapp/verdant/internal/classifier"

// Formula holds per-unit impact factors for one semantic action.
// A zero field means the dimension does not apply to the action;
// no real conversion factor is zero.
type Formula struct {
	CO2Kg       float64
	PlasticG    float64
	WaterLiters float64
	EnergyKwh   float64
	Source      string
}

// Research-backed impact formulas, keyed by formula id.
// Sources: EPA 2024, IPCC 2023, Poore & Nemecek 2018, IEA 2024,
// Water Footprint Network.
var table = map[string]Formula{
	// Transportation
	"car_to_bike_per_mile":     {CO2Kg: 0.404, Source: "EPA 2024"},
	"car_to_walk_per_mile":     {CO2Kg: 0.404, Source: "EPA 2024"},
	"car_to_transit_per_mile":  {CO2Kg: 0.228, Source: "EPA 2024"},
	"car_to_carpool_per_mile":  {CO2Kg: 0.202, Source: "EPA 2024"},
	"flight_avoided_per_mile":  {CO2Kg: 0.255, Source: "ICAO 2023"},
	"car_trip_avoided_default": {CO2Kg: 1.2, Source: "EPA avg 3mi trip"},

	// Food
	"beef_meal_to_veg":        {CO2Kg: 3.5, Source: "Poore & Nemecek 2018"},
	"meat_meal_to_veg":        {CO2Kg: 2.5, Source: "Oxford 2023"},
	"dairy_meal_skipped":      {CO2Kg: 0.9, Source: "Poore & Nemecek 2018"},
	"food_waste_prevented_kg": {CO2Kg: 2.5, Source: "FAO 2023"},
	"local_produce_meal":      {CO2Kg: 0.5, Source: "Worldwatch Institute"},

	// Waste
	"plastic_bottle_avoided": {CO2Kg: 0.082, PlasticG: 25, Source: "Plastic Pollution Coalition"},
	"plastic_bag_avoided":    {CO2Kg: 0.033, PlasticG: 10, Source: "EPA"},
	"straw_avoided":          {CO2Kg: 0.003, PlasticG: 0.5, Source: "EPA"},
	"recycling_kg":           {CO2Kg: 0.5, Source: "EPA WasteWise"},
	"composting_kg":          {CO2Kg: 0.3, Source: "EPA"},

	// Energy
	"led_bulb_switch":         {CO2Kg: 0.15, EnergyKwh: 0.5, Source: "DOE 2024"},
	"lights_off_per_hour":     {CO2Kg: 0.046, EnergyKwh: 0.06, Source: "IEA avg"},
	"unplug_device_per_day":   {CO2Kg: 0.03, EnergyKwh: 0.1, Source: "DOE"},
	"thermostat_1deg_per_day": {CO2Kg: 0.3, EnergyKwh: 1.0, Source: "DOE"},
	"solar_kwh":               {CO2Kg: 0.92, EnergyKwh: 1.0, Source: "IEA 2024"},

	// Water
	"shower_minute_saved":       {WaterLiters: 9, CO2Kg: 0.0027, Source: "EPA WaterSense"},
	"tap_off_brushing":          {WaterLiters: 8, CO2Kg: 0.0024, Source: "EPA WaterSense"},
	"shorter_shower_5min":       {WaterLiters: 45, CO2Kg: 0.0135, Source: "EPA WaterSense"},
	"rainwater_collected_liter": {WaterLiters: 1, Source: "WFN"},

	// Shopping
	"fast_fashion_item_avoided": {CO2Kg: 10.0, WaterLiters: 2700, Source: "UNEP 2023"},
	"secondhand_item_bought":    {CO2Kg: 5.0, Source: "ThredUp 2023"},
}

// quantityKind describes how an extracted quantity scales a formula.
type quantityKind int

const (
	// quantityCount multiplies by the quantity when one is present,
	// regardless of its unit.
	quantityCount quantityKind = iota
	// quantityDistance multiplies by a distance in miles or km;
	// km values are converted to miles before lookup since the
	// table is calibrated in miles.
	quantityDistance
	// quantityMinutes multiplies by a duration stated in minutes only.
	quantityMinutes
)

// binding maps a recognized action type to its formula and quantity semantics.
// Every action type in the classifier taxonomy has a binding, so a recognized
// action can never fall through to the category default by omission.
var bindings = map[string]binding{
	"car_to_bike":      {formulaID: "car_to_bike_per_mile", kind: quantityDistance},
	"car_to_walk":      {formulaID: "car_to_walk_per_mile", kind: quantityDistance},
	"car_to_transit":   {formulaID: "car_to_transit_per_mile", kind: quantityDistance},
	"car_to_carpool":   {formulaID: "car_to_carpool_per_mile", kind: quantityDistance},
	"flight_avoided":   {formulaID: "flight_avoided_per_mile", kind: quantityDistance},
	"car_trip_avoided": {formulaID: "car_trip_avoided_default", kind: quantityCount},

	"beef_to_veg":          {formulaID: "beef_meal_to_veg", kind: quantityCount},
	"meat_to_veg":          {formulaID: "meat_meal_to_veg", kind: quantityCount},
	"dairy_skipped":        {formulaID: "dairy_meal_skipped", kind: quantityCount},
	"food_waste_prevented": {formulaID: "food_waste_prevented_kg", kind: quantityCount},
	"local_produce":        {formulaID: "local_produce_meal", kind: quantityCount},

	"plastic_bottle_avoided": {formulaID: "plastic_bottle_avoided", kind: quantityCount},
	"plastic_bag_avoided":    {formulaID: "plastic_bag_avoided", kind: quantityCount},
	"straw_avoided":          {formulaID: "straw_avoided", kind: quantityCount},
	"recycling":              {formulaID: "recycling_kg", kind: quantityCount},
	"composting":             {formulaID: "composting_kg", kind: quantityCount},

	"led_switch":        {formulaID: "led_bulb_switch", kind: quantityCount},
	"lights_off":        {formulaID: "lights_off_per_hour", kind: quantityCount},
	"unplug_device":     {formulaID: "unplug_device_per_day", kind: quantityCount},
	"thermostat_adjust": {formulaID: "thermostat_1deg_per_day", kind: quantityCount},
	"solar":             {formulaID: "solar_kwh", kind: quantityCount},

	"shorter_shower": {
		formulaID:    "shower_minute_saved",
		kind:         quantityMinutes,
		unquantified: "shorter_shower_5min",
	},
	"tap_off_brushing":  {formulaID: "tap_off_brushing", kind: quantityCount},
	"rainwater_collect": {formulaID: "rainwater_collected_liter", kind: quantityCount},

	"fast_fashion_avoided": {formulaID: "fast_fashion_item_avoided", kind: quantityCount},
	"secondhand_bought":    {formulaID: "secondhand_item_bought", kind: quantityCount},
}

type binding struct {
	formulaID string
	kind      quantityKind

	// unquantified, when set, substitutes a representative whole-action
	// formula if no usable quantity is present to scale the per-unit one.
	unquantified string
}

// categoryDefault is the representative action applied when the extracted
// action type matches no binding. The default factors intentionally carry
// fewer dimensions than the full table entries for the same formula id;
// an unrecognized action earns only the conservative core estimate.
type categoryDefault struct {
	formulaID string
	formula   Formula
}

var categoryDefaults = map[classifier.Category]categoryDefault{
	classifier.CategoryTransportation: {
		formulaID: "car_trip_avoided_default",
		formula:   Formula{CO2Kg: 1.2, Source: "EPA avg 3mi trip"},
	},
	classifier.CategoryFood: {
		formulaID: "meat_meal_to_veg",
		formula:   Formula{CO2Kg: 2.5, Source: "Oxford 2023"},
	},
	classifier.CategoryWaste: {
		formulaID: "plastic_bottle_avoided",
		formula:   Formula{CO2Kg: 0.082, PlasticG: 25, Source: "Plastic Pollution Coalition"},
	},
	classifier.CategoryEnergy: {
		formulaID: "lights_off_per_hour",
		formula:   Formula{CO2Kg: 0.046, Source: "IEA avg"},
	},
	classifier.CategoryWater: {
		formulaID: "tap_off_brushing",
		formula:   Formula{WaterLiters: 8, CO2Kg: 0.0024, Source: "EPA WaterSense"},
	},
	classifier.CategoryShopping: {
		formulaID: "fast_fashion_item_avoided",
		formula:   Formula{CO2Kg: 10.0, Source: "UNEP 2023"},
	},
}

// Lookup returns the formula for a formula id.
func Lookup(formulaID string) (Formula, bool) {
	f, ok := table[formulaID]
	return f, ok
}
