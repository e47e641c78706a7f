package classifier

import "slices"

// Category is one of the closed set of action categories the model may assign.
type Category string

// Valid action categories.
const (
	CategoryTransportation Category = "transportation"
	CategoryFood           Category = "food"
	CategoryWaste          Category = "waste"
	CategoryEnergy         Category = "energy"
	CategoryWater          Category = "water"
	CategoryShopping       Category = "shopping"
	CategoryOther          Category = "other"
)

var categories = []Category{
	CategoryTransportation,
	CategoryFood,
	CategoryWaste,
	CategoryEnergy,
	CategoryWater,
	CategoryShopping,
	CategoryOther,
}

// GeneralAction is the action type assigned when no recognized action fits,
// and the action type of every fallback result.
const GeneralAction = "general_action"

// Categories returns the closed set of valid categories.
func Categories() []Category {
	return categories
}

// Valid reports whether c is a member of the closed category set.
func (c Category) Valid() bool {
	return slices.Contains(categories, c)
}

// Normalize coerces unknown category values to CategoryOther. The model is
// instructed to stay within the closed set, but a well-formed reply with an
// out-of-set category is recoverable and should not discard the extraction.
func (c Category) Normalize() Category {
	if c.Valid() {
		return c
	}
	return CategoryOther
}

// actionTypes enumerates the recognized action types per category, as
// embedded in the instruction prompt.
var actionTypes = map[Category][]string{
	CategoryTransportation: {
		"car_to_bike", "car_to_walk", "car_to_transit",
		"car_to_carpool", "flight_avoided", "car_trip_avoided",
	},
	CategoryFood: {
		"beef_to_veg", "meat_to_veg", "dairy_skipped",
		"food_waste_prevented", "local_produce",
	},
	CategoryWaste: {
		"plastic_bottle_avoided", "plastic_bag_avoided",
		"straw_avoided", "recycling", "composting",
	},
	CategoryEnergy: {
		"led_switch", "lights_off", "unplug_device",
		"thermostat_adjust", "solar",
	},
	CategoryWater: {
		"shorter_shower", "tap_off_brushing", "rainwater_collect",
	},
	CategoryShopping: {
		"fast_fashion_avoided", "secondhand_bought",
	},
	CategoryOther: {
		GeneralAction,
	},
}

// ActionTypes returns the recognized action types for a category.
func ActionTypes(c Category) []string {
	return actionTypes[c]
}

// Units is the controlled vocabulary for extracted quantity units.
var Units = []string{
	"miles", "km", "kg", "liters", "hours", "items", "meals", "minutes",
}
