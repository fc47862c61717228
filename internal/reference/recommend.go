package reference

var dishRestaurants = map[string]string{
	"fried chicken":     "KFC HQ",
	"chicken drumstick": "Popeyes HQ",
	"grilled chicken":   "Nando's HQ",
	"roasted chicken":   "Church's Chicken HQ",
	"crispy chicken":    "Jollibee HQ",
}

// "black chicken" is deliberately absent and resolves to the brown fallback.
var lookBreeds = map[string]string{
	"fluffy chicken": "Silkie",
	"brown chicken":  "Rhode Island Red",
	"white chicken":  "Leghorn",
	"large chicken":  "Brahma",
	"small chicken":  "Japanese Bantam",
}

const (
	fallbackDish = "fried chicken"
	fallbackLook = "brown chicken"
)

// RestaurantForDish maps a food descriptor from the drawing classifier to a restaurant.
func (t *Table) RestaurantForDish(dish string) Entry {
	name, ok := dishRestaurants[dish]
	if !ok {
		name = dishRestaurants[fallbackDish]
	}
	e, _ := t.Lookup(name)
	return e
}

// BreedForLook maps a live-chicken descriptor to a breed.
func (t *Table) BreedForLook(look string) Entry {
	name, ok := lookBreeds[look]
	if !ok {
		name = lookBreeds[fallbackLook]
	}
	e, _ := t.Lookup(name)
	return e
}
