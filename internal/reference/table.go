// Package reference holds the read-only places and animals the chat assistant recommends,
// the drawing analysis points to, and the map shows. Every consumer reads the same table so a
// recommendation always matches a marker.
package reference

import "strings"

type Kind string

const (
	KindBreed      Kind = "breed"
	KindRestaurant Kind = "restaurant"
	KindShelter    Kind = "shelter"
)

type Entry struct {
	Kind        Kind     `json:"kind"`
	Name        string   `json:"name"`
	Lat         float64  `json:"lat"`
	Lng         float64  `json:"lng"`
	Keywords    []string `json:"keywords,omitempty"`
	Origin      string   `json:"origin,omitempty"`
	Location    string   `json:"location,omitempty"`
	Description string   `json:"description"`
	Image       string   `json:"image,omitempty"`
	Reviews     []string `json:"reviews,omitempty"`
}

// MatchesQuery reports whether any keyword occurs in the query as a substring.
func (e Entry) MatchesQuery(query string) bool {
	for _, keyword := range e.Keywords {
		if strings.Contains(query, keyword) {
			return true
		}
	}
	return false
}

type RescueChicken struct {
	ID          int    `json:"id"`
	DefaultName string `json:"default_name"`
	Backstory   string `json:"backstory"`
	Center      string `json:"center"`
}

type Table struct {
	breeds      []Entry
	restaurants []Entry
	shelters    []Entry
	rescues     []RescueChicken
	byName      map[string]Entry
}

func newTable(breeds, restaurants, shelters []Entry, rescues []RescueChicken) *Table {
	t := &Table{
		breeds:      breeds,
		restaurants: restaurants,
		shelters:    shelters,
		rescues:     rescues,
		byName:      make(map[string]Entry),
	}
	for _, group := range [][]Entry{breeds, restaurants, shelters} {
		for _, e := range group {
			t.byName[e.Name] = e
		}
	}
	return t
}

// Breeds, Restaurants and Shelters return copies in table order; callers rely on that order
// for first-match selection.
func (t *Table) Breeds() []Entry      { return append([]Entry(nil), t.breeds...) }
func (t *Table) Restaurants() []Entry { return append([]Entry(nil), t.restaurants...) }
func (t *Table) Shelters() []Entry    { return append([]Entry(nil), t.shelters...) }

func (t *Table) RescueChickens() []RescueChicken {
	return append([]RescueChicken(nil), t.rescues...)
}

func (t *Table) ByKind(kind Kind) []Entry {
	switch kind {
	case KindBreed:
		return t.Breeds()
	case KindRestaurant:
		return t.Restaurants()
	case KindShelter:
		return t.Shelters()
	}
	return nil
}

func (t *Table) Lookup(name string) (Entry, bool) {
	e, ok := t.byName[name]
	return e, ok
}

func (t *Table) RescueChicken(id int) (RescueChicken, bool) {
	for _, rc := range t.rescues {
		if rc.ID == id {
			return rc, true
		}
	}
	return RescueChicken{}, false
}

var rescueKeywords = []string{"rescue", "adopt", "adoption", "save", "shelter", "sanctuary"}

// Default is the table shipped with the service.
var Default = newTable(
	[]Entry{
		{Kind: KindBreed, Name: "Rhode Island Red", Origin: "USA", Lat: 41.5801, Lng: -71.4774,
			Keywords:    []string{"eggs", "brown eggs", "beginner", "hardy", "dual purpose"},
			Description: "Popular American breed known for brown eggs",
			Image:       "https://upload.wikimedia.org/wikipedia/commons/thumb/2/28/Rhode_Island_Red_rooster.jpg/280px-Rhode_Island_Red_rooster.jpg"},
		{Kind: KindBreed, Name: "Silkie", Origin: "China", Lat: 35.8617, Lng: 104.1954,
			Keywords:    []string{"fluffy", "ornamental", "pet", "docile", "black skin", "unique"},
			Description: "Fluffy feathered Chinese breed with black skin",
			Image:       "https://upload.wikimedia.org/wikipedia/commons/thumb/e/e2/Silky_bantam.jpg/280px-Silky_bantam.jpg"},
		{Kind: KindBreed, Name: "Leghorn", Origin: "Italy", Lat: 43.5486, Lng: 10.3106,
			Keywords:    []string{"eggs", "white eggs", "layers", "productive"},
			Description: "White Italian breed, excellent egg layers",
			Image:       "https://upload.wikimedia.org/wikipedia/commons/thumb/0/0c/White_Leghorn_rooster.jpg/280px-White_Leghorn_rooster.jpg"},
		{Kind: KindBreed, Name: "Sussex", Origin: "England", Lat: 50.9097, Lng: -0.1207,
			Keywords:    []string{"dual purpose", "meat", "eggs", "friendly"},
			Description: "Traditional English breed, dual-purpose",
			Image:       "https://upload.wikimedia.org/wikipedia/commons/thumb/5/5f/Light_sussex_hen.jpg/280px-Light_sussex_hen.jpg"},
		{Kind: KindBreed, Name: "Brahma", Origin: "India", Lat: 20.5937, Lng: 78.9629,
			Keywords:    []string{"large", "meat", "gentle", "feathered legs", "giant"},
			Description: "Large Indian breed with feathered legs",
			Image:       "https://upload.wikimedia.org/wikipedia/commons/thumb/8/8b/Brahma_rooster_by_Venky_S..jpg/280px-Brahma_rooster_by_Venky_S..jpg"},
		{Kind: KindBreed, Name: "Orpington", Origin: "England", Lat: 51.3716, Lng: 0.0989,
			Keywords:    []string{"large", "friendly", "docile", "pet", "buff"},
			Description: "Large, friendly English breed",
			Image:       "https://upload.wikimedia.org/wikipedia/commons/thumb/b/b1/Buff_Orpington_hen_and_chicken.jpg/280px-Buff_Orpington_hen_and_chicken.jpg"},
		{Kind: KindBreed, Name: "Marans", Origin: "France", Lat: 45.9667, Lng: -1.0000,
			Keywords:    []string{"dark eggs", "chocolate eggs", "brown eggs"},
			Description: "French breed laying dark brown eggs",
			Image:       "https://upload.wikimedia.org/wikipedia/commons/thumb/9/95/Marans_rooster.jpg/280px-Marans_rooster.jpg"},
		{Kind: KindBreed, Name: "Plymouth Rock", Origin: "USA", Lat: 41.9584, Lng: -70.6673,
			Keywords:    []string{"dual purpose", "hardy", "friendly", "barred"},
			Description: "American breed with barred plumage",
			Image:       "https://upload.wikimedia.org/wikipedia/commons/thumb/2/2b/Plymouth_Rock_rooster.jpg/280px-Plymouth_Rock_rooster.jpg"},
		{Kind: KindBreed, Name: "Ayam Cemani", Origin: "Indonesia", Lat: -0.7893, Lng: 113.9213,
			Keywords:    []string{"rare", "black", "exotic", "ornamental", "unique"},
			Description: "Rare black Indonesian chicken",
			Image:       "https://upload.wikimedia.org/wikipedia/commons/thumb/5/5e/Ayam_Cemani_Rooster.jpg/280px-Ayam_Cemani_Rooster.jpg"},
		{Kind: KindBreed, Name: "Polish", Origin: "Poland", Lat: 51.9194, Lng: 19.1451,
			Keywords:    []string{"ornamental", "crested", "unique", "show"},
			Description: "Crested breed with distinctive head feathers",
			Image:       "https://upload.wikimedia.org/wikipedia/commons/thumb/9/91/White_Crested_Black_Polish_Bantam.jpg/280px-White_Crested_Black_Polish_Bantam.jpg"},
		{Kind: KindBreed, Name: "Wyandotte", Origin: "USA", Lat: 42.8864, Lng: -78.8784,
			Keywords:    []string{"cold hardy", "dual purpose", "laced", "winter"},
			Description: "American breed with laced plumage patterns",
			Image:       "https://upload.wikimedia.org/wikipedia/commons/thumb/f/f0/Silver_laced_wyandotte_hen.jpg/280px-Silver_laced_wyandotte_hen.jpg"},
		{Kind: KindBreed, Name: "Australorp", Origin: "Australia", Lat: -25.2744, Lng: 133.7751,
			Keywords:    []string{"eggs", "layers", "record", "black", "productive"},
			Description: "Australian breed, world egg-laying record holder",
			Image:       "https://upload.wikimedia.org/wikipedia/commons/thumb/6/6e/Australorp_Rooster.jpg/280px-Australorp_Rooster.jpg"},
		{Kind: KindBreed, Name: "Japanese Bantam", Origin: "Japan", Lat: 36.2048, Lng: 138.2529,
			Keywords:    []string{"small", "bantam", "ornamental", "pet"},
			Description: "Small ornamental Japanese breed",
			Image:       "https://upload.wikimedia.org/wikipedia/commons/thumb/d/d4/Japanese_Bantam_rooster.jpg/280px-Japanese_Bantam_rooster.jpg"},
	},
	[]Entry{
		{Kind: KindRestaurant, Name: "Roscoe's Chicken & Waffles", Location: "Los Angeles, USA", Lat: 34.0522, Lng: -118.2437,
			Keywords:    []string{"waffle", "soul food", "comfort"},
			Description: "Famous soul food restaurant",
			Reviews:     []string{`"Perfect combo of sweet and savory!" - Marcus J.`, `"LA institution! Must try!" - Tina G.`}},
		{Kind: KindRestaurant, Name: "KFC HQ", Location: "Louisville, USA", Lat: 38.2527, Lng: -85.7585,
			Keywords:    []string{"fried", "original", "classic", "crispy"},
			Description: "Kentucky Fried Chicken headquarters",
			Reviews:     []string{`"Best fried chicken ever!" - John D.`, `"Original recipe is unbeatable!" - Sarah M.`}},
		{Kind: KindRestaurant, Name: "Nando's HQ", Location: "Johannesburg, South Africa", Lat: -26.2041, Lng: 28.0473,
			Keywords:    []string{"peri-peri", "spicy", "grilled", "flame"},
			Description: "Famous Peri-Peri chicken chain",
			Reviews:     []string{`"That Peri-Peri sauce is addictive!" - Mike T.`, `"Perfect spice level!" - Lisa K.`}},
		{Kind: KindRestaurant, Name: "Chick-fil-A HQ", Location: "Atlanta, USA", Lat: 33.7490, Lng: -84.3880,
			Keywords:    []string{"sandwich", "american", "fast food"},
			Description: "Popular American chicken sandwich chain",
			Reviews:     []string{`"Best chicken sandwich hands down!" - Tom R.`, `"Great service and quality!" - Emily W.`}},
		{Kind: KindRestaurant, Name: "Popeyes HQ", Location: "Miami, USA", Lat: 25.7617, Lng: -80.1918,
			Keywords:    []string{"spicy", "louisiana", "cajun", "southern"},
			Description: "Louisiana-style fried chicken",
			Reviews:     []string{`"Spicy chicken is amazing!" - David L.`, `"Love that Louisiana flavor!" - Amy P.`}},
		{Kind: KindRestaurant, Name: "Jollibee HQ", Location: "Manila, Philippines", Lat: 14.5995, Lng: 120.9842,
			Keywords:    []string{"chickenjoy", "filipino", "crispy"},
			Description: "Filipino fast-food chain with Chickenjoy",
			Reviews:     []string{`"Chickenjoy lives up to its name!" - Carlos M.`, `"Crispy and juicy perfection!" - Maria S.`}},
		{Kind: KindRestaurant, Name: "Bonchon HQ", Location: "Seoul, South Korea", Lat: 37.5665, Lng: 126.9780,
			Keywords:    []string{"korean", "crispy", "soy garlic", "asian"},
			Description: "Korean fried chicken chain",
			Reviews:     []string{`"Super crispy and flavorful!" - Kim J.`, `"Best Korean fried chicken!" - Park H.`}},
		{Kind: KindRestaurant, Name: "Church's Chicken HQ", Location: "Atlanta, USA", Lat: 33.7537, Lng: -84.3863,
			Keywords:    []string{"southern", "biscuit", "fried"},
			Description: "Southern fried chicken chain",
			Reviews:     []string{`"That Southern flavor is real!" - Robert H.`, `"Honey butter biscuits!" - Jennifer L.`}},
		{Kind: KindRestaurant, Name: "Kyochon", Location: "Seoul, South Korea", Lat: 37.5172, Lng: 127.0473,
			Keywords:    []string{"korean", "premium", "asian"},
			Description: "Premium Korean fried chicken",
			Reviews:     []string{`"Premium quality worth it!" - Lee S.`, `"Soy garlic is heavenly!" - Choi M.`}},
		{Kind: KindRestaurant, Name: "Raising Cane's HQ", Location: "Baton Rouge, USA", Lat: 30.4515, Lng: -91.1871,
			Keywords:    []string{"fingers", "tenders", "sauce"},
			Description: "Chicken finger specialists",
			Reviews:     []string{`"Simple menu, perfect execution!" - Brian K.`, `"That Cane's sauce though!" - Ashley R.`}},
		{Kind: KindRestaurant, Name: "Nando's UK", Location: "London, UK", Lat: 51.5074, Lng: -0.1278,
			Keywords:    []string{"london", "peri-peri"},
			Description: "Peri-Peri chicken in the UK",
			Reviews:     []string{`"Love the flame-grilled taste!" - James B.`, `"Great sides too!" - Sophie C.`}},
		{Kind: KindRestaurant, Name: "Texas Chicken HQ", Location: "Texas, USA", Lat: 31.9686, Lng: -99.9018,
			Keywords:    []string{"texas", "portions"},
			Description: "Fried chicken chain",
			Reviews:     []string{`"Big Texas portions!" - Steve W.`, `"Good value for money!" - Karen D.`}},
	},
	[]Entry{
		{Kind: KindShelter, Name: "San Francisco Animal Shelter", Lat: 37.7749, Lng: -122.4194, Keywords: rescueKeywords,
			Description: "Rescue chickens from various situations"},
		{Kind: KindShelter, Name: "NYC Farm Sanctuary", Lat: 40.7128, Lng: -74.0060, Keywords: rescueKeywords,
			Description: "Providing shelter for rescued chickens"},
		{Kind: KindShelter, Name: "Iowa Chicken Rescue", Lat: 41.8780, Lng: -93.0977, Keywords: rescueKeywords,
			Description: "Dedicated to chicken welfare and adoption"},
		{Kind: KindShelter, Name: "Texas Animal Haven", Lat: 29.7604, Lng: -95.3698, Keywords: rescueKeywords,
			Description: "Safe haven for rescued birds"},
		{Kind: KindShelter, Name: "LA Bird Rescue Center", Lat: 34.0522, Lng: -118.2437, Keywords: rescueKeywords,
			Description: "Bird rehabilitation and adoption center"},
		{Kind: KindShelter, Name: "Miami Animal Adoption Center", Lat: 25.7617, Lng: -80.1918, Keywords: rescueKeywords,
			Description: "Find your perfect feathered friend"},
		{Kind: KindShelter, Name: "Chicago Sanctuary", Lat: 41.8781, Lng: -87.6298, Keywords: rescueKeywords,
			Description: "Peaceful home for rescued chickens"},
		{Kind: KindShelter, Name: "Seattle Farm Animal Rescue", Lat: 47.6062, Lng: -122.3321, Keywords: rescueKeywords,
			Description: "Compassionate care for farm animals"},
	},
	[]RescueChicken{
		{ID: 1, DefaultName: "Clucky", Center: "San Francisco Animal Shelter",
			Backstory: "Rescued from a building fire in San Francisco. This brave hen survived and is looking for a loving home."},
		{ID: 2, DefaultName: "Phoenix", Center: "NYC Farm Sanctuary",
			Backstory: "Found abandoned in a cardboard box during a thunderstorm in New York. Now fully recovered and ready for adoption."},
		{ID: 3, DefaultName: "Lucky", Center: "Iowa Chicken Rescue",
			Backstory: "Saved from a factory farm shutdown in Iowa. This gentle rooster loves human companionship."},
		{ID: 4, DefaultName: "Hope", Center: "Texas Animal Haven",
			Backstory: "Rescued from a flood in Houston. Despite her ordeal, she's the friendliest hen you'll ever meet."},
		{ID: 5, DefaultName: "Brave", Center: "LA Bird Rescue Center",
			Backstory: "Found injured on a highway in Los Angeles. After months of rehabilitation, she's ready for a forever home."},
		{ID: 6, DefaultName: "Sunny", Center: "Miami Animal Adoption Center",
			Backstory: "Rescued from a neglectful situation in Miami. This cheerful hen brings joy wherever she goes."},
		{ID: 7, DefaultName: "Hero", Center: "Chicago Sanctuary",
			Backstory: "Saved from an illegal cockfighting ring in Chicago. Now rehabilitated and seeking a peaceful life."},
		{ID: 8, DefaultName: "Grace", Center: "Seattle Farm Animal Rescue",
			Backstory: "Found malnourished in Seattle. After proper care, she's now healthy and looking for a loving family."},
	},
)
