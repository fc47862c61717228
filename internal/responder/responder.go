// Package responder is the scripted chicken-expert assistant. It matches a query against fixed
// keyword groups and answers from canned templates, pointing at a place from the reference
// table when it can.
package responder

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/elliotchance/pie/v2"

	"nuggetube-backend/internal/reference"
)

type Intent string

const (
	IntentRescue Intent = "rescue"
	IntentFood   Intent = "food"
	IntentBreed  Intent = "breed"
	IntentNone   Intent = "none"
)

type Outcome string

const (
	OutcomeMatched  Outcome = "matched"
	OutcomeDefault  Outcome = "default"
	OutcomeRandom   Outcome = "random"
	OutcomeFallback Outcome = "fallback"
)

const (
	Greeting = "Hello! I'm your friendly chicken expert! I can help you find chicken breeds to purchase, restaurants for specific dishes, or rescue chickens for adoption. How may I assist you today?"
	Fallback = "I would be happy to help you with finding chicken breeds or restaurant recommendations. What are you looking for today?"

	rescueTemplate       = "That's wonderful that you want to help! I recommend %s. They have rescue chickens looking for loving homes. I've marked it on the map for you!"
	foodMatchTemplate    = "I would be delighted to recommend %s! I've marked it on the map for you. Please check it out!"
	foodDefaultTemplate  = "For that, I would suggest %s! I've marked it on the map for you. I hope this helps!"
	breedMatchTemplate   = "I would highly recommend the %s breed! I've marked its origin on the map. Please click the marker to learn more!"
	breedDefaultTemplate = "For beginners, I would recommend %s! They're hardy and excellent egg layers. I've marked it on the map for you!"
)

type Location struct {
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Name string  `json:"name"`
}

func LocationOf(e reference.Entry) *Location {
	return &Location{Lat: e.Lat, Lng: e.Lng, Name: e.Name}
}

type Reply struct {
	Text     string    `json:"text"`
	Intent   Intent    `json:"intent"`
	Outcome  Outcome   `json:"outcome"`
	Location *Location `json:"location,omitempty"`
}

// Picker chooses an index in [0, n).
type Picker interface {
	IntN(n int) int
}

type globalPicker struct{}

func (globalPicker) IntN(n int) int { return rand.IntN(n) }

type group struct {
	intent          Intent
	triggers        []string
	entries         func(*reference.Table) []reference.Entry
	random          bool
	matchTemplate   string
	defaultTemplate string
}

// Groups are checked in this order; the first whose trigger occurs in the query wins.
var groups = []group{
	{
		intent:        IntentRescue,
		triggers:      []string{"rescue", "adopt", "adoption", "save", "shelter", "sanctuary"},
		entries:       (*reference.Table).Shelters,
		random:        true,
		matchTemplate: rescueTemplate,
	},
	{
		intent: IntentFood,
		triggers: []string{"eat", "restaurant", "food", "waffle", "fried", "spicy", "korean",
			"sandwich", "barbecue", "bbq", "grilled"},
		entries:         (*reference.Table).Restaurants,
		matchTemplate:   foodMatchTemplate,
		defaultTemplate: foodDefaultTemplate,
	},
	{
		intent: IntentBreed,
		triggers: []string{"breed", "buy", "purchase", "chicken", "egg", "pet", "backyard",
			"raise", "farm"},
		entries:         (*reference.Table).Breeds,
		matchTemplate:   breedMatchTemplate,
		defaultTemplate: breedDefaultTemplate,
	},
}

type Responder struct {
	table  *reference.Table
	picker Picker
}

func New(table *reference.Table, picker Picker) *Responder {
	if table == nil {
		table = reference.Default
	}
	if picker == nil {
		picker = globalPicker{}
	}
	return &Responder{table: table, picker: picker}
}

// Respond never fails: a query that matches no group gets the fallback text and no location.
func (r *Responder) Respond(query string) Reply {
	q := strings.ToLower(query)

	for _, g := range groups {
		if !containsAny(q, g.triggers) {
			continue
		}

		entries := g.entries(r.table)
		if len(entries) == 0 {
			break
		}

		if g.random {
			e := entries[r.picker.IntN(len(entries))]
			return r.reply(g.intent, OutcomeRandom, g.matchTemplate, e)
		}

		matches := pie.Filter(entries, func(e reference.Entry) bool {
			return e.MatchesQuery(q)
		})
		if len(matches) > 0 {
			return r.reply(g.intent, OutcomeMatched, g.matchTemplate, matches[0])
		}
		return r.reply(g.intent, OutcomeDefault, g.defaultTemplate, entries[0])
	}

	return Reply{Text: Fallback, Intent: IntentNone, Outcome: OutcomeFallback}
}

func (r *Responder) reply(intent Intent, outcome Outcome, template string, e reference.Entry) Reply {
	return Reply{
		Text:     fmt.Sprintf(template, e.Name),
		Intent:   intent,
		Outcome:  outcome,
		Location: LocationOf(e),
	}
}

func containsAny(q string, words []string) bool {
	return pie.FindFirstUsing(words, func(w string) bool {
		return strings.Contains(q, w)
	}) >= 0
}
