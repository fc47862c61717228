package responder

import (
	"testing"

	"github.com/elliotchance/pie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nuggetube-backend/internal/reference"
)

type fixedPicker struct{ idx int }

func (p fixedPicker) IntN(n int) int { return p.idx % n }

func shelterNames() []string {
	return pie.Map(reference.Default.Shelters(), func(e reference.Entry) string { return e.Name })
}

func TestRescueQueryPicksAShelter(t *testing.T) {
	names := shelterNames()
	require.Len(t, names, 8)

	for idx := 0; idx < len(names); idx++ {
		reply := New(nil, fixedPicker{idx: idx}).Respond("I want to adopt a rescued hen")

		assert.Equal(t, IntentRescue, reply.Intent)
		assert.Equal(t, OutcomeRandom, reply.Outcome)
		require.NotNil(t, reply.Location)
		assert.Equal(t, names[idx], reply.Location.Name)
		assert.Contains(t, reply.Text, names[idx])
	}

	reply := New(nil, nil).Respond("I want to adopt a rescued hen")
	require.NotNil(t, reply.Location)
	assert.Contains(t, names, reply.Location.Name)
}

func TestFriedChickenPicksFirstMatchingRestaurant(t *testing.T) {
	reply := New(nil, fixedPicker{}).Respond("where can I get fried chicken")

	assert.Equal(t, IntentFood, reply.Intent)
	assert.Equal(t, OutcomeMatched, reply.Outcome)
	require.NotNil(t, reply.Location)
	assert.Equal(t, Location{Lat: 38.2527, Lng: -85.7585, Name: "KFC HQ"}, *reply.Location)
	assert.Equal(t, "I would be delighted to recommend KFC HQ! I've marked it on the map for you. Please check it out!", reply.Text)
}

func TestNoMatchFallsBack(t *testing.T) {
	reply := New(nil, fixedPicker{}).Respond("tell me a joke")

	assert.Equal(t, Fallback, reply.Text)
	assert.Equal(t, IntentNone, reply.Intent)
	assert.Nil(t, reply.Location)
}

func TestGroupDefaults(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		intent   Intent
		outcome  Outcome
		location string
		text     string
	}{
		{
			name:     "food without restaurant keyword",
			query:    "I'm hungry, where should I eat?",
			intent:   IntentFood,
			outcome:  OutcomeDefault,
			location: "Roscoe's Chicken & Waffles",
			text:     "For that, I would suggest Roscoe's Chicken & Waffles! I've marked it on the map for you. I hope this helps!",
		},
		{
			name:     "breed without breed keyword",
			query:    "what chicken should I get",
			intent:   IntentBreed,
			outcome:  OutcomeDefault,
			location: "Rhode Island Red",
			text:     "For beginners, I would recommend Rhode Island Red! They're hardy and excellent egg layers. I've marked it on the map for you!",
		},
		{
			name:     "breed keyword match",
			query:    "I want to buy a fluffy pet",
			intent:   IntentBreed,
			outcome:  OutcomeMatched,
			location: "Silkie",
			text:     "I would highly recommend the Silkie breed! I've marked its origin on the map. Please click the marker to learn more!",
		},
		{
			name:     "spicy picks the first spicy restaurant",
			query:    "something spicy",
			intent:   IntentFood,
			outcome:  OutcomeMatched,
			location: "Nando's HQ",
		},
		{
			name:     "korean",
			query:    "korean chicken please",
			intent:   IntentFood,
			outcome:  OutcomeMatched,
			location: "Bonchon HQ",
		},
		{
			name:     "queries are lowercased",
			query:    "WHERE CAN I GET FRIED CHICKEN",
			intent:   IntentFood,
			outcome:  OutcomeMatched,
			location: "KFC HQ",
		},
		{
			name:     "rescue beats food",
			query:    "save a chicken from the fried food aisle",
			intent:   IntentRescue,
			outcome:  OutcomeRandom,
			location: "San Francisco Animal Shelter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := New(nil, fixedPicker{}).Respond(tt.query)

			assert.Equal(t, tt.intent, reply.Intent)
			assert.Equal(t, tt.outcome, reply.Outcome)
			require.NotNil(t, reply.Location)
			assert.Equal(t, tt.location, reply.Location.Name)
			if tt.text != "" {
				assert.Equal(t, tt.text, reply.Text)
			}
		})
	}
}

func TestRespondIsDeterministicOutsideRescue(t *testing.T) {
	r := New(nil, nil)
	for _, q := range []string{"where can I get fried chicken", "I need a hardy egg layer", "tell me a joke"} {
		assert.Equal(t, r.Respond(q), r.Respond(q), q)
	}
}
