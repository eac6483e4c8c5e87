package routing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// optionsFixture builds a deliberately unsorted candidate set with known
// durations, departures, and ratings.
func optionsFixture(t *testing.T) ([]RouteOption, RatingFunc) {
	t.Helper()

	catalog := BuildCatalog([]TripRecord{
		tripRecord("slow", "S", stopAt(t, 0, "a", "09:00"), stopAt(t, 1, "z", "17:00")),
		tripRecord("fast", "F", stopAt(t, 0, "a", "09:00"), stopAt(t, 1, "z", "14:00")),
		tripRecord("early", "E", stopAt(t, 0, "a", "06:00"), stopAt(t, 1, "z", "11:00")),
		tripRecord("rated", "R", stopAt(t, 0, "a", "09:00"), stopAt(t, 1, "z", "14:00")),
	}, nil)

	options := DirectMatches(catalog, "a", "z")
	require.Len(t, options, 4)

	ratings := mapRatings{"rated": 4.5}
	return options, ratings.TripRating
}

func TestRankOrdersByDurationThenDepartureThenRating(t *testing.T) {
	options, rating := optionsFixture(t)

	ranked := Rank(options, rating, 10)
	require.Len(t, ranked, 4)

	// early and fast/rated all take 5h; early departs first. rated beats
	// fast on rating. slow takes 8h and comes last.
	assert.Equal(t, "early", ranked[0].Legs[0].Trip.ID)
	assert.Equal(t, "rated", ranked[1].Legs[0].Trip.ID)
	assert.Equal(t, "fast", ranked[2].Legs[0].Trip.ID)
	assert.Equal(t, "slow", ranked[3].Legs[0].Trip.ID)
}

func TestRankIsDeterministicAcrossInputOrder(t *testing.T) {
	options, rating := optionsFixture(t)

	forward := Rank(options, rating, 10)

	reversed := make([]RouteOption, len(options))
	for i, option := range options {
		reversed[len(options)-1-i] = option
	}
	backward := Rank(reversed, rating, 10)

	require.Equal(t, len(forward), len(backward))
	for i := range forward {
		assert.Equal(t, forward[i].key(), backward[i].key())
	}

	// Ranking its own output changes nothing.
	again := Rank(forward, rating, 10)
	for i := range forward {
		assert.Equal(t, forward[i].key(), again[i].key())
	}
}

func TestRankDeduplicatesIdenticalItineraries(t *testing.T) {
	options, rating := optionsFixture(t)
	doubled := append(append([]RouteOption{}, options...), options...)

	ranked := Rank(doubled, rating, 10)
	assert.Len(t, ranked, 4)
}

func TestRankTruncatesToLimit(t *testing.T) {
	options, rating := optionsFixture(t)

	ranked := Rank(options, rating, 2)
	require.Len(t, ranked, 2)
	assert.Equal(t, "early", ranked[0].Legs[0].Trip.ID)
	assert.Equal(t, "rated", ranked[1].Legs[0].Trip.ID)
}

func TestRankPrefersFewerLegsAmongEqualItineraries(t *testing.T) {
	// One direct and one connecting itinerary with identical duration and
	// departure; the direct one must come first.
	catalog := BuildCatalog([]TripRecord{
		tripRecord("direct", "D", stopAt(t, 0, "a", "08:00"), stopAt(t, 1, "z", "12:00")),
		tripRecord("first-leg", "F1", stopAt(t, 0, "a", "08:00"), stopAt(t, 1, "m", "10:00")),
		tripRecord("second-leg", "F2", stopAt(t, 0, "m", "10:00"), stopAt(t, 1, "z", "12:00")),
	}, nil)

	direct := DirectMatches(catalog, "a", "z")
	require.Len(t, direct, 1)

	option := RouteOption{
		Legs: []TripLeg{
			{Trip: catalog.Trip("first-leg"), Board: 0, Alight: 1},
			{Trip: catalog.Trip("second-leg"), Board: 0, Alight: 1},
		},
		WaitMinutes:  []int{0},
		TotalMinutes: 4 * 60,
	}

	ranked := Rank(append(direct, option), nil, 10)
	require.Len(t, ranked, 2)
	assert.Equal(t, 1, len(ranked[0].Legs))
	assert.Equal(t, 2, len(ranked[1].Legs))
}

func TestRankShorterDirectBeatsLongerConnecting(t *testing.T) {
	catalog := BuildCatalog([]TripRecord{
		tripRecord("direct", "D", stopAt(t, 0, "a", "10:00"), stopAt(t, 1, "z", "13:00")),
		tripRecord("leg1", "1", stopAt(t, 0, "a", "08:00"), stopAt(t, 1, "m", "12:00")),
		tripRecord("leg2", "2", stopAt(t, 0, "m", "13:00"), stopAt(t, 1, "z", "16:00")),
	}, nil)

	direct := DirectMatches(catalog, "a", "z")
	graph := BuildConnectionGraph(catalog)
	connecting, _ := ConnectingRoutes(context.Background(), graph, "a", "z", 1, 1000)
	require.Len(t, connecting, 1)

	ranked := Rank(append(direct, connecting...), nil, 10)
	require.Len(t, ranked, 2)
	assert.Less(t, ranked[0].TotalMinutes, ranked[1].TotalMinutes)
	assert.Equal(t, "direct", ranked[0].Legs[0].Trip.ID)

	// The longer connecting option is ranked lower, not discarded.
	assert.Equal(t, 2, len(ranked[1].Legs))
}
