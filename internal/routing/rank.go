package routing

import (
	"sort"
)

// RatingFunc reports the quality rating of a trip, and whether one exists.
type RatingFunc func(tripID string) (float64, bool)

// Rank deduplicates the candidate itineraries, orders them, and keeps the
// top limit. Nothing is filtered on merit: a longer itinerary stays in the
// set and simply ranks lower.
//
// The order is total: shorter total duration first, then earlier departure,
// then higher first-leg trip rating (unrated sorts after any rated), then
// fewer legs, then the canonical leg-sequence key. The final criterion makes
// the result independent of the order candidates were generated in.
func Rank(candidates []RouteOption, rating RatingFunc, limit int) []RouteOption {
	if rating == nil {
		rating = func(string) (float64, bool) { return 0, false }
	}

	seen := make(map[string]struct{}, len(candidates))
	type ranked struct {
		option RouteOption
		key    string
		rating float64
		rated  bool
	}
	entries := make([]ranked, 0, len(candidates))

	for _, option := range candidates {
		key := option.key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		r, ok := rating(option.Legs[0].Trip.ID)
		entries = append(entries, ranked{option: option, key: key, rating: r, rated: ok})
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.option.TotalMinutes != b.option.TotalMinutes {
			return a.option.TotalMinutes < b.option.TotalMinutes
		}
		if a.option.Departure() != b.option.Departure() {
			return a.option.Departure() < b.option.Departure()
		}
		if a.rated != b.rated {
			return a.rated
		}
		if a.rated && a.rating != b.rating {
			return a.rating > b.rating
		}
		if len(a.option.Legs) != len(b.option.Legs) {
			return len(a.option.Legs) < len(b.option.Legs)
		}
		return a.key < b.key
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	result := make([]RouteOption, len(entries))
	for i, entry := range entries {
		result[i] = entry.option
	}
	return result
}
