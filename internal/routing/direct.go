package routing

// DirectMatches enumerates every single-trip itinerary from origin to
// destination. A trip qualifies whenever the origin appears at some stop i
// and the destination at some stop j with i < j; this one span rule covers
// end-to-end trips, trips passing through both points, and trips continuing
// past the destination alike.
func DirectMatches(c *Catalog, originID, destinationID string) []RouteOption {
	var options []RouteOption

	for _, trip := range c.TripsTouching(originID) {
		leg, ok := bestSpan(trip, originID, destinationID)
		if !ok {
			continue
		}
		options = append(options, RouteOption{
			Legs:         []TripLeg{leg},
			WaitMinutes:  []int{},
			TotalMinutes: leg.Minutes(),
		})
	}

	return options
}

// bestSpan finds the origin/destination stop pair of the trip with the
// shortest riding time. Loop routes can visit a location more than once; the
// trip still contributes at most one leg, with earlier board and alight
// indices breaking exact-duration ties.
func bestSpan(trip *Trip, originID, destinationID string) (TripLeg, bool) {
	var best TripLeg
	bestMinutes := -1

	for i, boardStop := range trip.Stops {
		if boardStop.LocationID != originID {
			continue
		}
		for j := i + 1; j < len(trip.Stops); j++ {
			if trip.Stops[j].LocationID != destinationID {
				continue
			}
			leg := TripLeg{Trip: trip, Board: i, Alight: j}
			if m := leg.Minutes(); bestMinutes < 0 || m < bestMinutes {
				best = leg
				bestMinutes = m
			}
		}
	}

	return best, bestMinutes >= 0
}
