package routing

import (
	"context"
)

// pathNode is one immutable record in the BFS arena. A partial path is the
// chain of nodes from an arena index back to the root via parent links; an
// expansion appends a node instead of mutating shared state, so concurrent
// searches never interact.
type pathNode struct {
	parent     int // arena index of the previous node, -1 at the root
	leg        TripLeg
	locationID string
	depth      int // legs taken so far
	elapsed    int // minutes since the first leg's board time
	clock      TimeOfDay
}

// ConnectingRoutes finds itineraries from origin to destination that require
// at least one transfer, by breadth-first search over simple paths in the
// connection graph. Paths never revisit a location, never exceed
// maxTransfers+1 legs, and successive legs depart at or after the previous
// leg's arrival (a board time that reads earlier on the clock is taken as a
// next-day continuation).
//
// The search stops early when ctx is done or when budget expansions have been
// spent; either way the candidates collected so far are returned with
// truncated set to true.
func ConnectingRoutes(ctx context.Context, g *ConnectionGraph, originID, destinationID string, maxTransfers, budget int) (options []RouteOption, truncated bool) {
	maxLegs := maxTransfers + 1
	if maxLegs < 2 {
		// Zero transfers means single-leg itineraries only, which are the
		// direct matcher's job.
		return nil, false
	}

	arena := []pathNode{{parent: -1, locationID: originID, depth: 0}}
	frontier := []int{0}
	spent := 0

	for level := 0; level < maxLegs && len(frontier) > 0; level++ {
		if ctx.Err() != nil {
			return options, true
		}

		var next []int
		for _, idx := range frontier {
			node := arena[idx]
			for _, leg := range g.EdgesFrom(node.locationID) {
				if spent >= budget {
					return options, true
				}
				spent++

				alightLoc := leg.AlightStop().LocationID
				if pathVisits(arena, idx, alightLoc) {
					continue
				}

				wait := 0
				if node.depth > 0 {
					wait = node.clock.MinutesUntil(leg.BoardTime())
				}

				child := pathNode{
					parent:     idx,
					leg:        leg,
					locationID: alightLoc,
					depth:      node.depth + 1,
					elapsed:    node.elapsed + wait + leg.Minutes(),
					clock:      leg.AlightTime(),
				}
				arena = append(arena, child)
				childIdx := len(arena) - 1

				if alightLoc == destinationID {
					// Complete. Extending it further could only produce a
					// strictly longer itinerary to the same place.
					if child.depth >= 2 {
						options = append(options, assemblePath(arena, childIdx))
					}
					continue
				}
				next = append(next, childIdx)
			}
		}
		frontier = next
	}

	return options, false
}

// pathVisits reports whether the path ending at arena index idx already
// touches the location, including at its origin.
func pathVisits(arena []pathNode, idx int, locationID string) bool {
	for i := idx; i >= 0; i = arena[i].parent {
		if arena[i].locationID == locationID {
			return true
		}
	}
	return false
}

// assemblePath turns a completed arena chain into a RouteOption.
func assemblePath(arena []pathNode, idx int) RouteOption {
	depth := arena[idx].depth
	legs := make([]TripLeg, depth)
	for i := idx; arena[i].parent >= 0; i = arena[i].parent {
		legs[arena[i].depth-1] = arena[i].leg
	}

	waits := make([]int, depth-1)
	for k := 0; k < depth-1; k++ {
		waits[k] = legs[k].AlightTime().MinutesUntil(legs[k+1].BoardTime())
	}

	return RouteOption{
		Legs:         legs,
		WaitMinutes:  waits,
		TotalMinutes: arena[idx].elapsed,
	}
}
