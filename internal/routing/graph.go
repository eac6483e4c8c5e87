package routing

// ConnectionGraph is the transfer search space derived from a catalog: a
// directed edge exists from location A to location B for every trip leg that
// boards at A and alights at B. A one-hop path through this graph is exactly
// a direct match; longer paths are transfer itineraries.
type ConnectionGraph struct {
	edges map[string][]TripLeg
}

// BuildConnectionGraph materializes every derivable leg of every catalog
// trip as a graph edge. Edge count is O(stops²) per trip, which is fine for
// realistic trips with tens of stops.
func BuildConnectionGraph(c *Catalog) *ConnectionGraph {
	g := &ConnectionGraph{edges: make(map[string][]TripLeg)}

	// Trips arrive in ID order and stop pairs are generated in sequence
	// order, so edge lists are deterministic without a separate sort.
	for _, trip := range c.AllTrips() {
		for i := range trip.Stops {
			for j := i + 1; j < len(trip.Stops); j++ {
				board := trip.Stops[i].LocationID
				g.edges[board] = append(g.edges[board], TripLeg{Trip: trip, Board: i, Alight: j})
			}
		}
	}

	return g
}

// EdgesFrom returns every leg boarding at the location.
func (g *ConnectionGraph) EdgesFrom(locationID string) []TripLeg {
	return g.edges[locationID]
}
