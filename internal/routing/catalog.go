package routing

import (
	"log/slog"
	"sort"
)

// Catalog is an immutable snapshot of validated trips, indexed for routing.
// Once built it is never mutated; concurrent searches share it freely.
type Catalog struct {
	trips    map[string]*Trip
	ordered  []*Trip
	touching map[string][]*Trip

	legCount      int
	locationCount int
	rejected      int
}

// BuildCatalog validates the supplied trip records and indexes the survivors.
// A malformed record is logged and skipped; one bad trip never blocks the
// rest of the catalog.
func BuildCatalog(records []TripRecord, logger *slog.Logger) *Catalog {
	c := &Catalog{
		trips:    make(map[string]*Trip, len(records)),
		touching: make(map[string][]*Trip),
	}

	for _, record := range records {
		trip, reason := validateTripRecord(record)
		if trip == nil {
			c.rejected++
			if logger != nil {
				logger.Warn("skipping malformed trip record",
					slog.String("trip_id", record.ID),
					slog.String("reason", reason))
			}
			continue
		}
		if _, dup := c.trips[trip.ID]; dup {
			c.rejected++
			if logger != nil {
				logger.Warn("skipping malformed trip record",
					slog.String("trip_id", record.ID),
					slog.String("reason", "duplicate trip id"))
			}
			continue
		}

		c.trips[trip.ID] = trip
		c.ordered = append(c.ordered, trip)
	}

	// Trips are indexed in ID order so iteration is deterministic regardless
	// of the order the provider returned records in.
	sort.Slice(c.ordered, func(i, j int) bool { return c.ordered[i].ID < c.ordered[j].ID })

	locations := make(map[string]struct{})
	for _, trip := range c.ordered {
		n := len(trip.Stops)
		c.legCount += n * (n - 1) / 2

		seen := make(map[string]struct{}, n)
		for _, stop := range trip.Stops {
			locations[stop.LocationID] = struct{}{}
			if _, ok := seen[stop.LocationID]; ok {
				continue
			}
			seen[stop.LocationID] = struct{}{}
			c.touching[stop.LocationID] = append(c.touching[stop.LocationID], trip)
		}
	}
	c.locationCount = len(locations)

	return c
}

func validateTripRecord(record TripRecord) (*Trip, string) {
	if record.ID == "" {
		return nil, "empty trip id"
	}
	if len(record.Stops) < 2 {
		return nil, "fewer than 2 stops"
	}

	stops := make([]Stop, len(record.Stops))
	for i, sr := range record.Stops {
		if sr.Seq != i {
			return nil, "non-contiguous stop sequence"
		}
		if sr.LocationID == "" {
			return nil, "stop with empty location id"
		}
		if !sr.Arrival.Valid() || !sr.Departure.Valid() {
			return nil, "stop time outside the day"
		}
		if sr.Departure < sr.Arrival {
			return nil, "departure earlier than arrival at a stop"
		}
		stops[i] = Stop{
			Seq:        sr.Seq,
			LocationID: sr.LocationID,
			Arrival:    sr.Arrival,
			Departure:  sr.Departure,
		}
	}

	return &Trip{
		ID:     record.ID,
		Number: record.Number,
		Name:   record.Name,
		Stops:  stops,
	}, ""
}

// StopsOfTrip returns the ordered stops of the trip, or nil when the trip is
// not in the catalog.
func (c *Catalog) StopsOfTrip(tripID string) []Stop {
	trip, ok := c.trips[tripID]
	if !ok {
		return nil
	}
	return trip.Stops
}

// Trip returns the catalog trip with the given ID, or nil.
func (c *Catalog) Trip(tripID string) *Trip {
	return c.trips[tripID]
}

// TripsTouching returns every trip with at least one stop at the location, in
// trip-ID order.
func (c *Catalog) TripsTouching(locationID string) []*Trip {
	return c.touching[locationID]
}

// AllTrips returns every trip in the catalog in trip-ID order.
func (c *Catalog) AllTrips() []*Trip {
	return c.ordered
}

// TripCount is the number of trips that survived validation.
func (c *Catalog) TripCount() int {
	return len(c.ordered)
}

// RejectedCount is the number of records dropped during validation.
func (c *Catalog) RejectedCount() int {
	return c.rejected
}

// LegCount is the total number of derivable trip legs across the catalog.
func (c *Catalog) LegCount() int {
	return c.legCount
}

// LocationCount is the number of distinct locations touched by catalog trips.
func (c *Catalog) LocationCount() int {
	return c.locationCount
}
