package routing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// tod parses a clock string or fails the test.
func tod(t *testing.T, s string) TimeOfDay {
	t.Helper()
	v, err := ParseTimeOfDay(s)
	require.NoError(t, err)
	return v
}

// stopAt builds a stop record that arrives and departs at the same time.
func stopAt(t *testing.T, seq int, locationID, clock string) StopRecord {
	t.Helper()
	at := tod(t, clock)
	return StopRecord{Seq: seq, LocationID: locationID, Arrival: at, Departure: at}
}

// stopBetween builds a stop record with distinct arrival and departure times.
func stopBetween(t *testing.T, seq int, locationID, arrive, depart string) StopRecord {
	t.Helper()
	return StopRecord{
		Seq:        seq,
		LocationID: locationID,
		Arrival:    tod(t, arrive),
		Departure:  tod(t, depart),
	}
}

func tripRecord(id, number string, stops ...StopRecord) TripRecord {
	return TripRecord{ID: id, Number: number, Name: number, Stops: stops}
}

// mapDirectory resolves any location it was constructed with.
type mapDirectory map[string]Location

func directoryOf(ids ...string) mapDirectory {
	d := make(mapDirectory, len(ids))
	for _, id := range ids {
		d[id] = Location{ID: id, Name: id}
	}
	return d
}

func (d mapDirectory) Location(_ context.Context, id string) (Location, bool, error) {
	loc, ok := d[id]
	return loc, ok, nil
}

// mapRatings rates exactly the trips it was constructed with.
type mapRatings map[string]float64

func (r mapRatings) TripRating(tripID string) (float64, bool) {
	rating, ok := r[tripID]
	return rating, ok
}

// chennaiMaduraiRecords is the two-trip fixture used across engine tests:
// one morning trip Chennai→Trichy and one midday trip Trichy→Madurai.
func chennaiMaduraiRecords(t *testing.T) []TripRecord {
	t.Helper()
	return []TripRecord{
		tripRecord("trip-x", "100X",
			stopAt(t, 0, "chennai", "08:00"),
			stopAt(t, 1, "trichy", "11:00"),
		),
		tripRecord("trip-y", "200Y",
			stopAt(t, 0, "trichy", "11:30"),
			stopAt(t, 1, "madurai", "13:30"),
		),
	}
}
