package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCatalogIndexesValidTrips(t *testing.T) {
	catalog := BuildCatalog([]TripRecord{
		tripRecord("t1", "1",
			stopAt(t, 0, "a", "08:00"),
			stopAt(t, 1, "b", "09:00"),
			stopAt(t, 2, "c", "10:00"),
		),
		tripRecord("t2", "2",
			stopAt(t, 0, "b", "12:00"),
			stopAt(t, 1, "c", "13:00"),
		),
	}, nil)

	assert.Equal(t, 2, catalog.TripCount())
	assert.Equal(t, 0, catalog.RejectedCount())
	assert.Equal(t, 3, catalog.LocationCount())
	// 3 legs from the three-stop trip, 1 from the two-stop trip.
	assert.Equal(t, 4, catalog.LegCount())

	stops := catalog.StopsOfTrip("t1")
	require.Len(t, stops, 3)
	assert.Equal(t, "a", stops[0].LocationID)

	touching := catalog.TripsTouching("c")
	require.Len(t, touching, 2)
	assert.Equal(t, "t1", touching[0].ID)
	assert.Equal(t, "t2", touching[1].ID)

	assert.Nil(t, catalog.StopsOfTrip("missing"))
	assert.Empty(t, catalog.TripsTouching("missing"))
}

func TestBuildCatalogRejectsMalformedRecords(t *testing.T) {
	records := []TripRecord{
		tripRecord("single-stop", "1", stopAt(t, 0, "a", "08:00")),
		tripRecord("bad-sequence", "2",
			stopAt(t, 0, "a", "08:00"),
			StopRecord{Seq: 2, LocationID: "b", Arrival: tod(t, "09:00"), Departure: tod(t, "09:00")},
		),
		tripRecord("departs-before-arriving", "3",
			stopAt(t, 0, "a", "08:00"),
			stopBetween(t, 1, "b", "09:00", "08:30"),
		),
		tripRecord("", "4",
			stopAt(t, 0, "a", "08:00"),
			stopAt(t, 1, "b", "09:00"),
		),
		tripRecord("ok", "5",
			stopAt(t, 0, "a", "08:00"),
			stopAt(t, 1, "b", "09:00"),
		),
	}

	catalog := BuildCatalog(records, nil)

	assert.Equal(t, 1, catalog.TripCount())
	assert.Equal(t, 4, catalog.RejectedCount())
	require.NotNil(t, catalog.Trip("ok"))
	assert.Nil(t, catalog.Trip("single-stop"))
	assert.Nil(t, catalog.Trip("bad-sequence"))
}

func TestBuildCatalogSkipsDuplicateTripIDs(t *testing.T) {
	catalog := BuildCatalog([]TripRecord{
		tripRecord("t1", "first",
			stopAt(t, 0, "a", "08:00"),
			stopAt(t, 1, "b", "09:00"),
		),
		tripRecord("t1", "second",
			stopAt(t, 0, "c", "10:00"),
			stopAt(t, 1, "d", "11:00"),
		),
	}, nil)

	require.Equal(t, 1, catalog.TripCount())
	assert.Equal(t, "first", catalog.Trip("t1").Number)
	assert.Empty(t, catalog.TripsTouching("c"))
}

func TestBuildCatalogDeterministicOrder(t *testing.T) {
	records := []TripRecord{
		tripRecord("zz", "1", stopAt(t, 0, "a", "08:00"), stopAt(t, 1, "b", "09:00")),
		tripRecord("aa", "2", stopAt(t, 0, "a", "10:00"), stopAt(t, 1, "b", "11:00")),
		tripRecord("mm", "3", stopAt(t, 0, "a", "12:00"), stopAt(t, 1, "b", "13:00")),
	}

	catalog := BuildCatalog(records, nil)

	trips := catalog.AllTrips()
	require.Len(t, trips, 3)
	assert.Equal(t, "aa", trips[0].ID)
	assert.Equal(t, "mm", trips[1].ID)
	assert.Equal(t, "zz", trips[2].ID)
}

func TestParseTimeOfDay(t *testing.T) {
	assert.Equal(t, TimeOfDay(8*60), tod(t, "08:00"))
	assert.Equal(t, TimeOfDay(23*60+59), tod(t, "23:59"))
	assert.Equal(t, TimeOfDay(30), tod(t, "00:30:15"))
	// GTFS-style next-day hour wraps.
	assert.Equal(t, TimeOfDay(60), tod(t, "25:00"))

	_, err := ParseTimeOfDay("not a time")
	assert.Error(t, err)
	_, err = ParseTimeOfDay("08:71")
	assert.Error(t, err)
}

func TestMinutesUntilWrapsMidnight(t *testing.T) {
	assert.Equal(t, 30, tod(t, "11:00").MinutesUntil(tod(t, "11:30")))
	assert.Equal(t, 0, tod(t, "11:00").MinutesUntil(tod(t, "11:00")))
	// 23:30 to 00:15 crosses midnight.
	assert.Equal(t, 45, tod(t, "23:30").MinutesUntil(tod(t, "00:15")))
}
