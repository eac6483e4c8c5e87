package routing

import (
	"fmt"
	"strconv"
	"strings"
)

// minutesPerDay is the size of the time-of-day wheel; schedule arithmetic
// wraps around it at most once per leg or transfer.
const minutesPerDay = 24 * 60

// TimeOfDay is a clock time expressed as minutes past midnight.
type TimeOfDay int

// ParseTimeOfDay parses "HH:MM" or "HH:MM:SS" clock strings. Seconds are
// truncated; GTFS-style hour values of 24 and above wrap onto the next day.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 {
		return 0, fmt.Errorf("invalid hour in time of day %q", s)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid minute in time of day %q", s)
	}

	return TimeOfDay((hours*60 + minutes) % minutesPerDay), nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Valid reports whether t falls inside a single day.
func (t TimeOfDay) Valid() bool {
	return t >= 0 && t < minutesPerDay
}

// MinutesUntil returns the number of minutes from t forward to u, treating u
// as next-day when it reads earlier on the clock than t.
func (t TimeOfDay) MinutesUntil(u TimeOfDay) int {
	d := int(u) - int(t)
	if d < 0 {
		d += minutesPerDay
	}
	return d
}

// Location is a place a trip can stop at. The routing core treats the ID as
// an opaque key; name and coordinates are carried for presentation only.
type Location struct {
	ID   string
	Name string
	Lat  float64
	Lon  float64
}

// StopRecord is one stop of a raw trip record as supplied by a data provider.
type StopRecord struct {
	Seq        int
	LocationID string
	Arrival    TimeOfDay
	Departure  TimeOfDay
}

// TripRecord is a raw scheduled trip as supplied by a data provider, prior to
// catalog validation.
type TripRecord struct {
	ID     string
	Number string
	Name   string
	Stops  []StopRecord
}

// Stop is a validated stop inside a catalog trip.
type Stop struct {
	Seq        int
	LocationID string
	Arrival    TimeOfDay
	Departure  TimeOfDay
}

// Trip is a validated scheduled trip held by a catalog. Its stop slice is
// owned by the catalog and must not be mutated after construction.
type Trip struct {
	ID     string
	Number string
	Name   string
	Stops  []Stop
}

// TripLeg is a usable travel segment within a single trip: board at stop
// index Board, alight at stop index Alight, with Board < Alight.
type TripLeg struct {
	Trip   *Trip
	Board  int
	Alight int
}

// BoardStop returns the stop the leg boards at.
func (l TripLeg) BoardStop() Stop {
	return l.Trip.Stops[l.Board]
}

// AlightStop returns the stop the leg alights at.
func (l TripLeg) AlightStop() Stop {
	return l.Trip.Stops[l.Alight]
}

// BoardTime is the departure time at the board stop.
func (l TripLeg) BoardTime() TimeOfDay {
	return l.Trip.Stops[l.Board].Departure
}

// AlightTime is the arrival time at the alight stop.
func (l TripLeg) AlightTime() TimeOfDay {
	return l.Trip.Stops[l.Alight].Arrival
}

// Minutes is the riding time of the leg, treating an alight time that reads
// earlier than the board time as crossing midnight once.
func (l TripLeg) Minutes() int {
	return l.BoardTime().MinutesUntil(l.AlightTime())
}

func (l TripLeg) key() string {
	return fmt.Sprintf("%s:%d-%d", l.Trip.ID, l.Board, l.Alight)
}

// RouteOption is one complete itinerary from an origin to a destination: one
// leg for a direct trip, two or more for itineraries with transfers.
type RouteOption struct {
	Legs []TripLeg
	// WaitMinutes[k] is the layover between leg k and leg k+1; its length is
	// always len(Legs)-1.
	WaitMinutes  []int
	TotalMinutes int
}

// Transfers is the number of trip changes in the itinerary.
func (o RouteOption) Transfers() int {
	return len(o.Legs) - 1
}

// Departure is the board time of the first leg.
func (o RouteOption) Departure() TimeOfDay {
	return o.Legs[0].BoardTime()
}

// Arrival is the alight time of the final leg.
func (o RouteOption) Arrival() TimeOfDay {
	return o.Legs[len(o.Legs)-1].AlightTime()
}

// key identifies the itinerary by its exact leg sequence, for deduplication
// and as the final ordering tie-break.
func (o RouteOption) key() string {
	parts := make([]string, len(o.Legs))
	for i, leg := range o.Legs {
		parts[i] = leg.key()
	}
	return strings.Join(parts, "|")
}
