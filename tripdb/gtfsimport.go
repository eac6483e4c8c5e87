package tripdb

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/jamespfennell/gtfs"

	"maarga.arasubus.org/internal/logging"
	"maarga.arasubus.org/internal/routing"
)

// ImportGTFS loads a static GTFS zip (local path or URL) and replaces the
// stored schedule with its trips. GTFS stops become locations and each
// scheduled trip's stop times become trip stops; frequency-based or
// stop-less trips are skipped.
func (c *Client) ImportGTFS(ctx context.Context, source string) error {
	isLocalFile := !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://")

	b, err := rawGTFSData(ctx, source, isLocalFile)
	if err != nil {
		return err
	}

	staticData, err := gtfs.ParseStatic(b, gtfs.ParseStaticOptions{})
	if err != nil {
		return fmt.Errorf("error parsing GTFS data: %w", err)
	}

	locations, trips := convertGTFS(staticData)
	if err := c.ReplaceAll(ctx, locations, trips); err != nil {
		return err
	}

	logging.LogOperation(c.logger, "gtfs_data_imported",
		slog.String("source", source),
		slog.Int("locations", len(locations)),
		slog.Int("trips", len(trips)))
	return nil
}

func rawGTFSData(ctx context.Context, source string, isLocalFile bool) ([]byte, error) {
	if isLocalFile {
		b, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("error reading local GTFS file: %w", err)
		}
		return b, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error downloading GTFS data: %w", err)
	}
	defer resp.Body.Close() // nolint

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading GTFS data: %w", err)
	}
	return b, nil
}

func convertGTFS(staticData *gtfs.Static) ([]routing.Location, []Trip) {
	var locations []routing.Location
	for _, s := range staticData.Stops {
		loc := routing.Location{ID: s.Id, Name: s.Name}
		if s.Latitude != nil && s.Longitude != nil {
			loc.Lat = *s.Latitude
			loc.Lon = *s.Longitude
		}
		locations = append(locations, loc)
	}

	var trips []Trip
	for _, t := range staticData.Trips {
		if len(t.StopTimes) < 2 {
			continue
		}

		number := t.ShortName
		if number == "" && t.Route != nil {
			number = t.Route.ShortName
		}

		trip := Trip{
			ID:     t.ID,
			Number: number,
			Name:   t.Headsign,
			Stops:  make([]TripStop, 0, len(t.StopTimes)),
		}
		for i, st := range t.StopTimes {
			trip.Stops = append(trip.Stops, TripStop{
				Seq:        i,
				LocationID: st.Stop.Id,
				Arrival:    durationToMinutes(st.ArrivalTime),
				Departure:  durationToMinutes(st.DepartureTime),
			})
		}
		trips = append(trips, trip)
	}

	return locations, trips
}

// durationToMinutes collapses a GTFS time offset onto the time-of-day wheel;
// service past midnight (hour 24+) wraps onto the next day.
func durationToMinutes(d time.Duration) int {
	minutes := int(d / time.Minute)
	minutes %= 24 * 60
	if minutes < 0 {
		minutes += 24 * 60
	}
	return minutes
}
