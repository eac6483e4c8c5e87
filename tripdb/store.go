package tripdb

import (
	"context"
	"database/sql"
	"fmt"

	"maarga.arasubus.org/internal/routing"
)

// TripStop is one scheduled stop of a stored trip. Times are minutes past
// midnight.
type TripStop struct {
	Seq        int
	LocationID string
	Arrival    int
	Departure  int
}

// Trip is a stored scheduled trip. Rating is NULL for trips nobody has rated
// yet.
type Trip struct {
	ID     string
	Number string
	Name   string
	Rating sql.NullFloat64
	Stops  []TripStop
}

// ReplaceAll atomically replaces the entire schedule dataset. Searches keep
// running against the engine's previous catalog snapshot until the caller
// rebuilds it from the new rows.
func (c *Client) ReplaceAll(ctx context.Context, locations []routing.Location, trips []Trip) error {
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}

	for _, stmt := range []string{"DELETE FROM trip_stops;", "DELETE FROM trips;", "DELETE FROM locations;"} {
		if _, err := tx.Exec(stmt); err != nil {
			tx.Rollback() // nolint:errcheck
			return fmt.Errorf("error clearing tables: %w", err)
		}
	}

	locStmt, err := tx.Prepare(`INSERT INTO locations (id, name, lat, lon) VALUES (?, ?, ?, ?);`)
	if err != nil {
		tx.Rollback() // nolint:errcheck
		return fmt.Errorf("error preparing statement: %w", err)
	}
	defer locStmt.Close() // nolint:errcheck

	for _, loc := range locations {
		if _, err := locStmt.Exec(loc.ID, loc.Name, loc.Lat, loc.Lon); err != nil {
			tx.Rollback() // nolint:errcheck
			return fmt.Errorf("error inserting location %s: %w", loc.ID, err)
		}
	}

	tripStmt, err := tx.Prepare(`INSERT INTO trips (id, number, name, rating) VALUES (?, ?, ?, ?);`)
	if err != nil {
		tx.Rollback() // nolint:errcheck
		return fmt.Errorf("error preparing statement: %w", err)
	}
	defer tripStmt.Close() // nolint:errcheck

	stopStmt, err := tx.Prepare(`
		INSERT INTO trip_stops (trip_id, seq, location_id, arrival, departure)
		VALUES (?, ?, ?, ?, ?);
	`)
	if err != nil {
		tx.Rollback() // nolint:errcheck
		return fmt.Errorf("error preparing statement: %w", err)
	}
	defer stopStmt.Close() // nolint:errcheck

	for _, trip := range trips {
		if _, err := tripStmt.Exec(trip.ID, trip.Number, trip.Name, trip.Rating); err != nil {
			tx.Rollback() // nolint:errcheck
			return fmt.Errorf("error inserting trip %s: %w", trip.ID, err)
		}
		for _, stop := range trip.Stops {
			if _, err := stopStmt.Exec(trip.ID, stop.Seq, stop.LocationID, stop.Arrival, stop.Departure); err != nil {
				tx.Rollback() // nolint:errcheck
				return fmt.Errorf("error inserting stop %d of trip %s: %w", stop.Seq, trip.ID, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}

	return c.reloadRatings(ctx)
}

// TripRecords returns every stored trip as a raw routing record, stop order
// guaranteed. It implements routing.TripDataProvider; catalog validation is
// the engine's job, so malformed rows pass through untouched.
func (c *Client) TripRecords(ctx context.Context) ([]routing.TripRecord, error) {
	rows, err := c.DB.QueryContext(ctx, `
		SELECT t.id, t.number, t.name, s.seq, s.location_id, s.arrival, s.departure
		FROM trips t
		JOIN trip_stops s ON s.trip_id = t.id
		ORDER BY t.id, s.seq;
	`)
	if err != nil {
		return nil, fmt.Errorf("error querying trip records: %w", err)
	}
	defer rows.Close() // nolint:errcheck

	var records []routing.TripRecord
	var current *routing.TripRecord

	for rows.Next() {
		var tripID, number, name, locationID string
		var seq, arrival, departure int
		if err := rows.Scan(&tripID, &number, &name, &seq, &locationID, &arrival, &departure); err != nil {
			return nil, fmt.Errorf("error scanning trip record: %w", err)
		}

		if current == nil || current.ID != tripID {
			records = append(records, routing.TripRecord{ID: tripID, Number: number, Name: name})
			current = &records[len(records)-1]
		}
		current.Stops = append(current.Stops, routing.StopRecord{
			Seq:        seq,
			LocationID: locationID,
			Arrival:    routing.TimeOfDay(arrival),
			Departure:  routing.TimeOfDay(departure),
		})
	}

	return records, rows.Err()
}

// Location resolves a location ID. It implements routing.LocationDirectory.
func (c *Client) Location(ctx context.Context, id string) (routing.Location, bool, error) {
	var loc routing.Location
	err := c.DB.QueryRowContext(ctx,
		`SELECT id, name, lat, lon FROM locations WHERE id = ?;`, id,
	).Scan(&loc.ID, &loc.Name, &loc.Lat, &loc.Lon)
	if err == sql.ErrNoRows {
		return routing.Location{}, false, nil
	}
	if err != nil {
		return routing.Location{}, false, fmt.Errorf("error querying location %s: %w", id, err)
	}
	return loc, true, nil
}

// Locations returns every known location in ID order.
func (c *Client) Locations(ctx context.Context) ([]routing.Location, error) {
	rows, err := c.DB.QueryContext(ctx, `SELECT id, name, lat, lon FROM locations ORDER BY id;`)
	if err != nil {
		return nil, fmt.Errorf("error querying locations: %w", err)
	}
	defer rows.Close() // nolint:errcheck

	var locations []routing.Location
	for rows.Next() {
		var loc routing.Location
		if err := rows.Scan(&loc.ID, &loc.Name, &loc.Lat, &loc.Lon); err != nil {
			return nil, fmt.Errorf("error scanning location: %w", err)
		}
		locations = append(locations, loc)
	}
	return locations, rows.Err()
}

// SetTripRating records a quality rating for a trip, overwriting any
// previous one.
func (c *Client) SetTripRating(ctx context.Context, tripID string, rating float64) error {
	result, err := c.DB.ExecContext(ctx,
		`UPDATE trips SET rating = ? WHERE id = ?;`, rating, tripID)
	if err != nil {
		return fmt.Errorf("error updating rating for trip %s: %w", tripID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("no such trip %s", tripID)
	}

	c.mu.Lock()
	c.ratings[tripID] = rating
	c.mu.Unlock()
	return nil
}

// TripRating implements routing.RatingProvider from the in-memory rating
// cache, so ranking never touches the database mid-search.
func (c *Client) TripRating(tripID string) (float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rating, ok := c.ratings[tripID]
	return rating, ok
}

func (c *Client) reloadRatings(ctx context.Context) error {
	rows, err := c.DB.QueryContext(ctx, `SELECT id, rating FROM trips WHERE rating IS NOT NULL;`)
	if err != nil {
		return fmt.Errorf("error querying ratings: %w", err)
	}
	defer rows.Close() // nolint:errcheck

	ratings := make(map[string]float64)
	for rows.Next() {
		var tripID string
		var rating float64
		if err := rows.Scan(&tripID, &rating); err != nil {
			return fmt.Errorf("error scanning rating: %w", err)
		}
		ratings[tripID] = rating
	}
	if err := rows.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	c.ratings = ratings
	c.mu.Unlock()
	return nil
}
