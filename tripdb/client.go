// Package tripdb stores the trip schedule data the routing engine is built
// from. It is the concrete trip data provider, location directory, and
// rating provider backed by a SQLite database.
package tripdb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Client is the main entry point for the library
type Client struct {
	config Config
	DB     *sql.DB
	logger *slog.Logger

	mu      sync.RWMutex
	ratings map[string]float64
}

// NewClient opens (creating if necessary) the trip database.
func NewClient(config Config, logger *slog.Logger) (*Client, error) {
	db, err := initDB(config)
	if err != nil {
		return nil, fmt.Errorf("unable to create trip database: %w", err)
	}
	if config.verbose && logger != nil {
		logger.Info("trip database ready", slog.String("path", config.DBPath))
	}

	c := &Client{
		config:  config,
		DB:      db,
		logger:  logger,
		ratings: make(map[string]float64),
	}
	if err := c.reloadRatings(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return c, nil
}

func (c *Client) Close() error {
	return c.DB.Close()
}

func initDB(config Config) (*sql.DB, error) {
	db, err := sql.Open("sqlite", config.DBPath)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	_, err = db.Exec("PRAGMA foreign_keys = ON;")
	if err != nil {
		return nil, fmt.Errorf("error enabling foreign keys: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("error starting transaction: %w", err)
	}

	_, err = tx.Exec(`
		CREATE TABLE IF NOT EXISTS locations (
			id   TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			lat  REAL NOT NULL DEFAULT 0,
			lon  REAL NOT NULL DEFAULT 0
		);
		CREATE TABLE IF NOT EXISTS trips (
			id     TEXT PRIMARY KEY,
			number TEXT NOT NULL,
			name   TEXT NOT NULL,
			rating REAL
		);
		CREATE TABLE IF NOT EXISTS trip_stops (
			trip_id     TEXT    NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
			seq         INTEGER NOT NULL,
			location_id TEXT    NOT NULL REFERENCES locations(id),
			arrival     INTEGER NOT NULL,
			departure   INTEGER NOT NULL,
			PRIMARY KEY (trip_id, seq)
		);
		CREATE INDEX IF NOT EXISTS idx_trip_stops_location_id ON trip_stops(location_id);
	`)
	if err != nil {
		tx.Rollback() // nolint:errcheck
		return nil, fmt.Errorf("error creating tables: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("error committing transaction: %w", err)
	}

	return db, nil
}
