// Package app wires configuration, logging, storage, and the routing engine
// together for the HTTP handlers.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"maarga.arasubus.org/internal/appconf"
	"maarga.arasubus.org/internal/logging"
	"maarga.arasubus.org/internal/routing"
	"maarga.arasubus.org/tripdb"
)

// Config holds all the configuration settings for our Application.
type Config struct {
	Port      int
	Env       appconf.Environment
	APIKeys   []string
	RateLimit int

	DBPath          string
	GTFSURL         string
	RefreshInterval time.Duration
}

// Application holds the dependencies for our HTTP handlers, helpers, and
// middleware.
type Application struct {
	Config Config
	Logger *slog.Logger
	Engine *routing.Engine
	TripDB *tripdb.Client

	shutdownChan chan struct{}
	wg           sync.WaitGroup
	shutdownOnce sync.Once
}

// NewApplication opens the trip database, builds the first catalog snapshot,
// and starts the periodic refresh when one is configured.
func NewApplication(config Config, logger *slog.Logger) (*Application, error) {
	client, err := tripdb.NewClient(tripdb.NewConfig(config.DBPath, config.Env == appconf.Development), logger)
	if err != nil {
		return nil, fmt.Errorf("opening trip database: %w", err)
	}

	app := &Application{
		Config:       config,
		Logger:       logger,
		Engine:       routing.NewEngine(client, client, logger),
		TripDB:       client,
		shutdownChan: make(chan struct{}),
	}

	if err := app.RefreshCatalog(context.Background()); err != nil {
		_ = client.Close()
		return nil, err
	}

	if config.RefreshInterval > 0 {
		app.wg.Add(1)
		go app.refreshPeriodically()
	}

	return app, nil
}

// RefreshCatalog reloads trip records from storage and swaps in a fresh
// catalog snapshot. In-flight searches keep the snapshot they started with.
func (app *Application) RefreshCatalog(ctx context.Context) error {
	records, err := app.TripDB.TripRecords(ctx)
	if err != nil {
		return fmt.Errorf("loading trip records: %w", err)
	}
	app.Engine.Rebuild(records)
	return nil
}

func (app *Application) refreshPeriodically() {
	defer app.wg.Done()

	ticker := time.NewTicker(app.Config.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			err := app.RefreshCatalog(ctx)
			cancel()
			if err != nil {
				// Keep serving the previous snapshot.
				app.Logger.Error("periodic catalog refresh failed", "error", err)
			}
		case <-app.shutdownChan:
			return
		}
	}
}

// Shutdown gracefully stops background refreshes and closes storage.
func (app *Application) Shutdown() {
	app.shutdownOnce.Do(func() {
		close(app.shutdownChan)
		app.wg.Wait()
		if app.TripDB != nil {
			logging.SafeCloseWithLogging(app.TripDB, app.Logger, "close_trip_database")
		}
	})
}

// RequestHasInvalidAPIKey reports whether the request carries no valid API
// key.
func (app *Application) RequestHasInvalidAPIKey(r *http.Request) bool {
	key := r.URL.Query().Get("key")
	if key == "" {
		return true
	}
	for _, validKey := range app.Config.APIKeys {
		if key == validKey {
			return false
		}
	}
	return true
}
