package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"maarga.arasubus.org/internal/app"
	"maarga.arasubus.org/internal/appconf"
	"maarga.arasubus.org/internal/logging"
	"maarga.arasubus.org/internal/restapi"
)

func main() {
	// A .env file is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	var (
		port         int
		env          string
		apiKeysFlag  string
		configPath   string
		dbPath       string
		gtfsURL      string
		rateLimit    int
		refreshHours int
	)

	flag.IntVar(&port, "port", 4000, "API server port")
	flag.StringVar(&env, "env", envOr("MAARGA_ENV", "development"), "Environment (development|test|production)")
	flag.StringVar(&apiKeysFlag, "api-keys", envOr("MAARGA_API_KEYS", "test"), "Comma separated API keys")
	flag.StringVar(&configPath, "config", "", "Optional YAML config file")
	flag.StringVar(&dbPath, "db-path", envOr("MAARGA_DB_PATH", "trips.db"), "Path to the trip SQLite database")
	flag.StringVar(&gtfsURL, "gtfs-url", os.Getenv("MAARGA_GTFS_URL"), "Optional static GTFS zip (path or URL) to import on startup")
	flag.IntVar(&rateLimit, "rate-limit", 100, "Requests per second per API key (0 disables)")
	flag.IntVar(&refreshHours, "refresh-hours", 24, "Catalog refresh interval in hours (0 disables)")
	flag.Parse()

	logger := logging.NewStructuredLogger(os.Stdout, slog.LevelInfo)

	if configPath != "" {
		fileCfg, err := appconf.LoadFile(configPath)
		if err != nil {
			logger.Error("failed to load config file", "error", err, "path", configPath)
			os.Exit(1)
		}
		if fileCfg.Server.Port != 0 {
			port = fileCfg.Server.Port
		}
		if fileCfg.Server.Env != "" {
			env = fileCfg.Server.Env
		}
		if len(fileCfg.Server.APIKeys) > 0 {
			apiKeysFlag = strings.Join(fileCfg.Server.APIKeys, ",")
		}
		if fileCfg.Server.RateLimit != 0 {
			rateLimit = fileCfg.Server.RateLimit
		}
		if fileCfg.Data.DBPath != "" {
			dbPath = fileCfg.Data.DBPath
		}
		if fileCfg.Data.GTFSURL != "" {
			gtfsURL = fileCfg.Data.GTFSURL
		}
		if fileCfg.Data.RefreshHours != 0 {
			refreshHours = fileCfg.Data.RefreshHours
		}
	}

	cfg := app.Config{
		Port:            port,
		Env:             appconf.EnvFlagToEnvironment(env),
		APIKeys:         splitKeys(apiKeysFlag),
		RateLimit:       rateLimit,
		DBPath:          dbPath,
		GTFSURL:         gtfsURL,
		RefreshInterval: time.Duration(refreshHours) * time.Hour,
	}

	application, err := app.NewApplication(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}
	defer application.Shutdown()

	if cfg.GTFSURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		err := application.TripDB.ImportGTFS(ctx, cfg.GTFSURL)
		cancel()
		if err != nil {
			logger.Error("failed to import GTFS feed", "error", err, "source", cfg.GTFSURL)
			os.Exit(1)
		}
		if err := application.RefreshCatalog(context.Background()); err != nil {
			logger.Error("failed to build catalog after import", "error", err)
			os.Exit(1)
		}
	}

	api := restapi.NewRestAPI(application)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      api.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	shutdownErr := make(chan error)
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		logger.Info("shutting down server", "signal", s.String())
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		shutdownErr <- srv.Shutdown(ctx)
	}()

	logger.Info("starting server", "addr", srv.Addr, "env", cfg.Env.String())
	err = srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		logger.Error(err.Error())
		os.Exit(1)
	}

	if err := <-shutdownErr; err != nil {
		logger.Error("server shutdown failed", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitKeys(s string) []string {
	parts := strings.Split(s, ",")
	keys := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			keys = append(keys, p)
		}
	}
	return keys
}
