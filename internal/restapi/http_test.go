package restapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"maarga.arasubus.org/internal/app"
	"maarga.arasubus.org/internal/routing"
	"maarga.arasubus.org/tripdb"
)

const testAPIKey = "test"

// newTestAPI spins up an API over an in-memory trip database seeded with the
// Chennai / Trichy / Madurai fixture.
func newTestAPI(t *testing.T) *RestAPI {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	application, err := app.NewApplication(app.Config{
		Port:    0,
		APIKeys: []string{testAPIKey},
		DBPath:  ":memory:",
	}, logger)
	require.NoError(t, err)
	t.Cleanup(application.Shutdown)

	locations := []routing.Location{
		{ID: "chennai", Name: "Chennai"},
		{ID: "trichy", Name: "Tiruchirappalli"},
		{ID: "madurai", Name: "Madurai"},
	}
	trips := []tripdb.Trip{
		{
			ID: "trip-x", Number: "100X", Name: "Chennai Express",
			Rating: sql.NullFloat64{Float64: 4.0, Valid: true},
			Stops: []tripdb.TripStop{
				{Seq: 0, LocationID: "chennai", Arrival: 8 * 60, Departure: 8 * 60},
				{Seq: 1, LocationID: "trichy", Arrival: 11 * 60, Departure: 11 * 60},
			},
		},
		{
			ID: "trip-y", Number: "200Y", Name: "Madurai Link",
			Stops: []tripdb.TripStop{
				{Seq: 0, LocationID: "trichy", Arrival: 11*60 + 30, Departure: 11*60 + 30},
				{Seq: 1, LocationID: "madurai", Arrival: 13*60 + 30, Departure: 13*60 + 30},
			},
		},
	}
	require.NoError(t, application.TripDB.ReplaceAll(context.Background(), locations, trips))
	require.NoError(t, application.RefreshCatalog(context.Background()))

	return NewRestAPI(application)
}

// serveRequest runs a request through the full router, middleware included.
func serveRequest(t *testing.T, api *RestAPI, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	recorder := httptest.NewRecorder()
	api.Routes().ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}
