package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// Routes builds the API router. Every endpoint requires a valid API key and
// is rate limited per key; every request is logged.
func (api *RestAPI) Routes() http.Handler {
	router := httprouter.New()

	router.Handler(http.MethodGet, "/api/where/route-options.json", api.secure(api.routeOptionsHandler))
	router.Handler(http.MethodGet, "/api/where/locations.json", api.secure(api.locationsHandler))
	router.Handler(http.MethodGet, "/api/where/location/:id", api.secure(api.locationHandler))
	router.Handler(http.MethodGet, "/api/where/current-time.json", api.secure(api.currentTimeHandler))
	router.Handler(http.MethodPost, "/api/where/rebuild.json", api.secure(api.rebuildHandler))

	return NewRequestLoggingMiddleware(api.Logger)(router)
}
