package restapi

import (
	"net/http"
	"time"

	"maarga.arasubus.org/internal/app"
)

type RestAPI struct {
	*app.Application
	rateLimiter func(http.Handler) http.Handler
}

// NewRestAPI creates a new RestAPI instance with initialized rate limiter
func NewRestAPI(application *app.Application) *RestAPI {
	return &RestAPI{
		Application: application,
		rateLimiter: NewRateLimitMiddleware(application.Config.RateLimit, time.Second),
	}
}

// secure wraps a handler with API key validation and rate limiting.
func (api *RestAPI) secure(finalHandler http.HandlerFunc) http.Handler {
	keyed := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.RequestHasInvalidAPIKey(r) {
			api.invalidAPIKeyResponse(w, r)
			return
		}
		finalHandler(w, r)
	})
	return api.rateLimiter(keyed)
}
