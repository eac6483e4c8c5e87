package restapi

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"maarga.arasubus.org/internal/models"
)

// RateLimitMiddleware provides per-API-key rate limiting
type RateLimitMiddleware struct {
	limiters  map[string]*rate.Limiter
	mu        sync.Mutex
	rateLimit rate.Limit
	burstSize int
	lastSeen  map[string]time.Time
}

// NewRateLimitMiddleware creates a new rate limiting middleware.
// ratePerSecond is the number of requests allowed per interval per API key;
// zero or negative disables limiting.
func NewRateLimitMiddleware(ratePerSecond int, interval time.Duration) func(http.Handler) http.Handler {
	if ratePerSecond <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	middleware := &RateLimitMiddleware{
		limiters:  make(map[string]*rate.Limiter),
		rateLimit: rate.Every(interval / time.Duration(ratePerSecond)),
		burstSize: ratePerSecond,
		lastSeen:  make(map[string]time.Time),
	}

	return middleware.handler
}

func (m *RateLimitMiddleware) limiterFor(key string) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	limiter, ok := m.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(m.rateLimit, m.burstSize)
		m.limiters[key] = limiter
	}
	m.lastSeen[key] = time.Now()

	// Drop limiters idle for an hour so the map cannot grow without bound.
	for k, seen := range m.lastSeen {
		if time.Since(seen) > time.Hour {
			delete(m.lastSeen, k)
			delete(m.limiters, k)
		}
	}

	return limiter
}

func (m *RateLimitMiddleware) handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.URL.Query().Get("key")

		if !m.limiterFor(key).Allow() {
			response := struct {
				Code        int    `json:"code"`
				CurrentTime int64  `json:"currentTime"`
				Text        string `json:"text"`
				Version     int    `json:"version"`
			}{
				Code:        http.StatusTooManyRequests,
				CurrentTime: models.ResponseCurrentTime(),
				Text:        "rate limit exceeded",
				Version:     1,
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(response)
			return
		}

		next.ServeHTTP(w, r)
	})
}
