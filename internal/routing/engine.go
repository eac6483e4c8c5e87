package routing

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync/atomic"
	"time"
)

const (
	// DefaultMaxTransfers bounds itineraries to three legs unless the caller
	// asks otherwise.
	DefaultMaxTransfers = 2
	// DefaultLimit is the number of ranked options returned by default.
	DefaultLimit = 10
)

// TripDataProvider supplies the raw trip records a catalog is built from.
// Implementations own all storage access and refresh scheduling.
type TripDataProvider interface {
	TripRecords(ctx context.Context) ([]TripRecord, error)
}

// LocationDirectory resolves location IDs. The engine only uses it to reject
// searches against unknown locations; IDs are otherwise opaque.
type LocationDirectory interface {
	Location(ctx context.Context, id string) (Location, bool, error)
}

// RatingProvider supplies the optional per-trip quality score used as a
// ranking tie-break.
type RatingProvider interface {
	TripRating(tripID string) (float64, bool)
}

// ValidationError reports request parameters rejected before any search work
// was performed.
type ValidationError struct {
	FieldErrors map[string][]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.FieldErrors))
	for field := range e.FieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fmt.Sprintf("invalid search parameters: %s", strings.Join(fields, ", "))
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{FieldErrors: map[string][]string{field: {message}}}
}

// SearchOptions tunes a single search call. Zero or negative values fall
// back to defaults; MaxTransfers is only defaulted when negative, since zero
// transfers (direct results only) is a meaningful request.
type SearchOptions struct {
	MaxTransfers int
	Limit        int
	// Budget caps how many graph edges the transfer search may consider
	// before giving up; 0 derives a cap from the catalog size.
	Budget int
}

// Result is a completed search. Truncated marks a result cut short by the
// caller's deadline or the exploration budget; the options present are still
// valid, there may simply be more that were not reached.
type Result struct {
	Options   []RouteOption
	Truncated bool
}

// Engine runs searches against an atomically swappable catalog snapshot. A
// search observes the snapshot current at call entry for its whole duration;
// Rebuild never disturbs searches already in flight.
type Engine struct {
	catalog   atomic.Pointer[Catalog]
	directory LocationDirectory
	ratings   RatingProvider
	logger    *slog.Logger
}

// NewEngine creates an engine with an empty catalog. ratings may be nil.
func NewEngine(directory LocationDirectory, ratings RatingProvider, logger *slog.Logger) *Engine {
	e := &Engine{
		directory: directory,
		ratings:   ratings,
		logger:    logger,
	}
	e.catalog.Store(BuildCatalog(nil, nil))
	return e
}

// Rebuild validates the records into a fresh catalog and swaps it in. The
// swap is atomic: in-flight searches keep the snapshot they started with.
func (e *Engine) Rebuild(records []TripRecord) *Catalog {
	started := time.Now()
	catalog := BuildCatalog(records, e.logger)
	e.catalog.Store(catalog)

	if e.logger != nil {
		e.logger.Info("catalog rebuilt",
			slog.Int("trips", catalog.TripCount()),
			slog.Int("rejected", catalog.RejectedCount()),
			slog.Int("locations", catalog.LocationCount()),
			slog.Duration("duration", time.Since(started)))
	}
	return catalog
}

// Catalog returns the current snapshot.
func (e *Engine) Catalog() *Catalog {
	return e.catalog.Load()
}

// Search finds every viable itinerary from origin to destination and returns
// them ranked. It is a pure function of the catalog snapshot and its
// arguments; an empty result is a valid answer, not an error.
func (e *Engine) Search(ctx context.Context, originID, destinationID string, opts SearchOptions) (Result, error) {
	if err := e.validate(ctx, originID, destinationID); err != nil {
		return Result{}, err
	}

	if opts.MaxTransfers < 0 {
		opts.MaxTransfers = DefaultMaxTransfers
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}

	catalog := e.catalog.Load()
	if opts.Budget <= 0 {
		opts.Budget = catalog.LegCount() * catalog.LocationCount()
		if opts.Budget <= 0 {
			opts.Budget = 1
		}
	}

	direct := DirectMatches(catalog, originID, destinationID)

	graph := BuildConnectionGraph(catalog)
	connecting, truncated := ConnectingRoutes(ctx, graph, originID, destinationID, opts.MaxTransfers, opts.Budget)

	candidates := append(direct, connecting...)

	var rating RatingFunc
	if e.ratings != nil {
		rating = e.ratings.TripRating
	}

	result := Result{
		Options:   Rank(candidates, rating, opts.Limit),
		Truncated: truncated,
	}

	if truncated && e.logger != nil {
		e.logger.Warn("route search truncated",
			slog.String("origin", originID),
			slog.String("destination", destinationID),
			slog.Int("options", len(result.Options)))
	}
	return result, nil
}

func (e *Engine) validate(ctx context.Context, originID, destinationID string) error {
	if originID == "" {
		return newValidationError("from", "origin is required")
	}
	if destinationID == "" {
		return newValidationError("to", "destination is required")
	}
	if originID == destinationID {
		return newValidationError("to", "origin and destination must differ")
	}

	if e.directory != nil {
		if _, ok, err := e.directory.Location(ctx, originID); err != nil {
			return fmt.Errorf("resolving origin %q: %w", originID, err)
		} else if !ok {
			return newValidationError("from", "unknown location")
		}
		if _, ok, err := e.directory.Location(ctx, destinationID); err != nil {
			return fmt.Errorf("resolving destination %q: %w", destinationID, err)
		} else if !ok {
			return newValidationError("to", "unknown location")
		}
	}

	return nil
}
