package restapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"maarga.arasubus.org/internal/models"
	"maarga.arasubus.org/internal/routing"
	"maarga.arasubus.org/internal/utils"
)

// routeOptionsHandler answers a trip search: every viable way from one
// location to another, ranked.
//
// GET /api/where/route-options.json?from=...&to=...&maxTransfers=2&limit=10&deadlineMs=2000
func (api *RestAPI) routeOptionsHandler(w http.ResponseWriter, r *http.Request) {
	queryParams := r.URL.Query()

	fieldErrors := make(map[string][]string)

	from := queryParams.Get("from")
	if err := utils.ValidateID(from); err != nil {
		fieldErrors["from"] = append(fieldErrors["from"], err.Error())
	}
	to := queryParams.Get("to")
	if err := utils.ValidateID(to); err != nil {
		fieldErrors["to"] = append(fieldErrors["to"], err.Error())
	}

	maxTransfers, fieldErrors := utils.ParseIntParam(queryParams, "maxTransfers", routing.DefaultMaxTransfers, fieldErrors)
	limit, fieldErrors := utils.ParseIntParam(queryParams, "limit", routing.DefaultLimit, fieldErrors)
	deadlineMs, fieldErrors := utils.ParseDurationMSParam(queryParams, "deadlineMs", 0, fieldErrors)

	if maxTransfers < 0 {
		fieldErrors["maxTransfers"] = append(fieldErrors["maxTransfers"], "must not be negative")
	}
	if limit <= 0 {
		fieldErrors["limit"] = append(fieldErrors["limit"], "must be positive")
	}

	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	ctx := r.Context()
	if deadlineMs > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(deadlineMs)*time.Millisecond)
		defer cancel()
	}

	result, err := api.Engine.Search(ctx, from, to, routing.SearchOptions{
		MaxTransfers: maxTransfers,
		Limit:        limit,
	})
	if err != nil {
		var validationErr *routing.ValidationError
		if errors.As(err, &validationErr) {
			api.validationErrorResponse(w, r, validationErr.FieldErrors)
			return
		}
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewRouteOptionsResponse(result))
}
