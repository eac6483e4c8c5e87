package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"maarga.arasubus.org/internal/models"
	"maarga.arasubus.org/internal/utils"
)

// locationsHandler lists every location trips stop at.
func (api *RestAPI) locationsHandler(w http.ResponseWriter, r *http.Request) {
	locations, err := api.TripDB.Locations(r.Context())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewLocationsResponse(locations))
}

// locationHandler resolves a single location by ID.
func (api *RestAPI) locationHandler(w http.ResponseWriter, r *http.Request) {
	params := httprouter.ParamsFromContext(r.Context())
	id := params.ByName("id")

	if err := utils.ValidateID(id); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"id": {err.Error()}})
		return
	}

	location, ok, err := api.TripDB.Location(r.Context(), id)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	if !ok {
		response := struct {
			Code        int    `json:"code"`
			CurrentTime int64  `json:"currentTime"`
			Text        string `json:"text"`
			Version     int    `json:"version"`
		}{
			Code:        http.StatusNotFound,
			CurrentTime: models.ResponseCurrentTime(),
			Text:        "resource not found",
			Version:     1,
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		if err := writeJSONBody(w, response); err != nil {
			api.Logger.Error("failed to encode not found response", "error", err)
		}
		return
	}

	api.sendResponse(w, r, models.NewLocation(location))
}
