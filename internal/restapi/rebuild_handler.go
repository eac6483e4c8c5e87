package restapi

import (
	"net/http"
)

// rebuildHandler forces a catalog rebuild from storage, for use after the
// schedule data has been reloaded out of band.
//
// POST /api/where/rebuild.json
func (api *RestAPI) rebuildHandler(w http.ResponseWriter, r *http.Request) {
	if err := api.RefreshCatalog(r.Context()); err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	catalog := api.Engine.Catalog()
	data := struct {
		TripCount     int `json:"tripCount"`
		RejectedCount int `json:"rejectedCount"`
		LocationCount int `json:"locationCount"`
	}{
		TripCount:     catalog.TripCount(),
		RejectedCount: catalog.RejectedCount(),
		LocationCount: catalog.LocationCount(),
	}

	api.sendResponse(w, r, data)
}
