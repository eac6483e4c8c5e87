package restapi

import (
	"encoding/json"
	"net/http"

	"maarga.arasubus.org/internal/models"
)

// writeJSONBody encodes v onto an already-prepared response.
func writeJSONBody(w http.ResponseWriter, v interface{}) error {
	return json.NewEncoder(w).Encode(v)
}

// sendResponse writes data wrapped in the standard success envelope.
func (api *RestAPI) sendResponse(w http.ResponseWriter, r *http.Request, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(models.NewOKResponse(data))
	if err != nil {
		api.Logger.Error("failed to encode response", "error", err, "path", r.URL.Path)
	}
}
