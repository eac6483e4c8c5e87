package restapi

import (
	"net/http"
	"time"
)

// currentTimeHandler reports the server clock, mostly for clients that want
// to interpret schedule times consistently.
func (api *RestAPI) currentTimeHandler(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	data := struct {
		ReadableTime string `json:"readableTime"`
		Time         int64  `json:"time"`
	}{
		ReadableTime: now.Format(time.RFC3339),
		Time:         now.UnixMilli(),
	}

	api.sendResponse(w, r, data)
}
