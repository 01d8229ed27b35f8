package restapi

import (
	"fmt"
	"net/http"
)

// HealthResponse represents the JSON response from the health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// healthHandler reports whether the board is wired. Upstream feeds are not
// contacted.
func (api *RestAPI) healthHandler(w http.ResponseWriter, r *http.Request) {
	if api.Application == nil || api.Board == nil {
		api.sendJSON(w, r, http.StatusServiceUnavailable, HealthResponse{
			Status: "unavailable",
			Detail: "board not initialized",
		})
		return
	}

	station := api.Board.Station()
	api.sendJSON(w, r, http.StatusOK, HealthResponse{
		Status: "ok",
		Detail: fmt.Sprintf("%d sources, %d tracked stops", len(api.Board.Sources()), len(station.Stops)),
	})
}
