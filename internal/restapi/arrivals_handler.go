package restapi

import (
	"net/http"
)

// arrivalsHandler always answers 200 once it runs: sources that fail simply
// contribute no arrivals. The rate limiter wrapping it in SetRoutes can still
// reject a request with 429 before it gets here.
func (api *RestAPI) arrivalsHandler(w http.ResponseWriter, r *http.Request) {
	envelope := api.Board.Arrivals(r.Context())
	api.sendJSON(w, r, http.StatusOK, envelope)
}
