package restapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"subwayboard.nyc/internal/logging"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Code        int    `json:"code"`
	Text        string `json:"text"`
	CurrentTime int64  `json:"currentTime"`
}

func setJSONResponseType(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
}

func (api *RestAPI) sendJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	setJSONResponseType(w)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		// Headers are already out; all that is left is to record it.
		logging.LogError(api.logger(), "failed to encode response", err,
			slog.String("path", r.URL.Path))
	}
}

func (api *RestAPI) logger() *slog.Logger {
	if api.Application == nil || api.Logger == nil {
		return slog.Default()
	}
	return api.Logger
}

func (api *RestAPI) sendError(w http.ResponseWriter, r *http.Request, code int, message string) {
	api.sendJSON(w, r, code, ErrorResponse{
		Code:        code,
		Text:        message,
		CurrentTime: api.Clock.Now().UnixMilli(),
	})
}

func (api *RestAPI) sendUnauthorized(w http.ResponseWriter, r *http.Request) {
	api.sendError(w, r, http.StatusUnauthorized, "permission denied")
}

// requireAPIKey guards operator endpoints when API keys are configured.
func (api *RestAPI) requireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.RequestHasInvalidAPIKey(r) {
			api.sendUnauthorized(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
