package restapi

import (
	"net/http"
	"time"

	"subwayboard.nyc/internal/app"
)

// RestAPI serves the JSON and operator endpoints.
type RestAPI struct {
	*app.Application
	rateLimiter *RateLimitMiddleware
}

func NewRestAPI(application *app.Application) *RestAPI {
	return &RestAPI{
		Application: application,
		rateLimiter: NewRateLimitMiddleware(application.Config.RateLimit, time.Second, application.Config.ApiKeys, application.Clock),
	}
}

// SetRoutes registers the API routes on mux.
func (api *RestAPI) SetRoutes(mux *http.ServeMux) {
	arrivals := api.rateLimiter.Handler()(http.HandlerFunc(api.arrivalsHandler))
	mux.Handle("GET /api/arrivals", CacheControlMiddleware(0, arrivals))

	mux.HandleFunc("GET /healthz", api.healthHandler)

	if api.Metrics != nil {
		mux.Handle("GET /metrics", api.requireAPIKey(api.Metrics.Handler()))
	}
}

// Shutdown stops background work owned by the API.
func (api *RestAPI) Shutdown() {
	if api.rateLimiter != nil {
		api.rateLimiter.Stop()
	}
}
