package webui

import (
	"net/http"
	"time"

	"subwayboard.nyc/internal/app"
	"subwayboard.nyc/internal/restapi"
)

// staticMaxAge is how long browsers may cache the board's assets.
const staticMaxAge = 5 * time.Minute

// WebUI serves the departure board page and the operator debug view.
type WebUI struct {
	*app.Application
}

func (webUI *WebUI) SetWebUIRoutes(mux *http.ServeMux) {
	mux.Handle("GET /", restapi.CacheControlMiddleware(staticMaxAge, http.HandlerFunc(webUI.staticHandler)))
	mux.HandleFunc("GET /debug", webUI.debugIndexHandler)
}
