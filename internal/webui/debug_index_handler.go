package webui

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/OneBusAway/go-gtfs"
	"github.com/davecgh/go-spew/spew"
	"subwayboard.nyc/internal/appconf"
	"subwayboard.nyc/internal/feed"
)

//go:embed debug_index.html
var templateFS embed.FS

var debugTemplate = template.Must(template.ParseFS(templateFS, "debug_index.html"))

type debugData struct {
	Title     string
	Freshness string
	Pre       string
	Sources   []string
}

func (webUI *WebUI) writeDebugData(w http.ResponseWriter, status int, title string, data any) {
	webUI.writeDebugPage(w, status, debugData{Title: title, Pre: spew.Sdump(data)})
}

func (webUI *WebUI) writeDebugPage(w http.ResponseWriter, status int, page debugData) {
	var names []string
	if webUI.Board != nil {
		for _, source := range webUI.Board.Sources() {
			names = append(names, source.Name)
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	page.Sources = names
	if err := debugTemplate.Execute(w, page); err != nil {
		slog.Error("failed to execute debug template", "error", err)
	}
}

// debugIndexHandler dumps one upstream feed, parsed, for operators. It is
// hidden in production.
func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	if webUI.Config.Env == appconf.Production {
		http.NotFound(w, r)
		return
	}
	if webUI.RequestHasInvalidAPIKey(r) {
		http.Error(w, "permission denied", http.StatusUnauthorized)
		return
	}

	sourceName := r.URL.Query().Get("source")
	dataType := r.URL.Query().Get("dataType")

	source, ok := feed.Lookup(webUI.Board.Sources(), sourceName)
	if !ok {
		webUI.writeDebugData(w, http.StatusOK, "Choose a source", map[string]string{
			"error": "Please use ?source= with one of the configured sources and ?dataType= with one of: trips, vehicles, alerts.",
		})
		return
	}

	body, err := webUI.Fetcher.LoadRaw(r.Context(), source)
	if err != nil {
		webUI.writeDebugData(w, http.StatusBadGateway, "Feed unavailable: "+source.Name, map[string]string{
			"error": err.Error(),
		})
		return
	}

	realtime, err := gtfs.ParseRealtime(body, &gtfs.ParseRealtimeOptions{})
	if err != nil {
		webUI.writeDebugData(w, http.StatusBadGateway, "Feed undecodable: "+source.Name, map[string]string{
			"error": err.Error(),
		})
		return
	}

	var generated time.Time
	if message, err := feed.Decode(body); err == nil && message.GetHeader().GetTimestamp() > 0 {
		generated = time.Unix(int64(message.GetHeader().GetTimestamp()), 0)
	}
	detector := NewStaleDetector()
	now := webUI.Clock.Now()
	freshness := detector.Describe(generated, now)

	var data any
	switch strings.ToLower(dataType) {
	case "trips":
		data = realtime.Trips
	case "vehicles":
		data = realtime.Vehicles
		freshness += fmt.Sprintf("; %d of %d vehicles stale", detector.StaleVehicles(realtime.Vehicles, now), len(realtime.Vehicles))
	case "alerts":
		data = realtime.Alerts
	default:
		data = map[string]string{
			"error": "Please use one of the following: trips, vehicles, alerts.",
		}
		dataType = "choose a data type"
	}

	webUI.writeDebugPage(w, http.StatusOK, debugData{
		Title:     fmt.Sprintf("GTFS Realtime - %s - %s", source.Name, dataType),
		Freshness: freshness,
		Pre:       spew.Sdump(data),
	})
}
