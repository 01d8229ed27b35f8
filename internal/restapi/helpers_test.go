package restapi

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"subwayboard.nyc/internal/app"
	"subwayboard.nyc/internal/appconf"
	"subwayboard.nyc/internal/board"
	"subwayboard.nyc/internal/clock"
	"subwayboard.nyc/internal/feed"
	"subwayboard.nyc/internal/metrics"
)

const testNow int64 = 1_700_000_000

func newTestApplication(t *testing.T, cfg appconf.Config, sources []feed.Source) *app.Application {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.New()
	clk := clock.NewMockClock(time.Unix(testNow, 0))
	fetcher := feed.NewFetcher(feed.Config{Timeout: 2 * time.Second}, logger, m)

	station := board.DefaultStation()
	station.Location = time.UTC

	return &app.Application{
		Config:  cfg,
		Board:   board.NewService(station, sources, fetcher, clk),
		Fetcher: fetcher,
		Logger:  logger,
		Clock:   clk,
		Metrics: m,
	}
}

// createTestApi builds an API over the given upstream sources with a
// generous rate limit.
func createTestApi(t *testing.T, sources ...feed.Source) *RestAPI {
	t.Helper()
	cfg := appconf.Default()
	cfg.RateLimit = 100
	api := NewRestAPI(newTestApplication(t, cfg, sources))
	t.Cleanup(api.Shutdown)
	return api
}

func serveAPI(t *testing.T, api *RestAPI) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	api.SetRoutes(mux)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func getEnvelope(t *testing.T, url string) (*http.Response, board.Envelope) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var envelope board.Envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return resp, envelope
}
