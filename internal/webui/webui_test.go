package webui

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"subwayboard.nyc/internal/app"
	"subwayboard.nyc/internal/appconf"
	"subwayboard.nyc/internal/board"
	"subwayboard.nyc/internal/clock"
	"subwayboard.nyc/internal/feed"
)

func newTestWebUI(t *testing.T, cfg appconf.Config, sources ...feed.Source) *WebUI {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clk := clock.NewMockClock(time.Unix(1_700_000_000, 0))
	fetcher := feed.NewFetcher(feed.Config{Timeout: 2 * time.Second}, logger, nil)

	return &WebUI{Application: &app.Application{
		Config:  cfg,
		Board:   board.NewService(board.DefaultStation(), sources, fetcher, clk),
		Fetcher: fetcher,
		Logger:  logger,
		Clock:   clk,
	}}
}
