package app

import (
	"log/slog"

	"subwayboard.nyc/internal/appconf"
	"subwayboard.nyc/internal/board"
	"subwayboard.nyc/internal/clock"
	"subwayboard.nyc/internal/feed"
	"subwayboard.nyc/internal/metrics"
)

// Application holds the dependencies shared by the HTTP handlers and
// middleware. Everything in it is built once at startup and is read-only.
type Application struct {
	Config  appconf.Config
	Board   *board.Service
	Fetcher *feed.Fetcher
	Logger  *slog.Logger
	Clock   clock.Clock
	Metrics *metrics.Metrics
}
