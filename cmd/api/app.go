package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/klauspost/compress/gzhttp"
	"subwayboard.nyc/internal/app"
	"subwayboard.nyc/internal/appconf"
	"subwayboard.nyc/internal/board"
	"subwayboard.nyc/internal/clock"
	"subwayboard.nyc/internal/feed"
	"subwayboard.nyc/internal/logging"
	"subwayboard.nyc/internal/metrics"
	"subwayboard.nyc/internal/restapi"
	"subwayboard.nyc/internal/webui"
)

const shutdownTimeout = 10 * time.Second

// BuildApplication wires the board and its dependencies. The returned closer
// flushes the log file, if any.
func BuildApplication(cfg appconf.Config, b appconf.Board) (*app.Application, io.Closer, error) {
	logger, closer := logging.NewLogger(logging.Options{
		Verbose: cfg.Verbose,
		LogFile: cfg.LogFile,
	})

	loc, err := cfg.Location()
	if err != nil {
		_ = closer.Close()
		return nil, nil, fmt.Errorf("failed to load timezone %q: %w", cfg.Timezone, err)
	}
	station := b.Station
	station.Location = loc

	var clk clock.Clock = clock.RealClock{}
	if cfg.ClockOverrideEnv != "" || cfg.ClockOverrideFile != "" {
		clk = &clock.OverrideClock{EnvVar: cfg.ClockOverrideEnv, FilePath: cfg.ClockOverrideFile, Logger: logger}
		logging.LogOperation(logger, "clock_override_enabled",
			slog.String("env_var", cfg.ClockOverrideEnv),
			slog.String("file", cfg.ClockOverrideFile))
	}

	m := metrics.New()
	fetcher := feed.NewFetcher(feed.Config{
		Timeout: cfg.FeedTimeout,
		Headers: cfg.FeedHeaders(),
	}, logger, m)

	coreApp := &app.Application{
		Config:  cfg,
		Board:   board.NewService(station, b.Sources, fetcher, clk),
		Fetcher: fetcher,
		Logger:  logger,
		Clock:   clk,
		Metrics: m,
	}

	logging.LogOperation(logger, "application_built",
		slog.String("station", station.Name),
		slog.Int("sources", len(b.Sources)),
		slog.Int("tracked_stops", len(station.Stops)),
		slog.String("env", cfg.Env.String()))

	return coreApp, closer, nil
}

// CreateServer builds the HTTP server. The caller must call Shutdown on the
// returned API once the server has stopped.
func CreateServer(coreApp *app.Application, cfg appconf.Config) (*http.Server, *restapi.RestAPI) {
	api := restapi.NewRestAPI(coreApp)
	webUI := &webui.WebUI{Application: coreApp}

	mux := http.NewServeMux()
	api.SetRoutes(mux)
	webUI.SetWebUIRoutes(mux)

	handler := restapi.Chain(gzhttp.GzipHandler(mux),
		restapi.RequestIDMiddleware,
		restapi.NewRequestLoggingMiddleware(coreApp.Logger),
		restapi.MetricsHandler(coreApp.Metrics),
	)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10*time.Second + cfg.FeedTimeout,
	}

	return srv, api
}

// Run serves until SIGINT or SIGTERM, then drains in-flight requests.
func Run(srv *http.Server, api *restapi.RestAPI, logger *slog.Logger) error {
	defer api.Shutdown()

	serverErr := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("Subway arrivals server running at http://localhost:%s", portOf(srv.Addr)),
			slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-serverErr:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case sig := <-quit:
		logging.LogOperation(logger, "shutdown_requested", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logging.LogOperation(logger, "server_stopped")
	return nil
}

func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
