// Package feed downloads and decodes GTFS-Realtime payloads.
package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	gtfsrt "github.com/OneBusAway/go-gtfs/proto"
	"google.golang.org/protobuf/proto"
	"subwayboard.nyc/internal/logging"
	"subwayboard.nyc/internal/metrics"
)

const (
	DefaultTimeout = 10 * time.Second
	maxBodySize    = 25 * 1024 * 1024
)

var ErrBodyTooLarge = errors.New("feed response exceeds size limit")

// Config controls outbound feed requests.
type Config struct {
	// Timeout bounds a single fetch, including reading the body.
	Timeout time.Duration
	// Headers are added to every request, e.g. the MTA "x-api-key".
	Headers map[string]string
}

// Fetcher performs one attempt per source; there are no retries.
type Fetcher struct {
	client  *http.Client
	headers map[string]string
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewFetcher(cfg Config, logger *slog.Logger, m *metrics.Metrics) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		client:  newHTTPClient(cfg.Timeout),
		headers: cfg.Headers,
		logger:  logger.With(slog.String("component", "feed_fetcher")),
		metrics: m,
	}
}

// newHTTPClient clones http.DefaultTransport so proxy and HTTP/2 defaults
// survive, and sets an absolute per-request timeout.
func newHTTPClient(timeout time.Duration) *http.Client {
	var transport *http.Transport
	if t, ok := http.DefaultTransport.(*http.Transport); ok {
		transport = t.Clone()
	} else {
		transport = &http.Transport{}
	}
	transport.MaxIdleConns = 20
	transport.MaxIdleConnsPerHost = 5
	transport.IdleConnTimeout = 90 * time.Second
	transport.TLSHandshakeTimeout = timeout

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

// LoadRaw downloads the undecoded payload of source.
func (f *Fetcher) LoadRaw(ctx context.Context, source Source) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build feed request: %w", err)
	}
	for key, value := range f.headers {
		req.Header.Add(key, value)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute feed request: %w", err)
	}
	defer logging.SafeCloseWithLogging(resp.Body, f.logger, "http_response_body")

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed fetch failed: %s returned %s", source.URL, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read feed body: %w", err)
	}
	if len(body) > maxBodySize {
		return nil, fmt.Errorf("%w of %d bytes", ErrBodyTooLarge, maxBodySize)
	}

	return body, nil
}

// Decode parses a GTFS-Realtime FeedMessage. Payloads missing required
// fields are rejected.
func Decode(body []byte) (*gtfsrt.FeedMessage, error) {
	message := &gtfsrt.FeedMessage{}
	if err := proto.Unmarshal(body, message); err != nil {
		return nil, fmt.Errorf("failed to decode feed: %w", err)
	}
	return message, nil
}

// Load downloads and decodes source.
func (f *Fetcher) Load(ctx context.Context, source Source) (*gtfsrt.FeedMessage, error) {
	start := time.Now()

	body, err := f.LoadRaw(ctx, source)
	if err != nil {
		f.metrics.ObserveFeedFetch(source.Name, metrics.FeedResultHTTPError, time.Since(start))
		return nil, err
	}

	message, err := Decode(body)
	if err != nil {
		f.metrics.ObserveFeedFetch(source.Name, metrics.FeedResultDecodeError, time.Since(start))
		return nil, err
	}

	f.metrics.ObserveFeedFetch(source.Name, metrics.FeedResultOK, time.Since(start))
	return message, nil
}

// Snapshot is Load for callers that treat a failed source as empty: the
// error is logged here and only an availability flag is returned.
func (f *Fetcher) Snapshot(ctx context.Context, source Source) (*gtfsrt.FeedMessage, bool) {
	message, err := f.Load(ctx, source)
	if err != nil {
		logging.LogError(f.logger, "Error loading GTFS-RT feed", err,
			slog.String("source", source.Name),
			slog.String("url", source.URL))
		return nil, false
	}
	return message, true
}
