package board

import (
	"context"
	"time"

	gtfsrt "github.com/OneBusAway/go-gtfs/proto"
	"golang.org/x/sync/errgroup"
	"subwayboard.nyc/internal/clock"
	"subwayboard.nyc/internal/feed"
)

// Envelope is the JSON document served by /api/arrivals.
type Envelope struct {
	Station   string  `json:"station"`
	UpdatedAt string  `json:"updatedAt"`
	Arrivals  Grouped `json:"arrivals"`
}

// SnapshotLoader fetches one source. A false result means the source is
// unavailable for this cycle and contributes nothing.
type SnapshotLoader interface {
	Snapshot(ctx context.Context, source feed.Source) (*gtfsrt.FeedMessage, bool)
}

// Service runs the fetch, extract and aggregate cycle for one station.
// It keeps no state between calls.
type Service struct {
	station Station
	sources []feed.Source
	loader  SnapshotLoader
	clock   clock.Clock
}

func NewService(station Station, sources []feed.Source, loader SnapshotLoader, clk clock.Clock) *Service {
	if station.Location == nil {
		station.Location = time.Local
	}
	if station.Limit <= 0 {
		station.Limit = DefaultLimit
	}
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &Service{
		station: station,
		sources: sources,
		loader:  loader,
		clock:   clk,
	}
}

func (s *Service) Station() Station {
	return s.station
}

func (s *Service) Sources() []feed.Source {
	return s.sources
}

// Arrivals fetches every source concurrently and returns the merged board.
// Failing sources are already logged by the loader and simply drop out.
func (s *Service) Arrivals(ctx context.Context) Envelope {
	batches := make([][]Arrival, len(s.sources))

	var g errgroup.Group
	for i, source := range s.sources {
		g.Go(func() error {
			snapshot, ok := s.loader.Snapshot(ctx, source)
			if !ok {
				return nil
			}
			batches[i] = ExtractArrivals(snapshot, s.station.Stops, s.clock.Now().Unix())
			return nil
		})
	}
	_ = g.Wait()

	return Envelope{
		Station:   s.station.Name,
		UpdatedAt: s.clock.Now().In(s.station.Location).Format(time.RFC3339),
		Arrivals:  Aggregate(batches, s.station.Limit),
	}
}
