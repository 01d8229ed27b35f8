// Package feedtest builds GTFS-Realtime fixtures and fake upstream servers
// for tests.
package feedtest

import (
	"net/http"
	"net/http/httptest"
	"testing"

	gtfsrt "github.com/OneBusAway/go-gtfs/proto"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
)

// Message wraps entities in a FULL_DATASET feed with a valid header.
func Message(entities ...*gtfsrt.FeedEntity) *gtfsrt.FeedMessage {
	incrementality := gtfsrt.FeedHeader_FULL_DATASET
	return &gtfsrt.FeedMessage{
		Header: &gtfsrt.FeedHeader{
			GtfsRealtimeVersion: proto.String("2.0"),
			Incrementality:      &incrementality,
			Timestamp:           proto.Uint64(1_700_000_000),
		},
		Entity: entities,
	}
}

// Trip returns a trip update entity. An empty routeID leaves route_id unset.
func Trip(tripID, routeID string, updates ...*gtfsrt.TripUpdate_StopTimeUpdate) *gtfsrt.FeedEntity {
	descriptor := &gtfsrt.TripDescriptor{TripId: proto.String(tripID)}
	if routeID != "" {
		descriptor.RouteId = proto.String(routeID)
	}
	return &gtfsrt.FeedEntity{
		Id: proto.String(tripID),
		TripUpdate: &gtfsrt.TripUpdate{
			Trip:           descriptor,
			StopTimeUpdate: updates,
		},
	}
}

// Arrival is a stop-time update carrying only a predicted arrival.
func Arrival(stopID string, at int64) *gtfsrt.TripUpdate_StopTimeUpdate {
	return &gtfsrt.TripUpdate_StopTimeUpdate{
		StopId:  proto.String(stopID),
		Arrival: &gtfsrt.TripUpdate_StopTimeEvent{Time: proto.Int64(at)},
	}
}

// Departure is a stop-time update carrying only a predicted departure.
func Departure(stopID string, at int64) *gtfsrt.TripUpdate_StopTimeUpdate {
	return &gtfsrt.TripUpdate_StopTimeUpdate{
		StopId:    proto.String(stopID),
		Departure: &gtfsrt.TripUpdate_StopTimeEvent{Time: proto.Int64(at)},
	}
}

// Marshal encodes message or fails the test.
func Marshal(t testing.TB, message *gtfsrt.FeedMessage) []byte {
	t.Helper()
	data, err := proto.Marshal(message)
	require.NoError(t, err)
	return data
}

// Server serves payload as a protobuf body on every path. It is closed when
// the test ends.
func Server(t testing.TB, payload []byte) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/x-protobuf")
		_, _ = w.Write(payload)
	}))
	t.Cleanup(server.Close)
	return server
}

// StatusServer answers every request with status and an empty body.
func StatusServer(t testing.TB, status int) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(status), status)
	}))
	t.Cleanup(server.Close)
	return server
}
