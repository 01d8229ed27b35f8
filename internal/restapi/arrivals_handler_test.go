package restapi

import (
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"subwayboard.nyc/internal/appconf"
	"subwayboard.nyc/internal/board"
	"subwayboard.nyc/internal/feed"
	"subwayboard.nyc/internal/feed/feedtest"
)

func TestArrivalsHandler_TrackedStop(t *testing.T) {
	upstream := feedtest.Server(t, feedtest.Marshal(t, feedtest.Message(
		feedtest.Trip("t1", "1", feedtest.Arrival("125N", testNow+125)),
	)))
	server := serveAPI(t, createTestApi(t, feed.Source{Name: "123456", URL: upstream.URL}))

	resp, envelope := getEnvelope(t, server.URL+"/api/arrivals")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, "Columbus Circle-59 St", envelope.Station)
	assert.Equal(t, "2023-11-14T22:13:20Z", envelope.UpdatedAt)
	require.Len(t, envelope.Arrivals.Uptown, 1)
	assert.Equal(t, board.Arrival{Line: "1", Direction: "Uptown", ArrivalTime: testNow + 125, MinutesAway: 2}, envelope.Arrivals.Uptown[0])
	assert.Empty(t, envelope.Arrivals.Downtown)
}

func TestArrivalsHandler_OrdersAcrossSources(t *testing.T) {
	t1, t2 := testNow+180, testNow+420

	first := feedtest.Server(t, feedtest.Marshal(t, feedtest.Message(
		feedtest.Trip("late", "B", feedtest.Arrival("A24N", t2)),
	)))
	second := feedtest.Server(t, feedtest.Marshal(t, feedtest.Message(
		feedtest.Trip("early", "1", feedtest.Arrival("125N", t1)),
	)))
	server := serveAPI(t, createTestApi(t,
		feed.Source{Name: "BDFM", URL: first.URL},
		feed.Source{Name: "123456", URL: second.URL},
	))

	_, envelope := getEnvelope(t, server.URL+"/api/arrivals")

	require.Len(t, envelope.Arrivals.Uptown, 2)
	assert.Equal(t, t1, envelope.Arrivals.Uptown[0].ArrivalTime)
	assert.Equal(t, t2, envelope.Arrivals.Uptown[1].ArrivalTime)
}

func TestArrivalsHandler_AllSourcesFail(t *testing.T) {
	server := serveAPI(t, createTestApi(t,
		feed.Source{Name: "123456", URL: feedtest.StatusServer(t, http.StatusInternalServerError).URL},
		feed.Source{Name: "ACE", URL: feedtest.StatusServer(t, http.StatusForbidden).URL},
		feed.Source{Name: "BDFM", URL: feedtest.Server(t, []byte("garbage")).URL},
	))

	resp, err := http.Get(server.URL + "/api/arrivals")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"arrivals":{"uptown":[],"downtown":[]}`)
	assert.Equal(t, "no-cache, no-store, must-revalidate", resp.Header.Get("Cache-Control"))
}

func TestArrivalsHandler_TruncatesToTwenty(t *testing.T) {
	entities := feedtest.Message()
	for i := int64(0); i < 25; i++ {
		entities.Entity = append(entities.Entity,
			feedtest.Trip("up"+string(rune('a'+i)), "A", feedtest.Arrival("A24N", testNow+60*(i+1))),
			feedtest.Trip("down"+string(rune('a'+i)), "1", feedtest.Arrival("125S", testNow+60*(i+1))),
		)
	}
	upstream := feedtest.Server(t, feedtest.Marshal(t, entities))
	server := serveAPI(t, createTestApi(t, feed.Source{Name: "ACE", URL: upstream.URL}))

	_, envelope := getEnvelope(t, server.URL+"/api/arrivals")

	assert.Len(t, envelope.Arrivals.Uptown, 20)
	assert.Len(t, envelope.Arrivals.Downtown, 20)
	assert.EqualValues(t, 20, envelope.Arrivals.Uptown[19].MinutesAway)
}

func TestArrivalsHandler_RateLimited(t *testing.T) {
	cfg := appconf.Default()
	cfg.RateLimit = 1
	api := NewRestAPI(newTestApplication(t, cfg, nil))
	t.Cleanup(api.Shutdown)
	server := serveAPI(t, api)

	first, err := http.Get(server.URL + "/api/arrivals")
	require.NoError(t, err)
	_ = first.Body.Close()
	assert.Equal(t, http.StatusOK, first.StatusCode)

	second, err := http.Get(server.URL + "/api/arrivals")
	require.NoError(t, err)
	_ = second.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, second.StatusCode)
	assert.Equal(t, "no-cache, no-store, must-revalidate", second.Header.Get("Cache-Control"))
}
