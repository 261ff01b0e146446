package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/pgdem/desporto/go/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startServer(t *testing.T) (*ConnectionManager, *store.Broker, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cm := NewConnectionManager(DefaultConnectionConfig())
	b := store.NewBroker()
	cm.Attach(b)

	ctx, cancel := context.WithCancel(context.Background())
	go cm.Start(ctx)

	r := gin.New()
	NewWebSocketHandler(cm).RegisterRoutes(r)
	srv := httptest.NewServer(r)

	t.Cleanup(func() {
		cancel()
		srv.Close()
	})
	return cm, b, srv
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/changes" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestChangeFeedDeliversFollowedCollections(t *testing.T) {
	cm, b, srv := startServer(t)

	games := dial(t, srv, "?collections=games")
	all := dial(t, srv, "")
	require.Eventually(t, func() bool { return cm.GetConnectionStats().TotalConnections == 2 }, time.Second, 5*time.Millisecond)

	b.Publish(store.Change{Collection: store.Athletes})
	b.Publish(store.Change{Collection: store.Games})

	read := func(conn *websocket.Conn) store.Change {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)
		var c store.Change
		require.NoError(t, json.Unmarshal(data, &c))
		return c
	}

	assert.Equal(t, store.Games, read(games).Collection, "athletes change is filtered out")
	assert.Equal(t, store.Athletes, read(all).Collection)
	assert.Equal(t, store.Games, read(all).Collection)
}

func TestConnectionStats(t *testing.T) {
	cm, _, srv := startServer(t)
	dial(t, srv, "?collections=games,athletes")

	require.Eventually(t, func() bool { return cm.GetConnectionStats().TotalConnections == 1 }, time.Second, 5*time.Millisecond)

	resp, err := http.Get(srv.URL + "/ws/stats")
	require.NoError(t, err)
	defer resp.Body.Close()

	var stats Stats
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	assert.Equal(t, 1, stats.TotalConnections)
	assert.Equal(t, map[string]int{"games": 1, "athletes": 1}, stats.Collections)
}

func TestUnknownCollectionRejected(t *testing.T) {
	_, _, srv := startServer(t)

	resp, err := http.Get(srv.URL + "/ws/changes?collections=games,teams")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestParseCollections(t *testing.T) {
	got, err := parseCollections(" games, ,ageGroups ")
	require.NoError(t, err)
	assert.Equal(t, []string{"games", "ageGroups"}, got)

	got, err = parseCollections("")
	require.NoError(t, err)
	assert.Empty(t, got)
}
