package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scotty-olympics/olympics/go/internal/game/events"
	"github.com/scotty-olympics/olympics/go/internal/game/outbox/worker"
	gamev1 "github.com/scotty-olympics/olympics/go/internal/rpc/gamev1"
)

type stubState map[uuid.UUID]*gamev1.Game

func (s stubState) GetGameState(_ context.Context, gameID uuid.UUID) (*gamev1.Game, error) {
	g, ok := s[gameID]
	if !ok {
		return nil, ErrGameNotFound
	}
	return g, nil
}

type testGateway struct {
	cm       *ConnectionManager
	consumer *EventConsumer
	srv      *httptest.Server
	state    stubState
}

func newTestGateway(t *testing.T) *testGateway {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	cm := NewConnectionManager(DefaultConnectionConfig())
	go cm.Start(ctx)

	state := stubState{}
	gw := &Gateway{conns: cm, ws: NewWebSocketHandler(cm, state)}
	srv := httptest.NewServer(gw.Handler())

	t.Cleanup(func() {
		cancel()
		srv.Close()
	})

	return &testGateway{
		cm:       cm,
		consumer: &EventConsumer{broadcaster: cm},
		srv:      srv,
		state:    state,
	}
}

func (g *testGateway) addGame(status gamev1.GameStatus) uuid.UUID {
	id := uuid.New()
	g.state[id] = &gamev1.Game{Id: id.String(), Status: status}
	return id
}

// dial connects to a game and consumes the snapshot. The connection is
// registered for broadcasts once the snapshot has been received.
func (g *testGateway) dial(t *testing.T, gameID uuid.UUID) (*websocket.Conn, *GameEvent) {
	t.Helper()

	url := "ws" + strings.TrimPrefix(g.srv.URL, "http") + "/ws/game?game_id=" + gameID.String()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return conn, readEvent(t, conn)
}

func readEvent(t *testing.T, conn *websocket.Conn) *GameEvent {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var event GameEvent
	require.NoError(t, json.Unmarshal(data, &event))
	return &event
}

func envelope(t *testing.T, gameID uuid.UUID, eventType events.EventType, payload any) []byte {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)
	data, err := json.Marshal(worker.NewEnvelope(worker.OutboxEvent{
		ID:        uuid.New(),
		GameID:    gameID,
		EventType: string(eventType),
		Payload:   body,
	}, time.Now()))
	require.NoError(t, err)
	return data
}

func TestWebSocket_SendsSnapshotFirst(t *testing.T) {
	g := newTestGateway(t)
	gameID := g.addGame(gamev1.GameStatusWaiting)

	_, snapshot := g.dial(t, gameID)
	assert.Equal(t, EventTypeSnapshot, snapshot.Type)
	assert.Equal(t, gameID.String(), snapshot.GameID)

	var game gamev1.Game
	require.NoError(t, json.Unmarshal(snapshot.Data, &game))
	assert.Equal(t, gameID.String(), game.Id)
	assert.Equal(t, gamev1.GameStatusWaiting, game.Status)
}

func TestWebSocket_RejectsBadRequests(t *testing.T) {
	g := newTestGateway(t)

	cases := map[string]int{
		"/ws/game":                                 http.StatusBadRequest,
		"/ws/game?game_id=nope":                    http.StatusBadRequest,
		"/ws/game?game_id=" + uuid.New().String(): http.StatusNotFound,
	}
	for path, want := range cases {
		resp, err := http.Get(g.srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, want, resp.StatusCode, path)
	}
}

func TestEventConsumer_BroadcastsToGameSubscribers(t *testing.T) {
	g := newTestGateway(t)
	watched := g.addGame(gamev1.GameStatusStarting)
	other := g.addGame(gamev1.GameStatusWaiting)

	conn, _ := g.dial(t, watched)
	otherConn, _ := g.dial(t, other)

	startedAt := time.Date(2025, 8, 2, 15, 0, 3, 0, time.UTC)
	require.NoError(t, g.consumer.HandleMessage(envelope(t, watched, events.GameStarted, events.GameStartedPayload{
		GameID:    watched.String(),
		StartedAt: startedAt,
		EndsAt:    startedAt.Add(10 * time.Second),
	})))

	event := readEvent(t, conn)
	assert.Equal(t, events.GameStarted, event.Type)
	assert.Equal(t, watched.String(), event.GameID)

	payload, err := ParseEventPayload(event)
	require.NoError(t, err)
	started, ok := payload.(*events.GameStartedPayload)
	require.True(t, ok)
	assert.True(t, started.StartedAt.Equal(startedAt))

	require.NoError(t, otherConn.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err = otherConn.ReadMessage()
	assert.Error(t, err, "other game must not receive the event")
}

func TestEventConsumer_RejectsMalformedMessages(t *testing.T) {
	g := newTestGateway(t)
	gameID := uuid.New()

	assert.Error(t, g.consumer.HandleMessage([]byte("{")))
	assert.Error(t, g.consumer.HandleMessage([]byte(`{"gameId":"nope","eventType":"GameStarted","payload":{}}`)))
	assert.Error(t, g.consumer.HandleMessage(envelope(t, gameID, "TapCountUpdated", map[string]any{})))
}

func TestWebSocket_ConnectionStats(t *testing.T) {
	g := newTestGateway(t)
	gameID := g.addGame(gamev1.GameStatusWaiting)

	g.dial(t, gameID)
	g.dial(t, gameID)

	resp, err := http.Get(g.srv.URL + "/ws/stats")
	require.NoError(t, err)
	defer resp.Body.Close()

	var stats ConnectionStats
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	assert.Equal(t, 2, stats.TotalConnections)
	assert.Equal(t, 1, stats.ActiveGames)
	assert.Equal(t, 2, stats.GameConnections[gameID.String()])
}

func TestGateway_InfoReportsConnections(t *testing.T) {
	g := newTestGateway(t)
	gameID := g.addGame(gamev1.GameStatusWaiting)
	g.dial(t, gameID)

	health, err := http.Get(g.srv.URL + "/health")
	require.NoError(t, err)
	health.Body.Close()
	assert.Equal(t, http.StatusOK, health.StatusCode)

	resp, err := http.Get(g.srv.URL + "/info")
	require.NoError(t, err)
	defer resp.Body.Close()

	var info struct {
		Service     string `json:"service"`
		Connections int    `json:"connections"`
		ActiveGames int    `json:"active_games"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&info))
	assert.Equal(t, "game-gateway", info.Service)
	assert.Equal(t, 1, info.Connections)
	assert.Equal(t, 1, info.ActiveGames)
}
