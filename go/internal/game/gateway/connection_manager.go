package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// ConnectionConfig holds WebSocket limits and timeouts.
type ConnectionConfig struct {
	WriteTimeout    time.Duration
	ReadTimeout     time.Duration
	PingInterval    time.Duration
	MaxMessageSize  int64
	ReadBufferSize  int
	WriteBufferSize int
	SendBuffer      int
	BroadcastBuffer int
	CheckOrigin     func(r *http.Request) bool
}

// DefaultConnectionConfig returns default WebSocket configuration
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		WriteTimeout:    10 * time.Second,
		ReadTimeout:     60 * time.Second,
		PingInterval:    30 * time.Second,
		MaxMessageSize:  1024,
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		SendBuffer:      256,
		BroadcastBuffer: 1000,
		CheckOrigin:     func(*http.Request) bool { return true },
	}
}

// subscriber is one WebSocket client watching a single game.
type subscriber struct {
	id     string
	gameID uuid.UUID
	ws     *websocket.Conn
	out    chan []byte
	since  time.Time
}

type broadcast struct {
	gameID uuid.UUID
	event  *GameEvent
}

// ConnectionManager groups subscribers into per-game rooms and fans events
// out to them. A subscriber's out channel is only closed under the write
// lock, so sends made under the read lock never hit a closed channel.
type ConnectionManager struct {
	mu    sync.RWMutex
	rooms map[uuid.UUID]map[*subscriber]struct{}

	upgrader websocket.Upgrader
	config   ConnectionConfig
	queue    chan broadcast
}

// NewConnectionManager creates a new WebSocket connection manager
func NewConnectionManager(config ConnectionConfig) *ConnectionManager {
	return &ConnectionManager{
		rooms: make(map[uuid.UUID]map[*subscriber]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		config: config,
		queue:  make(chan broadcast, config.BroadcastBuffer),
	}
}

// Start delivers queued broadcasts until ctx is done, then closes every socket.
func (cm *ConnectionManager) Start(ctx context.Context) {
	log.Info().Msg("connection manager started")

	for {
		select {
		case <-ctx.Done():
			cm.closeAll()
			log.Info().Msg("connection manager stopped")
			return
		case b := <-cm.queue:
			cm.deliver(b)
		}
	}
}

// UpgradeConnection upgrades an HTTP connection to WebSocket. initial, when
// non-nil, is queued as the first message the client receives.
func (cm *ConnectionManager) UpgradeConnection(w http.ResponseWriter, r *http.Request, gameID uuid.UUID, initial *GameEvent) error {
	ws, err := cm.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("failed to upgrade connection: %w", err)
	}

	sub := &subscriber{
		id:     uuid.NewString(),
		gameID: gameID,
		ws:     ws,
		out:    make(chan []byte, cm.config.SendBuffer),
		since:  time.Now(),
	}
	if initial != nil {
		data, err := json.Marshal(initial)
		if err != nil {
			ws.Close()
			return fmt.Errorf("marshal initial event: %w", err)
		}
		sub.out <- data
	}

	cm.join(sub)
	go cm.writeLoop(sub)
	go cm.readLoop(sub)

	log.Info().
		Str("connection_id", sub.id).
		Str("game_id", gameID.String()).
		Msg("WebSocket connection established")
	return nil
}

// BroadcastToGame queues an event for every subscriber of gameID. Events are
// dropped when the queue is full.
func (cm *ConnectionManager) BroadcastToGame(gameID uuid.UUID, event *GameEvent) {
	select {
	case cm.queue <- broadcast{gameID: gameID, event: event}:
	default:
		log.Warn().Str("game_id", gameID.String()).Msg("broadcast queue full, dropping event")
	}
}

func (cm *ConnectionManager) join(sub *subscriber) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	room, ok := cm.rooms[sub.gameID]
	if !ok {
		room = make(map[*subscriber]struct{})
		cm.rooms[sub.gameID] = room
	}
	room[sub] = struct{}{}
}

// leave removes sub and closes its out channel. Safe to call more than once.
func (cm *ConnectionManager) leave(sub *subscriber) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	room := cm.rooms[sub.gameID]
	if _, ok := room[sub]; !ok {
		return
	}
	delete(room, sub)
	close(sub.out)
	if len(room) == 0 {
		delete(cm.rooms, sub.gameID)
	}

	log.Info().
		Str("connection_id", sub.id).
		Str("game_id", sub.gameID.String()).
		Dur("connected_for", time.Since(sub.since)).
		Msg("connection closed")
}

func (cm *ConnectionManager) closeAll() {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	for gameID, room := range cm.rooms {
		for sub := range room {
			close(sub.out)
		}
		delete(cm.rooms, gameID)
	}
}

func (cm *ConnectionManager) deliver(b broadcast) {
	data, err := json.Marshal(b.event)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal event for broadcast")
		return
	}

	var slow []*subscriber
	cm.mu.RLock()
	room := cm.rooms[b.gameID]
	for sub := range room {
		select {
		case sub.out <- data:
		default:
			slow = append(slow, sub)
		}
	}
	delivered := len(room) - len(slow)
	cm.mu.RUnlock()

	for _, sub := range slow {
		log.Warn().Str("connection_id", sub.id).Msg("subscriber too slow, disconnecting")
		cm.leave(sub)
	}

	log.Debug().
		Str("event_type", string(b.event.Type)).
		Str("game_id", b.gameID.String()).
		Int("delivered", delivered).
		Msg("event broadcasted")
}

// ConnectionStats is a point-in-time count of open connections.
type ConnectionStats struct {
	TotalConnections int            `json:"total_connections"`
	ActiveGames      int            `json:"active_games"`
	GameConnections  map[string]int `json:"game_connections"`
}

// GetConnectionStats returns statistics about active connections
func (cm *ConnectionManager) GetConnectionStats() ConnectionStats {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	stats := ConnectionStats{
		ActiveGames:     len(cm.rooms),
		GameConnections: make(map[string]int, len(cm.rooms)),
	}
	for gameID, room := range cm.rooms {
		stats.TotalConnections += len(room)
		stats.GameConnections[gameID.String()] = len(room)
	}
	return stats
}

// writeLoop owns all writes to the socket. It exits when out is closed or a
// write fails.
func (cm *ConnectionManager) writeLoop(sub *subscriber) {
	ping := time.NewTicker(cm.config.PingInterval)
	defer func() {
		ping.Stop()
		sub.ws.Close()
		cm.leave(sub)
	}()

	write := func(messageType int, data []byte) error {
		sub.ws.SetWriteDeadline(time.Now().Add(cm.config.WriteTimeout))
		return sub.ws.WriteMessage(messageType, data)
	}

	for {
		select {
		case data, ok := <-sub.out:
			if !ok {
				write(websocket.CloseMessage, []byte{})
				return
			}
			if err := write(websocket.TextMessage, data); err != nil {
				log.Debug().Err(err).Str("connection_id", sub.id).Msg("write failed")
				return
			}
		case <-ping.C:
			if err := write(websocket.PingMessage, nil); err != nil {
				log.Debug().Err(err).Str("connection_id", sub.id).Msg("ping failed")
				return
			}
		}
	}
}

// readLoop discards client frames; it exists so pongs and close frames are
// processed and dead peers time out.
func (cm *ConnectionManager) readLoop(sub *subscriber) {
	defer func() {
		cm.leave(sub)
		sub.ws.Close()
	}()

	extend := func() { sub.ws.SetReadDeadline(time.Now().Add(cm.config.ReadTimeout)) }

	sub.ws.SetReadLimit(cm.config.MaxMessageSize)
	extend()
	sub.ws.SetPongHandler(func(string) error {
		extend()
		return nil
	})

	for {
		if _, _, err := sub.ws.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn().Err(err).Str("connection_id", sub.id).Msg("unexpected WebSocket close")
			}
			return
		}
		extend()
	}
}
