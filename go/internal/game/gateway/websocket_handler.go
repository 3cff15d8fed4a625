package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// WebSocketHandler handles WebSocket upgrade requests for game connections
type WebSocketHandler struct {
	connectionManager *ConnectionManager
	state             StateProvider
}

// NewWebSocketHandler creates a new WebSocket handler. state may be nil, in
// which case clients get no snapshot on connect.
func NewWebSocketHandler(cm *ConnectionManager, state StateProvider) *WebSocketHandler {
	return &WebSocketHandler{
		connectionManager: cm,
		state:             state,
	}
}

// HandleGameConnection subscribes a client to the events of one game.
func (h *WebSocketHandler) HandleGameConnection(w http.ResponseWriter, r *http.Request) {
	gameIDStr := r.URL.Query().Get("game_id")
	if gameIDStr == "" {
		http.Error(w, "game_id is required", http.StatusBadRequest)
		return
	}

	gameID, err := uuid.Parse(gameIDStr)
	if err != nil {
		http.Error(w, "invalid game_id format", http.StatusBadRequest)
		return
	}

	var snapshot *GameEvent
	if h.state != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		game, err := h.state.GetGameState(ctx, gameID)
		cancel()
		switch {
		case errors.Is(err, ErrGameNotFound):
			http.Error(w, "game not found", http.StatusNotFound)
			return
		case err != nil:
			log.Error().Err(err).Str("game_id", gameID.String()).Msg("failed to load game snapshot")
			http.Error(w, "failed to load game", http.StatusBadGateway)
			return
		}

		data, err := json.Marshal(game)
		if err != nil {
			http.Error(w, "failed to encode game", http.StatusInternalServerError)
			return
		}
		snapshot = &GameEvent{
			ID:        uuid.NewString(),
			GameID:    gameID.String(),
			Type:      EventTypeSnapshot,
			Timestamp: time.Now().UTC(),
			Data:      data,
		}
	}

	// The upgrader writes its own HTTP error response on failure.
	if err := h.connectionManager.UpgradeConnection(w, r, gameID, snapshot); err != nil {
		log.Error().
			Err(err).
			Str("game_id", gameID.String()).
			Msg("failed to upgrade WebSocket connection")
	}
}

// HandleConnectionStats returns statistics about active connections
func (h *WebSocketHandler) HandleConnectionStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.connectionManager.GetConnectionStats()); err != nil {
		log.Error().Err(err).Msg("failed to write connection stats")
	}
}

// RegisterRoutes registers WebSocket routes with an HTTP mux
func (h *WebSocketHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/ws/game", h.HandleGameConnection)
	mux.HandleFunc("/ws/stats", h.HandleConnectionStats)
}
