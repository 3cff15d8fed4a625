package gateway

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/scotty-olympics/olympics/go/internal/game/events"
)

// GameEvent is the message pushed to websocket clients.
type GameEvent struct {
	ID        string           `json:"id"`
	GameID    string           `json:"game_id"`
	Type      events.EventType `json:"type"`
	Timestamp time.Time        `json:"timestamp"`
	Data      json.RawMessage  `json:"data"`
}

// EventTypeSnapshot carries the full game state, sent once when a client connects.
const EventTypeSnapshot events.EventType = "GameSnapshot"

// ParseEventPayload decodes event data into its payload struct.
func ParseEventPayload(event *GameEvent) (any, error) {
	var payload any
	switch event.Type {
	case events.GameCreated:
		payload = &events.GameCreatedPayload{}
	case events.ParticipantJoined:
		payload = &events.ParticipantJoinedPayload{}
	case events.GameStarting:
		payload = &events.GameStartingPayload{}
	case events.GameStarted:
		payload = &events.GameStartedPayload{}
	case events.GameFinished:
		payload = &events.GameFinishedPayload{}
	case events.GameReconciled:
		payload = &events.GameReconciledPayload{}
	default:
		return nil, fmt.Errorf("unknown event type: %s", event.Type)
	}
	if err := json.Unmarshal(event.Data, payload); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", event.Type, err)
	}
	return payload, nil
}
