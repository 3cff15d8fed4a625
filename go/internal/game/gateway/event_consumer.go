package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/rs/zerolog/log"

	"github.com/scotty-olympics/olympics/go/internal/game/events"
	"github.com/scotty-olympics/olympics/go/internal/game/outbox/worker"
)

// JetStreamConsumerConfig holds configuration for the JetStream consumer
type JetStreamConsumerConfig struct {
	URL           string
	StreamName    string
	ConsumerName  string
	SubjectFilter string
	MaxDeliver    int
	AckWait       time.Duration
	MaxAckPending int
	MaxReconnects int
	ReconnectWait time.Duration
}

// DefaultJetStreamConsumerConfig returns default JetStream consumer configuration
func DefaultJetStreamConsumerConfig() JetStreamConsumerConfig {
	return JetStreamConsumerConfig{
		URL:           nats.DefaultURL,
		StreamName:    "GAME_EVENTS",
		ConsumerName:  "game-gateway",
		SubjectFilter: "game.events.>",
		MaxDeliver:    5,
		AckWait:       30 * time.Second,
		MaxAckPending: 100,
		MaxReconnects: -1,
		ReconnectWait: 2 * time.Second,
	}
}

// Broadcaster fans a game event out to subscribers.
type Broadcaster interface {
	BroadcastToGame(gameID uuid.UUID, event *GameEvent)
}

// EventConsumer consumes events from JetStream and broadcasts to WebSocket clients
type EventConsumer struct {
	broadcaster Broadcaster
	nc          *nats.Conn
	consumer    jetstream.Consumer
	config      JetStreamConsumerConfig
}

// NewEventConsumer connects to NATS and creates or reuses the durable consumer.
func NewEventConsumer(ctx context.Context, broadcaster Broadcaster, config JetStreamConsumerConfig) (*EventConsumer, error) {
	nc, err := worker.Connect(config.URL, config.MaxReconnects, config.ReconnectWait)
	if err != nil {
		return nil, err
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("create JetStream context: %w", err)
	}

	// The relay normally creates the stream; the gateway may start first.
	streamCfg := worker.DefaultJetStreamConfig()
	streamCfg.StreamName = config.StreamName
	if err := worker.EnsureStream(ctx, js, streamCfg); err != nil {
		nc.Close()
		return nil, err
	}

	consumer, err := js.CreateOrUpdateConsumer(ctx, config.StreamName, jetstream.ConsumerConfig{
		Name:          config.ConsumerName,
		Durable:       config.ConsumerName,
		Description:   "Game gateway WebSocket consumer",
		FilterSubject: config.SubjectFilter,
		DeliverPolicy: jetstream.DeliverNewPolicy,
		AckPolicy:     jetstream.AckExplicitPolicy,
		MaxDeliver:    config.MaxDeliver,
		AckWait:       config.AckWait,
		MaxAckPending: config.MaxAckPending,
		ReplayPolicy:  jetstream.ReplayInstantPolicy,
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("ensure consumer: %w", err)
	}

	log.Info().
		Str("consumer", config.ConsumerName).
		Str("stream", config.StreamName).
		Msg("JetStream consumer ready")

	return &EventConsumer{
		broadcaster: broadcaster,
		nc:          nc,
		consumer:    consumer,
		config:      config,
	}, nil
}

// Start consumes messages until ctx is done.
func (ec *EventConsumer) Start(ctx context.Context) error {
	log.Info().
		Str("consumer", ec.config.ConsumerName).
		Str("stream", ec.config.StreamName).
		Msg("starting JetStream event consumer")

	messageCh := make(chan jetstream.Msg, 100)

	consumeCtx, err := ec.consumer.Consume(func(msg jetstream.Msg) {
		select {
		case messageCh <- msg:
		case <-ctx.Done():
			msg.Nak()
		}
	})
	if err != nil {
		return fmt.Errorf("start consumer: %w", err)
	}
	defer consumeCtx.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("event consumer shutting down")
			return nil
		case msg := <-messageCh:
			if err := ec.HandleMessage(msg.Data()); err != nil {
				log.Error().
					Err(err).
					Str("subject", msg.Subject()).
					Msg("failed to process message")
				// Malformed messages will never succeed; drop them.
				if termErr := msg.Term(); termErr != nil {
					log.Error().Err(termErr).Msg("failed to terminate message")
				}
				continue
			}
			if ackErr := msg.Ack(); ackErr != nil {
				log.Error().Err(ackErr).Msg("failed to ACK message")
			}
		}
	}
}

// HandleMessage decodes one relayed envelope and broadcasts it to the game's subscribers.
func (ec *EventConsumer) HandleMessage(data []byte) error {
	var envelope worker.Envelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return fmt.Errorf("unmarshal event envelope: %w", err)
	}

	gameID, err := uuid.Parse(envelope.GameID)
	if err != nil {
		return fmt.Errorf("parse game ID: %w", err)
	}

	event := &GameEvent{
		ID:        envelope.EventID,
		GameID:    envelope.GameID,
		Type:      events.EventType(envelope.EventType),
		Timestamp: envelope.Timestamp,
		Data:      envelope.Payload,
	}
	if _, err := ParseEventPayload(event); err != nil {
		return err
	}

	ec.broadcaster.BroadcastToGame(gameID, event)

	log.Debug().
		Str("event_id", envelope.EventID).
		Str("game_id", envelope.GameID).
		Str("event_type", envelope.EventType).
		Msg("event broadcasted to WebSocket clients")
	return nil
}

// Stop closes the NATS connection.
func (ec *EventConsumer) Stop() error {
	log.Info().Msg("stopping event consumer")
	if ec.nc != nil {
		ec.nc.Close()
	}
	return nil
}
