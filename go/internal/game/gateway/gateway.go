package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Options configures a Gateway.
type Options struct {
	Connections ConnectionConfig
	JetStream   JetStreamConsumerConfig
}

// DefaultOptions returns local-development defaults.
func DefaultOptions() Options {
	return Options{
		Connections: DefaultConnectionConfig(),
		JetStream:   DefaultJetStreamConsumerConfig(),
	}
}

// Gateway fans game events from JetStream out to WebSocket subscribers.
type Gateway struct {
	conns    *ConnectionManager
	ws       *WebSocketHandler
	consumer *EventConsumer
}

// New connects to JetStream and binds the durable consumer. state supplies
// the snapshot sent to each new subscriber.
func New(ctx context.Context, opts Options, state StateProvider) (*Gateway, error) {
	conns := NewConnectionManager(opts.Connections)

	consumer, err := NewEventConsumer(ctx, conns, opts.JetStream)
	if err != nil {
		return nil, fmt.Errorf("failed to create event consumer: %w", err)
	}

	return &Gateway{
		conns:    conns,
		ws:       NewWebSocketHandler(conns, state),
		consumer: consumer,
	}, nil
}

// Run blocks until ctx is cancelled or the consumer fails. Open sockets are
// closed on return.
func (g *Gateway) Run(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		g.conns.Start(ctx)
		return nil
	})
	eg.Go(func() error {
		defer g.consumer.Stop()
		if err := g.consumer.Start(ctx); err != nil {
			return fmt.Errorf("consume game events: %w", err)
		}
		return nil
	})

	err := eg.Wait()
	log.Info().Err(err).Msg("game gateway stopped")
	return err
}

// Handler serves the WebSocket routes plus /health and /info.
func (g *Gateway) Handler() http.Handler {
	mux := http.NewServeMux()
	g.ws.RegisterRoutes(mux)

	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.HandleFunc("/info", func(w http.ResponseWriter, _ *http.Request) {
		stats := g.conns.GetConnectionStats()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"service":      "game-gateway",
			"connections":  stats.TotalConnections,
			"active_games": stats.ActiveGames,
		})
	})
	return mux
}
