package main

import (
	"net/http"

	"connectrpc.com/connect"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/scotty-olympics/olympics/go/internal/config"
	"github.com/scotty-olympics/olympics/go/internal/rpc/gamev1/gamev1connect"
	"github.com/scotty-olympics/olympics/go/internal/rpc/leaderboardv1/leaderboardv1connect"
	"github.com/scotty-olympics/olympics/go/internal/rpc/participantv1/participantv1connect"
)

func setupServer(cfg *config.Config, services *Services) *http.Server {
	mux := http.NewServeMux()

	c := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
		},
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedHeaders: []string{"*"},
	})

	registerServices(mux, services)
	setupHealthCheck(mux)

	handler := c.Handler(mux)

	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: h2c.NewHandler(handler, &http2.Server{}),
	}
}

func registerServices(mux *http.ServeMux, services *Services) {
	interceptors := connect.WithInterceptors(services.Interceptor)

	participantServicePath, participantServiceHandler := participantv1connect.NewParticipantServiceHandler(services.Participants, interceptors)
	mux.Handle(participantServicePath, participantServiceHandler)

	leaderboardServicePath, leaderboardServiceHandler := leaderboardv1connect.NewLeaderboardServiceHandler(services.Leaderboard, interceptors)
	mux.Handle(leaderboardServicePath, leaderboardServiceHandler)

	gameServicePath, gameServiceHandler := gamev1connect.NewGameServiceHandler(services.Game, interceptors)
	mux.Handle(gameServicePath, gameServiceHandler)
}

func setupHealthCheck(mux *http.ServeMux) {
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Error().Err(err).Msg("failed to write health check response")
		}
	})
}
