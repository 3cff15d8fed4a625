package leaderboardv1connect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/scotty-olympics/olympics/go/internal/rpc"
	leaderboardv1 "github.com/scotty-olympics/olympics/go/internal/rpc/leaderboardv1"
)

// LeaderboardServiceName is the fully-qualified name of the LeaderboardService.
const LeaderboardServiceName = "olympics.leaderboard.v1.LeaderboardService"

const (
	LeaderboardServiceListEventsProcedure          = "/olympics.leaderboard.v1.LeaderboardService/ListEvents"
	LeaderboardServiceCreateEventProcedure         = "/olympics.leaderboard.v1.LeaderboardService/CreateEvent"
	LeaderboardServiceRecordScoreProcedure         = "/olympics.leaderboard.v1.LeaderboardService/RecordScore"
	LeaderboardServiceGetEventStandingsProcedure   = "/olympics.leaderboard.v1.LeaderboardService/GetEventStandings"
	LeaderboardServiceGetOverallStandingsProcedure = "/olympics.leaderboard.v1.LeaderboardService/GetOverallStandings"
)

// LeaderboardServiceClient is a client for the olympics.leaderboard.v1.LeaderboardService service.
type LeaderboardServiceClient interface {
	ListEvents(context.Context, *connect.Request[leaderboardv1.ListEventsRequest]) (*connect.Response[leaderboardv1.ListEventsResponse], error)
	CreateEvent(context.Context, *connect.Request[leaderboardv1.CreateEventRequest]) (*connect.Response[leaderboardv1.CreateEventResponse], error)
	RecordScore(context.Context, *connect.Request[leaderboardv1.RecordScoreRequest]) (*connect.Response[leaderboardv1.RecordScoreResponse], error)
	GetEventStandings(context.Context, *connect.Request[leaderboardv1.GetEventStandingsRequest]) (*connect.Response[leaderboardv1.GetEventStandingsResponse], error)
	GetOverallStandings(context.Context, *connect.Request[leaderboardv1.GetOverallStandingsRequest]) (*connect.Response[leaderboardv1.GetOverallStandingsResponse], error)
}

// NewLeaderboardServiceClient constructs a client for the LeaderboardService.
func NewLeaderboardServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) LeaderboardServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = rpc.ClientOptions(opts...)
	return &leaderboardServiceClient{
		listEvents: connect.NewClient[leaderboardv1.ListEventsRequest, leaderboardv1.ListEventsResponse](
			httpClient,
			baseURL+LeaderboardServiceListEventsProcedure,
			opts...,
		),
		createEvent: connect.NewClient[leaderboardv1.CreateEventRequest, leaderboardv1.CreateEventResponse](
			httpClient,
			baseURL+LeaderboardServiceCreateEventProcedure,
			opts...,
		),
		recordScore: connect.NewClient[leaderboardv1.RecordScoreRequest, leaderboardv1.RecordScoreResponse](
			httpClient,
			baseURL+LeaderboardServiceRecordScoreProcedure,
			opts...,
		),
		getEventStandings: connect.NewClient[leaderboardv1.GetEventStandingsRequest, leaderboardv1.GetEventStandingsResponse](
			httpClient,
			baseURL+LeaderboardServiceGetEventStandingsProcedure,
			opts...,
		),
		getOverallStandings: connect.NewClient[leaderboardv1.GetOverallStandingsRequest, leaderboardv1.GetOverallStandingsResponse](
			httpClient,
			baseURL+LeaderboardServiceGetOverallStandingsProcedure,
			opts...,
		),
	}
}

type leaderboardServiceClient struct {
	listEvents          *connect.Client[leaderboardv1.ListEventsRequest, leaderboardv1.ListEventsResponse]
	createEvent         *connect.Client[leaderboardv1.CreateEventRequest, leaderboardv1.CreateEventResponse]
	recordScore         *connect.Client[leaderboardv1.RecordScoreRequest, leaderboardv1.RecordScoreResponse]
	getEventStandings   *connect.Client[leaderboardv1.GetEventStandingsRequest, leaderboardv1.GetEventStandingsResponse]
	getOverallStandings *connect.Client[leaderboardv1.GetOverallStandingsRequest, leaderboardv1.GetOverallStandingsResponse]
}

func (c *leaderboardServiceClient) ListEvents(ctx context.Context, req *connect.Request[leaderboardv1.ListEventsRequest]) (*connect.Response[leaderboardv1.ListEventsResponse], error) {
	return c.listEvents.CallUnary(ctx, req)
}

func (c *leaderboardServiceClient) CreateEvent(ctx context.Context, req *connect.Request[leaderboardv1.CreateEventRequest]) (*connect.Response[leaderboardv1.CreateEventResponse], error) {
	return c.createEvent.CallUnary(ctx, req)
}

func (c *leaderboardServiceClient) RecordScore(ctx context.Context, req *connect.Request[leaderboardv1.RecordScoreRequest]) (*connect.Response[leaderboardv1.RecordScoreResponse], error) {
	return c.recordScore.CallUnary(ctx, req)
}

func (c *leaderboardServiceClient) GetEventStandings(ctx context.Context, req *connect.Request[leaderboardv1.GetEventStandingsRequest]) (*connect.Response[leaderboardv1.GetEventStandingsResponse], error) {
	return c.getEventStandings.CallUnary(ctx, req)
}

func (c *leaderboardServiceClient) GetOverallStandings(ctx context.Context, req *connect.Request[leaderboardv1.GetOverallStandingsRequest]) (*connect.Response[leaderboardv1.GetOverallStandingsResponse], error) {
	return c.getOverallStandings.CallUnary(ctx, req)
}

// LeaderboardServiceHandler is implemented by the leaderboard service.
type LeaderboardServiceHandler interface {
	ListEvents(context.Context, *connect.Request[leaderboardv1.ListEventsRequest]) (*connect.Response[leaderboardv1.ListEventsResponse], error)
	CreateEvent(context.Context, *connect.Request[leaderboardv1.CreateEventRequest]) (*connect.Response[leaderboardv1.CreateEventResponse], error)
	RecordScore(context.Context, *connect.Request[leaderboardv1.RecordScoreRequest]) (*connect.Response[leaderboardv1.RecordScoreResponse], error)
	GetEventStandings(context.Context, *connect.Request[leaderboardv1.GetEventStandingsRequest]) (*connect.Response[leaderboardv1.GetEventStandingsResponse], error)
	GetOverallStandings(context.Context, *connect.Request[leaderboardv1.GetOverallStandingsRequest]) (*connect.Response[leaderboardv1.GetOverallStandingsResponse], error)
}

// NewLeaderboardServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewLeaderboardServiceHandler(svc LeaderboardServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = rpc.HandlerOptions(opts...)
	listEventsHandler := connect.NewUnaryHandler(LeaderboardServiceListEventsProcedure, svc.ListEvents, opts...)
	createEventHandler := connect.NewUnaryHandler(LeaderboardServiceCreateEventProcedure, svc.CreateEvent, opts...)
	recordScoreHandler := connect.NewUnaryHandler(LeaderboardServiceRecordScoreProcedure, svc.RecordScore, opts...)
	getEventStandingsHandler := connect.NewUnaryHandler(LeaderboardServiceGetEventStandingsProcedure, svc.GetEventStandings, opts...)
	getOverallStandingsHandler := connect.NewUnaryHandler(LeaderboardServiceGetOverallStandingsProcedure, svc.GetOverallStandings, opts...)
	return "/" + LeaderboardServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case LeaderboardServiceListEventsProcedure:
			listEventsHandler.ServeHTTP(w, r)
		case LeaderboardServiceCreateEventProcedure:
			createEventHandler.ServeHTTP(w, r)
		case LeaderboardServiceRecordScoreProcedure:
			recordScoreHandler.ServeHTTP(w, r)
		case LeaderboardServiceGetEventStandingsProcedure:
			getEventStandingsHandler.ServeHTTP(w, r)
		case LeaderboardServiceGetOverallStandingsProcedure:
			getOverallStandingsHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}
