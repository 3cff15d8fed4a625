package participantv1connect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/scotty-olympics/olympics/go/internal/rpc"
	participantv1 "github.com/scotty-olympics/olympics/go/internal/rpc/participantv1"
)

// ParticipantServiceName is the fully-qualified name of the ParticipantService.
const ParticipantServiceName = "olympics.participant.v1.ParticipantService"

const (
	ParticipantServiceGetMeProcedure            = "/olympics.participant.v1.ParticipantService/GetMe"
	ParticipantServiceListParticipantsProcedure = "/olympics.participant.v1.ParticipantService/ListParticipants"
)

// ParticipantServiceClient is a client for the olympics.participant.v1.ParticipantService service.
type ParticipantServiceClient interface {
	GetMe(context.Context, *connect.Request[participantv1.GetMeRequest]) (*connect.Response[participantv1.GetMeResponse], error)
	ListParticipants(context.Context, *connect.Request[participantv1.ListParticipantsRequest]) (*connect.Response[participantv1.ListParticipantsResponse], error)
}

// NewParticipantServiceClient constructs a client for the ParticipantService. The
// baseURL should include the scheme and host, e.g. http://localhost:8080.
func NewParticipantServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ParticipantServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = rpc.ClientOptions(opts...)
	return &participantServiceClient{
		getMe: connect.NewClient[participantv1.GetMeRequest, participantv1.GetMeResponse](
			httpClient,
			baseURL+ParticipantServiceGetMeProcedure,
			opts...,
		),
		listParticipants: connect.NewClient[participantv1.ListParticipantsRequest, participantv1.ListParticipantsResponse](
			httpClient,
			baseURL+ParticipantServiceListParticipantsProcedure,
			opts...,
		),
	}
}

type participantServiceClient struct {
	getMe            *connect.Client[participantv1.GetMeRequest, participantv1.GetMeResponse]
	listParticipants *connect.Client[participantv1.ListParticipantsRequest, participantv1.ListParticipantsResponse]
}

func (c *participantServiceClient) GetMe(ctx context.Context, req *connect.Request[participantv1.GetMeRequest]) (*connect.Response[participantv1.GetMeResponse], error) {
	return c.getMe.CallUnary(ctx, req)
}

func (c *participantServiceClient) ListParticipants(ctx context.Context, req *connect.Request[participantv1.ListParticipantsRequest]) (*connect.Response[participantv1.ListParticipantsResponse], error) {
	return c.listParticipants.CallUnary(ctx, req)
}

// ParticipantServiceHandler is implemented by the participant service.
type ParticipantServiceHandler interface {
	GetMe(context.Context, *connect.Request[participantv1.GetMeRequest]) (*connect.Response[participantv1.GetMeResponse], error)
	ListParticipants(context.Context, *connect.Request[participantv1.ListParticipantsRequest]) (*connect.Response[participantv1.ListParticipantsResponse], error)
}

// NewParticipantServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewParticipantServiceHandler(svc ParticipantServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = rpc.HandlerOptions(opts...)
	getMeHandler := connect.NewUnaryHandler(ParticipantServiceGetMeProcedure, svc.GetMe, opts...)
	listParticipantsHandler := connect.NewUnaryHandler(ParticipantServiceListParticipantsProcedure, svc.ListParticipants, opts...)
	return "/" + ParticipantServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case ParticipantServiceGetMeProcedure:
			getMeHandler.ServeHTTP(w, r)
		case ParticipantServiceListParticipantsProcedure:
			listParticipantsHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}
