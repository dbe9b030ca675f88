package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/pkg/api"
)

// BalanceServiceName is the fully-qualified name of the BalanceService service.
const BalanceServiceName = "settleup.v1.BalanceService"

// Procedure paths of the BalanceService RPCs.
const (
	BalanceServiceGetGroupBalancesProcedure = "/settleup.v1.BalanceService/GetGroupBalances"
	BalanceServiceGetUserBalanceProcedure   = "/settleup.v1.BalanceService/GetUserBalance"
	BalanceServiceGetUserSummaryProcedure   = "/settleup.v1.BalanceService/GetUserSummary"
)

// BalanceServiceHandler is implemented by the server side of BalanceService.
type BalanceServiceHandler interface {
	GetGroupBalances(context.Context, *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error)
	GetUserBalance(context.Context, *connect.Request[api.GetUserBalanceRequest]) (*connect.Response[api.GetUserBalanceResponse], error)
	GetUserSummary(context.Context, *connect.Request[api.GetUserSummaryRequest]) (*connect.Response[api.GetUserSummaryResponse], error)
}

// NewBalanceServiceHandler builds an HTTP handler from the service implementation.
func NewBalanceServiceHandler(svc BalanceServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(BalanceServiceGetGroupBalancesProcedure, connect.NewUnaryHandler(BalanceServiceGetGroupBalancesProcedure, svc.GetGroupBalances, opts...))
	mux.Handle(BalanceServiceGetUserBalanceProcedure, connect.NewUnaryHandler(BalanceServiceGetUserBalanceProcedure, svc.GetUserBalance, opts...))
	mux.Handle(BalanceServiceGetUserSummaryProcedure, connect.NewUnaryHandler(BalanceServiceGetUserSummaryProcedure, svc.GetUserSummary, opts...))
	return "/" + BalanceServiceName + "/", mux
}

// BalanceServiceClient is a client for the BalanceService service.
type BalanceServiceClient interface {
	GetGroupBalances(context.Context, *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error)
	GetUserBalance(context.Context, *connect.Request[api.GetUserBalanceRequest]) (*connect.Response[api.GetUserBalanceResponse], error)
	GetUserSummary(context.Context, *connect.Request[api.GetUserSummaryRequest]) (*connect.Response[api.GetUserSummaryResponse], error)
}

// NewBalanceServiceClient constructs a client for the BalanceService service at baseURL.
func NewBalanceServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) BalanceServiceClient {
	baseURL = trimBaseURL(baseURL)
	opts = clientOptions(opts)
	return &balanceServiceClient{
		getGroupBalances: connect.NewClient[api.GetGroupBalancesRequest, api.GetGroupBalancesResponse](httpClient, baseURL+BalanceServiceGetGroupBalancesProcedure, opts...),
		getUserBalance:   connect.NewClient[api.GetUserBalanceRequest, api.GetUserBalanceResponse](httpClient, baseURL+BalanceServiceGetUserBalanceProcedure, opts...),
		getUserSummary:   connect.NewClient[api.GetUserSummaryRequest, api.GetUserSummaryResponse](httpClient, baseURL+BalanceServiceGetUserSummaryProcedure, opts...),
	}
}

type balanceServiceClient struct {
	getGroupBalances *connect.Client[api.GetGroupBalancesRequest, api.GetGroupBalancesResponse]
	getUserBalance   *connect.Client[api.GetUserBalanceRequest, api.GetUserBalanceResponse]
	getUserSummary   *connect.Client[api.GetUserSummaryRequest, api.GetUserSummaryResponse]
}

func (c *balanceServiceClient) GetGroupBalances(ctx context.Context, req *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error) {
	return c.getGroupBalances.CallUnary(ctx, req)
}

func (c *balanceServiceClient) GetUserBalance(ctx context.Context, req *connect.Request[api.GetUserBalanceRequest]) (*connect.Response[api.GetUserBalanceResponse], error) {
	return c.getUserBalance.CallUnary(ctx, req)
}

func (c *balanceServiceClient) GetUserSummary(ctx context.Context, req *connect.Request[api.GetUserSummaryRequest]) (*connect.Response[api.GetUserSummaryResponse], error) {
	return c.getUserSummary.CallUnary(ctx, req)
}
