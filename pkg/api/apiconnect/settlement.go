package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/pkg/api"
)

// SettlementServiceName is the fully-qualified name of the SettlementService service.
const SettlementServiceName = "settleup.v1.SettlementService"

// Procedure paths of the SettlementService RPCs.
const (
	SettlementServiceRecordSettlementProcedure = "/settleup.v1.SettlementService/RecordSettlement"
	SettlementServiceListSettlementsProcedure  = "/settleup.v1.SettlementService/ListSettlements"
)

// SettlementServiceHandler is implemented by the server side of SettlementService.
type SettlementServiceHandler interface {
	RecordSettlement(context.Context, *connect.Request[api.RecordSettlementRequest]) (*connect.Response[api.RecordSettlementResponse], error)
	ListSettlements(context.Context, *connect.Request[api.ListSettlementsRequest]) (*connect.Response[api.ListSettlementsResponse], error)
}

// NewSettlementServiceHandler builds an HTTP handler from the service implementation.
func NewSettlementServiceHandler(svc SettlementServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(SettlementServiceRecordSettlementProcedure, connect.NewUnaryHandler(SettlementServiceRecordSettlementProcedure, svc.RecordSettlement, opts...))
	mux.Handle(SettlementServiceListSettlementsProcedure, connect.NewUnaryHandler(SettlementServiceListSettlementsProcedure, svc.ListSettlements, opts...))
	return "/" + SettlementServiceName + "/", mux
}

// SettlementServiceClient is a client for the SettlementService service.
type SettlementServiceClient interface {
	RecordSettlement(context.Context, *connect.Request[api.RecordSettlementRequest]) (*connect.Response[api.RecordSettlementResponse], error)
	ListSettlements(context.Context, *connect.Request[api.ListSettlementsRequest]) (*connect.Response[api.ListSettlementsResponse], error)
}

// NewSettlementServiceClient constructs a client for the SettlementService service at baseURL.
func NewSettlementServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) SettlementServiceClient {
	baseURL = trimBaseURL(baseURL)
	opts = clientOptions(opts)
	return &settlementServiceClient{
		recordSettlement: connect.NewClient[api.RecordSettlementRequest, api.RecordSettlementResponse](httpClient, baseURL+SettlementServiceRecordSettlementProcedure, opts...),
		listSettlements:  connect.NewClient[api.ListSettlementsRequest, api.ListSettlementsResponse](httpClient, baseURL+SettlementServiceListSettlementsProcedure, opts...),
	}
}

type settlementServiceClient struct {
	recordSettlement *connect.Client[api.RecordSettlementRequest, api.RecordSettlementResponse]
	listSettlements  *connect.Client[api.ListSettlementsRequest, api.ListSettlementsResponse]
}

func (c *settlementServiceClient) RecordSettlement(ctx context.Context, req *connect.Request[api.RecordSettlementRequest]) (*connect.Response[api.RecordSettlementResponse], error) {
	return c.recordSettlement.CallUnary(ctx, req)
}

func (c *settlementServiceClient) ListSettlements(ctx context.Context, req *connect.Request[api.ListSettlementsRequest]) (*connect.Response[api.ListSettlementsResponse], error) {
	return c.listSettlements.CallUnary(ctx, req)
}
