package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/pkg/api"
)

// ExpenseServiceName is the fully-qualified name of the ExpenseService service.
const ExpenseServiceName = "settleup.v1.ExpenseService"

// Procedure paths of the ExpenseService RPCs.
const (
	ExpenseServiceCreateExpenseProcedure = "/settleup.v1.ExpenseService/CreateExpense"
	ExpenseServiceListExpensesProcedure  = "/settleup.v1.ExpenseService/ListExpenses"
	ExpenseServiceSettleExpenseProcedure = "/settleup.v1.ExpenseService/SettleExpense"
)

// ExpenseServiceHandler is implemented by the server side of ExpenseService.
type ExpenseServiceHandler interface {
	CreateExpense(context.Context, *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	SettleExpense(context.Context, *connect.Request[api.SettleExpenseRequest]) (*connect.Response[api.SettleExpenseResponse], error)
}

// NewExpenseServiceHandler builds an HTTP handler from the service implementation.
func NewExpenseServiceHandler(svc ExpenseServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(ExpenseServiceCreateExpenseProcedure, connect.NewUnaryHandler(ExpenseServiceCreateExpenseProcedure, svc.CreateExpense, opts...))
	mux.Handle(ExpenseServiceListExpensesProcedure, connect.NewUnaryHandler(ExpenseServiceListExpensesProcedure, svc.ListExpenses, opts...))
	mux.Handle(ExpenseServiceSettleExpenseProcedure, connect.NewUnaryHandler(ExpenseServiceSettleExpenseProcedure, svc.SettleExpense, opts...))
	return "/" + ExpenseServiceName + "/", mux
}

// ExpenseServiceClient is a client for the ExpenseService service.
type ExpenseServiceClient interface {
	CreateExpense(context.Context, *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	SettleExpense(context.Context, *connect.Request[api.SettleExpenseRequest]) (*connect.Response[api.SettleExpenseResponse], error)
}

// NewExpenseServiceClient constructs a client for the ExpenseService service at baseURL.
func NewExpenseServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ExpenseServiceClient {
	baseURL = trimBaseURL(baseURL)
	opts = clientOptions(opts)
	return &expenseServiceClient{
		createExpense: connect.NewClient[api.CreateExpenseRequest, api.CreateExpenseResponse](httpClient, baseURL+ExpenseServiceCreateExpenseProcedure, opts...),
		listExpenses:  connect.NewClient[api.ListExpensesRequest, api.ListExpensesResponse](httpClient, baseURL+ExpenseServiceListExpensesProcedure, opts...),
		settleExpense: connect.NewClient[api.SettleExpenseRequest, api.SettleExpenseResponse](httpClient, baseURL+ExpenseServiceSettleExpenseProcedure, opts...),
	}
}

type expenseServiceClient struct {
	createExpense *connect.Client[api.CreateExpenseRequest, api.CreateExpenseResponse]
	listExpenses  *connect.Client[api.ListExpensesRequest, api.ListExpensesResponse]
	settleExpense *connect.Client[api.SettleExpenseRequest, api.SettleExpenseResponse]
}

func (c *expenseServiceClient) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	return c.createExpense.CallUnary(ctx, req)
}

func (c *expenseServiceClient) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

func (c *expenseServiceClient) SettleExpense(ctx context.Context, req *connect.Request[api.SettleExpenseRequest]) (*connect.Response[api.SettleExpenseResponse], error) {
	return c.settleExpense.CallUnary(ctx, req)
}
