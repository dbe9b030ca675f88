package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/settleup/internal/ledger"
	"github.com/mmynk/settleup/internal/metrics"
	"github.com/mmynk/settleup/internal/auth"
	"github.com/mmynk/settleup/internal/storage/sqlite"
	"github.com/mmynk/settleup/pkg/api"
	"github.com/mmynk/settleup/pkg/api/apiconnect"
)

// testUserHeader selects the caller in tests; requests without it run as alice.
const testUserHeader = "X-Test-User"

// testAuthInterceptor returns a Connect interceptor that puts a test session in the context.
func testAuthInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			userID := req.Header().Get(testUserHeader)
			switch userID {
			case "":
				userID = "alice"
			case "-":
				return next(ctx, req)
			}
			ctx = auth.WithSession(ctx, &auth.Session{UserID: userID, Email: userID + "@example.com"})
			return next(ctx, req)
		}
	}
}

type testClients struct {
	groups      apiconnect.GroupServiceClient
	expenses    apiconnect.ExpenseServiceClient
	settlements apiconnect.SettlementServiceClient
	balances    apiconnect.BalanceServiceClient
	metrics     *metrics.Metrics
}

// setupTestServer creates a test server backed by a temporary SQLite database.
func setupTestServer(t *testing.T, opts ...ledger.Option) *testClients {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	m := metrics.New()
	interceptors := connect.WithInterceptors(testAuthInterceptor())

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewGroupServiceHandler(NewGroupService(store), interceptors))
	mux.Handle(apiconnect.NewExpenseServiceHandler(NewExpenseService(store, m), interceptors))
	mux.Handle(apiconnect.NewSettlementServiceHandler(NewSettlementService(store, m), interceptors))
	mux.Handle(apiconnect.NewBalanceServiceHandler(NewBalanceService(store, m, opts...), interceptors))

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return &testClients{
		groups:      apiconnect.NewGroupServiceClient(http.DefaultClient, server.URL),
		expenses:    apiconnect.NewExpenseServiceClient(http.DefaultClient, server.URL),
		settlements: apiconnect.NewSettlementServiceClient(http.DefaultClient, server.URL),
		balances:    apiconnect.NewBalanceServiceClient(http.DefaultClient, server.URL),
		metrics:     m,
	}
}

// as builds a request made by userID. Use "-" for an unauthenticated caller.
func as[T any](userID string, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set(testUserHeader, userID)
	return req
}

func amount(s string) api.Amount {
	return api.AmountFromString(s)
}

// createTrip creates a group administered by alice with bob and carol and
// 120 of upfront funding.
func createTrip(t *testing.T, c *testClients) *api.Group {
	t.Helper()

	resp, err := c.groups.CreateGroup(context.Background(), as("alice", &api.CreateGroupRequest{
		Title:     "Trip",
		AdminName: "Alice",
		Members: []api.Member{
			{ID: "bob", Name: "Bob"},
			{ID: "carol", Name: "Carol"},
		},
		Amount: amount("120"),
	}))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	return resp.Msg.Group
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		t.Fatalf("expected connect.Error, got %T", err)
	}
	if connectErr.Code() != want {
		t.Errorf("expected %v, got %v (%s)", want, connectErr.Code(), connectErr.Message())
	}
}

func assertMoney(t *testing.T, label string, got api.Money, want string) {
	t.Helper()

	if !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("%s: expected %s, got %s", label, want, got.StringFixed(2))
	}
}

func balanceByID(balances []api.MemberBalance, id string) (api.MemberBalance, bool) {
	for _, b := range balances {
		if b.ID == id {
			return b, true
		}
	}
	return api.MemberBalance{}, false
}
