package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mmynk/settleup/internal/ledger"
)

func TestObserveBalances(t *testing.T) {
	m := New()

	m.ObserveBalances([]ledger.MemberBalance{
		{ID: "alice", IsAdmin: true},
		{ID: "bob"},
		{ID: "ghost", Phantom: true},
	})
	m.ObserveBalances(nil)

	if got := testutil.ToFloat64(m.BalanceComputations); got != 2 {
		t.Errorf("balance computations: expected 2, got %v", got)
	}
	if got := testutil.ToFloat64(m.PhantomEntries); got != 1 {
		t.Errorf("phantom entries: expected 1, got %v", got)
	}
}

func TestObserveRPC(t *testing.T) {
	m := New()

	m.ObserveRPC("/settleup.v1.BalanceService/GetGroupBalances", "ok", 0.01)
	m.ObserveRPC("/settleup.v1.BalanceService/GetGroupBalances", "ok", 0.02)
	m.ObserveRPC("/settleup.v1.BalanceService/GetGroupBalances", "not_found", 0.01)

	ok := m.RPCRequests.WithLabelValues("/settleup.v1.BalanceService/GetGroupBalances", "ok")
	if got := testutil.ToFloat64(ok); got != 2 {
		t.Errorf("ok requests: expected 2, got %v", got)
	}
	if got := testutil.CollectAndCount(m.RPCRequests); got != 2 {
		t.Errorf("expected 2 label combinations, got %d", got)
	}
}

func TestCounters(t *testing.T) {
	m := New()

	m.SettlementRecorded()
	m.SettlementRecorded()
	m.ExpenseSettled()

	if got := testutil.ToFloat64(m.SettlementsRecorded); got != 2 {
		t.Errorf("settlements: expected 2, got %v", got)
	}
	if got := testutil.ToFloat64(m.ExpensesSettled); got != 1 {
		t.Errorf("expenses settled: expected 1, got %v", got)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics

	m.ObserveRPC("/x", "ok", 1)
	m.ObserveBalances([]ledger.MemberBalance{{ID: "ghost", Phantom: true}})
	m.SettlementRecorded()
	m.ExpenseSettled()
}

func TestHandler(t *testing.T) {
	m := New()
	m.SettlementRecorded()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "settleup_settlements_recorded_total 1") {
		t.Errorf("expected settlements counter in exposition, got:\n%s", body)
	}
}
