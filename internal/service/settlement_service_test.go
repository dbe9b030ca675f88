package service

import (
	"context"
	"strings"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mmynk/settleup/pkg/api"
)

func TestRecordSettlement(t *testing.T) {
	c := setupTestServer(t)
	trip := createTrip(t, c)

	resp, err := c.settlements.RecordSettlement(context.Background(), as("bob", &api.RecordSettlementRequest{
		GroupID:  trip.ID,
		ToUserID: "alice",
		Amount:   amount("10.005"),
	}))
	if err != nil {
		t.Fatalf("RecordSettlement failed: %v", err)
	}

	p := resp.Msg.Payment
	if p.FromUserID != "bob" || p.ToUserID != "alice" {
		t.Errorf("direction: expected bob -> alice, got %s -> %s", p.FromUserID, p.ToUserID)
	}
	if p.FromUserName != "Bob" || p.ToUserName != "Alice" {
		t.Errorf("names: expected Bob -> Alice, got %s -> %s", p.FromUserName, p.ToUserName)
	}
	if !p.Amount.Equal(amount("10.01").Decimal) {
		t.Errorf("amount: expected 10.01 after rounding, got %s", p.Amount)
	}
	if p.Description != "Payment for Trip" {
		t.Errorf("description: expected 'Payment for Trip', got '%s'", p.Description)
	}
	if p.Status != "completed" || p.Type != "settlement" {
		t.Errorf("expected completed settlement, got status=%s type=%s", p.Status, p.Type)
	}
	if got := testutil.ToFloat64(c.metrics.SettlementsRecorded); got != 1 {
		t.Errorf("expected 1 recorded settlement, got %v", got)
	}

	list, err := c.settlements.ListSettlements(context.Background(), as("carol", &api.ListSettlementsRequest{GroupID: trip.ID}))
	if err != nil {
		t.Fatalf("ListSettlements failed: %v", err)
	}
	if len(list.Msg.Payments) != 1 || list.Msg.Payments[0].ID != p.ID {
		t.Errorf("unexpected payments: %+v", list.Msg.Payments)
	}
}

func TestRecordSettlement_Description(t *testing.T) {
	c := setupTestServer(t)
	trip := createTrip(t, c)

	resp, err := c.settlements.RecordSettlement(context.Background(), as("carol", &api.RecordSettlementRequest{
		GroupID:     trip.ID,
		ToUserID:    "alice",
		Amount:      amount("25"),
		Description: "  Cabin deposit  ",
	}))
	if err != nil {
		t.Fatalf("RecordSettlement failed: %v", err)
	}
	if got := resp.Msg.Payment.Description; got != "Cabin deposit" {
		t.Errorf("description: expected 'Cabin deposit', got '%s'", got)
	}

	// Whitespace only falls back to the default note
	resp, err = c.settlements.RecordSettlement(context.Background(), as("carol", &api.RecordSettlementRequest{
		GroupID:     trip.ID,
		ToUserID:    "alice",
		Amount:      amount("5"),
		Description: "   ",
	}))
	if err != nil {
		t.Fatalf("RecordSettlement failed: %v", err)
	}
	if got := resp.Msg.Payment.Description; got != "Payment for Trip" {
		t.Errorf("description: expected 'Payment for Trip', got '%s'", got)
	}

	list, err := c.settlements.ListSettlements(context.Background(), as("alice", &api.ListSettlementsRequest{GroupID: trip.ID}))
	if err != nil {
		t.Fatalf("ListSettlements failed: %v", err)
	}
	if len(list.Msg.Payments) != 2 || list.Msg.Payments[0].Description != "Cabin deposit" {
		t.Errorf("stored description not returned: %+v", list.Msg.Payments)
	}
}

func TestRecordSettlement_Validation(t *testing.T) {
	c := setupTestServer(t)
	trip := createTrip(t, c)

	tests := []struct {
		name string
		user string
		req  *api.RecordSettlementRequest
		want connect.Code
	}{
		{"zero amount", "bob", &api.RecordSettlementRequest{GroupID: trip.ID, ToUserID: "alice", Amount: amount("0")}, connect.CodeInvalidArgument},
		{"non-numeric amount", "bob", &api.RecordSettlementRequest{GroupID: trip.ID, ToUserID: "alice", Amount: amount("ten")}, connect.CodeInvalidArgument},
		{"huge exponent", "bob", &api.RecordSettlementRequest{GroupID: trip.ID, ToUserID: "alice", Amount: amount("1e10000000")}, connect.CodeInvalidArgument},
		{"description too long", "bob", &api.RecordSettlementRequest{GroupID: trip.ID, ToUserID: "alice", Amount: amount("5"), Description: strings.Repeat("x", 201)}, connect.CodeInvalidArgument},
		{"rounds to zero", "bob", &api.RecordSettlementRequest{GroupID: trip.ID, ToUserID: "alice", Amount: amount("0.004")}, connect.CodeInvalidArgument},
		{"self payment", "bob", &api.RecordSettlementRequest{GroupID: trip.ID, ToUserID: "bob", Amount: amount("5")}, connect.CodeInvalidArgument},
		{"missing recipient", "bob", &api.RecordSettlementRequest{GroupID: trip.ID, Amount: amount("5")}, connect.CodeInvalidArgument},
		{"recipient outside group", "bob", &api.RecordSettlementRequest{GroupID: trip.ID, ToUserID: "mallory", Amount: amount("5")}, connect.CodeInvalidArgument},
		{"payer outside group", "mallory", &api.RecordSettlementRequest{GroupID: trip.ID, ToUserID: "alice", Amount: amount("5")}, connect.CodePermissionDenied},
		{"unknown group", "bob", &api.RecordSettlementRequest{GroupID: "nonexistent-id", ToUserID: "alice", Amount: amount("5")}, connect.CodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.settlements.RecordSettlement(context.Background(), as(tt.user, tt.req))
			assertCode(t, err, tt.want)
		})
	}

	if got := testutil.ToFloat64(c.metrics.SettlementsRecorded); got != 0 {
		t.Errorf("expected no recorded settlements, got %v", got)
	}
}
