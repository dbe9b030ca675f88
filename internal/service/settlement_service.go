package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/internal/metrics"
	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage"
	"github.com/mmynk/settleup/pkg/api"
	"github.com/mmynk/settleup/pkg/api/apiconnect"
	"github.com/mmynk/settleup/pkg/money"
)

// maxDescriptionLen bounds the payer's note on a settlement.
const maxDescriptionLen = 200

var _ apiconnect.SettlementServiceHandler = (*SettlementService)(nil)

// SettlementService implements the Connect SettlementService
type SettlementService struct {
	store   storage.Store
	metrics *metrics.Metrics
}

// NewSettlementService creates a new SettlementService. m may be nil.
func NewSettlementService(store storage.Store, m *metrics.Metrics) *SettlementService {
	return &SettlementService{store: store, metrics: m}
}

// RecordSettlement records a settle-up payment from the caller to another
// group member. The amount is rounded to cents.
func (s *SettlementService) RecordSettlement(ctx context.Context, req *connect.Request[api.RecordSettlementRequest]) (*connect.Response[api.RecordSettlementResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	slog.Info("RecordSettlement request received",
		"group_id", req.Msg.GroupID,
		"to_user_id", req.Msg.ToUserID,
		"amount", req.Msg.Amount.String(),
	)

	description := strings.TrimSpace(req.Msg.Description)
	if len(description) > maxDescriptionLen {
		return nil, invalidArgument("description must be at most %d characters", maxDescriptionLen)
	}

	amount := money.Round(req.Msg.Amount.Decimal)
	if !amount.IsPositive() {
		return nil, invalidArgument("amount must be a positive number")
	}
	if req.Msg.ToUserID == "" {
		return nil, invalidArgument("to_user_id required")
	}
	if req.Msg.ToUserID == userID {
		return nil, invalidArgument("cannot settle up with yourself")
	}

	group, err := loadGroupFor(ctx, s.store, req.Msg.GroupID, userID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(req.Msg.ToUserID) {
		return nil, invalidArgument("recipient %s is not a member of this group", req.Msg.ToUserID)
	}

	if description == "" {
		description = fmt.Sprintf("Payment for %s", group.Title)
	}

	payment := &models.Payment{
		GroupID:      group.ID,
		FromUserID:   userID,
		FromUserName: group.MemberName(userID),
		ToUserID:     req.Msg.ToUserID,
		ToUserName:   group.MemberName(req.Msg.ToUserID),
		Amount:       amount,
		Description:  description,
		Status:       models.PaymentCompleted,
		Type:         models.PaymentTypeSettlement,
	}

	if err := s.store.CreatePayment(ctx, payment); err != nil {
		slog.Error("RecordSettlement failed", "group_id", group.ID, "error", err)
		return nil, storeError(err)
	}
	s.metrics.SettlementRecorded()

	slog.Info("Settlement recorded",
		"group_id", group.ID,
		"payment_id", payment.ID,
		"from", payment.FromUserID,
		"to", payment.ToUserID,
		"amount", payment.Amount.String(),
	)

	return connect.NewResponse(&api.RecordSettlementResponse{Payment: toAPIPayment(payment)}), nil
}

// ListSettlements returns a group's payments in the order they were recorded.
func (s *SettlementService) ListSettlements(ctx context.Context, req *connect.Request[api.ListSettlementsRequest]) (*connect.Response[api.ListSettlementsResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	slog.Info("ListSettlements request received", "group_id", req.Msg.GroupID)

	group, err := loadGroupFor(ctx, s.store, req.Msg.GroupID, userID)
	if err != nil {
		return nil, err
	}

	payments, err := s.store.ListPaymentsByGroup(ctx, group.ID)
	if err != nil {
		slog.Error("ListSettlements failed", "group_id", group.ID, "error", err)
		return nil, storeError(err)
	}

	apiPayments := make([]*api.Payment, len(payments))
	for i, p := range payments {
		apiPayments[i] = toAPIPayment(p)
	}

	slog.Info("ListSettlements successful", "group_id", group.ID, "count", len(payments))

	return connect.NewResponse(&api.ListSettlementsResponse{Payments: apiPayments}), nil
}
