package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/internal/metrics"
	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage"
	"github.com/mmynk/settleup/pkg/api"
	"github.com/mmynk/settleup/pkg/api/apiconnect"
)

var _ apiconnect.ExpenseServiceHandler = (*ExpenseService)(nil)

// ExpenseService implements the Connect ExpenseService
type ExpenseService struct {
	store   storage.Store
	metrics *metrics.Metrics
}

// NewExpenseService creates a new ExpenseService. m may be nil.
func NewExpenseService(store storage.Store, m *metrics.Metrics) *ExpenseService {
	return &ExpenseService{store: store, metrics: m}
}

// CreateExpense records an itemized expense paid by the caller.
func (s *ExpenseService) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	slog.Info("CreateExpense request received",
		"group_id", req.Msg.GroupID,
		"title", req.Msg.Title,
		"amount", req.Msg.Amount.String(),
		"participants_count", len(req.Msg.Participants),
	)

	if req.Msg.Title == "" {
		return nil, invalidArgument("title required")
	}
	if !req.Msg.Amount.IsPositive() {
		return nil, invalidArgument("amount must be a positive number")
	}
	if len(req.Msg.Participants) == 0 {
		return nil, invalidArgument("at least one participant required")
	}

	group, err := loadGroupFor(ctx, s.store, req.Msg.GroupID, userID)
	if err != nil {
		return nil, err
	}

	participants := make([]models.Participant, 0, len(req.Msg.Participants))
	for _, p := range req.Msg.Participants {
		if p.ID == "" {
			return nil, invalidArgument("participant id required")
		}
		if !group.HasMember(p.ID) {
			slog.Warn("Expense participant is not on the roster", "group_id", group.ID, "participant", p.ID)
		}
		name := p.Name
		if name == "" {
			name = group.MemberName(p.ID)
		}
		participants = append(participants, models.Participant{ID: p.ID, Name: name, Amount: p.Amount.Decimal})
	}

	createdByName := req.Msg.CreatedByName
	if createdByName == "" {
		createdByName = group.MemberName(userID)
	}

	expense := &models.Expense{
		GroupID:       group.ID,
		Title:         req.Msg.Title,
		Description:   req.Msg.Description,
		Category:      req.Msg.Category,
		Amount:        req.Msg.Amount.Decimal,
		CreatedBy:     userID,
		CreatedByName: createdByName,
		Participants:  participants,
		Status:        models.ExpensePending,
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("CreateExpense failed", "group_id", group.ID, "error", err)
		return nil, storeError(err)
	}

	slog.Info("Expense created", "group_id", group.ID, "expense_id", expense.ID)

	return connect.NewResponse(&api.CreateExpenseResponse{Expense: toAPIExpense(expense)}), nil
}

// ListExpenses returns a group's expenses, newest first.
func (s *ExpenseService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	slog.Info("ListExpenses request received", "group_id", req.Msg.GroupID)

	group, err := loadGroupFor(ctx, s.store, req.Msg.GroupID, userID)
	if err != nil {
		return nil, err
	}

	expenses, err := s.store.ListExpensesByGroup(ctx, group.ID)
	if err != nil {
		slog.Error("ListExpenses failed", "group_id", group.ID, "error", err)
		return nil, storeError(err)
	}

	apiExpenses := make([]*api.Expense, len(expenses))
	for i, e := range expenses {
		apiExpenses[i] = toAPIExpense(e)
	}

	slog.Info("ListExpenses successful", "group_id", group.ID, "count", len(expenses))

	return connect.NewResponse(&api.ListExpensesResponse{Expenses: apiExpenses}), nil
}

// SettleExpense marks an expense as settled, removing it from balance
// computations. Only the expense creator or the group admin may settle it.
// Settling an already settled expense is a no-op.
func (s *ExpenseService) SettleExpense(ctx context.Context, req *connect.Request[api.SettleExpenseRequest]) (*connect.Response[api.SettleExpenseResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	slog.Info("SettleExpense request received", "expense_id", req.Msg.ExpenseID)

	if req.Msg.ExpenseID == "" {
		return nil, invalidArgument("expense_id required")
	}

	expense, err := s.store.GetExpense(ctx, req.Msg.ExpenseID)
	if err != nil {
		slog.Error("SettleExpense failed", "expense_id", req.Msg.ExpenseID, "error", err)
		return nil, storeError(err)
	}

	group, err := loadGroupFor(ctx, s.store, expense.GroupID, userID)
	if err != nil {
		return nil, err
	}
	if userID != expense.CreatedBy && userID != group.AdminID {
		return nil, connect.NewError(connect.CodePermissionDenied,
			errors.New("only the expense creator or the group admin can settle it"))
	}

	if expense.Status == models.ExpenseSettled {
		return connect.NewResponse(&api.SettleExpenseResponse{Expense: toAPIExpense(expense)}), nil
	}

	if err := s.store.SetExpenseStatus(ctx, expense.ID, models.ExpenseSettled); err != nil {
		slog.Error("SettleExpense failed", "expense_id", expense.ID, "error", err)
		return nil, storeError(err)
	}
	expense.Status = models.ExpenseSettled
	s.metrics.ExpenseSettled()

	slog.Info("Expense settled", "group_id", group.ID, "expense_id", expense.ID)

	return connect.NewResponse(&api.SettleExpenseResponse{Expense: toAPIExpense(expense)}), nil
}
