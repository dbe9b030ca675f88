package service

import (
	"context"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/settleup/internal/ledger"
	"github.com/mmynk/settleup/internal/metrics"
	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage"
	"github.com/mmynk/settleup/pkg/api"
	"github.com/mmynk/settleup/pkg/api/apiconnect"
)

// summaryConcurrency bounds the group snapshots loaded at once by GetUserSummary.
const summaryConcurrency = 4

var _ apiconnect.BalanceServiceHandler = (*BalanceService)(nil)

// BalanceService implements the Connect BalanceService
type BalanceService struct {
	store   storage.Store
	metrics *metrics.Metrics
	opts    []ledger.Option
}

// NewBalanceService creates a new BalanceService. m may be nil; opts select
// how expenses are accounted for.
func NewBalanceService(store storage.Store, m *metrics.Metrics, opts ...ledger.Option) *BalanceService {
	return &BalanceService{store: store, metrics: m, opts: opts}
}

// groupSummary loads a group's expenses and payments and computes its
// balances with every recorded settlement applied.
func (s *BalanceService) groupSummary(ctx context.Context, group *models.Group) (ledger.Summary, error) {
	var (
		expenses []*models.Expense
		payments []*models.Payment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		expenses, err = s.store.ListExpensesByGroup(gctx, group.ID)
		if err != nil {
			return fmt.Errorf("failed to load expenses: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		payments, err = s.store.ListPaymentsByGroup(gctx, group.ID)
		if err != nil {
			return fmt.Errorf("failed to load payments: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return ledger.Summary{}, err
	}

	summary := ledger.Summarize(toLedgerGroup(group), toLedgerExpenses(expenses), s.opts...)
	summary.Members = ledger.ApplySettlements(summary.Members, toLedgerPayments(payments))

	s.metrics.ObserveBalances(summary.Members)
	for _, b := range summary.Members {
		if b.Phantom {
			slog.Warn("Balance entry for id not on the roster", "group_id", group.ID, "member_id", b.ID)
		}
	}

	return summary, nil
}

// GetGroupBalances computes every member's balance in a group, along with the
// display totals and suggested settle-up transfers.
func (s *BalanceService) GetGroupBalances(ctx context.Context, req *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	groupID := req.Msg.GroupID
	slog.Info("GetGroupBalances request received", "group_id", groupID)

	group, err := loadGroupFor(ctx, s.store, groupID, userID)
	if err != nil {
		slog.Error("GetGroupBalances failed - group not accessible", "group_id", groupID, "error", err)
		return nil, err
	}

	summary, err := s.groupSummary(ctx, group)
	if err != nil {
		slog.Error("GetGroupBalances failed", "group_id", groupID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	transfers := ledger.SuggestTransfers(summary.Members)

	slog.Info("GetGroupBalances successful",
		"group_id", groupID,
		"members_count", len(summary.Members),
		"transfers_count", len(transfers),
		"residual", ledger.Residual(summary.Members).String(),
	)

	return connect.NewResponse(&api.GetGroupBalancesResponse{
		Balances:        toAPIBalances(summary.Members),
		TotalAmount:     api.NewMoney(summary.TotalAmount),
		AmountPerMember: api.NewMoney(summary.AmountPerMember),
		Transfers:       toAPITransfers(transfers),
	}), nil
}

// GetUserBalance returns one user's owes/owed/net view of a group. The user
// defaults to the caller; users not in the group get an all-zero result.
func (s *BalanceService) GetUserBalance(ctx context.Context, req *connect.Request[api.GetUserBalanceRequest]) (*connect.Response[api.GetUserBalanceResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	target := req.Msg.UserID
	if target == "" {
		target = userID
	}

	slog.Info("GetUserBalance request received", "group_id", req.Msg.GroupID, "user_id", target)

	group, err := loadGroupFor(ctx, s.store, req.Msg.GroupID, userID)
	if err != nil {
		return nil, err
	}

	summary, err := s.groupSummary(ctx, group)
	if err != nil {
		slog.Error("GetUserBalance failed", "group_id", group.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	balance := ledger.ComputeUserBalance(summary.Members, target)

	return connect.NewResponse(&api.GetUserBalanceResponse{
		UserID:  target,
		Balance: toAPIUserBalance(balance),
	}), nil
}

// GetUserSummary sums the caller's position across every group they belong to.
// Group snapshots are loaded concurrently.
func (s *BalanceService) GetUserSummary(ctx context.Context, req *connect.Request[api.GetUserSummaryRequest]) (*connect.Response[api.GetUserSummaryResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	slog.Info("GetUserSummary request received", "user_id", userID)

	groups, err := s.store.ListGroupsByMember(ctx, userID)
	if err != nil {
		slog.Error("GetUserSummary failed - could not list groups", "user_id", userID, "error", err)
		return nil, storeError(err)
	}

	positions := make([]ledger.GroupPosition, len(groups))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(summaryConcurrency)
	for i, group := range groups {
		g.Go(func() error {
			summary, err := s.groupSummary(gctx, group)
			if err != nil {
				return fmt.Errorf("group %s: %w", group.ID, err)
			}
			positions[i] = ledger.GroupPosition{
				GroupID:   group.ID,
				GroupName: group.Title,
				Balance:   ledger.ComputeUserBalance(summary.Members, userID),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		slog.Error("GetUserSummary failed", "user_id", userID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	total := ledger.Aggregate(userID, positions)

	apiGroups := make([]api.GroupPosition, len(total.Groups))
	for i, p := range total.Groups {
		apiGroups[i] = api.GroupPosition{
			GroupID:   p.GroupID,
			GroupName: p.GroupName,
			Balance:   toAPIUserBalance(p.Balance),
		}
	}

	slog.Info("GetUserSummary successful",
		"user_id", userID,
		"groups_count", len(groups),
		"total_owes", total.TotalOwes.String(),
		"total_owed", total.TotalOwed.String(),
	)

	return connect.NewResponse(&api.GetUserSummaryResponse{
		UserID:    userID,
		TotalOwes: api.NewMoney(total.TotalOwes),
		TotalOwed: api.NewMoney(total.TotalOwed),
		Net:       api.NewMoney(total.Net),
		Groups:    apiGroups,
	}), nil
}
