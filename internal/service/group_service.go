package service

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/internal/auth"
	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage"
	"github.com/mmynk/settleup/pkg/api"
	"github.com/mmynk/settleup/pkg/api/apiconnect"
)

// Ensure GroupService implements the Connect handler interface
var _ apiconnect.GroupServiceHandler = (*GroupService)(nil)

// GroupService implements the Connect GroupService
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// CreateGroup creates a new group with the caller as admin.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	slog.Info("CreateGroup request received",
		"title", req.Msg.Title,
		"members_count", len(req.Msg.Members),
		"bills_count", len(req.Msg.Bills),
	)

	if req.Msg.Title == "" {
		return nil, invalidArgument("title required")
	}

	adminName := req.Msg.AdminName
	if session, ok := auth.SessionFrom(ctx); ok && adminName == "" {
		adminName = session.Email
	}

	category := strings.TrimSpace(req.Msg.Category)
	if category == "" {
		category = models.DefaultCategory
	}
	icon := req.Msg.CategoryIcon
	if icon == "" {
		icon = models.DefaultCategoryIcon
	}

	group := &models.Group{
		Title:        req.Msg.Title,
		Category:     category,
		CategoryIcon: icon,
		AdminID:      userID,
		AdminName:    adminName,
		Members:      fromAPIMembers(req.Msg.Members),
		Amount:       req.Msg.Amount.Decimal,
	}
	for _, b := range req.Msg.Bills {
		group.Bills = append(group.Bills, fromAPIBill(b))
	}

	// Save to storage (generates IDs and CreatedAt)
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, storeError(err)
	}

	slog.Info("Group created", "group_id", group.ID, "admin", userID)

	// Re-read so the roster reflects deduplication done by the store
	created, err := s.store.GetGroup(ctx, group.ID)
	if err != nil {
		slog.Error("Failed to fetch created group", "group_id", group.ID, "error", err)
		return nil, storeError(err)
	}

	return connect.NewResponse(&api.CreateGroupResponse{Group: toAPIGroup(created)}), nil
}

// GetGroup retrieves a group by ID.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	slog.Info("GetGroup request received", "group_id", req.Msg.GroupID)

	group, err := loadGroupFor(ctx, s.store, req.Msg.GroupID, userID)
	if err != nil {
		slog.Error("GetGroup failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, err
	}

	slog.Info("GetGroup successful", "group_id", group.ID, "title", group.Title)

	return connect.NewResponse(&api.GetGroupResponse{Group: toAPIGroup(group)}), nil
}

// ListGroups retrieves every group the caller administers or belongs to.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	slog.Info("ListGroups request received", "user_id", userID)

	groups, err := s.store.ListGroupsByMember(ctx, userID)
	if err != nil {
		slog.Error("ListGroups failed", "error", err)
		return nil, storeError(err)
	}

	apiGroups := make([]*api.Group, len(groups))
	for i, group := range groups {
		apiGroups[i] = toAPIGroup(group)
	}

	slog.Info("ListGroups successful", "count", len(groups))

	return connect.NewResponse(&api.ListGroupsResponse{Groups: apiGroups}), nil
}

// AddMembers adds members to a group's roster. Only the admin may do this.
func (s *GroupService) AddMembers(ctx context.Context, req *connect.Request[api.AddMembersRequest]) (*connect.Response[api.AddMembersResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	slog.Info("AddMembers request received",
		"group_id", req.Msg.GroupID,
		"members_count", len(req.Msg.Members),
	)

	if len(req.Msg.Members) == 0 {
		return nil, invalidArgument("at least one member required")
	}
	for _, m := range req.Msg.Members {
		if m.ID == "" {
			return nil, invalidArgument("member id required")
		}
	}

	group, err := loadGroupFor(ctx, s.store, req.Msg.GroupID, userID)
	if err != nil {
		return nil, err
	}
	if group.AdminID != userID {
		return nil, connect.NewError(connect.CodePermissionDenied, errNotAdmin)
	}

	if err := s.store.AddGroupMembers(ctx, group.ID, fromAPIMembers(req.Msg.Members)); err != nil {
		slog.Error("AddMembers failed", "group_id", group.ID, "error", err)
		return nil, storeError(err)
	}

	updated, err := s.store.GetGroup(ctx, group.ID)
	if err != nil {
		slog.Error("Failed to fetch updated group", "group_id", group.ID, "error", err)
		return nil, storeError(err)
	}

	slog.Info("Members added", "group_id", group.ID, "roster_size", len(updated.Members))

	return connect.NewResponse(&api.AddMembersResponse{Group: toAPIGroup(updated)}), nil
}

// AddBill adds a flat, equally split bill to a group.
func (s *GroupService) AddBill(ctx context.Context, req *connect.Request[api.AddBillRequest]) (*connect.Response[api.AddBillResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	slog.Info("AddBill request received",
		"group_id", req.Msg.GroupID,
		"name", req.Msg.Bill.Name,
		"amount", req.Msg.Bill.Amount.String(),
	)

	if !req.Msg.Bill.Amount.IsPositive() {
		return nil, invalidArgument("amount must be a positive number")
	}

	group, err := loadGroupFor(ctx, s.store, req.Msg.GroupID, userID)
	if err != nil {
		return nil, err
	}

	bill := fromAPIBill(req.Msg.Bill)
	if bill.PaidBy != "" && !group.HasMember(bill.PaidBy) {
		slog.Warn("Bill payer is not on the roster", "group_id", group.ID, "paid_by", bill.PaidBy)
	}

	if err := s.store.AddBill(ctx, group.ID, &bill); err != nil {
		slog.Error("AddBill failed", "group_id", group.ID, "error", err)
		return nil, storeError(err)
	}

	slog.Info("Bill added", "group_id", group.ID, "bill_id", bill.ID)

	apiBill := toAPIBill(bill)
	return connect.NewResponse(&api.AddBillResponse{Bill: &apiBill}), nil
}
