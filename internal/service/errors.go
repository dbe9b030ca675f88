package service

import (
	"context"
	"errors"
	"fmt"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/internal/auth"
	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage"
)

var (
	errNotMember = errors.New("not a member of this group")
	errNotAdmin  = errors.New("only the group admin can do this")
)

// callerID returns the authenticated user, or an Unauthenticated error.
func callerID(ctx context.Context) (string, error) {
	session, ok := auth.SessionFrom(ctx)
	if !ok {
		return "", connect.NewError(connect.CodeUnauthenticated, errors.New("authentication required"))
	}
	return session.UserID, nil
}

// storeError maps a storage error to a Connect error.
func storeError(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return connect.NewError(connect.CodeNotFound, err)
	}
	return connect.NewError(connect.CodeInternal, err)
}

func invalidArgument(format string, args ...any) error {
	return connect.NewError(connect.CodeInvalidArgument, fmt.Errorf(format, args...))
}

// loadGroupFor fetches a group and checks that userID belongs to it.
func loadGroupFor(ctx context.Context, store storage.Store, groupID, userID string) (*models.Group, error) {
	if groupID == "" {
		return nil, invalidArgument("group_id required")
	}

	group, err := store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, storeError(err)
	}

	if !group.HasMember(userID) {
		return nil, connect.NewError(connect.CodePermissionDenied, errNotMember)
	}

	return group, nil
}
