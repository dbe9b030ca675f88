// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/settleup/internal/models"
)

// ErrNotFound is returned (wrapped) when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for group, expense and payment storage.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateGroup persists a new group with its roster and bills.
	// The group.ID and group.CreatedAt fields are populated by the store.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group with its roster and bills.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroupsByMember returns every group where userID is the admin or on
	// the roster, newest first.
	ListGroupsByMember(ctx context.Context, userID string) ([]*models.Group, error)

	// AddGroupMembers appends members to the roster. Members already present
	// are left unchanged.
	AddGroupMembers(ctx context.Context, groupID string, members []models.Member) error

	// AddBill appends a bill to a group. The bill.ID field is populated by the store.
	AddBill(ctx context.Context, groupID string, bill *models.Bill) error

	// CreateExpense persists a new expense.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense by ID.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// ListExpensesByGroup returns a group's expenses, newest first.
	ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error)

	// SetExpenseStatus changes an expense's status.
	SetExpenseStatus(ctx context.Context, expenseID, status string) error

	// CreatePayment persists a new payment.
	CreatePayment(ctx context.Context, payment *models.Payment) error

	// ListPaymentsByGroup returns a group's payments in the order they were recorded.
	ListPaymentsByGroup(ctx context.Context, groupID string) ([]*models.Payment, error)

	// Close releases any resources held by the store.
	Close() error
}
