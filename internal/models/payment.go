package models

import "github.com/shopspring/decimal"

// Payment statuses and types.
const (
	PaymentCompleted      = "completed"
	PaymentTypeSettlement = "settlement"
)

// Payment represents a settle-up payment between group members.
// Payments are immutable once recorded.
type Payment struct {
	// ID is the unique identifier for the payment (UUID format).
	ID string

	// GroupID is the group this payment belongs to.
	GroupID string

	// FromUserID is the user who paid (debtor settling up).
	FromUserID   string
	FromUserName string

	// ToUserID is the user who received payment (creditor being paid).
	ToUserID   string
	ToUserName string

	// Amount is the payment amount.
	Amount decimal.Decimal

	// Description is an optional note, defaulting to "Payment for <group>".
	Description string

	Status string
	Type   string

	// CreatedAt is the Unix timestamp when the payment was recorded.
	CreatedAt int64
}
