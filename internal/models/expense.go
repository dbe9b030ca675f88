package models

import "github.com/shopspring/decimal"

// Expense statuses.
const (
	ExpensePending = "pending"
	ExpenseSettled = "settled"
)

// Expense is an itemized cost with an explicit, possibly unequal split.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the group this expense belongs to.
	GroupID string

	Title       string
	Description string
	Category    string

	// Amount is the full expense amount, credited to the creator.
	Amount decimal.Decimal

	// CreatedBy is the member who paid the expense.
	CreatedBy     string
	CreatedByName string

	// Participants lists who owes what. An entry for the creator is ignored
	// when computing balances.
	Participants []Participant

	// Status is ExpensePending or ExpenseSettled.
	Status string

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

// Participant is one member's share of an expense.
type Participant struct {
	ID     string
	Name   string
	Amount decimal.Decimal
}
