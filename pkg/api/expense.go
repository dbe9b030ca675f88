package api

// Participant is one person's share of an expense.
type Participant struct {
	ID     string `json:"id"`
	Name   string `json:"name,omitempty"`
	Amount Amount `json:"amount"`
}

// Expense is an itemized group cost with an explicit split.
type Expense struct {
	ID            string        `json:"id"`
	GroupID       string        `json:"groupId"`
	Title         string        `json:"title"`
	Description   string        `json:"description,omitempty"`
	Category      string        `json:"category"`
	Amount        Amount        `json:"amount"`
	CreatedBy     string        `json:"createdBy"`
	CreatedByName string        `json:"createdByName,omitempty"`
	Participants  []Participant `json:"participants"`
	Status        string        `json:"status"`
	CreatedAt     int64         `json:"createdAt"`
}

// CreateExpenseRequest records an expense paid by the caller.
type CreateExpenseRequest struct {
	GroupID       string        `json:"groupId"`
	Title         string        `json:"title"`
	Description   string        `json:"description,omitempty"`
	Category      string        `json:"category,omitempty"`
	Amount        Amount        `json:"amount"`
	CreatedByName string        `json:"createdByName,omitempty"`
	Participants  []Participant `json:"participants"`
}

type CreateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type ListExpensesRequest struct {
	GroupID string `json:"groupId"`
}

type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

type SettleExpenseRequest struct {
	ExpenseID string `json:"expenseId"`
}

type SettleExpenseResponse struct {
	Expense *Expense `json:"expense"`
}
