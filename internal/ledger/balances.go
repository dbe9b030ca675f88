package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/settleup/pkg/money"
)

// Expense statuses.
const (
	StatusPending = "pending"
	StatusSettled = "settled"
)

// PaymentTypeSettlement marks a manual settle-up payment between two members.
const PaymentTypeSettlement = "settlement"

// Member is a roster entry as supplied by the group.
type Member struct {
	ID    string
	Name  string
	Email string
}

// Bill is a flat group cost, split equally across the roster.
type Bill struct {
	ID     string
	Name   string
	Amount decimal.Decimal
	Date   string
	PaidBy string // Falls back to the group admin when empty
}

// Share is one participant's part of an itemized expense.
type Share struct {
	ID     string
	Amount decimal.Decimal
}

// Expense is an itemized cost with an explicit per-participant split.
type Expense struct {
	ID           string
	Title        string
	Amount       decimal.Decimal
	CreatedBy    string
	Participants []Share
	Status       string
	CreatedAt    int64
}

// Pending reports whether the expense still counts towards balances.
// Anything other than an explicit settled status is treated as pending.
func (e Expense) Pending() bool {
	return e.Status != StatusSettled
}

// Group is the snapshot of one group's funding, bills and roster.
type Group struct {
	Admin     string
	AdminName string
	Members   []Member
	Amount    decimal.Decimal // Upfront funding contributed by the admin
	Bills     []Bill
}

// Payment is a settle-up payment from a debtor to a creditor.
type Payment struct {
	FromUserID string // Who paid (debtor settling up)
	ToUserID   string // Who received (creditor being paid)
	Amount     decimal.Decimal
	Status     string
	Type       string
	CreatedAt  int64
}

// MemberBalance is the computed position of one member in a group.
// Before rounding, Balance equals AmountOwed - AmountOwing.
type MemberBalance struct {
	ID      string
	Name    string
	Email   string
	IsAdmin bool

	// Phantom marks an id that was credited or debited but is not on the roster.
	Phantom bool

	Balance     decimal.Decimal // Positive = owed money, Negative = owes money
	AmountOwed  decimal.Decimal // Total credited to this member
	AmountOwing decimal.Decimal // Total this member is debited
}

// UserBalance is one user's view of a group.
type UserBalance struct {
	Owes       decimal.Decimal
	Owed       decimal.Decimal
	NetBalance decimal.Decimal
}

// Summary carries the member balances together with the display totals.
type Summary struct {
	TotalAmount     decimal.Decimal
	AmountPerMember decimal.Decimal
	Members         []MemberBalance
}

// ComputeGroupBalances computes every member's balance for one group snapshot.
// Expenses are expected to belong to the group already.
//
// Algorithm:
//   - Each member starts owing an equal share of funding + bills (+ pending
//     expenses when pooled)
//   - The admin is credited with the funding amount
//   - Each bill credits its payer
//   - Each pending expense credits its creator and debits every other
//     participant by their listed share
//
// Intermediate values keep full precision; results are rounded to cents.
func ComputeGroupBalances(group Group, expenses []Expense, opts ...Option) []MemberBalance {
	return Summarize(group, expenses, opts...).Members
}

// Summarize computes the member balances along with the group total and the
// equal share per member.
func Summarize(group Group, expenses []Expense, opts ...Option) Summary {
	o := newOptions(opts)

	funding := decimal.Zero
	if group.Admin != "" {
		funding = money.NonNegative(group.Amount)
	}

	var bills []Bill
	for _, bill := range group.Bills {
		bill.Amount = money.NonNegative(bill.Amount)
		if !bill.Amount.IsPositive() {
			continue
		}
		if bill.PaidBy == "" {
			bill.PaidBy = group.Admin
		}
		// No payer and no admin to fall back on: nobody to credit
		if bill.PaidBy == "" {
			continue
		}
		bills = append(bills, bill)
	}

	var pending []Expense
	for _, exp := range expenses {
		if !exp.Pending() || exp.CreatedBy == "" {
			continue
		}
		exp.Amount = money.NonNegative(exp.Amount)
		pending = append(pending, exp)
	}

	total := funding
	for _, bill := range bills {
		total = total.Add(bill.Amount)
	}
	if o.Expenses == ExpensePooled {
		for _, exp := range pending {
			total = total.Add(exp.Amount)
		}
	}

	roster := buildRoster(group)
	if len(roster) == 0 {
		return Summary{TotalAmount: money.Round(total), AmountPerMember: decimal.Zero}
	}

	perMember := total.Div(decimal.NewFromInt(int64(len(roster))))

	t := newTally(roster)
	for _, m := range roster {
		e := t.entries[m.ID]
		e.Balance = perMember.Neg()
		e.AmountOwing = perMember
		e.AmountOwed = decimal.Zero
	}

	if funding.IsPositive() {
		t.credit(group.Admin, funding)
	}

	for _, bill := range bills {
		t.credit(bill.PaidBy, bill.Amount)
	}

	for _, exp := range pending {
		owedByOthers := decimal.Zero
		for _, p := range exp.Participants {
			// Creator doesn't owe themselves
			if p.ID == "" || p.ID == exp.CreatedBy {
				continue
			}
			share := money.NonNegative(p.Amount)
			t.debit(p.ID, share)
			owedByOthers = owedByOthers.Add(share)
		}

		switch o.Expenses {
		case ExpenseItemized:
			t.credit(exp.CreatedBy, owedByOthers)
		default:
			t.credit(exp.CreatedBy, exp.Amount)
		}
	}

	return Summary{
		TotalAmount:     money.Round(total),
		AmountPerMember: money.Round(perMember),
		Members:         t.rounded(),
	}
}

// ComputeUserBalance extracts one user's owes/owed/net view from a set of
// member balances. Users not present get an all-zero result.
func ComputeUserBalance(balances []MemberBalance, userID string) UserBalance {
	for _, b := range balances {
		if b.ID != userID {
			continue
		}
		net := b.Balance
		return UserBalance{
			Owes:       decimal.Max(decimal.Zero, net.Neg()),
			Owed:       decimal.Max(decimal.Zero, net),
			NetBalance: net,
		}
	}
	return UserBalance{Owes: decimal.Zero, Owed: decimal.Zero, NetBalance: decimal.Zero}
}

// ApplySettlement returns a copy of balances with one settle-up payment
// applied. The payer's balance improves (they effectively "paid" more) and the
// receiver's claim shrinks by the same amount. Payments with no positive
// amount, a missing side, or the same payer and receiver change nothing.
func ApplySettlement(balances []MemberBalance, payment Payment) []MemberBalance {
	out := make([]MemberBalance, len(balances))
	copy(out, balances)

	amount := money.Round(money.NonNegative(payment.Amount))
	if !amount.IsPositive() || payment.FromUserID == "" || payment.ToUserID == "" ||
		payment.FromUserID == payment.ToUserID {
		return out
	}

	var from, to int
	out, from = indexOrAppend(out, payment.FromUserID)
	out, to = indexOrAppend(out, payment.ToUserID)

	out[from].Balance = out[from].Balance.Add(amount)
	out[from].AmountOwing = out[from].AmountOwing.Sub(amount)

	out[to].Balance = out[to].Balance.Sub(amount)
	out[to].AmountOwed = out[to].AmountOwed.Sub(amount)

	return out
}

// ApplySettlements applies every settlement-type payment in order.
// Payments with an empty type are treated as settlements.
func ApplySettlements(balances []MemberBalance, payments []Payment) []MemberBalance {
	out := make([]MemberBalance, len(balances))
	copy(out, balances)
	for _, p := range payments {
		if p.Type != "" && p.Type != PaymentTypeSettlement {
			continue
		}
		out = ApplySettlement(out, p)
	}
	return out
}

// Residual is the sum of all balances. It is zero, up to cent rounding per
// member, whenever every credit in the snapshot has a matching debit.
func Residual(balances []MemberBalance) decimal.Decimal {
	sum := decimal.Zero
	for _, b := range balances {
		sum = sum.Add(b.Balance)
	}
	return sum
}

// buildRoster returns the admin first, then the listed members, deduped by id.
func buildRoster(group Group) []MemberBalance {
	seen := make(map[string]bool)
	var roster []MemberBalance

	if group.Admin != "" {
		admin := MemberBalance{ID: group.Admin, Name: group.AdminName, IsAdmin: true}
		for _, m := range group.Members {
			if m.ID == group.Admin {
				if admin.Name == "" {
					admin.Name = m.Name
				}
				admin.Email = m.Email
				break
			}
		}
		if admin.Name == "" {
			admin.Name = "Admin"
		}
		roster = append(roster, admin)
		seen[group.Admin] = true
	}

	for _, m := range group.Members {
		if m.ID == "" || seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		roster = append(roster, MemberBalance{ID: m.ID, Name: m.Name, Email: m.Email})
	}

	return roster
}

func indexOrAppend(balances []MemberBalance, id string) ([]MemberBalance, int) {
	for i := range balances {
		if balances[i].ID == id {
			return balances, i
		}
	}
	balances = append(balances, phantom(id))
	return balances, len(balances) - 1
}

func phantom(id string) MemberBalance {
	return MemberBalance{
		ID:          id,
		Name:        id,
		Phantom:     true,
		Balance:     decimal.Zero,
		AmountOwed:  decimal.Zero,
		AmountOwing: decimal.Zero,
	}
}

// tally accumulates balances keyed by member id, preserving roster order and
// appending unknown ids as phantom entries in order of first appearance.
type tally struct {
	order   []string
	entries map[string]*MemberBalance
}

func newTally(roster []MemberBalance) *tally {
	t := &tally{entries: make(map[string]*MemberBalance, len(roster))}
	for _, m := range roster {
		t.order = append(t.order, m.ID)
		t.entries[m.ID] = &m
	}
	return t
}

func (t *tally) get(id string) *MemberBalance {
	if e, ok := t.entries[id]; ok {
		return e
	}
	e := phantom(id)
	t.order = append(t.order, id)
	t.entries[id] = &e
	return &e
}

func (t *tally) credit(id string, amount decimal.Decimal) {
	e := t.get(id)
	e.Balance = e.Balance.Add(amount)
	e.AmountOwed = e.AmountOwed.Add(amount)
}

func (t *tally) debit(id string, amount decimal.Decimal) {
	e := t.get(id)
	e.Balance = e.Balance.Sub(amount)
	e.AmountOwing = e.AmountOwing.Add(amount)
}

func (t *tally) rounded() []MemberBalance {
	out := make([]MemberBalance, 0, len(t.order))
	for _, id := range t.order {
		e := *t.entries[id]
		e.Balance = money.Round(e.Balance)
		e.AmountOwed = money.Round(e.AmountOwed)
		e.AmountOwing = money.Round(e.AmountOwing)
		out = append(out, e)
	}
	return out
}
