package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mmynk/settleup/pkg/money"
)

// Transfer is a suggested payment from a debtor to a creditor.
type Transfer struct {
	From   string // Person who owes
	To     string // Person who is owed
	Amount decimal.Decimal
}

// SuggestTransfers turns net balances into a short list of payments that
// would settle the group.
//
// Greedy algorithm: debtors and creditors are each sorted by the size of their
// position (largest first, ties by id) and matched pairwise, each transfer
// moving the smaller of what the debtor owes and what the creditor is owed.
func SuggestTransfers(balances []MemberBalance) []Transfer {
	type position struct {
		id     string
		amount decimal.Decimal
	}

	var creditors, debtors []position
	for _, b := range balances {
		bal := money.Round(b.Balance)
		switch {
		case bal.IsPositive():
			creditors = append(creditors, position{id: b.ID, amount: bal})
		case bal.IsNegative():
			debtors = append(debtors, position{id: b.ID, amount: bal.Neg()})
		}
	}

	byAmount := func(p []position) func(i, j int) bool {
		return func(i, j int) bool {
			if c := p[i].amount.Cmp(p[j].amount); c != 0 {
				return c > 0
			}
			return p[i].id < p[j].id
		}
	}
	sort.SliceStable(creditors, byAmount(creditors))
	sort.SliceStable(debtors, byAmount(debtors))

	var transfers []Transfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := &debtors[i]
		creditor := &creditors[j]

		amount := decimal.Min(debtor.amount, creditor.amount)
		if amount.IsPositive() {
			transfers = append(transfers, Transfer{
				From:   debtor.id,
				To:     creditor.id,
				Amount: amount,
			})
		}

		debtor.amount = debtor.amount.Sub(amount)
		creditor.amount = creditor.amount.Sub(amount)

		// Move to next debtor/creditor if fully settled
		if !debtor.amount.IsPositive() {
			i++
		}
		if !creditor.amount.IsPositive() {
			j++
		}
	}

	return transfers
}
