package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/settleup/pkg/money"
)

// GroupPosition is a user's balance in one group.
type GroupPosition struct {
	GroupID   string
	GroupName string
	Balance   UserBalance
}

// UserSummary is a user's position summed across every group they belong to.
type UserSummary struct {
	UserID    string
	TotalOwes decimal.Decimal // What the user owes others
	TotalOwed decimal.Decimal // What others owe the user
	Net       decimal.Decimal
	Groups    []GroupPosition
}

// Aggregate sums per-group positions into one summary. Groups where the user
// is owed money add to TotalOwed, groups where they owe add to TotalOwes; the
// two never cancel each other out across groups.
func Aggregate(userID string, positions []GroupPosition) UserSummary {
	summary := UserSummary{
		UserID:    userID,
		TotalOwes: decimal.Zero,
		TotalOwed: decimal.Zero,
		Net:       decimal.Zero,
		Groups:    make([]GroupPosition, 0, len(positions)),
	}

	for _, p := range positions {
		summary.TotalOwes = summary.TotalOwes.Add(p.Balance.Owes)
		summary.TotalOwed = summary.TotalOwed.Add(p.Balance.Owed)
		summary.Net = summary.Net.Add(p.Balance.NetBalance)
		summary.Groups = append(summary.Groups, p)
	}

	summary.TotalOwes = money.Round(summary.TotalOwes)
	summary.TotalOwed = money.Round(summary.TotalOwed)
	summary.Net = money.Round(summary.Net)
	return summary
}
