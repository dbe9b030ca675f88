package service

import (
	"github.com/mmynk/settleup/internal/ledger"
	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/pkg/api"
)

// Storage models -> ledger snapshot

func toLedgerGroup(g *models.Group) ledger.Group {
	members := make([]ledger.Member, len(g.Members))
	for i, m := range g.Members {
		members[i] = ledger.Member{ID: m.ID, Name: m.Name, Email: m.Email}
	}

	bills := make([]ledger.Bill, len(g.Bills))
	for i, b := range g.Bills {
		bills[i] = ledger.Bill{ID: b.ID, Name: b.Name, Amount: b.Amount, Date: b.Date, PaidBy: b.PaidBy}
	}

	return ledger.Group{
		Admin:     g.AdminID,
		AdminName: g.AdminName,
		Members:   members,
		Amount:    g.Amount,
		Bills:     bills,
	}
}

func toLedgerExpenses(expenses []*models.Expense) []ledger.Expense {
	out := make([]ledger.Expense, len(expenses))
	for i, e := range expenses {
		shares := make([]ledger.Share, len(e.Participants))
		for j, p := range e.Participants {
			shares[j] = ledger.Share{ID: p.ID, Amount: p.Amount}
		}
		out[i] = ledger.Expense{
			ID:           e.ID,
			Title:        e.Title,
			Amount:       e.Amount,
			CreatedBy:    e.CreatedBy,
			Participants: shares,
			Status:       e.Status,
			CreatedAt:    e.CreatedAt,
		}
	}
	return out
}

func toLedgerPayments(payments []*models.Payment) []ledger.Payment {
	out := make([]ledger.Payment, len(payments))
	for i, p := range payments {
		out[i] = ledger.Payment{
			FromUserID: p.FromUserID,
			ToUserID:   p.ToUserID,
			Amount:     p.Amount,
			Status:     p.Status,
			Type:       p.Type,
			CreatedAt:  p.CreatedAt,
		}
	}
	return out
}

// Storage models <-> API messages

func fromAPIMembers(members []api.Member) []models.Member {
	out := make([]models.Member, 0, len(members))
	for _, m := range members {
		out = append(out, models.Member{ID: m.ID, Name: m.Name, Email: m.Email})
	}
	return out
}

func fromAPIBill(b api.Bill) models.Bill {
	return models.Bill{Name: b.Name, Amount: b.Amount.Decimal, Date: b.Date, PaidBy: b.PaidBy}
}

func toAPIBill(b models.Bill) api.Bill {
	return api.Bill{ID: b.ID, Name: b.Name, Amount: api.NewAmount(b.Amount), Date: b.Date, PaidBy: b.PaidBy}
}

func toAPIGroup(g *models.Group) *api.Group {
	members := make([]api.Member, len(g.Members))
	for i, m := range g.Members {
		members[i] = api.Member{ID: m.ID, Name: m.Name, Email: m.Email}
	}

	bills := make([]api.Bill, len(g.Bills))
	for i, b := range g.Bills {
		bills[i] = toAPIBill(b)
	}

	return &api.Group{
		ID:           g.ID,
		Title:        g.Title,
		Category:     g.Category,
		CategoryIcon: g.CategoryIcon,
		AdminID:      g.AdminID,
		AdminName:    g.AdminName,
		Members:      members,
		Amount:       api.NewAmount(g.Amount),
		Bills:        bills,
		CreatedAt:    g.CreatedAt,
	}
}

func toAPIExpense(e *models.Expense) *api.Expense {
	participants := make([]api.Participant, len(e.Participants))
	for i, p := range e.Participants {
		participants[i] = api.Participant{ID: p.ID, Name: p.Name, Amount: api.NewAmount(p.Amount)}
	}

	return &api.Expense{
		ID:            e.ID,
		GroupID:       e.GroupID,
		Title:         e.Title,
		Description:   e.Description,
		Category:      e.Category,
		Amount:        api.NewAmount(e.Amount),
		CreatedBy:     e.CreatedBy,
		CreatedByName: e.CreatedByName,
		Participants:  participants,
		Status:        e.Status,
		CreatedAt:     e.CreatedAt,
	}
}

func toAPIPayment(p *models.Payment) *api.Payment {
	return &api.Payment{
		ID:           p.ID,
		GroupID:      p.GroupID,
		FromUserID:   p.FromUserID,
		FromUserName: p.FromUserName,
		ToUserID:     p.ToUserID,
		ToUserName:   p.ToUserName,
		Amount:       api.NewAmount(p.Amount),
		Description:  p.Description,
		Status:       p.Status,
		Type:         p.Type,
		CreatedAt:    p.CreatedAt,
	}
}

// Ledger results -> API messages

func toAPIBalances(balances []ledger.MemberBalance) []api.MemberBalance {
	out := make([]api.MemberBalance, len(balances))
	for i, b := range balances {
		out[i] = api.MemberBalance{
			ID:          b.ID,
			Name:        b.Name,
			Email:       b.Email,
			IsAdmin:     b.IsAdmin,
			Phantom:     b.Phantom,
			Balance:     api.NewMoney(b.Balance),
			AmountOwed:  api.NewMoney(b.AmountOwed),
			AmountOwing: api.NewMoney(b.AmountOwing),
		}
	}
	return out
}

func toAPITransfers(transfers []ledger.Transfer) []api.Transfer {
	out := make([]api.Transfer, len(transfers))
	for i, t := range transfers {
		out[i] = api.Transfer{From: t.From, To: t.To, Amount: api.NewMoney(t.Amount)}
	}
	return out
}

func toAPIUserBalance(b ledger.UserBalance) api.UserBalance {
	return api.UserBalance{
		Owes:       api.NewMoney(b.Owes),
		Owed:       api.NewMoney(b.Owed),
		NetBalance: api.NewMoney(b.NetBalance),
	}
}
