package api

// MemberBalance is one member's position in a group. A positive balance means
// the member is owed money.
type MemberBalance struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	IsAdmin     bool   `json:"isAdmin"`
	Phantom     bool   `json:"phantom,omitempty"`
	Balance     Money  `json:"balance"`
	AmountOwed  Money  `json:"amountOwed"`
	AmountOwing Money  `json:"amountOwing"`
}

// Transfer is a suggested payment that settles outstanding balances.
type Transfer struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount Money  `json:"amount"`
}

// UserBalance is one user's owes/owed/net view of a group.
type UserBalance struct {
	Owes       Money `json:"owes"`
	Owed       Money `json:"owed"`
	NetBalance Money `json:"netBalance"`
}

type GetGroupBalancesRequest struct {
	GroupID string `json:"groupId"`
}

type GetGroupBalancesResponse struct {
	Balances        []MemberBalance `json:"balances"`
	TotalAmount     Money           `json:"totalAmount"`
	AmountPerMember Money           `json:"amountPerMember"`
	Transfers       []Transfer      `json:"transfers"`
}

// GetUserBalanceRequest asks for one user's view of a group. UserID defaults
// to the caller.
type GetUserBalanceRequest struct {
	GroupID string `json:"groupId"`
	UserID  string `json:"userId,omitempty"`
}

type GetUserBalanceResponse struct {
	UserID  string      `json:"userId"`
	Balance UserBalance `json:"balance"`
}

// GroupPosition is the caller's balance in one group.
type GroupPosition struct {
	GroupID   string      `json:"groupId"`
	GroupName string      `json:"groupName"`
	Balance   UserBalance `json:"balance"`
}

// GetUserSummaryRequest asks for the caller's totals across all their groups.
type GetUserSummaryRequest struct{}

type GetUserSummaryResponse struct {
	UserID    string          `json:"userId"`
	TotalOwes Money           `json:"totalOwes"`
	TotalOwed Money           `json:"totalOwed"`
	Net       Money           `json:"net"`
	Groups    []GroupPosition `json:"groups"`
}
