package api

// Member is a roster entry.
type Member struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// Bill is a flat group cost split equally across the roster.
type Bill struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name"`
	Amount Amount `json:"amount"`
	Date   string `json:"date,omitempty"`
	PaidBy string `json:"paidBy,omitempty"`
}

// Group is a bill-splitting group.
type Group struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Category     string   `json:"category"`
	CategoryIcon string   `json:"categoryIcon"`
	AdminID      string   `json:"admin"`
	AdminName    string   `json:"adminName,omitempty"`
	Members      []Member `json:"members"`
	Amount       Amount   `json:"amount"`
	Bills        []Bill   `json:"bills"`
	CreatedAt    int64    `json:"createdAt"`
}

// CreateGroupRequest creates a group administered by the caller.
// Category defaults to "Other".
type CreateGroupRequest struct {
	Title        string   `json:"title"`
	Category     string   `json:"category,omitempty"`
	CategoryIcon string   `json:"categoryIcon,omitempty"`
	AdminName    string   `json:"adminName,omitempty"`
	Members      []Member `json:"members,omitempty"`
	Amount       Amount   `json:"amount"`
	Bills        []Bill   `json:"bills,omitempty"`
}

type CreateGroupResponse struct {
	Group *Group `json:"group"`
}

type GetGroupRequest struct {
	GroupID string `json:"groupId"`
}

type GetGroupResponse struct {
	Group *Group `json:"group"`
}

// ListGroupsRequest lists the groups the caller administers or belongs to.
type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []*Group `json:"groups"`
}

type AddMembersRequest struct {
	GroupID string   `json:"groupId"`
	Members []Member `json:"members"`
}

type AddMembersResponse struct {
	Group *Group `json:"group"`
}

type AddBillRequest struct {
	GroupID string `json:"groupId"`
	Bill    Bill   `json:"bill"`
}

type AddBillResponse struct {
	Bill *Bill `json:"bill"`
}
