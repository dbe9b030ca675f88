package api

// Payment is a recorded settle-up payment.
type Payment struct {
	ID           string `json:"id"`
	GroupID      string `json:"groupId"`
	FromUserID   string `json:"fromUserId"`
	FromUserName string `json:"fromUserName,omitempty"`
	ToUserID     string `json:"toUserId"`
	ToUserName   string `json:"toUserName,omitempty"`
	Amount       Amount `json:"amount"`
	Description  string `json:"description"`
	Status       string `json:"status"`
	Type         string `json:"type"`
	CreatedAt    int64  `json:"createdAt"`
}

// RecordSettlementRequest records a payment from the caller to another member.
// An empty Description gets "Payment for <group title>".
type RecordSettlementRequest struct {
	GroupID     string `json:"groupId"`
	ToUserID    string `json:"toUserId"`
	Amount      Amount `json:"amount"`
	Description string `json:"description,omitempty"`
}

type RecordSettlementResponse struct {
	Payment *Payment `json:"payment"`
}

type ListSettlementsRequest struct {
	GroupID string `json:"groupId"`
}

type ListSettlementsResponse struct {
	Payments []*Payment `json:"payments"`
}
