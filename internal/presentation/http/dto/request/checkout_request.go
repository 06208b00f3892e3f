package request

// CompleteCheckoutRequest represents the tender for an in-progress
// checkout. Tendered may be zero for a credit sale.
type CompleteCheckoutRequest struct {
	PaymentType string `json:"payment_type" binding:"required,oneof=cash card credit"`
	Tendered    string `json:"tendered" binding:"omitempty"`
}

// HoldRequest suspends the session's cart as a held order
type HoldRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}
