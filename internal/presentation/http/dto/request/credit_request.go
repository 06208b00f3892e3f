package request

import "github.com/google/uuid"

// ProcessPaymentRequest records a payment against a customer's credit
// balance. A general payment leaves sale_ids empty; a specific payment
// lists the sales being paid down and amount must equal their summed
// balance due.
type ProcessPaymentRequest struct {
	Amount  string      `json:"amount" binding:"required"`
	Method  string      `json:"method" binding:"required,oneof=cash card"`
	Mode    string      `json:"mode" binding:"required,oneof=general specific"`
	SaleIDs []uuid.UUID `json:"sale_ids" binding:"omitempty"`
	Notes   string      `json:"notes" binding:"omitempty,max=500"`
}
