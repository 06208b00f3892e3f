package request

import "github.com/google/uuid"

// Monetary fields arrive as decimal strings so amounts survive the
// wire without float drift.

// AddLineRequest represents an add-to-cart request
type AddLineRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Code      string    `json:"code" binding:"omitempty,max=100"`
	Name      string    `json:"name" binding:"required,max=255"`
	UnitPrice string    `json:"unit_price" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// UpdateQuantityRequest adjusts a line's quantity by a signed delta
type UpdateQuantityRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// SetCustomerRequest attaches or detaches the cart's customer
type SetCustomerRequest struct {
	CustomerID *uuid.UUID `json:"customer_id"`
}

// ApplyDiscountRequest represents a cart-level discount request
type ApplyDiscountRequest struct {
	Kind  string `json:"kind" binding:"required,oneof=percentage fixed"`
	Value string `json:"value" binding:"required"`
}
