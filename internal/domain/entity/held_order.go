package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// HeldOrder is a cart suspended server-side for later resumption.
// The sales service stores it as an order with status "held"; the
// payload it was created from always carries payment_type=credit and
// payment_status=pending regardless of how the cart will eventually
// be tendered (a constraint of the held-order representation).
type HeldOrder struct {
	ID            uuid.UUID       `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	CustomerID    *uuid.UUID      `json:"customer_id,omitempty"`
	CustomerName  string          `json:"customer_name,omitempty"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
	HoldReason    string          `json:"hold_reason"`
	CashierName   string          `json:"cashier_name,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// HeldOrderLine is a line returned when a held order is resumed
type HeldOrderLine struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	ProductCode string          `json:"product_code"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
}
