package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/maliksarmad/retailpos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// SaleLine is a finalized order line as the sales service records it
type SaleLine struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductCode string          `json:"product_code,omitempty"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// Sale is a finalized, persisted transaction. It is owned by the sales
// service; this type mirrors what the service returns.
//
// Invariants: grand_total = subtotal - discount_amount + gst_amount,
// balance_due = grand_total - amount_paid >= 0, and a credit sale
// always references a customer.
type Sale struct {
	ID             uuid.UUID          `json:"id"`
	InvoiceNumber  string             `json:"invoice_number"`
	CustomerID     *uuid.UUID         `json:"customer_id,omitempty"`
	Lines          []SaleLine         `json:"lines,omitempty"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	GSTAmount      decimal.Decimal    `json:"gst_amount"`
	GrandTotal     decimal.Decimal    `json:"grand_total"`
	PaymentType    enum.PaymentType   `json:"payment_type"`
	PaymentStatus  enum.PaymentStatus `json:"payment_status"`
	AmountPaid     decimal.Decimal    `json:"amount_paid"`
	BalanceDue     decimal.Decimal    `json:"balance_due"`
	CreatedAt      time.Time          `json:"created_at"`
}

// SaleReceipt is what the terminal hands back to the UI after a
// successful finalize: the invoice reference plus the cash change due.
type SaleReceipt struct {
	InvoiceNumber string             `json:"invoice_number"`
	PaymentType   enum.PaymentType   `json:"payment_type"`
	PaymentStatus enum.PaymentStatus `json:"payment_status"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	Discount      decimal.Decimal    `json:"discount_amount"`
	GSTAmount     decimal.Decimal    `json:"gst_amount"`
	GrandTotal    decimal.Decimal    `json:"grand_total"`
	Tendered      decimal.Decimal    `json:"tendered_amount"`
	Change        decimal.Decimal    `json:"change"`
}
