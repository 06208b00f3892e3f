package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/maliksarmad/retailpos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// CreditCustomer is a customer with an outstanding credit position.
// current_balance is authoritatively the sum of balance_due over the
// customer's non-completed sales; reconciliation restores that
// identity when the stored value drifts.
type CreditCustomer struct {
	ID                uuid.UUID       `json:"id"`
	Name              string          `json:"name"`
	Phone             string          `json:"phone,omitempty"`
	CurrentBalance    decimal.Decimal `json:"current_balance"`
	CreditLimit       decimal.Decimal `json:"credit_limit"`
	PendingSalesCount int             `json:"pending_sales_count"`
}

// PendingSale is one outstanding sale in a customer's ledger
type PendingSale struct {
	ID            uuid.UUID          `json:"id"`
	InvoiceNumber string             `json:"invoice_number"`
	GrandTotal    decimal.Decimal    `json:"grand_total"`
	BalanceDue    decimal.Decimal    `json:"balance_due"`
	PaymentStatus enum.PaymentStatus `json:"payment_status"`
	CreatedAt     time.Time          `json:"created_at"`
}

// CreditPayment describes a payment to record against a customer's
// balance. SaleIDs is empty for a general payment; for a specific
// payment the amount equals the summed balances of the listed sales.
type CreditPayment struct {
	CustomerID uuid.UUID        `json:"customer_id"`
	Amount     decimal.Decimal  `json:"amount"`
	Method     enum.PaymentType `json:"method"`
	Mode       enum.PaymentMode `json:"mode"`
	SaleIDs    []uuid.UUID      `json:"sale_ids,omitempty"`
	Notes      string           `json:"notes,omitempty"`
	CashierID  uuid.UUID        `json:"cashier_id"`
}

// PaymentResult reports how a submitted payment was allocated
type PaymentResult struct {
	NewBalance decimal.Decimal  `json:"new_balance"`
	PaidSales  []uuid.UUID      `json:"paid_sales,omitempty"`
	Updated    []SaleAllocation `json:"updated_sales,omitempty"`
}

// SaleAllocation is the effect of a payment on one sale
type SaleAllocation struct {
	SaleID        uuid.UUID          `json:"sale_id"`
	AmountApplied decimal.Decimal    `json:"amount_applied"`
	NewBalance    decimal.Decimal    `json:"new_balance"`
	NewStatus     enum.PaymentStatus `json:"new_status"`
}
