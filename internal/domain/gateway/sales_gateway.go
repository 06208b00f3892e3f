package gateway

import (
	"context"

	"github.com/google/uuid"
	"github.com/maliksarmad/retailpos-api/internal/domain/entity"
	"github.com/maliksarmad/retailpos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// FinalizeSaleRequest is the single payload submitted to persist a
// sale: header plus lines in one request.
type FinalizeSaleRequest struct {
	CustomerID     *uuid.UUID
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	GSTAmount      decimal.Decimal
	GrandTotal     decimal.Decimal
	PaymentType    enum.PaymentType
	PaymentStatus  enum.PaymentStatus
	AmountPaid     decimal.Decimal
	CashierID      uuid.UUID
	CashierName    string
	Lines          []entity.SaleLine
}

// FinalizeSaleResult carries the invoice reference the service minted
type FinalizeSaleResult struct {
	InvoiceNumber string
}

// HoldSaleRequest suspends a cart server-side
type HoldSaleRequest struct {
	FinalizeSaleRequest
	HoldReason string
}

// SalesGateway is the boundary to the sales service that owns sales,
// held orders and customer credit balances. Implementations must not
// retry financial mutations on their own; a failed submission is
// surfaced to the caller untouched.
type SalesGateway interface {
	FinalizeSale(ctx context.Context, req *FinalizeSaleRequest) (*FinalizeSaleResult, error)
	HoldSale(ctx context.Context, req *HoldSaleRequest) (*FinalizeSaleResult, error)
	ResumeSale(ctx context.Context, holdID uuid.UUID) ([]entity.HeldOrderLine, error)
	DeleteHeldSale(ctx context.Context, holdID uuid.UUID) error
	ListHeldSales(ctx context.Context) ([]entity.HeldOrder, error)

	SubmitCreditPayment(ctx context.Context, payment *entity.CreditPayment) (*entity.PaymentResult, error)
	ListPendingCreditSales(ctx context.Context, customerID uuid.UUID) ([]entity.PendingSale, error)
	ListCreditCustomers(ctx context.Context) ([]entity.CreditCustomer, error)
	ReconcileCustomerBalances(ctx context.Context) (updated int, err error)
}

// ShopSettings is the subset of shop configuration the terminal needs
type ShopSettings struct {
	GSTRate  decimal.Decimal
	Currency string
}

// SettingsGateway fetches shop configuration from the settings service
type SettingsGateway interface {
	FetchSettings(ctx context.Context) (*ShopSettings, error)
}
