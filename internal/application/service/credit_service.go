package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/maliksarmad/retailpos-api/internal/domain/entity"
	"github.com/maliksarmad/retailpos-api/internal/domain/enum"
	"github.com/maliksarmad/retailpos-api/internal/domain/gateway"
	"github.com/maliksarmad/retailpos-api/pkg/apperror"
	"github.com/maliksarmad/retailpos-api/pkg/logger"
)

// CreditService manages customer credit: outstanding-balance views,
// payment submission and the reconciliation safety net. Balances are
// owned by the sales service; this layer validates payments before
// they leave the terminal and never retries a failed submission.
type CreditService struct {
	sales gateway.SalesGateway
	log   zerolog.Logger
}

// NewCreditService creates a new credit service
func NewCreditService(sales gateway.SalesGateway) *CreditService {
	return &CreditService{
		sales: sales,
		log:   logger.WithComponent("credit_service"),
	}
}

// ListCustomers returns every customer carrying an outstanding balance
func (s *CreditService) ListCustomers(ctx context.Context) ([]entity.CreditCustomer, error) {
	return s.sales.ListCreditCustomers(ctx)
}

// ListPendingSales returns a customer's outstanding sales, oldest first
func (s *CreditService) ListPendingSales(ctx context.Context, customerID uuid.UUID) ([]entity.PendingSale, error) {
	return s.sales.ListPendingCreditSales(ctx, customerID)
}

// ProcessPaymentInput represents a credit payment to record
type ProcessPaymentInput struct {
	CustomerID uuid.UUID
	Amount     decimal.Decimal
	Method     enum.PaymentType
	Mode       enum.PaymentMode
	SaleIDs    []uuid.UUID
	Notes      string
	CashierID  uuid.UUID
}

// ProcessPayment validates and submits a credit payment.
//
// A general payment is applied server-side oldest-pending-sale-first.
// A specific payment targets an explicit set of sales; its amount must
// equal the summed balance due of exactly those sales. Validation
// failures never reach the network. Submission is not idempotent: a
// failure is surfaced as-is and the caller must re-query ledger state
// before trying again.
func (s *CreditService) ProcessPayment(ctx context.Context, input *ProcessPaymentInput) (*entity.PaymentResult, error) {
	if !input.Amount.IsPositive() {
		return nil, apperror.ErrInvalidPaymentAmount
	}
	if !input.Method.Valid() || input.Method == enum.PaymentTypeCredit {
		return nil, apperror.NewBadRequestError("Payment method must be cash or card")
	}

	payment := &entity.CreditPayment{
		CustomerID: input.CustomerID,
		Amount:     input.Amount,
		Method:     input.Method,
		Mode:       input.Mode,
		Notes:      input.Notes,
		CashierID:  input.CashierID,
	}

	switch input.Mode {
	case enum.PaymentModeGeneral:
		// No sale targeting; the backend allocates oldest-first.
	case enum.PaymentModeSpecific:
		if len(input.SaleIDs) == 0 {
			return nil, apperror.ErrEmptySaleSelection
		}
		selection, err := s.validateSelection(ctx, input)
		if err != nil {
			return nil, err
		}
		payment.SaleIDs = selection
	default:
		return nil, apperror.NewBadRequestError("Unknown payment mode")
	}

	result, err := s.sales.SubmitCreditPayment(ctx, payment)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("customer_id", input.CustomerID.String()).
		Str("amount", input.Amount.StringFixed(2)).
		Str("mode", string(input.Mode)).
		Msg("credit payment processed")
	return result, nil
}

// validateSelection checks a specific payment against the customer's
// live pending sales: every selected sale must still be outstanding
// and the amount must match the selection's summed balance exactly.
// It returns the selection with duplicate references folded, so a sale
// is never counted or settled twice.
func (s *CreditService) validateSelection(ctx context.Context, input *ProcessPaymentInput) ([]uuid.UUID, error) {
	pending, err := s.sales.ListPendingCreditSales(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}

	balances := make(map[uuid.UUID]decimal.Decimal, len(pending))
	for _, sale := range pending {
		balances[sale.ID] = sale.BalanceDue
	}

	seen := make(map[uuid.UUID]struct{}, len(input.SaleIDs))
	selection := make([]uuid.UUID, 0, len(input.SaleIDs))
	selected := decimal.Zero
	for _, id := range input.SaleIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		balance, ok := balances[id]
		if !ok {
			return nil, apperror.NewConflictError("Selected sale is no longer outstanding; refresh and try again")
		}
		selection = append(selection, id)
		selected = selected.Add(balance)
	}

	if !input.Amount.Equal(selected) {
		return nil, apperror.NewBadRequestError("Payment amount must equal the selected sales' balance of " + selected.StringFixed(2))
	}
	return selection, nil
}

// Reconcile recomputes every customer's balance from their sales,
// discarding drifted stored values. Safe to repeat: a second run over
// unchanged sales is a no-op.
func (s *CreditService) Reconcile(ctx context.Context) (int, error) {
	updated, err := s.sales.ReconcileCustomerBalances(ctx)
	if err != nil {
		return 0, err
	}
	s.log.Info().Int("updated", updated).Msg("balance reconciliation finished")
	return updated, nil
}
