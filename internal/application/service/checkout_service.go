package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/maliksarmad/retailpos-api/internal/domain/entity"
	"github.com/maliksarmad/retailpos-api/internal/domain/enum"
	"github.com/maliksarmad/retailpos-api/internal/domain/gateway"
	"github.com/maliksarmad/retailpos-api/internal/domain/repository"
	"github.com/maliksarmad/retailpos-api/pkg/apperror"
	"github.com/maliksarmad/retailpos-api/pkg/logger"
)

// CheckoutService drives the per-session checkout machine:
// open -> payment_pending -> completed, with abort as the only way
// back. Completion submits the sale to the sales service; a failed
// submission leaves both the machine and the cart untouched so the
// cashier can retry deliberately.
type CheckoutService struct {
	sessionRepo repository.SessionRepository
	sales       gateway.SalesGateway
	settings    *SettingsService
	carts       *CartService
	log         zerolog.Logger
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	sessionRepo repository.SessionRepository,
	sales gateway.SalesGateway,
	settings *SettingsService,
	carts *CartService,
) *CheckoutService {
	return &CheckoutService{
		sessionRepo: sessionRepo,
		sales:       sales,
		settings:    settings,
		carts:       carts,
		log:         logger.WithComponent("checkout_service"),
	}
}

// Initiate moves the session into payment_pending and returns the bill
// preview the payment screen renders.
func (s *CheckoutService) Initiate(ctx context.Context, sessionID uuid.UUID) (*CartView, error) {
	session, err := s.carts.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Cart.IsEmpty() {
		return nil, apperror.ErrEmptyCart
	}
	if session.CheckoutState != enum.CheckoutStateOpen {
		return nil, apperror.NewConflictError("Checkout already in progress")
	}

	session.CheckoutState = enum.CheckoutStatePaymentPending
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}
	return s.carts.view(ctx, session), nil
}

// Abort cancels an in-progress checkout, returning the machine to open
// with the cart intact. Once a finalize has succeeded there is nothing
// left to abort.
func (s *CheckoutService) Abort(ctx context.Context, sessionID uuid.UUID) (*CartView, error) {
	session, err := s.carts.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.CheckoutState != enum.CheckoutStatePaymentPending {
		return nil, apperror.ErrCheckoutNotPending
	}

	session.CheckoutState = enum.CheckoutStateOpen
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}
	return s.carts.view(ctx, session), nil
}

// CompleteInput represents the tender details for finishing a checkout
type CompleteInput struct {
	PaymentType enum.PaymentType
	Tendered    decimal.Decimal
}

// Complete validates the tender, submits the sale and, on success,
// resets the session with a fresh cart. Validation failures never
// reach the network; a service failure preserves payment_pending and
// the cart unmodified.
func (s *CheckoutService) Complete(ctx context.Context, sessionID uuid.UUID, input *CompleteInput) (*entity.SaleReceipt, error) {
	session, err := s.carts.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.CheckoutState != enum.CheckoutStatePaymentPending {
		return nil, apperror.ErrCheckoutNotPending
	}

	cart := session.Cart
	if cart.IsEmpty() {
		return nil, apperror.ErrEmptyCart
	}
	if !input.PaymentType.Valid() {
		return nil, apperror.NewBadRequestError("Unknown payment type")
	}
	if input.Tendered.IsNegative() {
		return nil, apperror.NewBadRequestError("Tendered amount cannot be negative")
	}

	rate := s.settings.GSTRate(ctx)
	grandTotal := cart.Total(rate)

	var paymentStatus enum.PaymentStatus
	var amountPaid, change decimal.Decimal

	switch input.PaymentType {
	case enum.PaymentTypeCredit:
		if cart.CustomerID == nil {
			return nil, apperror.ErrCreditRequiresCustomer
		}
		// amount_paid never exceeds grand_total; the excess goes back
		// to the customer as change so balance_due stays non-negative.
		amountPaid = decimal.Min(input.Tendered, grandTotal)
		change = input.Tendered.Sub(amountPaid)
		switch {
		case amountPaid.IsZero():
			paymentStatus = enum.PaymentStatusPending
		case amountPaid.LessThan(grandTotal):
			paymentStatus = enum.PaymentStatusPartial
		default:
			paymentStatus = enum.PaymentStatusCompleted
		}
	default:
		if input.Tendered.LessThan(grandTotal) {
			return nil, apperror.ErrInsufficientTender
		}
		amountPaid = grandTotal
		change = input.Tendered.Sub(grandTotal)
		paymentStatus = enum.PaymentStatusCompleted
	}

	req := &gateway.FinalizeSaleRequest{
		CustomerID:     cart.CustomerID,
		Subtotal:       cart.Subtotal(),
		DiscountAmount: cart.DiscountTotal(),
		GSTAmount:      cart.Tax(rate),
		GrandTotal:     grandTotal,
		PaymentType:    input.PaymentType,
		PaymentStatus:  paymentStatus,
		AmountPaid:     amountPaid,
		CashierID:      session.CashierID,
		CashierName:    session.CashierName,
		Lines:          saleLines(cart),
	}

	result, err := s.sales.FinalizeSale(ctx, req)
	if err != nil {
		// Machine stays in payment_pending; the cashier retries or aborts.
		return nil, err
	}

	receipt := &entity.SaleReceipt{
		InvoiceNumber: result.InvoiceNumber,
		PaymentType:   input.PaymentType,
		PaymentStatus: paymentStatus,
		Subtotal:      req.Subtotal,
		Discount:      req.DiscountAmount,
		GSTAmount:     req.GSTAmount,
		GrandTotal:    grandTotal,
		Tendered:      input.Tendered,
		Change:        change,
	}

	session.ResetAfterSale(result.InvoiceNumber)
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		// The sale is already finalized upstream; losing the session
		// update must not fail the checkout.
		s.log.Error().Err(err).Str("session_id", session.ID.String()).Str("invoice_number", result.InvoiceNumber).Msg("session reset failed after finalize")
	}

	s.log.Info().
		Str("invoice_number", result.InvoiceNumber).
		Str("payment_type", string(input.PaymentType)).
		Str("grand_total", grandTotal.StringFixed(2)).
		Msg("checkout completed")
	return receipt, nil
}

func saleLines(cart *entity.Cart) []entity.SaleLine {
	lines := make([]entity.SaleLine, 0, len(cart.Lines))
	for i := range cart.Lines {
		l := cart.Lines[i]
		lines = append(lines, entity.SaleLine{
			ProductID:   l.ProductID,
			ProductCode: l.ProductCode,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			LineTotal:   l.LineTotal,
		})
	}
	return lines
}
