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

// HoldService suspends carts as held orders on the sales service and
// resumes them later, possibly onto a different terminal.
type HoldService struct {
	sessionRepo repository.SessionRepository
	sales       gateway.SalesGateway
	settings    *SettingsService
	carts       *CartService
	log         zerolog.Logger
}

// NewHoldService creates a new hold service
func NewHoldService(
	sessionRepo repository.SessionRepository,
	sales gateway.SalesGateway,
	settings *SettingsService,
	carts *CartService,
) *HoldService {
	return &HoldService{
		sessionRepo: sessionRepo,
		sales:       sales,
		settings:    settings,
		carts:       carts,
		log:         logger.WithComponent("hold_service"),
	}
}

// Hold submits the session's cart as a held order and clears the local
// cart on success. Held orders are always recorded with
// payment_type=credit and payment_status=pending; that is how the
// sales service represents a suspended order, regardless of how the
// sale will eventually be tendered.
func (s *HoldService) Hold(ctx context.Context, sessionID uuid.UUID, reason string) (string, error) {
	session, err := s.carts.GetSession(ctx, sessionID)
	if err != nil {
		return "", err
	}
	cart := session.Cart
	if cart.IsEmpty() {
		return "", apperror.ErrEmptyCart
	}

	rate := s.settings.GSTRate(ctx)
	req := &gateway.HoldSaleRequest{
		FinalizeSaleRequest: gateway.FinalizeSaleRequest{
			CustomerID:     cart.CustomerID,
			Subtotal:       cart.Subtotal(),
			DiscountAmount: cart.DiscountTotal(),
			GSTAmount:      cart.Tax(rate),
			GrandTotal:     cart.Total(rate),
			PaymentType:    enum.PaymentTypeCredit,
			PaymentStatus:  enum.PaymentStatusPending,
			AmountPaid:     decimal.Zero,
			CashierID:      session.CashierID,
			CashierName:    session.CashierName,
			Lines:          saleLines(cart),
		},
		HoldReason: reason,
	}

	result, err := s.sales.HoldSale(ctx, req)
	if err != nil {
		return "", err
	}

	cart.Clear()
	session.CheckoutState = enum.CheckoutStateOpen
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		s.log.Error().Err(err).Str("session_id", session.ID.String()).Msg("cart clear failed after hold")
	}

	s.log.Info().Str("invoice_number", result.InvoiceNumber).Str("session_id", session.ID.String()).Msg("cart held")
	return result.InvoiceNumber, nil
}

// List returns all currently held orders
func (s *HoldService) List(ctx context.Context) ([]entity.HeldOrder, error) {
	return s.sales.ListHeldSales(ctx)
}

// Resume fetches a held order's lines and merges them into the
// session's current cart with the same accumulate rule as a normal
// add. Resuming onto a non-empty cart is additive on purpose.
func (s *HoldService) Resume(ctx context.Context, sessionID, holdID uuid.UUID) (*CartView, error) {
	session, err := s.carts.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	lines, err := s.sales.ResumeSale(ctx, holdID)
	if err != nil {
		return nil, err
	}

	for _, line := range lines {
		product := entity.ProductRef{
			ID:        line.ProductID,
			Code:      line.ProductCode,
			Name:      line.ProductName,
			UnitPrice: line.UnitPrice,
		}
		if err := session.Cart.AddLine(product, line.Quantity); err != nil {
			return nil, err
		}
	}

	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}

	s.log.Info().Str("hold_id", holdID.String()).Int("lines", len(lines)).Msg("held order resumed")
	return s.carts.view(ctx, session), nil
}

// Delete removes a held order permanently. The handler collects the
// caller's confirmation; past this point there is no undo.
func (s *HoldService) Delete(ctx context.Context, holdID uuid.UUID) error {
	if err := s.sales.DeleteHeldSale(ctx, holdID); err != nil {
		return err
	}
	s.log.Info().Str("hold_id", holdID.String()).Msg("held order deleted")
	return nil
}
