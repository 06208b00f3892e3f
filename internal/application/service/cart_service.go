package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/maliksarmad/retailpos-api/internal/domain/entity"
	"github.com/maliksarmad/retailpos-api/internal/domain/enum"
	"github.com/maliksarmad/retailpos-api/internal/domain/repository"
	"github.com/maliksarmad/retailpos-api/pkg/apperror"
	"github.com/maliksarmad/retailpos-api/pkg/logger"
)

// CartService owns terminal sessions and their in-progress carts
type CartService struct {
	sessionRepo repository.SessionRepository
	settings    *SettingsService
	log         zerolog.Logger
}

// NewCartService creates a new cart service
func NewCartService(sessionRepo repository.SessionRepository, settings *SettingsService) *CartService {
	return &CartService{
		sessionRepo: sessionRepo,
		settings:    settings,
		log:         logger.WithComponent("cart_service"),
	}
}

// CartView is the cart plus its derived amounts, computed once so the
// handler never recomputes money.
type CartView struct {
	SessionID      uuid.UUID            `json:"session_id"`
	CheckoutState  enum.CheckoutState   `json:"checkout_state"`
	Lines          []entity.CartLine    `json:"lines"`
	CustomerID     *uuid.UUID           `json:"customer_id,omitempty"`
	Discount       *entity.CartDiscount `json:"discount,omitempty"`
	GrossSubtotal  decimal.Decimal      `json:"gross_subtotal"`
	Subtotal       decimal.Decimal      `json:"subtotal"`
	DiscountAmount decimal.Decimal      `json:"discount_amount"`
	GSTRate        decimal.Decimal      `json:"gst_rate"`
	GSTAmount      decimal.Decimal      `json:"gst_amount"`
	GrandTotal     decimal.Decimal      `json:"grand_total"`
}

func (s *CartService) view(ctx context.Context, session *entity.TerminalSession) *CartView {
	rate := s.settings.GSTRate(ctx)
	cart := session.Cart
	return &CartView{
		SessionID:      session.ID,
		CheckoutState:  session.CheckoutState,
		Lines:          cart.Lines,
		CustomerID:     cart.CustomerID,
		Discount:       cart.Discount,
		GrossSubtotal:  cart.GrossSubtotal(),
		Subtotal:       cart.Subtotal(),
		DiscountAmount: cart.DiscountTotal(),
		GSTRate:        rate,
		GSTAmount:      cart.Tax(rate),
		GrandTotal:     cart.Total(rate),
	}
}

// OpenSession returns the cashier's existing session or opens a fresh
// one with an empty cart.
func (s *CartService) OpenSession(ctx context.Context, cashierID uuid.UUID, cashierName string) (*CartView, error) {
	session, err := s.sessionRepo.FindByCashier(ctx, cashierID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		session = entity.NewTerminalSession(cashierID, cashierName)
		if err := s.sessionRepo.Create(ctx, session); err != nil {
			return nil, err
		}
		s.log.Info().Str("session_id", session.ID.String()).Str("cashier_id", cashierID.String()).Msg("terminal session opened")
	}
	return s.view(ctx, session), nil
}

// GetSession loads a session or fails with not found
func (s *CartService) GetSession(ctx context.Context, sessionID uuid.UUID) (*entity.TerminalSession, error) {
	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NewNotFoundError("Terminal session")
	}
	return session, nil
}

// GetCart returns the current cart view for a session
func (s *CartService) GetCart(ctx context.Context, sessionID uuid.UUID) (*CartView, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, session), nil
}

// AddLineInput represents the add-to-cart input
type AddLineInput struct {
	ProductID uuid.UUID
	Code      string
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

// AddLine adds a product to the session's cart, accumulating quantity
// when the product is already present.
func (s *CartService) AddLine(ctx context.Context, sessionID uuid.UUID, input *AddLineInput) (*CartView, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	product := entity.ProductRef{
		ID:        input.ProductID,
		Code:      input.Code,
		Name:      input.Name,
		UnitPrice: input.UnitPrice,
	}
	if err := session.Cart.AddLine(product, input.Quantity); err != nil {
		return nil, err
	}
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}
	return s.view(ctx, session), nil
}

// UpdateQuantity adjusts a line's quantity by delta; a result of zero
// or less removes the line.
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID, productID uuid.UUID, delta int) (*CartView, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.Cart.UpdateQuantity(productID, delta); err != nil {
		return nil, err
	}
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}
	return s.view(ctx, session), nil
}

// RemoveLine deletes a line from the cart
func (s *CartService) RemoveLine(ctx context.Context, sessionID, productID uuid.UUID) (*CartView, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.Cart.RemoveLine(productID); err != nil {
		return nil, err
	}
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}
	return s.view(ctx, session), nil
}

// ClearCart empties the cart after the handler has confirmed intent
func (s *CartService) ClearCart(ctx context.Context, sessionID uuid.UUID) (*CartView, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	session.Cart.Clear()
	session.CheckoutState = enum.CheckoutStateOpen
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}
	return s.view(ctx, session), nil
}

// SetCustomer attaches or detaches the cart's customer reference
func (s *CartService) SetCustomer(ctx context.Context, sessionID uuid.UUID, customerID *uuid.UUID) (*CartView, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	session.Cart.CustomerID = customerID
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}
	return s.view(ctx, session), nil
}

// ApplyDiscount applies a cart-level discount, replacing any existing
// one. Percentage discounts outside [0,100] are rejected.
func (s *CartService) ApplyDiscount(ctx context.Context, sessionID uuid.UUID, kind enum.DiscountKind, value decimal.Decimal) (*CartView, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.Cart.ApplyDiscount(kind, value); err != nil {
		return nil, err
	}
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}
	return s.view(ctx, session), nil
}

// ClearDiscount removes the cart-level discount and restores line totals
func (s *CartService) ClearDiscount(ctx context.Context, sessionID uuid.UUID) (*CartView, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	session.Cart.ClearDiscount()
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}
	return s.view(ctx, session), nil
}

// CleanupExpired drops sessions idle past the configured TTL
func (s *CartService) CleanupExpired(ctx context.Context) (int64, error) {
	return s.sessionRepo.DeleteExpired(ctx)
}
