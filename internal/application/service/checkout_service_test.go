package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maliksarmad/retailpos-api/internal/config"
	"github.com/maliksarmad/retailpos-api/internal/domain/entity"
	"github.com/maliksarmad/retailpos-api/internal/domain/enum"
	"github.com/maliksarmad/retailpos-api/internal/domain/gateway"
	"github.com/maliksarmad/retailpos-api/internal/infrastructure/repository"
	"github.com/maliksarmad/retailpos-api/pkg/apperror"
)

type fakeSalesGateway struct {
	finalizeFunc      func(ctx context.Context, req *gateway.FinalizeSaleRequest) (*gateway.FinalizeSaleResult, error)
	holdFunc          func(ctx context.Context, req *gateway.HoldSaleRequest) (*gateway.FinalizeSaleResult, error)
	resumeFunc        func(ctx context.Context, holdID uuid.UUID) ([]entity.HeldOrderLine, error)
	deleteHeldFunc    func(ctx context.Context, holdID uuid.UUID) error
	listHeldFunc      func(ctx context.Context) ([]entity.HeldOrder, error)
	submitPaymentFunc func(ctx context.Context, payment *entity.CreditPayment) (*entity.PaymentResult, error)
	listPendingFunc   func(ctx context.Context, customerID uuid.UUID) ([]entity.PendingSale, error)
	listCustomersFunc func(ctx context.Context) ([]entity.CreditCustomer, error)
	reconcileFunc     func(ctx context.Context) (int, error)

	finalizeCalls int
	paymentCalls  int
}

func (f *fakeSalesGateway) FinalizeSale(ctx context.Context, req *gateway.FinalizeSaleRequest) (*gateway.FinalizeSaleResult, error) {
	f.finalizeCalls++
	if f.finalizeFunc != nil {
		return f.finalizeFunc(ctx, req)
	}
	return &gateway.FinalizeSaleResult{InvoiceNumber: "INV-0001"}, nil
}

func (f *fakeSalesGateway) HoldSale(ctx context.Context, req *gateway.HoldSaleRequest) (*gateway.FinalizeSaleResult, error) {
	if f.holdFunc != nil {
		return f.holdFunc(ctx, req)
	}
	return &gateway.FinalizeSaleResult{InvoiceNumber: "HOLD-0001"}, nil
}

func (f *fakeSalesGateway) ResumeSale(ctx context.Context, holdID uuid.UUID) ([]entity.HeldOrderLine, error) {
	if f.resumeFunc != nil {
		return f.resumeFunc(ctx, holdID)
	}
	return nil, nil
}

func (f *fakeSalesGateway) DeleteHeldSale(ctx context.Context, holdID uuid.UUID) error {
	if f.deleteHeldFunc != nil {
		return f.deleteHeldFunc(ctx, holdID)
	}
	return nil
}

func (f *fakeSalesGateway) ListHeldSales(ctx context.Context) ([]entity.HeldOrder, error) {
	if f.listHeldFunc != nil {
		return f.listHeldFunc(ctx)
	}
	return nil, nil
}

func (f *fakeSalesGateway) SubmitCreditPayment(ctx context.Context, payment *entity.CreditPayment) (*entity.PaymentResult, error) {
	f.paymentCalls++
	if f.submitPaymentFunc != nil {
		return f.submitPaymentFunc(ctx, payment)
	}
	return &entity.PaymentResult{}, nil
}

func (f *fakeSalesGateway) ListPendingCreditSales(ctx context.Context, customerID uuid.UUID) ([]entity.PendingSale, error) {
	if f.listPendingFunc != nil {
		return f.listPendingFunc(ctx, customerID)
	}
	return nil, nil
}

func (f *fakeSalesGateway) ListCreditCustomers(ctx context.Context) ([]entity.CreditCustomer, error) {
	if f.listCustomersFunc != nil {
		return f.listCustomersFunc(ctx)
	}
	return nil, nil
}

func (f *fakeSalesGateway) ReconcileCustomerBalances(ctx context.Context) (int, error) {
	if f.reconcileFunc != nil {
		return f.reconcileFunc(ctx)
	}
	return 0, nil
}

type fakeSettingsGateway struct{}

func (fakeSettingsGateway) FetchSettings(ctx context.Context) (*gateway.ShopSettings, error) {
	return &gateway.ShopSettings{GSTRate: dec("0.17"), Currency: "PKR"}, nil
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

type testEnv struct {
	carts    *CartService
	checkout *CheckoutService
	holds    *HoldService
	sales    *fakeSalesGateway
	session  *entity.TerminalSession
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	sales := &fakeSalesGateway{}
	sessionRepo := repository.NewSessionMemoryRepository(time.Hour)
	settings := NewSettingsService(fakeSettingsGateway{}, config.TaxConfig{DefaultGSTRate: "0.17", CacheTTL: time.Minute})
	carts := NewCartService(sessionRepo, settings)

	session := entity.NewTerminalSession(uuid.New(), "Test Cashier")
	require.NoError(t, sessionRepo.Create(context.Background(), session))

	return &testEnv{
		carts:    carts,
		checkout: NewCheckoutService(sessionRepo, sales, settings, carts),
		holds:    NewHoldService(sessionRepo, sales, settings, carts),
		sales:    sales,
		session:  session,
	}
}

func (e *testEnv) addLine(t *testing.T, price string, qty int) {
	t.Helper()
	_, err := e.carts.AddLine(context.Background(), e.session.ID, &AddLineInput{
		ProductID: uuid.New(),
		Name:      "Product",
		UnitPrice: dec(price),
		Quantity:  qty,
	})
	require.NoError(t, err)
}

func TestCashCheckoutWithChange(t *testing.T) {
	env := newTestEnv(t)
	env.addLine(t, "100", 2)
	_, err := env.carts.ApplyDiscount(context.Background(), env.session.ID, enum.DiscountKindPercentage, dec("10"))
	require.NoError(t, err)

	_, err = env.checkout.Initiate(context.Background(), env.session.ID)
	require.NoError(t, err)

	var submitted *gateway.FinalizeSaleRequest
	env.sales.finalizeFunc = func(ctx context.Context, req *gateway.FinalizeSaleRequest) (*gateway.FinalizeSaleResult, error) {
		submitted = req
		return &gateway.FinalizeSaleResult{InvoiceNumber: "INV-7777"}, nil
	}

	receipt, err := env.checkout.Complete(context.Background(), env.session.ID, &CompleteInput{
		PaymentType: enum.PaymentTypeCash,
		Tendered:    dec("250"),
	})
	require.NoError(t, err)

	assert.Equal(t, "INV-7777", receipt.InvoiceNumber)
	assert.True(t, receipt.GrandTotal.Equal(dec("210.6")))
	assert.True(t, receipt.Change.Equal(dec("39.4")))
	assert.Equal(t, enum.PaymentStatusCompleted, receipt.PaymentStatus)

	require.NotNil(t, submitted)
	assert.Equal(t, enum.PaymentStatusCompleted, submitted.PaymentStatus)
	assert.True(t, submitted.AmountPaid.Equal(dec("210.6")))
	assert.Len(t, submitted.Lines, 1)

	// The session starts over with an empty cart.
	view, err := env.carts.GetCart(context.Background(), env.session.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
	assert.Equal(t, enum.CheckoutStateOpen, view.CheckoutState)
}

func TestCreditCheckoutEntersPending(t *testing.T) {
	env := newTestEnv(t)
	env.addLine(t, "500", 1)
	customerID := uuid.New()
	_, err := env.carts.SetCustomer(context.Background(), env.session.ID, &customerID)
	require.NoError(t, err)

	_, err = env.checkout.Initiate(context.Background(), env.session.ID)
	require.NoError(t, err)

	var submitted *gateway.FinalizeSaleRequest
	env.sales.finalizeFunc = func(ctx context.Context, req *gateway.FinalizeSaleRequest) (*gateway.FinalizeSaleResult, error) {
		submitted = req
		return &gateway.FinalizeSaleResult{InvoiceNumber: "INV-C1"}, nil
	}

	receipt, err := env.checkout.Complete(context.Background(), env.session.ID, &CompleteInput{
		PaymentType: enum.PaymentTypeCredit,
		Tendered:    decimal.Zero,
	})
	require.NoError(t, err)

	assert.Equal(t, enum.PaymentStatusPending, receipt.PaymentStatus)
	assert.True(t, receipt.Change.IsZero())
	require.NotNil(t, submitted)
	require.NotNil(t, submitted.CustomerID)
	assert.Equal(t, customerID, *submitted.CustomerID)
	assert.True(t, submitted.AmountPaid.IsZero())
}

func TestCreditOverTenderCappedAtTotal(t *testing.T) {
	env := newTestEnv(t)
	env.addLine(t, "200", 1)
	customerID := uuid.New()
	_, err := env.carts.SetCustomer(context.Background(), env.session.ID, &customerID)
	require.NoError(t, err)

	_, err = env.checkout.Initiate(context.Background(), env.session.ID)
	require.NoError(t, err)

	var submitted *gateway.FinalizeSaleRequest
	env.sales.finalizeFunc = func(ctx context.Context, req *gateway.FinalizeSaleRequest) (*gateway.FinalizeSaleResult, error) {
		submitted = req
		return &gateway.FinalizeSaleResult{InvoiceNumber: "INV-C2"}, nil
	}

	// Total is 234 (200 + 17% GST); tendering 500 settles the sale and
	// returns the rest as change rather than overpaying the ledger.
	receipt, err := env.checkout.Complete(context.Background(), env.session.ID, &CompleteInput{
		PaymentType: enum.PaymentTypeCredit,
		Tendered:    dec("500"),
	})
	require.NoError(t, err)

	assert.Equal(t, enum.PaymentStatusCompleted, receipt.PaymentStatus)
	assert.True(t, receipt.Change.Equal(dec("266")))
	require.NotNil(t, submitted)
	assert.True(t, submitted.AmountPaid.Equal(dec("234")))
	assert.False(t, submitted.GrandTotal.Sub(submitted.AmountPaid).IsNegative())
}

func TestCreditPartialTenderEntersPartial(t *testing.T) {
	env := newTestEnv(t)
	env.addLine(t, "200", 1)
	customerID := uuid.New()
	_, err := env.carts.SetCustomer(context.Background(), env.session.ID, &customerID)
	require.NoError(t, err)

	_, err = env.checkout.Initiate(context.Background(), env.session.ID)
	require.NoError(t, err)

	var submitted *gateway.FinalizeSaleRequest
	env.sales.finalizeFunc = func(ctx context.Context, req *gateway.FinalizeSaleRequest) (*gateway.FinalizeSaleResult, error) {
		submitted = req
		return &gateway.FinalizeSaleResult{InvoiceNumber: "INV-C3"}, nil
	}

	receipt, err := env.checkout.Complete(context.Background(), env.session.ID, &CompleteInput{
		PaymentType: enum.PaymentTypeCredit,
		Tendered:    dec("100"),
	})
	require.NoError(t, err)

	assert.Equal(t, enum.PaymentStatusPartial, receipt.PaymentStatus)
	assert.True(t, receipt.Change.IsZero())
	require.NotNil(t, submitted)
	assert.True(t, submitted.AmountPaid.Equal(dec("100")))
}

func TestCreditCheckoutRequiresCustomer(t *testing.T) {
	env := newTestEnv(t)
	env.addLine(t, "100", 1)

	_, err := env.checkout.Initiate(context.Background(), env.session.ID)
	require.NoError(t, err)

	_, err = env.checkout.Complete(context.Background(), env.session.ID, &CompleteInput{
		PaymentType: enum.PaymentTypeCredit,
		Tendered:    decimal.Zero,
	})
	assert.ErrorIs(t, err, apperror.ErrCreditRequiresCustomer)

	// The validation failure never reached the network and the cart is
	// unchanged.
	assert.Zero(t, env.sales.finalizeCalls)
	view, err := env.carts.GetCart(context.Background(), env.session.ID)
	require.NoError(t, err)
	assert.Len(t, view.Lines, 1)
	assert.Equal(t, enum.CheckoutStatePaymentPending, view.CheckoutState)
}

func TestInsufficientTenderRejected(t *testing.T) {
	env := newTestEnv(t)
	env.addLine(t, "100", 1)

	_, err := env.checkout.Initiate(context.Background(), env.session.ID)
	require.NoError(t, err)

	_, err = env.checkout.Complete(context.Background(), env.session.ID, &CompleteInput{
		PaymentType: enum.PaymentTypeCash,
		Tendered:    dec("50"),
	})
	assert.ErrorIs(t, err, apperror.ErrInsufficientTender)
	assert.Zero(t, env.sales.finalizeCalls)
}

func TestServiceFailurePreservesCheckout(t *testing.T) {
	env := newTestEnv(t)
	env.addLine(t, "100", 1)

	_, err := env.checkout.Initiate(context.Background(), env.session.ID)
	require.NoError(t, err)

	env.sales.finalizeFunc = func(ctx context.Context, req *gateway.FinalizeSaleRequest) (*gateway.FinalizeSaleResult, error) {
		return nil, apperror.NewUpstreamError("Insufficient stock for Product A")
	}

	_, err = env.checkout.Complete(context.Background(), env.session.ID, &CompleteInput{
		PaymentType: enum.PaymentTypeCash,
		Tendered:    dec("200"),
	})
	require.Error(t, err)
	assert.Equal(t, "Insufficient stock for Product A", apperror.GetAppError(err).Message)

	// Cart and machine preserved for a deliberate retry.
	view, viewErr := env.carts.GetCart(context.Background(), env.session.ID)
	require.NoError(t, viewErr)
	assert.Len(t, view.Lines, 1)
	assert.Equal(t, enum.CheckoutStatePaymentPending, view.CheckoutState)
}

func TestCompleteRequiresInitiate(t *testing.T) {
	env := newTestEnv(t)
	env.addLine(t, "100", 1)

	_, err := env.checkout.Complete(context.Background(), env.session.ID, &CompleteInput{
		PaymentType: enum.PaymentTypeCash,
		Tendered:    dec("200"),
	})
	assert.ErrorIs(t, err, apperror.ErrCheckoutNotPending)
}

func TestInitiateOnEmptyCart(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.checkout.Initiate(context.Background(), env.session.ID)
	assert.ErrorIs(t, err, apperror.ErrEmptyCart)
}

func TestAbortReturnsToOpen(t *testing.T) {
	env := newTestEnv(t)
	env.addLine(t, "100", 1)

	_, err := env.checkout.Initiate(context.Background(), env.session.ID)
	require.NoError(t, err)

	view, err := env.checkout.Abort(context.Background(), env.session.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.CheckoutStateOpen, view.CheckoutState)
	assert.Len(t, view.Lines, 1)

	// Nothing pending anymore, so a second abort fails.
	_, err = env.checkout.Abort(context.Background(), env.session.ID)
	assert.ErrorIs(t, err, apperror.ErrCheckoutNotPending)
}
