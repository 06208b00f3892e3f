package salesapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
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
	"github.com/maliksarmad/retailpos-api/pkg/apperror"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(config.UpstreamConfig{
		BaseURL:     server.URL,
		APIKey:      "test-key",
		ReadTimeout: 5 * time.Second,
	})
}

func TestFinalizeSaleSuccess(t *testing.T) {
	var got finalizePayload
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/sales", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		json.NewEncoder(w).Encode(map[string]any{
			"success":        true,
			"invoice_number": "INV-1234",
		})
	}))

	customerID := uuid.New()
	result, err := client.FinalizeSale(context.Background(), &gateway.FinalizeSaleRequest{
		CustomerID:     &customerID,
		Subtotal:       decimal.NewFromInt(180),
		DiscountAmount: decimal.NewFromInt(20),
		GSTAmount:      decimal.RequireFromString("30.6"),
		GrandTotal:     decimal.RequireFromString("210.6"),
		PaymentType:    enum.PaymentTypeCash,
		PaymentStatus:  enum.PaymentStatusCompleted,
		AmountPaid:     decimal.RequireFromString("210.6"),
		CashierID:      uuid.New(),
		Lines: []entity.SaleLine{
			{ProductID: uuid.New(), Quantity: 2, UnitPrice: decimal.NewFromInt(100), LineTotal: decimal.NewFromInt(180)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "INV-1234", result.InvoiceNumber)

	// Money crosses the wire as fixed-point strings.
	assert.Equal(t, "210.60", got.GrandTotal)
	assert.Equal(t, "completed", got.PaymentStatus)
	require.Len(t, got.Lines, 1)
}

func TestServiceErrorSurfacedVerbatim(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"message": "Insufficient stock for Product A",
		})
	}))

	_, err := client.FinalizeSale(context.Background(), &gateway.FinalizeSaleRequest{})
	require.Error(t, err)

	appErr := apperror.GetAppError(err)
	assert.Equal(t, http.StatusBadGateway, appErr.Code)
	assert.Equal(t, "Insufficient stock for Product A", appErr.Message)
}

func TestFailedEnvelopeWithoutMessage(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]any{"success": false})
	}))

	_, err := client.ReconcileCustomerBalances(context.Background())
	require.Error(t, err)
	assert.Contains(t, apperror.GetAppError(err).Message, "status 500")
}

func TestHoldSaleCarriesReason(t *testing.T) {
	var got finalizePayload
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sales/hold", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]any{"success": true, "invoice_number": "HOLD-9"})
	}))

	result, err := client.HoldSale(context.Background(), &gateway.HoldSaleRequest{
		FinalizeSaleRequest: gateway.FinalizeSaleRequest{
			PaymentType:   enum.PaymentTypeCredit,
			PaymentStatus: enum.PaymentStatusPending,
		},
		HoldReason: "phone order",
	})
	require.NoError(t, err)
	assert.Equal(t, "HOLD-9", result.InvoiceNumber)
	assert.Equal(t, "phone order", got.HoldReason)
	assert.Equal(t, "credit", got.PaymentType)
}

func TestResumeSaleDecodesLines(t *testing.T) {
	productID := uuid.New()
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"lines": []map[string]any{
				{"product_id": productID, "product_name": "X", "unit_price": "12.50", "quantity": 2},
			},
		})
	}))

	lines, err := client.ResumeSale(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, productID, lines[0].ProductID)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.True(t, lines[0].UnitPrice.Equal(decimal.RequireFromString("12.50")))
}

func TestListPendingCreditSales(t *testing.T) {
	customerID := uuid.New()
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/customers/"+customerID.String()+"/pending-sales", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"entries": []map[string]any{
				{"id": uuid.New(), "invoice_number": "INV-1", "balance_due": "40", "grand_total": "100", "payment_status": "partial"},
			},
		})
	}))

	entries, err := client.ListPendingCreditSales(context.Background(), customerID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, enum.PaymentStatusPartial, entries[0].PaymentStatus)
	assert.True(t, entries[0].BalanceDue.Equal(decimal.NewFromInt(40)))
}

func TestSubmitCreditPaymentUnreachable(t *testing.T) {
	client := NewClient(config.UpstreamConfig{BaseURL: "http://127.0.0.1:1", ReadTimeout: time.Second})

	_, err := client.SubmitCreditPayment(context.Background(), &entity.CreditPayment{
		CustomerID: uuid.New(),
		Amount:     decimal.NewFromInt(10),
		Method:     enum.PaymentTypeCash,
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, apperror.GetAppError(err).Code)
}

func TestFetchSettings(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/settings", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"success":  true,
			"settings": map[string]any{"gst_rate": "0.17", "currency": "PKR"},
		})
	}))

	settings, err := client.FetchSettings(context.Background())
	require.NoError(t, err)
	assert.True(t, settings.GSTRate.Equal(decimal.RequireFromString("0.17")))
	assert.Equal(t, "PKR", settings.Currency)
}

func TestFetchSettingsInvalidRate(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success":  true,
			"settings": map[string]any{"gst_rate": "not-a-number"},
		})
	}))

	_, err := client.FetchSettings(context.Background())
	require.Error(t, err)
}
