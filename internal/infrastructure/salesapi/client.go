// Package salesapi implements the sales-service gateways over its
// HTTP JSON API. Every response is wrapped in a {success, message}
// envelope; a failed envelope surfaces the service's message verbatim.
package salesapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/maliksarmad/retailpos-api/internal/config"
	"github.com/maliksarmad/retailpos-api/internal/domain/entity"
	"github.com/maliksarmad/retailpos-api/internal/domain/gateway"
	"github.com/maliksarmad/retailpos-api/pkg/apperror"
	"github.com/maliksarmad/retailpos-api/pkg/logger"
)

type Client struct {
	baseURL string
	apiKey  string
	// financial has no timeout: finalize/hold/payment calls are bounded
	// only by the caller's context so a slow service never produces an
	// ambiguous client-side abort mid-mutation.
	financial *http.Client
	read      *http.Client
	log       zerolog.Logger
}

var _ gateway.SalesGateway = (*Client)(nil)

func NewClient(cfg config.UpstreamConfig) *Client {
	return &Client{
		baseURL:   cfg.BaseURL,
		apiKey:    cfg.APIKey,
		financial: &http.Client{},
		read:      &http.Client{Timeout: cfg.ReadTimeout},
		log:       logger.WithComponent("salesapi"),
	}
}

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (e envelope) ok() bool       { return e.Success }
func (e envelope) errMsg() string { return e.Message }

// result is implemented by every response type so the transport layer
// can check the envelope without knowing the payload shape.
type result interface {
	ok() bool
	errMsg() string
}

func (c *Client) do(ctx context.Context, hc *http.Client, method, path string, body any, out result) error {
	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return apperror.NewInternalError(err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return apperror.NewInternalError(err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := hc.Do(req)
	if err != nil {
		c.log.Error().Err(err).Str("method", method).Str("path", path).Msg("sales service unreachable")
		return apperror.NewUpstreamError("sales service unreachable: " + err.Error())
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.log.Error().Err(err).Int("status", resp.StatusCode).Str("path", path).Msg("undecodable sales service response")
		return apperror.NewUpstreamError(fmt.Sprintf("sales service returned an unreadable response (status %d)", resp.StatusCode))
	}
	if !out.ok() {
		msg := out.errMsg()
		if msg == "" {
			msg = fmt.Sprintf("sales service request failed (status %d)", resp.StatusCode)
		}
		return apperror.NewUpstreamError(msg)
	}
	return nil
}

type finalizePayload struct {
	CustomerID     *uuid.UUID        `json:"customer_id,omitempty"`
	Subtotal       string            `json:"subtotal"`
	DiscountAmount string            `json:"discount_amount"`
	GSTAmount      string            `json:"gst_amount"`
	GrandTotal     string            `json:"grand_total"`
	PaymentType    string            `json:"payment_type"`
	PaymentStatus  string            `json:"payment_status"`
	AmountPaid     string            `json:"amount_paid"`
	CashierID      uuid.UUID         `json:"cashier_id"`
	CashierName    string            `json:"cashier_name,omitempty"`
	Lines          []entity.SaleLine `json:"lines"`
	HoldReason     string            `json:"hold_reason,omitempty"`
}

func buildFinalizePayload(req *gateway.FinalizeSaleRequest) finalizePayload {
	return finalizePayload{
		CustomerID:     req.CustomerID,
		Subtotal:       req.Subtotal.StringFixed(2),
		DiscountAmount: req.DiscountAmount.StringFixed(2),
		GSTAmount:      req.GSTAmount.StringFixed(2),
		GrandTotal:     req.GrandTotal.StringFixed(2),
		PaymentType:    string(req.PaymentType),
		PaymentStatus:  string(req.PaymentStatus),
		AmountPaid:     req.AmountPaid.StringFixed(2),
		CashierID:      req.CashierID,
		CashierName:    req.CashierName,
		Lines:          req.Lines,
	}
}

type invoiceResponse struct {
	envelope
	InvoiceNumber string `json:"invoice_number"`
}

func (c *Client) FinalizeSale(ctx context.Context, req *gateway.FinalizeSaleRequest) (*gateway.FinalizeSaleResult, error) {
	var out invoiceResponse
	if err := c.do(ctx, c.financial, http.MethodPost, "/sales", buildFinalizePayload(req), &out); err != nil {
		return nil, err
	}
	c.log.Info().Str("invoice_number", out.InvoiceNumber).Str("payment_type", string(req.PaymentType)).Msg("sale finalized")
	return &gateway.FinalizeSaleResult{InvoiceNumber: out.InvoiceNumber}, nil
}

func (c *Client) HoldSale(ctx context.Context, req *gateway.HoldSaleRequest) (*gateway.FinalizeSaleResult, error) {
	payload := buildFinalizePayload(&req.FinalizeSaleRequest)
	payload.HoldReason = req.HoldReason

	var out invoiceResponse
	if err := c.do(ctx, c.financial, http.MethodPost, "/sales/hold", payload, &out); err != nil {
		return nil, err
	}
	c.log.Info().Str("invoice_number", out.InvoiceNumber).Msg("sale held")
	return &gateway.FinalizeSaleResult{InvoiceNumber: out.InvoiceNumber}, nil
}

type resumeResponse struct {
	envelope
	Lines []entity.HeldOrderLine `json:"lines"`
}

func (c *Client) ResumeSale(ctx context.Context, holdID uuid.UUID) ([]entity.HeldOrderLine, error) {
	var out resumeResponse
	if err := c.do(ctx, c.read, http.MethodGet, "/sales/held/"+holdID.String(), nil, &out); err != nil {
		return nil, err
	}
	return out.Lines, nil
}

func (c *Client) DeleteHeldSale(ctx context.Context, holdID uuid.UUID) error {
	var out envelopeResponse
	return c.do(ctx, c.financial, http.MethodDelete, "/sales/held/"+holdID.String(), nil, &out)
}

type envelopeResponse struct {
	envelope
}

type heldSalesResponse struct {
	envelope
	Sales []entity.HeldOrder `json:"sales"`
}

func (c *Client) ListHeldSales(ctx context.Context) ([]entity.HeldOrder, error) {
	var out heldSalesResponse
	if err := c.do(ctx, c.read, http.MethodGet, "/sales/held", nil, &out); err != nil {
		return nil, err
	}
	return out.Sales, nil
}

type creditPaymentPayload struct {
	Amount    string      `json:"amount"`
	Method    string      `json:"method"`
	SaleIDs   []uuid.UUID `json:"sale_ids,omitempty"`
	Notes     string      `json:"notes,omitempty"`
	CashierID uuid.UUID   `json:"cashier_id"`
}

type creditPaymentResponse struct {
	envelope
	Result entity.PaymentResult `json:"result"`
}

func (c *Client) SubmitCreditPayment(ctx context.Context, payment *entity.CreditPayment) (*entity.PaymentResult, error) {
	payload := creditPaymentPayload{
		Amount:    payment.Amount.StringFixed(2),
		Method:    string(payment.Method),
		SaleIDs:   payment.SaleIDs,
		Notes:     payment.Notes,
		CashierID: payment.CashierID,
	}

	var out creditPaymentResponse
	path := "/customers/" + payment.CustomerID.String() + "/credit-payments"
	if err := c.do(ctx, c.financial, http.MethodPost, path, payload, &out); err != nil {
		return nil, err
	}
	c.log.Info().Str("customer_id", payment.CustomerID.String()).Str("amount", payment.Amount.StringFixed(2)).Str("mode", string(payment.Mode)).Msg("credit payment recorded")
	return &out.Result, nil
}

type pendingSalesResponse struct {
	envelope
	Entries []entity.PendingSale `json:"entries"`
}

func (c *Client) ListPendingCreditSales(ctx context.Context, customerID uuid.UUID) ([]entity.PendingSale, error) {
	var out pendingSalesResponse
	if err := c.do(ctx, c.read, http.MethodGet, "/customers/"+customerID.String()+"/pending-sales", nil, &out); err != nil {
		return nil, err
	}
	return out.Entries, nil
}

type creditCustomersResponse struct {
	envelope
	Customers []entity.CreditCustomer `json:"customers"`
}

func (c *Client) ListCreditCustomers(ctx context.Context) ([]entity.CreditCustomer, error) {
	var out creditCustomersResponse
	if err := c.do(ctx, c.read, http.MethodGet, "/customers/credit", nil, &out); err != nil {
		return nil, err
	}
	return out.Customers, nil
}

type reconcileResponse struct {
	envelope
	UpdatedCount int `json:"updated_count"`
}

func (c *Client) ReconcileCustomerBalances(ctx context.Context) (int, error) {
	var out reconcileResponse
	if err := c.do(ctx, c.financial, http.MethodPost, "/customers/reconcile-balances", nil, &out); err != nil {
		return 0, err
	}
	c.log.Info().Int("updated_count", out.UpdatedCount).Msg("customer balances reconciled")
	return out.UpdatedCount, nil
}
