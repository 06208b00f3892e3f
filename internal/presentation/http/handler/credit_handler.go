package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/maliksarmad/retailpos-api/internal/application/service"
	"github.com/maliksarmad/retailpos-api/internal/domain/enum"
	"github.com/maliksarmad/retailpos-api/internal/presentation/http/dto/request"
	"github.com/maliksarmad/retailpos-api/internal/presentation/http/dto/response"
)

// CreditHandler handles customer credit HTTP requests
type CreditHandler struct {
	creditService *service.CreditService
}

// NewCreditHandler creates a new credit handler
func NewCreditHandler(creditService *service.CreditService) *CreditHandler {
	return &CreditHandler{creditService: creditService}
}

// ListCustomers handles the credit overview listing
func (h *CreditHandler) ListCustomers(c *gin.Context) {
	customers, err := h.creditService.ListCustomers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Credit customers retrieved successfully", gin.H{"customers": customers})
}

// ListPendingSales handles listing a customer's outstanding sales
func (h *CreditHandler) ListPendingSales(c *gin.Context) {
	customerID, ok := parseUUIDParam(c, "customerId")
	if !ok {
		response.BadRequest(c, "Invalid customer id")
		return
	}

	sales, err := h.creditService.ListPendingSales(c.Request.Context(), customerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Pending sales retrieved successfully", gin.H{"entries": sales})
}

// ProcessPayment handles recording a credit payment
func (h *CreditHandler) ProcessPayment(c *gin.Context) {
	customerID, ok := parseUUIDParam(c, "customerId")
	if !ok {
		response.BadRequest(c, "Invalid customer id")
		return
	}
	cashierID := GetCashierID(c)
	if cashierID == nil {
		response.Unauthorized(c, "Cashier not authenticated")
		return
	}

	var req request.ProcessPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	amount, ok := parseAmount(req.Amount)
	if !ok {
		response.BadRequest(c, "Invalid payment amount")
		return
	}

	result, err := h.creditService.ProcessPayment(c.Request.Context(), &service.ProcessPaymentInput{
		CustomerID: customerID,
		Amount:     amount,
		Method:     enum.PaymentType(req.Method),
		Mode:       enum.PaymentMode(req.Mode),
		SaleIDs:    req.SaleIDs,
		Notes:      req.Notes,
		CashierID:  *cashierID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Payment recorded", result)
}

// Reconcile handles recomputing every customer's balance from sales
func (h *CreditHandler) Reconcile(c *gin.Context) {
	updated, err := h.creditService.Reconcile(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Balances reconciled", gin.H{"updated_count": updated})
}
