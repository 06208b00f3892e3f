package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/maliksarmad/retailpos-api/internal/application/service"
	"github.com/maliksarmad/retailpos-api/internal/domain/enum"
	"github.com/maliksarmad/retailpos-api/internal/presentation/http/dto/request"
	"github.com/maliksarmad/retailpos-api/internal/presentation/http/dto/response"
)

// CheckoutHandler handles checkout HTTP requests
type CheckoutHandler struct {
	checkoutService *service.CheckoutService
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// Initiate handles moving a session into payment
func (h *CheckoutHandler) Initiate(c *gin.Context) {
	sessionID, ok := parseUUIDParam(c, "sessionId")
	if !ok {
		response.BadRequest(c, "Invalid session id")
		return
	}

	view, err := h.checkoutService.Initiate(c.Request.Context(), sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Checkout initiated", view)
}

// Complete handles finishing a checkout with the given tender
func (h *CheckoutHandler) Complete(c *gin.Context) {
	sessionID, ok := parseUUIDParam(c, "sessionId")
	if !ok {
		response.BadRequest(c, "Invalid session id")
		return
	}

	var req request.CompleteCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	tendered, ok := parseAmount(req.Tendered)
	if !ok {
		response.BadRequest(c, "Invalid tendered amount")
		return
	}

	receipt, err := h.checkoutService.Complete(c.Request.Context(), sessionID, &service.CompleteInput{
		PaymentType: enum.PaymentType(req.PaymentType),
		Tendered:    tendered,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Sale completed", receipt)
}

// Abort handles cancelling an in-progress checkout
func (h *CheckoutHandler) Abort(c *gin.Context) {
	sessionID, ok := parseUUIDParam(c, "sessionId")
	if !ok {
		response.BadRequest(c, "Invalid session id")
		return
	}

	view, err := h.checkoutService.Abort(c.Request.Context(), sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Checkout aborted", view)
}
