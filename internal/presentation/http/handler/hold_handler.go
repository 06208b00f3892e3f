package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/maliksarmad/retailpos-api/internal/application/service"
	"github.com/maliksarmad/retailpos-api/internal/presentation/http/dto/request"
	"github.com/maliksarmad/retailpos-api/internal/presentation/http/dto/response"
)

// HoldHandler handles held-order HTTP requests
type HoldHandler struct {
	holdService *service.HoldService
}

// NewHoldHandler creates a new hold handler
func NewHoldHandler(holdService *service.HoldService) *HoldHandler {
	return &HoldHandler{holdService: holdService}
}

// Hold handles suspending the session's cart
func (h *HoldHandler) Hold(c *gin.Context) {
	sessionID, ok := parseUUIDParam(c, "sessionId")
	if !ok {
		response.BadRequest(c, "Invalid session id")
		return
	}

	var req request.HoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	invoiceNumber, err := h.holdService.Hold(c.Request.Context(), sessionID, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Cart held", gin.H{"invoice_number": invoiceNumber})
}

// List handles listing all held orders
func (h *HoldHandler) List(c *gin.Context) {
	orders, err := h.holdService.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Held orders retrieved successfully", gin.H{"sales": orders})
}

// Resume handles merging a held order into the session's cart
func (h *HoldHandler) Resume(c *gin.Context) {
	sessionID, ok := parseUUIDParam(c, "sessionId")
	if !ok {
		response.BadRequest(c, "Invalid session id")
		return
	}
	holdID, ok := parseUUIDParam(c, "holdId")
	if !ok {
		response.BadRequest(c, "Invalid held order id")
		return
	}

	view, err := h.holdService.Resume(c.Request.Context(), sessionID, holdID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Held order resumed", view)
}

// Delete handles permanently removing a held order. The confirm query
// flag stands in for the cashier's confirmation dialog.
func (h *HoldHandler) Delete(c *gin.Context) {
	holdID, ok := parseUUIDParam(c, "holdId")
	if !ok {
		response.BadRequest(c, "Invalid held order id")
		return
	}

	if c.Query("confirm") != "true" {
		response.BadRequest(c, "Deleting a held order is irreversible; pass confirm=true")
		return
	}

	if err := h.holdService.Delete(c.Request.Context(), holdID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
