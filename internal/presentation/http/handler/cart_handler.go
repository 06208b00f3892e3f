package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/maliksarmad/retailpos-api/internal/application/service"
	"github.com/maliksarmad/retailpos-api/internal/domain/enum"
	"github.com/maliksarmad/retailpos-api/internal/presentation/http/dto/request"
	"github.com/maliksarmad/retailpos-api/internal/presentation/http/dto/response"
)

// CartHandler handles terminal session and cart HTTP requests
type CartHandler struct {
	cartService *service.CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// OpenSession handles opening (or re-attaching to) a terminal session
func (h *CartHandler) OpenSession(c *gin.Context) {
	cashierID := GetCashierID(c)
	if cashierID == nil {
		response.Unauthorized(c, "Cashier not authenticated")
		return
	}

	view, err := h.cartService.OpenSession(c.Request.Context(), *cashierID, GetCashierName(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Session ready", view)
}

// GetCart handles fetching the current cart with derived totals
func (h *CartHandler) GetCart(c *gin.Context) {
	sessionID, ok := parseUUIDParam(c, "sessionId")
	if !ok {
		response.BadRequest(c, "Invalid session id")
		return
	}

	view, err := h.cartService.GetCart(c.Request.Context(), sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Cart retrieved successfully", view)
}

// AddLine handles adding a product to the cart
func (h *CartHandler) AddLine(c *gin.Context) {
	sessionID, ok := parseUUIDParam(c, "sessionId")
	if !ok {
		response.BadRequest(c, "Invalid session id")
		return
	}

	var req request.AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	unitPrice, ok := parseAmount(req.UnitPrice)
	if !ok {
		response.BadRequest(c, "Invalid unit price")
		return
	}

	view, err := h.cartService.AddLine(c.Request.Context(), sessionID, &service.AddLineInput{
		ProductID: req.ProductID,
		Code:      req.Code,
		Name:      req.Name,
		UnitPrice: unitPrice,
		Quantity:  req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Line added", view)
}

// UpdateQuantity handles adjusting a line's quantity
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	sessionID, ok := parseUUIDParam(c, "sessionId")
	if !ok {
		response.BadRequest(c, "Invalid session id")
		return
	}
	productID, ok := parseUUIDParam(c, "productId")
	if !ok {
		response.BadRequest(c, "Invalid product id")
		return
	}

	var req request.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	view, err := h.cartService.UpdateQuantity(c.Request.Context(), sessionID, productID, req.Delta)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Quantity updated", view)
}

// RemoveLine handles deleting a line from the cart
func (h *CartHandler) RemoveLine(c *gin.Context) {
	sessionID, ok := parseUUIDParam(c, "sessionId")
	if !ok {
		response.BadRequest(c, "Invalid session id")
		return
	}
	productID, ok := parseUUIDParam(c, "productId")
	if !ok {
		response.BadRequest(c, "Invalid product id")
		return
	}

	view, err := h.cartService.RemoveLine(c.Request.Context(), sessionID, productID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Line removed", view)
}

// ClearCart handles emptying the cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	sessionID, ok := parseUUIDParam(c, "sessionId")
	if !ok {
		response.BadRequest(c, "Invalid session id")
		return
	}

	view, err := h.cartService.ClearCart(c.Request.Context(), sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Cart cleared", view)
}

// SetCustomer handles attaching or detaching the cart's customer
func (h *CartHandler) SetCustomer(c *gin.Context) {
	sessionID, ok := parseUUIDParam(c, "sessionId")
	if !ok {
		response.BadRequest(c, "Invalid session id")
		return
	}

	var req request.SetCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	view, err := h.cartService.SetCustomer(c.Request.Context(), sessionID, req.CustomerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Customer updated", view)
}

// ApplyDiscount handles applying a cart-level discount
func (h *CartHandler) ApplyDiscount(c *gin.Context) {
	sessionID, ok := parseUUIDParam(c, "sessionId")
	if !ok {
		response.BadRequest(c, "Invalid session id")
		return
	}

	var req request.ApplyDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	value, ok := parseAmount(req.Value)
	if !ok {
		response.BadRequest(c, "Invalid discount value")
		return
	}

	view, err := h.cartService.ApplyDiscount(c.Request.Context(), sessionID, enum.DiscountKind(req.Kind), value)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Discount applied", view)
}

// ClearDiscount handles removing the cart-level discount
func (h *CartHandler) ClearDiscount(c *gin.Context) {
	sessionID, ok := parseUUIDParam(c, "sessionId")
	if !ok {
		response.BadRequest(c, "Invalid session id")
		return
	}

	view, err := h.cartService.ClearDiscount(c.Request.Context(), sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Discount cleared", view)
}
