package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/maliksarmad/retailpos-api/internal/application/service"
	"github.com/maliksarmad/retailpos-api/internal/presentation/http/dto/response"
)

// SettingsHandler exposes the effective shop settings to terminals
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// Get handles fetching the cached shop settings
func (h *SettingsHandler) Get(c *gin.Context) {
	settings := h.settingsService.Settings(c.Request.Context())
	response.OK(c, "Settings retrieved successfully", gin.H{
		"gst_rate": settings.GSTRate.String(),
		"currency": settings.Currency,
	})
}
