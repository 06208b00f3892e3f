package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GetCashierID extracts the cashier ID from the Gin context
func GetCashierID(c *gin.Context) *uuid.UUID {
	cashierIDVal, exists := c.Get("cashier_id")
	if !exists {
		return nil
	}
	cashierID, ok := cashierIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &cashierID
}

// GetCashierName extracts the cashier name from the Gin context
func GetCashierName(c *gin.Context) string {
	name, exists := c.Get("cashier_name")
	if !exists {
		return ""
	}
	return name.(string)
}

// GetTerminalID extracts the terminal ID from the Gin context
func GetTerminalID(c *gin.Context) string {
	terminalID, exists := c.Get("terminal_id")
	if !exists {
		return ""
	}
	return terminalID.(string)
}

// parseUUIDParam parses a UUID path parameter
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// parseAmount parses a decimal string from a request body field
func parseAmount(raw string) (decimal.Decimal, bool) {
	if raw == "" {
		return decimal.Zero, true
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false
	}
	return amount, true
}
