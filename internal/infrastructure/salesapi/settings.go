package salesapi

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/maliksarmad/retailpos-api/internal/domain/gateway"
	"github.com/maliksarmad/retailpos-api/pkg/apperror"
)

type settingsResponse struct {
	envelope
	Settings struct {
		GSTRate  string `json:"gst_rate"`
		Currency string `json:"currency"`
	} `json:"settings"`
}

var _ gateway.SettingsGateway = (*Client)(nil)

// FetchSettings retrieves shop configuration. The GST rate arrives as
// a decimal string to avoid float drift on the wire.
func (c *Client) FetchSettings(ctx context.Context) (*gateway.ShopSettings, error) {
	var out settingsResponse
	if err := c.do(ctx, c.read, http.MethodGet, "/settings", nil, &out); err != nil {
		return nil, err
	}

	rate, err := decimal.NewFromString(out.Settings.GSTRate)
	if err != nil {
		return nil, apperror.NewUpstreamError("settings service returned an invalid gst rate: " + out.Settings.GSTRate)
	}
	return &gateway.ShopSettings{
		GSTRate:  rate,
		Currency: out.Settings.Currency,
	}, nil
}
