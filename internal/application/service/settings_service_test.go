package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/maliksarmad/retailpos-api/internal/config"
	"github.com/maliksarmad/retailpos-api/internal/domain/gateway"
	"github.com/maliksarmad/retailpos-api/pkg/apperror"
)

type countingSettingsGateway struct {
	calls int
	fail  bool
	rate  string
}

func (g *countingSettingsGateway) FetchSettings(ctx context.Context) (*gateway.ShopSettings, error) {
	g.calls++
	if g.fail {
		return nil, apperror.NewUpstreamError("settings service down")
	}
	return &gateway.ShopSettings{GSTRate: dec(g.rate), Currency: "PKR"}, nil
}

func TestSettingsCachedWithinTTL(t *testing.T) {
	gw := &countingSettingsGateway{rate: "0.17"}
	svc := NewSettingsService(gw, config.TaxConfig{DefaultGSTRate: "0.17", CacheTTL: time.Minute})

	svc.GSTRate(context.Background())
	svc.GSTRate(context.Background())
	svc.GSTRate(context.Background())

	assert.Equal(t, 1, gw.calls)
}

func TestSettingsFallBackToDefaultRate(t *testing.T) {
	gw := &countingSettingsGateway{fail: true}
	svc := NewSettingsService(gw, config.TaxConfig{DefaultGSTRate: "0.17", CacheTTL: time.Minute})

	rate := svc.GSTRate(context.Background())
	assert.True(t, rate.Equal(dec("0.17")))
}

func TestSettingsServeStaleOnRefreshFailure(t *testing.T) {
	gw := &countingSettingsGateway{rate: "0.15"}
	svc := NewSettingsService(gw, config.TaxConfig{DefaultGSTRate: "0.17", CacheTTL: 0})

	first := svc.GSTRate(context.Background())
	assert.True(t, first.Equal(dec("0.15")))

	// TTL of zero forces a refresh; the failure serves the last good value.
	gw.fail = true
	second := svc.GSTRate(context.Background())
	assert.True(t, second.Equal(dec("0.15")))
}
