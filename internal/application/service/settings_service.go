package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/maliksarmad/retailpos-api/internal/config"
	"github.com/maliksarmad/retailpos-api/internal/domain/gateway"
	"github.com/maliksarmad/retailpos-api/pkg/logger"
)

// SettingsService caches shop settings from the settings service. The
// GST rate is read on every cart computation, so it is cached with a
// TTL and falls back to the configured default when the service is
// unreachable.
type SettingsService struct {
	gateway     gateway.SettingsGateway
	defaultRate decimal.Decimal
	cacheTTL    time.Duration
	log         zerolog.Logger

	mu        sync.RWMutex
	cached    *gateway.ShopSettings
	fetchedAt time.Time
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsGateway gateway.SettingsGateway, cfg config.TaxConfig) *SettingsService {
	defaultRate, err := decimal.NewFromString(cfg.DefaultGSTRate)
	if err != nil {
		defaultRate = decimal.NewFromFloat(0.17)
	}
	return &SettingsService{
		gateway:     settingsGateway,
		defaultRate: defaultRate,
		cacheTTL:    cfg.CacheTTL,
		log:         logger.WithComponent("settings_service"),
	}
}

// Settings returns the cached shop settings, refreshing them when the
// cache has expired. A fetch failure degrades to the previous cached
// value, or to defaults with a warning when nothing was ever cached.
func (s *SettingsService) Settings(ctx context.Context) *gateway.ShopSettings {
	s.mu.RLock()
	if s.cached != nil && time.Since(s.fetchedAt) < s.cacheTTL {
		cached := s.cached
		s.mu.RUnlock()
		return cached
	}
	s.mu.RUnlock()

	fetched, err := s.gateway.FetchSettings(ctx)
	if err != nil {
		s.mu.RLock()
		cached := s.cached
		s.mu.RUnlock()
		if cached != nil {
			s.log.Warn().Err(err).Msg("settings refresh failed, serving stale settings")
			return cached
		}
		s.log.Warn().Err(err).Str("gst_rate", s.defaultRate.String()).Msg("settings unavailable, using default gst rate")
		return &gateway.ShopSettings{GSTRate: s.defaultRate, Currency: "PKR"}
	}

	s.mu.Lock()
	s.cached = fetched
	s.fetchedAt = time.Now()
	s.mu.Unlock()
	return fetched
}

// GSTRate returns the effective GST rate for cart computations
func (s *SettingsService) GSTRate(ctx context.Context) decimal.Decimal {
	return s.Settings(ctx).GSTRate
}
