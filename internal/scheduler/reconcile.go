// Package scheduler runs the periodic maintenance jobs the terminal
// service owns: the nightly balance reconciliation safety net and
// cleanup of stale sessions and idempotency keys.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/maliksarmad/retailpos-api/internal/application/service"
	"github.com/maliksarmad/retailpos-api/internal/config"
	"github.com/maliksarmad/retailpos-api/internal/domain/repository"
	"github.com/maliksarmad/retailpos-api/pkg/logger"
)

type Scheduler struct {
	cron            *cron.Cron
	credits         *service.CreditService
	carts           *service.CartService
	idempotencyRepo repository.IdempotencyRepository
	cfg             config.ReconcileConfig
	log             zerolog.Logger
}

// New creates the scheduler without starting it
func New(
	credits *service.CreditService,
	carts *service.CartService,
	idempotencyRepo repository.IdempotencyRepository,
	cfg config.ReconcileConfig,
) *Scheduler {
	return &Scheduler{
		cron:            cron.New(),
		credits:         credits,
		carts:           carts,
		idempotencyRepo: idempotencyRepo,
		cfg:             cfg,
		log:             logger.WithComponent("scheduler"),
	}
}

// Start registers the jobs and begins the cron loop. Reconciliation is
// idempotent, so an overlap with a manual run is harmless.
func (s *Scheduler) Start() error {
	if s.cfg.Enabled {
		if _, err := s.cron.AddFunc(s.cfg.CronSpec, s.runReconcile); err != nil {
			return err
		}
	}

	// Hourly housekeeping.
	if _, err := s.cron.AddFunc("@hourly", s.runCleanup); err != nil {
		return err
	}

	s.cron.Start()
	s.log.Info().Str("cron_spec", s.cfg.CronSpec).Bool("reconcile_enabled", s.cfg.Enabled).Msg("scheduler started")
	return nil
}

// Stop halts the cron loop, waiting for running jobs to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info().Msg("scheduler stopped")
}

func (s *Scheduler) runReconcile() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	updated, err := s.credits.Reconcile(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("scheduled reconciliation failed")
		return
	}
	s.log.Info().Int("updated", updated).Msg("scheduled reconciliation finished")
}

func (s *Scheduler) runCleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	removed, err := s.carts.CleanupExpired(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("session cleanup failed")
	} else if removed > 0 {
		s.log.Info().Int64("removed", removed).Msg("expired sessions removed")
	}

	if err := s.idempotencyRepo.DeleteExpired(ctx); err != nil {
		s.log.Error().Err(err).Msg("idempotency key cleanup failed")
	}
}
