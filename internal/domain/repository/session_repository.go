package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/maliksarmad/retailpos-api/internal/domain/entity"
)

// SessionRepository stores terminal sessions keyed by session ID.
// The memory implementation is authoritative during a shift; the
// database implementation snapshots sessions so a terminal restart
// does not lose an open cart.
type SessionRepository interface {
	Create(ctx context.Context, session *entity.TerminalSession) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.TerminalSession, error)
	FindByCashier(ctx context.Context, cashierID uuid.UUID) (*entity.TerminalSession, error)
	Update(ctx context.Context, session *entity.TerminalSession) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteExpired(ctx context.Context) (int64, error)
}
