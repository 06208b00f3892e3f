package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/maliksarmad/retailpos-api/internal/domain/entity"
)

type IdempotencyRepository interface {
	GetByKey(ctx context.Context, key string, cashierID uuid.UUID) (*entity.IdempotencyKey, error)
	Create(ctx context.Context, key *entity.IdempotencyKey) error
	DeleteExpired(ctx context.Context) error
}
