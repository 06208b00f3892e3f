package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maliksarmad/retailpos-api/internal/domain/entity"
	domainRepo "github.com/maliksarmad/retailpos-api/internal/domain/repository"
	"github.com/maliksarmad/retailpos-api/pkg/apperror"
)

// SessionSnapshot is the persisted form of a terminal session. The
// cart and checkout state are stored as one JSON document so a
// restarted terminal can pick up an open cart exactly where it was.
type SessionSnapshot struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CashierID uuid.UUID `gorm:"type:uuid;not null;index"`
	State     string    `gorm:"type:jsonb;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;index"`
}

func (SessionSnapshot) TableName() string {
	return "session_snapshots"
}

type sessionGormRepository struct {
	db  *gorm.DB
	ttl time.Duration
}

// NewSessionGormRepository creates a database-backed session store
func NewSessionGormRepository(db *gorm.DB, ttl time.Duration) domainRepo.SessionRepository {
	return &sessionGormRepository{db: db, ttl: ttl}
}

func snapshotFrom(session *entity.TerminalSession) (*SessionSnapshot, error) {
	state, err := json.Marshal(session)
	if err != nil {
		return nil, apperror.NewInternalError(err)
	}
	return &SessionSnapshot{
		ID:        session.ID,
		CashierID: session.CashierID,
		State:     string(state),
	}, nil
}

func (s *SessionSnapshot) restore() (*entity.TerminalSession, error) {
	var session entity.TerminalSession
	if err := json.Unmarshal([]byte(s.State), &session); err != nil {
		return nil, apperror.NewInternalError(err)
	}
	session.UpdatedAt = s.UpdatedAt
	return &session, nil
}

func (r *sessionGormRepository) Create(ctx context.Context, session *entity.TerminalSession) error {
	snapshot, err := snapshotFrom(session)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(snapshot).Error
}

func (r *sessionGormRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.TerminalSession, error) {
	var snapshot SessionSnapshot
	err := r.db.WithContext(ctx).First(&snapshot, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return snapshot.restore()
}

func (r *sessionGormRepository) FindByCashier(ctx context.Context, cashierID uuid.UUID) (*entity.TerminalSession, error) {
	var snapshot SessionSnapshot
	err := r.db.WithContext(ctx).Order("updated_at DESC").First(&snapshot, "cashier_id = ?", cashierID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return snapshot.restore()
}

func (r *sessionGormRepository) Update(ctx context.Context, session *entity.TerminalSession) error {
	snapshot, err := snapshotFrom(session)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(snapshot).Error
}

func (r *sessionGormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&SessionSnapshot{}, "id = ?", id).Error
}

func (r *sessionGormRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("updated_at < ?", time.Now().Add(-r.ttl)).
		Delete(&SessionSnapshot{})
	return result.RowsAffected, result.Error
}
