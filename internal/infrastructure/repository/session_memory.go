package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/maliksarmad/retailpos-api/internal/domain/entity"
	domainRepo "github.com/maliksarmad/retailpos-api/internal/domain/repository"
)

// sessionMemoryRepository keeps terminal sessions in process memory.
// The store hands out deep copies: reads never observe a mutation in
// progress on another request's working copy, and a caller's edits
// reach the store only through Update.
type sessionMemoryRepository struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*entity.TerminalSession
	ttl      time.Duration
}

// NewSessionMemoryRepository creates an in-memory session store
func NewSessionMemoryRepository(ttl time.Duration) domainRepo.SessionRepository {
	return &sessionMemoryRepository{
		sessions: make(map[uuid.UUID]*entity.TerminalSession),
		ttl:      ttl,
	}
}

func (r *sessionMemoryRepository) Create(ctx context.Context, session *entity.TerminalSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = session.Clone()
	return nil
}

func (r *sessionMemoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.TerminalSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	return session.Clone(), nil
}

func (r *sessionMemoryRepository) FindByCashier(ctx context.Context, cashierID uuid.UUID) (*entity.TerminalSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, session := range r.sessions {
		if session.CashierID == cashierID {
			return session.Clone(), nil
		}
	}
	return nil, nil
}

func (r *sessionMemoryRepository) Update(ctx context.Context, session *entity.TerminalSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	session.UpdatedAt = time.Now()
	r.sessions[session.ID] = session.Clone()
	return nil
}

func (r *sessionMemoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

func (r *sessionMemoryRepository) DeleteExpired(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := time.Now().Add(-r.ttl)
	var removed int64
	for id, session := range r.sessions {
		if session.UpdatedAt.Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed, nil
}
