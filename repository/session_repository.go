package repository

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"guidedigest-backend/models"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionRepository keeps sessions in memory. Each session has its own lock
// so actions on one session are serialized while distinct sessions proceed
// independently.
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*sessionEntry
	now      func() time.Time
}

type sessionEntry struct {
	mu      sync.Mutex
	session models.Session
}

// NewSessionRepository creates a new session repository
func NewSessionRepository() *SessionRepository {
	return &SessionRepository{
		sessions: make(map[uuid.UUID]*sessionEntry),
		now:      time.Now,
	}
}

// Create starts a new empty session
func (r *SessionRepository) Create(ctx context.Context) (models.Session, error) {
	session := models.NewSession(r.now())

	r.mu.Lock()
	r.sessions[session.ID] = &sessionEntry{session: session}
	r.mu.Unlock()

	return session.Clone(), nil
}

func (r *SessionRepository) entry(id uuid.UUID) (*sessionEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return e, nil
}

// GetByID returns a copy of the session
func (r *SessionRepository) GetByID(ctx context.Context, id uuid.UUID) (models.Session, error) {
	e, err := r.entry(id)
	if err != nil {
		return models.Session{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.Clone(), nil
}

// Update runs fn with the session locked and stores what fn returns. The lock
// is held for the whole call, including any model request fn makes. If fn
// returns an error the stored session is left as it was.
func (r *SessionRepository) Update(ctx context.Context, id uuid.UUID, fn func(models.Session) (models.Session, error)) (models.Session, error) {
	e, err := r.entry(id)
	if err != nil {
		return models.Session{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return e.session.Clone(), err
	}

	updated, err := fn(e.session.Clone())
	if err != nil {
		return e.session.Clone(), err
	}
	updated.ID = e.session.ID
	e.session = updated
	return updated.Clone(), nil
}

// Delete removes a session
func (r *SessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

// List returns copies of all sessions, newest first
func (r *SessionRepository) List(ctx context.Context) ([]models.Session, error) {
	r.mu.RLock()
	entries := make([]*sessionEntry, 0, len(r.sessions))
	for _, e := range r.sessions {
		entries = append(entries, e)
	}
	r.mu.RUnlock()

	out := make([]models.Session, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		out = append(out, e.session.Clone())
		e.mu.Unlock()
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Count returns the number of live sessions
func (r *SessionRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
