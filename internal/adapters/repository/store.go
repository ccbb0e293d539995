package repository

import (
	"context"
	"sync"
	"time"

	"github.com/okian/rankr/internal/domain/tournament"
)

// Session owns one tournament engine. Access to the engine goes through Do,
// which serializes callers so the engine only ever sees one operation at a time.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu        sync.Mutex
	engine    *tournament.Engine
	updatedAt time.Time
	finished  bool
	now       func() time.Time
}

// Do runs fn with exclusive access to the engine and marks the session as used.
func (s *Session) Do(fn func(e *tournament.Engine) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updatedAt = s.now()
	return fn(s.engine)
}

// UpdatedAt returns the time of the last Do call.
func (s *Session) UpdatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

// MarkFinished records that the tournament reached its final ranking and
// reports whether this is the first time. Undo then re-vote does not reset it.
func (s *Session) MarkFinished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finished {
		return false
	}
	s.finished = true
	return true
}

// Store keeps live tournament sessions by id.
type Store interface {
	// Create registers engine under a new id.
	// Returns ErrStoreFull when the cap is reached after expiring idle sessions.
	Create(ctx context.Context, engine *tournament.Engine) (*Session, error)

	// Get returns the session or ErrSessionNotFound.
	Get(ctx context.Context, id string) (*Session, error)

	// Delete discards a session. Returns ErrSessionNotFound if unknown.
	Delete(ctx context.Context, id string) error

	// Count returns the number of live sessions.
	Count(ctx context.Context) int
}
