package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/rankr/internal/domain/tournament"
	"github.com/okian/rankr/pkg/metrics"
)

// Store defaults.
const (
	defaultTTL         = 2 * time.Hour
	defaultMaxSessions = 1024
)

// MemoryStore is an in-process Store. Sessions do not survive a restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	ttl         time.Duration
	maxSessions int
	now         func() time.Time
	newID       func() string
}

// NewMemoryStore creates an empty store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		sessions:    make(map[string]*Session),
		ttl:         defaultTTL,
		maxSessions: defaultMaxSessions,
		now:         time.Now,
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create registers engine under a fresh id.
func (s *MemoryStore) Create(_ context.Context, engine *tournament.Engine) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.maxSessions > 0 && len(s.sessions) >= s.maxSessions {
		s.sweepLocked()
		if len(s.sessions) >= s.maxSessions {
			return nil, ErrStoreFull
		}
	}

	now := s.now()
	sess := &Session{
		ID:        s.newID(),
		CreatedAt: now,
		engine:    engine,
		updatedAt: now,
		now:       s.now,
	}
	s.sessions[sess.ID] = sess
	metrics.RecordSessionCreated()
	return sess, nil
}

// Get returns a live session. Idle sessions past the TTL are discarded here.
func (s *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	if s.expired(sess) {
		s.mu.Lock()
		if cur, ok := s.sessions[id]; ok && cur == sess {
			delete(s.sessions, id)
			metrics.RecordSessionClosed(true)
		}
		s.mu.Unlock()
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Delete discards a session.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	metrics.RecordSessionClosed(false)
	return nil
}

// Count returns the number of sessions held, expired or not.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep discards idle sessions and returns how many were removed.
func (s *MemoryStore) Sweep(_ context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked()
}

// Run sweeps every interval until ctx is done.
func (s *MemoryStore) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 || s.ttl <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

func (s *MemoryStore) sweepLocked() int {
	removed := 0
	for id, sess := range s.sessions {
		if s.expired(sess) {
			delete(s.sessions, id)
			metrics.RecordSessionClosed(true)
			removed++
		}
	}
	return removed
}

func (s *MemoryStore) expired(sess *Session) bool {
	if s.ttl <= 0 {
		return false
	}
	return s.now().Sub(sess.UpdatedAt()) > s.ttl
}
