package service

import (
	"time"

	"github.com/okian/rankr/internal/adapters/export"
	"github.com/okian/rankr/internal/adapters/repository"
	"github.com/okian/rankr/internal/domain/catalog"
	"github.com/okian/rankr/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithCatalog sets the candidate list. A nil catalog keeps the built-in one.
func WithCatalog(c *catalog.Catalog) Option {
	return func(s *Service) {
		if c != nil {
			s.catalog = c
		}
	}
}

// WithStore injects a session store. Without it Start builds a MemoryStore.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithExporter sets the ranking exporter.
func WithExporter(x export.Exporter) Option {
	return func(s *Service) {
		if x != nil {
			s.exporter = x
		}
	}
}

// WithSeed fixes the pair shuffle of every tournament. Zero keeps it random.
func WithSeed(seed int64) Option {
	return func(s *Service) {
		s.seed = seed
	}
}

// WithSessionTTL sets how long an idle session survives in the built-in store.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl >= 0 {
			s.sessionTTL = ttl
		}
	}
}

// WithMaxSessions caps live sessions in the built-in store.
func WithMaxSessions(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.maxSessions = n
		}
	}
}

// WithSweepInterval sets how often expired sessions are collected.
func WithSweepInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.sweepInterval = d
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
