// Package service provides the core business service that the HTTP API and
// the terminal UI talk to.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/okian/rankr/internal/adapters/export"
	"github.com/okian/rankr/internal/adapters/repository"
	"github.com/okian/rankr/internal/domain/catalog"
	"github.com/okian/rankr/internal/domain/model"
	"github.com/okian/rankr/internal/domain/selection"
	"github.com/okian/rankr/internal/domain/tournament"
	"github.com/okian/rankr/internal/domain/types"
	"github.com/okian/rankr/pkg/logger"
	"github.com/okian/rankr/pkg/metrics"
)

// Service implements the dependencies of the presentation layers.
type Service struct {
	mu sync.RWMutex

	// Core components
	catalog  *catalog.Catalog
	store    repository.Store
	exporter export.Exporter

	// Configuration
	seed          int64
	sessionTTL    time.Duration
	maxSessions   int
	sweepInterval time.Duration

	// State
	started bool
	cancel  context.CancelFunc
	done    chan struct{}

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		catalog:       catalog.Default(),
		exporter:      export.NewCSVExporter(),
		sessionTTL:    2 * time.Hour,
		maxSessions:   1024,
		sweepInterval: time.Minute,
		logger:        nil, // Will be replaced when service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the session store and its expiry loop.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Named("service")
	}

	if s.store == nil {
		s.store = repository.NewMemoryStore(
			repository.WithTTL(s.sessionTTL),
			repository.WithMaxSessions(s.maxSessions),
		)
	}

	loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel
	s.done = make(chan struct{})
	go func(done chan struct{}) {
		defer close(done)
		if mem, ok := s.store.(*repository.MemoryStore); ok {
			mem.Run(loopCtx, s.sweepInterval)
		}
	}(s.done)

	s.started = true
	s.logger.Info(ctx, "ranking service started",
		logger.Int("catalog", s.catalog.Len()),
		logger.Duration("sessionTTL", s.sessionTTL),
		logger.Int("maxSessions", s.maxSessions),
	)
	return nil
}

// Stop shuts down the expiry loop. Sessions stay readable until the process exits.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.cancel()
	<-s.done

	s.started = false
	s.logger.Info(context.Background(), "ranking service stopped")
}

// Catalog returns the candidate names in catalog order.
func (s *Service) Catalog() []string {
	return s.catalog.Names()
}

// NewTournament validates items and builds an engine in its Ready state.
// Used directly by the terminal UI, which owns a single engine.
func (s *Service) NewTournament(items []string) (*tournament.Engine, error) {
	var opts []tournament.Option
	if s.seed != 0 {
		opts = append(opts, tournament.WithSeed(s.seed))
	}
	e, err := tournament.New(items, opts...)
	if err != nil {
		if errors.Is(err, selection.ErrInvalidSelection) {
			metrics.RecordInvalidSelection()
		}
		return nil, err
	}
	return e, nil
}

// CreateSession resolves sel against the catalog and starts a stored tournament.
func (s *Service) CreateSession(ctx context.Context, sel model.Selection) (model.Session, error) {
	store, err := s.sessions()
	if err != nil {
		return model.Session{}, err
	}

	items, err := s.resolve(sel)
	if err != nil {
		metrics.RecordInvalidSelection()
		return model.Session{}, err
	}
	e, err := s.NewTournament(items)
	if err != nil {
		return model.Session{}, err
	}
	e.Start()

	sess, err := store.Create(ctx, e)
	if err != nil {
		return model.Session{}, err
	}
	s.logger.Info(ctx, "session created",
		logger.String("session", sess.ID),
		logger.Int("items", len(items)),
		logger.Int("pairs", e.Total()),
	)
	return s.view(sess)
}

// Get returns the session snapshot.
func (s *Service) Get(ctx context.Context, id string) (model.Session, error) {
	sess, err := s.lookup(ctx, id)
	if err != nil {
		return model.Session{}, err
	}
	return s.view(sess)
}

// CurrentPair returns the pair awaiting a vote.
func (s *Service) CurrentPair(ctx context.Context, id string) (types.PairView, error) {
	sess, err := s.lookup(ctx, id)
	if err != nil {
		return types.PairView{}, err
	}
	var pair tournament.Pair
	err = sess.Do(func(e *tournament.Engine) error {
		var err error
		pair, err = e.CurrentPair()
		return err
	})
	if err != nil {
		return types.PairView{}, err
	}
	return pair.View(), nil
}

// Vote records choice for pair, which must still be the session's current pair.
func (s *Service) Vote(ctx context.Context, id string, pair types.PairView, choice tournament.Choice) (model.Session, error) {
	sess, err := s.lookup(ctx, id)
	if err != nil {
		return model.Session{}, err
	}
	var finished bool
	err = sess.Do(func(e *tournament.Engine) error {
		if err := e.Vote(tournament.Pair{Left: pair.Left, Right: pair.Right}, choice); err != nil {
			return err
		}
		finished = e.IsFinished()
		return nil
	})
	if err != nil {
		s.logger.Debug(ctx, "vote rejected", logger.String("session", id), logger.Error(err))
		return model.Session{}, err
	}

	metrics.RecordVote(choice.String())
	s.logger.Debug(ctx, "vote recorded",
		logger.String("session", id),
		logger.String("left", pair.Left),
		logger.String("right", pair.Right),
		logger.String("choice", choice.String()),
	)
	if finished && sess.MarkFinished() {
		metrics.RecordSessionFinished()
		s.logger.Info(ctx, "tournament finished", logger.String("session", id))
	}
	return s.view(sess)
}

// Back undoes the most recent vote of the session.
func (s *Service) Back(ctx context.Context, id string) (model.Session, error) {
	sess, err := s.lookup(ctx, id)
	if err != nil {
		return model.Session{}, err
	}
	var undone tournament.Pair
	err = sess.Do(func(e *tournament.Engine) error {
		var err error
		undone, err = e.Back()
		return err
	})
	if err != nil {
		return model.Session{}, err
	}
	metrics.RecordUndo()
	s.logger.Debug(ctx, "vote undone", logger.String("session", id), logger.String("pair", undone.String()))
	return s.view(sess)
}

// Ranking returns the final standings. It fails with ErrNotFinished while
// pairs remain.
func (s *Service) Ranking(ctx context.Context, id string) ([]types.Entry, error) {
	sess, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	var standings []types.Entry
	err = sess.Do(func(e *tournament.Engine) error {
		if !e.IsFinished() {
			return fmt.Errorf("%w: %d of %d pairs decided", ErrNotFinished, e.Decided(), e.Total())
		}
		standings = e.FinalRanking()
		return nil
	})
	return standings, err
}

// WriteRanking streams the final standings of a session as CSV.
func (s *Service) WriteRanking(ctx context.Context, id string, w io.Writer) error {
	standings, err := s.Ranking(ctx, id)
	if err != nil {
		return err
	}
	return export.WriteCSV(w, s.csvHeader(), standings)
}

// Export writes the final standings of a session to the output directory.
func (s *Service) Export(ctx context.Context, id string) (string, error) {
	standings, err := s.Ranking(ctx, id)
	if err != nil {
		return "", err
	}
	path, err := s.ExportRanking(ctx, standings)
	if err != nil {
		return "", err
	}
	s.logger.Info(ctx, "session exported", logger.String("session", id), logger.String("path", path))
	return path, nil
}

// ExportRanking writes standings through the configured exporter. A failure
// leaves the caller's tournament untouched so the export can be retried.
func (s *Service) ExportRanking(ctx context.Context, standings []types.Entry) (string, error) {
	start := time.Now()
	path, err := s.exporter.Export(ctx, standings)
	metrics.RecordExport(err == nil, float64(time.Since(start).Microseconds())/1000)
	if err != nil {
		s.log().Error(ctx, "export failed", logger.Error(err))
		return "", err
	}
	s.log().Info(ctx, "ranking exported", logger.String("path", path), logger.Int("rows", len(standings)))
	return path, nil
}

// Delete discards a session and its engine.
func (s *Service) Delete(ctx context.Context, id string) error {
	store, err := s.sessions()
	if err != nil {
		return err
	}
	if err := store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info(ctx, "session deleted", logger.String("session", id))
	return nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":     s.started,
		"catalogSize": s.catalog.Len(),
		"minItems":    selection.MinItems,
		"maxItems":    selection.MaxItems,
		"maxSessions": s.maxSessions,
		"sessionTTL":  s.sessionTTL.String(),
	}
	if s.started {
		stats["activeSessions"] = s.store.Count(context.Background())
	}
	return stats
}

func (s *Service) sessions() (repository.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.store, nil
}

func (s *Service) lookup(ctx context.Context, id string) (*repository.Session, error) {
	store, err := s.sessions()
	if err != nil {
		return nil, err
	}
	return store.Get(ctx, id)
}

func (s *Service) resolve(sel model.Selection) ([]string, error) {
	if len(sel.Items) > 0 {
		return selection.FromNames(s.catalog, sel.Items)
	}
	if len(sel.Indices) > 0 {
		return selection.FromCatalog(s.catalog, sel.Indices)
	}
	return nil, fmt.Errorf("%w: no items given", selection.ErrInvalidSelection)
}

func (s *Service) view(sess *repository.Session) (model.Session, error) {
	var out model.Session
	err := sess.Do(func(e *tournament.Engine) error {
		out = model.NewSession(sess.ID, e.Items(), e.Snapshot(), sess.CreatedAt, time.Time{})
		return nil
	})
	out.UpdatedAt = sess.UpdatedAt()
	return out, err
}

func (s *Service) csvHeader() [3]string {
	if h, ok := s.exporter.(interface{ Header() [3]string }); ok {
		return h.Header()
	}
	return export.DefaultHeader
}

// log returns the service logger, falling back to the global one for callers
// that use the service without starting it.
func (s *Service) log() logger.Logger {
	s.mu.RLock()
	l := s.logger
	s.mu.RUnlock()
	if l == nil {
		return logger.Named("service")
	}
	return l
}
