package simulate

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/rankr/pkg/logger"
)

// progressEvery controls how often a progress line is logged.
const progressEvery = 2 * time.Second

// Run plays cfg.Sessions tournaments with cfg.Workers concurrent players and
// verifies each final ranking. It returns the run statistics even on failure.
func Run(ctx context.Context, cfg Config) (Stats, error) {
	stats := Stats{StartTime: time.Now()}
	if err := cfg.Defaults(); err != nil {
		return stats, err
	}
	log := logger.Named("simulate")

	log.Info(ctx, "starting rankr simulation",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("sessions", cfg.Sessions),
		logger.Int("workers", cfg.Workers),
		logger.Int("minItems", cfg.MinItems),
		logger.Int("maxItems", cfg.MaxItems),
		logger.Float64("undoRate", cfg.UndoRate),
		logger.Duration("timeout", cfg.Timeout))

	client := NewClient(cfg.BaseURL, cfg.Timeout)

	// Step 1: Check service health
	if err := client.Health(ctx); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Fetch the catalog every tournament draws from
	info, err := client.Catalog(ctx)
	if err != nil {
		return stats, fmt.Errorf("catalog retrieval failed: %w", err)
	}
	if len(info.Items) < cfg.MinItems {
		return stats, fmt.Errorf("%w: catalog holds %d items, need %d", ErrInvalidConfig, len(info.Items), cfg.MinItems)
	}

	// Step 3: Play and verify tournaments concurrently
	var (
		mu       sync.Mutex
		failures []error
		last     = time.Now()
	)
	var g errgroup.Group
	g.SetLimit(cfg.Workers)
	for i := 0; i < cfg.Sessions; i++ {
		if ctx.Err() != nil {
			break
		}
		seed := cfg.Seed + int64(i)
		g.Go(func() error {
			p := newPlayer(client, &cfg, seed, log)
			res, err := p.play(ctx, info.Items)

			mu.Lock()
			defer mu.Unlock()
			if res.SessionID != "" {
				stats.SessionsStarted++
			}
			if err != nil {
				stats.SessionsFailed++
				failures = append(failures, err)
				log.Error(ctx, "tournament failed", logger.String("session", res.SessionID), logger.Error(err))
				return nil
			}
			stats.add(res)
			if time.Since(last) >= progressEvery {
				last = time.Now()
				log.Info(ctx, "progress",
					logger.Int("verified", stats.SessionsVerified),
					logger.Int("failed", stats.SessionsFailed),
					logger.Int("total", cfg.Sessions))
			}
			return nil
		})
	}
	_ = g.Wait()

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, log, stats)

	if err := ctx.Err(); err != nil {
		return stats, fmt.Errorf("simulation interrupted: %w", err)
	}
	if len(failures) > 0 {
		return stats, fmt.Errorf("%w: %d of %d: %w", ErrSessionsFailed, len(failures), cfg.Sessions, errors.Join(failures...))
	}
	log.Info(ctx, "simulation completed successfully")
	return stats, nil
}

// displayFinalStats logs the final run statistics.
func displayFinalStats(ctx context.Context, log logger.Logger, stats Stats) {
	var votesPerSecond float64
	if stats.Duration > 0 {
		votesPerSecond = float64(stats.Votes+stats.Undos) / stats.Duration.Seconds()
	}

	log.Info(ctx, "final statistics",
		logger.Int("sessionsStarted", stats.SessionsStarted),
		logger.Int("sessionsVerified", stats.SessionsVerified),
		logger.Int("sessionsFailed", stats.SessionsFailed),
		logger.Int("votes", stats.Votes),
		logger.Int("undos", stats.Undos),
		logger.Int("exports", stats.Exports),
		logger.Duration("duration", stats.Duration),
		logger.Float64("votesPerSecond", votesPerSecond))
}
