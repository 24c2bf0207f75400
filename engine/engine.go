// Package engine reconciles an account's follower graph: it collects the
// followers and following sets, computes their differences, and applies
// capped, rate-limited follow/unfollow actions behind safety filters.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

// Engine holds one run's collaborators and settings. It keeps no state
// between runs; every phase collects fresh sets.
type Engine struct {
	Logger    *slog.Logger
	Directory Directory
	Config    Config

	pageLimiter *rate.Limiter

	// sleep is swapped out in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

func New(dir Directory, cfg Config, logger *slog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	limit := rate.Inf
	if cfg.PageFetchInterval > 0 {
		limit = rate.Every(cfg.PageFetchInterval)
	}
	return &Engine{
		Logger:      logger.With("account", cfg.Username),
		Directory:   dir,
		Config:      cfg,
		pageLimiter: rate.NewLimiter(limit, 1),
		sleep:       sleepCtx,
	}, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
