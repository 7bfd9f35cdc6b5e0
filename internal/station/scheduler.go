package station

// scheduler.go provides background scheduling for the periodic feed.
//
// The scheduler is long-running and context-aware for graceful shutdown. It
// logs progress and errors but does not fail the application if individual
// feed runs fail; the next tick simply tries again.

import (
	"context"
	"log/slog"
	"time"
)

// StartFeedScheduler starts a background loop that writes a feed file
// immediately, then every interval from config. It returns when the context
// is cancelled. Callers run it in its own goroutine.
func (s *Service) StartFeedScheduler(ctx context.Context) {
	interval := s.cfg.Export.FeedInterval

	slog.Info("feed scheduler started",
		"interval", interval,
		"output_dir", s.cfg.Export.OutputDir,
	)

	// Run immediately on startup
	s.runScheduledFeed(ctx)

	// Then run periodically
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("feed scheduler stopped")
			return
		case <-ticker.C:
			s.runScheduledFeed(ctx)
		}
	}
}

// runScheduledFeed performs one feed cycle, logging instead of propagating
// failures.
func (s *Service) runScheduledFeed(ctx context.Context) {
	start := time.Now()

	run, err := s.RunFeed(ctx)
	if err != nil {
		slog.Error("scheduled feed failed", "error", err)
		return
	}

	slog.Info("scheduled feed completed",
		"file", run.FileName,
		"exported", run.Exported,
		"errors", run.Errors,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
