// Package station ties the pieces of the backend together: it loads stored
// captures, runs the export engine over them, writes feed files to disk, and
// keeps a history of feed runs. This package has no HTTP dependencies and can
// be driven by any frontend.
package station

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/partbench/dimstation/internal/capture"
	"github.com/partbench/dimstation/internal/config"
	"github.com/partbench/dimstation/internal/export"
	"github.com/partbench/dimstation/internal/logging"
)

// CaptureStore is the persistence surface the service needs.
// Satisfied by *capture.Store; tests substitute a fake.
type CaptureStore interface {
	InsertCapture(ctx context.Context, c capture.Capture) (capture.Capture, error)
	ListCaptures(ctx context.Context) ([]capture.Capture, error)
	CountCaptures(ctx context.Context) (int64, error)
	DeleteCapturesForPart(ctx context.Context, partNumber string) (int64, error)
	RecordFeedRun(ctx context.Context, run capture.FeedRun) (capture.FeedRun, error)
	ListFeedRuns(ctx context.Context, limit int) ([]capture.FeedRun, error)
}

// Service owns the feed lifecycle for one station.
type Service struct {
	store CaptureStore
	cfg   *config.Config
}

// NewService creates a Service over store with cfg.
func NewService(store CaptureStore, cfg *config.Config) *Service {
	return &Service{store: store, cfg: cfg}
}

// AddCapture stores a new measurement.
func (s *Service) AddCapture(ctx context.Context, c capture.Capture) (capture.Capture, error) {
	return s.store.InsertCapture(ctx, c)
}

// Captures returns all stored captures in acquisition order.
func (s *Service) Captures(ctx context.Context) ([]capture.Capture, error) {
	return s.store.ListCaptures(ctx)
}

// DeleteCapturesForPart removes every capture for a part, matched
// case-insensitively like the feed's grouping.
func (s *Service) DeleteCapturesForPart(ctx context.Context, partNumber string) (int64, error) {
	return s.store.DeleteCapturesForPart(ctx, partNumber)
}

// FeedRuns returns the most recent feed runs.
func (s *Service) FeedRuns(ctx context.Context, limit int) ([]capture.FeedRun, error) {
	return s.store.ListFeedRuns(ctx, limit)
}

// RunFeed produces one feed file in the configured output directory and
// records the run. It returns the run record including the file name.
func (s *Service) RunFeed(ctx context.Context) (capture.FeedRun, error) {
	start := time.Now()
	fileName := feedFileName(start)
	logger := logging.WithFields(ctx, "file", fileName)

	captures, err := s.store.ListCaptures(ctx)
	if err != nil {
		return capture.FeedRun{}, fmt.Errorf("load captures: %w", err)
	}

	records := make([]export.Record, len(captures))
	for i, c := range captures {
		records[i] = c.ExportRecord()
	}

	if err := os.MkdirAll(s.cfg.Export.OutputDir, 0o755); err != nil {
		return capture.FeedRun{}, fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(s.cfg.Export.OutputDir, fileName)
	f, err := os.Create(path)
	if err != nil {
		return capture.FeedRun{}, fmt.Errorf("create feed file: %w", err)
	}

	summary, exportErr := export.Export(records, s.cfg.Export.Settings(), f, func(msg string) {
		logger.Info("feed engine", "msg", msg)
	})
	closeErr := f.Close()

	if exportErr != nil {
		// Leave nothing half-written behind.
		os.Remove(path)
		return capture.FeedRun{}, fmt.Errorf("export feed: %w", exportErr)
	}
	if closeErr != nil {
		os.Remove(path)
		return capture.FeedRun{}, fmt.Errorf("close feed file: %w", closeErr)
	}

	run := capture.FeedRun{
		FileName: fileName,
		Exported: summary.Exported,
		Errors:   summary.Errors,
		Duration: time.Since(start).Milliseconds(),
	}
	recorded, err := s.store.RecordFeedRun(ctx, run)
	if err != nil {
		// The file is on disk and valid; history is best effort.
		logger.Error("failed to record feed run", "error", err)
		return run, nil
	}

	logger.Info("feed file written",
		"exported", recorded.Exported,
		"errors", recorded.Errors,
		"duration_ms", recorded.Duration,
	)
	return recorded, nil
}

// WriteFeed streams a feed built from the current captures directly to w,
// without touching the output directory or run history. Used by the download
// endpoint.
func (s *Service) WriteFeed(ctx context.Context, w io.Writer) (export.Summary, error) {
	captures, err := s.store.ListCaptures(ctx)
	if err != nil {
		return export.Summary{}, fmt.Errorf("load captures: %w", err)
	}

	records := make([]export.Record, len(captures))
	for i, c := range captures {
		records[i] = c.ExportRecord()
	}

	logger := logging.FromContext(ctx)
	return export.Export(records, s.cfg.Export.Settings(), w, func(msg string) {
		logger.Info("feed engine", "msg", msg)
	})
}

// feedFileName builds a unique name carrying the run time, so operators can
// sort the output directory chronologically.
func feedFileName(t time.Time) string {
	return fmt.Sprintf("feed_%s_%s.csv", t.Format("20060102_150405"), uuid.New().String()[:8])
}
