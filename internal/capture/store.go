// Package capture persists dimensioning-station measurements and feed run
// history in PostgreSQL. It has no HTTP dependencies and is consumed by the
// station service.
package capture

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/partbench/dimstation/internal/export"
)

// DBTX is the interface for database operations.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Capture is one stored measurement image for a part. Measurements are
// normalized to inches and pounds at acquisition time; zero means "not
// measured". CapturedAt is kept as the raw station-clock string so the feed
// can reparse it with the station's own layouts.
type Capture struct {
	ID         uuid.UUID `json:"id"`
	PartNumber string    `json:"partNumber"`
	Sequence   int       `json:"sequence"`
	LengthIn   float64   `json:"lengthIn"`
	DepthIn    float64   `json:"depthIn"`
	HeightIn   float64   `json:"heightIn"`
	WeightLb   float64   `json:"weightLb"`
	CapturedAt string    `json:"capturedAt"`
	CreatedAt  time.Time `json:"createdAt"`
}

// FeedRun records one completed feed file for operator visibility.
type FeedRun struct {
	ID        uuid.UUID `json:"id"`
	FileName  string    `json:"fileName"`
	Exported  int       `json:"exported"`
	Errors    int       `json:"errors"`
	Duration  int64     `json:"durationMs"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store provides capture and feed-run persistence on top of a DBTX.
type Store struct {
	db DBTX
}

// NewStore creates a Store backed by db (a pool or an open transaction).
func NewStore(db DBTX) *Store {
	return &Store{db: db}
}

// InsertCapture stores a new measurement and returns it with its generated
// ID and creation time.
func (s *Store) InsertCapture(ctx context.Context, c Capture) (Capture, error) {
	const q = `
		INSERT INTO captures (id, part_number, seq, length_in, depth_in, height_in, weight_lb, captured_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`

	c.ID = uuid.New()
	err := s.db.QueryRow(ctx, q,
		c.ID, c.PartNumber, c.Sequence,
		c.LengthIn, c.DepthIn, c.HeightIn, c.WeightLb,
		c.CapturedAt,
	).Scan(&c.CreatedAt)
	if err != nil {
		return Capture{}, fmt.Errorf("insert capture: %w", err)
	}
	return c, nil
}

// ListCaptures returns all stored captures ordered oldest first, so the feed
// sees records in acquisition order.
func (s *Store) ListCaptures(ctx context.Context) ([]Capture, error) {
	const q = `
		SELECT id, part_number, seq, length_in, depth_in, height_in, weight_lb, captured_at, created_at
		FROM captures
		ORDER BY created_at, seq`

	rows, err := s.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list captures: %w", err)
	}
	defer rows.Close()

	captures := []Capture{}
	for rows.Next() {
		var c Capture
		if err := rows.Scan(
			&c.ID, &c.PartNumber, &c.Sequence,
			&c.LengthIn, &c.DepthIn, &c.HeightIn, &c.WeightLb,
			&c.CapturedAt, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan capture: %w", err)
		}
		captures = append(captures, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list captures: %w", err)
	}
	return captures, nil
}

// CountCaptures returns the number of stored captures.
func (s *Store) CountCaptures(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM captures`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count captures: %w", err)
	}
	return n, nil
}

// DeleteCapturesForPart removes every capture whose part number matches
// case-insensitively, and returns the number removed. Used to clear bad
// measurement runs before the next feed.
func (s *Store) DeleteCapturesForPart(ctx context.Context, partNumber string) (int64, error) {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM captures WHERE lower(part_number) = lower($1)`,
		partNumber,
	)
	if err != nil {
		return 0, fmt.Errorf("delete captures for part: %w", err)
	}
	return tag.RowsAffected(), nil
}

// RecordFeedRun stores the outcome of one feed run.
func (s *Store) RecordFeedRun(ctx context.Context, run FeedRun) (FeedRun, error) {
	const q = `
		INSERT INTO feed_runs (id, file_name, exported, errors, duration_ms)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	run.ID = uuid.New()
	err := s.db.QueryRow(ctx, q,
		run.ID, run.FileName, run.Exported, run.Errors, run.Duration,
	).Scan(&run.CreatedAt)
	if err != nil {
		return FeedRun{}, fmt.Errorf("record feed run: %w", err)
	}
	return run, nil
}

// ListFeedRuns returns the most recent feed runs, newest first.
func (s *Store) ListFeedRuns(ctx context.Context, limit int) ([]FeedRun, error) {
	if limit <= 0 {
		limit = 50
	}

	const q = `
		SELECT id, file_name, exported, errors, duration_ms, created_at
		FROM feed_runs
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := s.db.Query(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("list feed runs: %w", err)
	}
	defer rows.Close()

	runs := []FeedRun{}
	for rows.Next() {
		var r FeedRun
		if err := rows.Scan(&r.ID, &r.FileName, &r.Exported, &r.Errors, &r.Duration, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan feed run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list feed runs: %w", err)
	}
	return runs, nil
}

// ExportRecord converts a stored capture to the engine's record shape.
func (c Capture) ExportRecord() export.Record {
	return export.Record{
		PartNumber: c.PartNumber,
		Sequence:   c.Sequence,
		LengthIn:   c.LengthIn,
		DepthIn:    c.DepthIn,
		HeightIn:   c.HeightIn,
		WeightLb:   c.WeightLb,
		Timestamp:  c.CapturedAt,
	}
}
