package export

import (
	"errors"
	"fmt"
	"io"
	"math"
	"time"
)

// DefaultDimFactor is the dimensional-weight divisor calibrated for
// inch/pound feeds.
const DefaultDimFactor = 166.0

// Default pass-through values expected by the downstream system.
const (
	DefaultSiteID   = "733"
	DefaultOptInfo2 = "Y"
	DefaultOptInfo3 = "Y"
)

// factorTolerance bounds the "factor still at its default" check; the factor
// is operator-entered and may round-trip through text.
const factorTolerance = 1e-3

// ErrNilRecords is returned when the caller passes a nil record sequence.
// An empty (but non-nil) sequence is valid and produces a header-only feed.
var ErrNilRecords = errors.New("export: nil capture record sequence")

// timeNow is swapped out in tests to pin the timestamp fallback.
var timeNow = time.Now

// Record is a single capture image's measurements for a part. Upstream
// acquisition normalizes measurements to inches and pounds before they reach
// this package; a zero measurement means "not measured".
type Record struct {
	PartNumber string
	Sequence   int
	LengthIn   float64
	DepthIn    float64
	HeightIn   float64
	WeightLb   float64
	Timestamp  string
}

// Settings is the immutable per-run export configuration. Construct one from
// DefaultSettings or from application config; the engine never mutates it.
type Settings struct {
	DimUnit  string
	WgtUnit  string
	VolUnit  string
	Factor   float64
	SiteID   string
	OptInfo2 string
	OptInfo3 string
}

// DefaultSettings returns the inch/pound defaults the downstream system was
// commissioned with.
func DefaultSettings() Settings {
	return Settings{
		DimUnit:  "in",
		WgtUnit:  "lb",
		VolUnit:  "in",
		Factor:   DefaultDimFactor,
		SiteID:   DefaultSiteID,
		OptInfo2: DefaultOptInfo2,
		OptInfo3: DefaultOptInfo3,
	}
}

// Summary reports the outcome of one export run.
type Summary struct {
	Exported int
	Errors   int
}

// NotifyFunc receives per-run diagnostics: warnings, per-row errors, and the
// final summary. It is the engine's only side channel besides the CSV text
// itself; callers typically bridge it onto their logger.
type NotifyFunc func(msg string)

// Export runs the full transform: groups records by part, assembles and
// validates one row per part, and writes header plus rows to sink.
//
// A row failing structural validation is dropped and counted, and the run
// continues; a sink write failure aborts the run with whatever was already
// flushed. The returned Summary is valid in both cases.
func Export(records []Record, settings Settings, sink io.Writer, notify NotifyFunc) (Summary, error) {
	var summary Summary

	if records == nil {
		return summary, ErrNilRecords
	}
	if notify == nil {
		notify = func(string) {}
	}

	if usesMetricUnits(settings) && math.Abs(settings.Factor-DefaultDimFactor) < factorTolerance {
		notify("warning: metric units configured but dimensional-weight factor is still the inch/pound default (166)")
	}

	if _, err := io.WriteString(sink, HeaderLine()); err != nil {
		return summary, fmt.Errorf("write header: %w", err)
	}

	now := timeNow()
	for _, group := range GroupRecords(records) {
		rep := group.Representative
		fields := assembleRow(group.Key, &rep, settings, now)

		values := make([]string, len(Columns))
		for i, col := range Columns {
			values[i] = fields[col]
		}

		line := serializeRow(values)
		if err := validateRow(line); err != nil {
			summary.Errors++
			notify(fmt.Sprintf("error: row for part %q rejected: %v", group.Key, err))
			continue
		}

		if _, err := io.WriteString(sink, line); err != nil {
			return summary, fmt.Errorf("write row for part %q: %w", group.Key, err)
		}
		summary.Exported++
	}

	notify(fmt.Sprintf("export complete: %d parts exported, %d errors", summary.Exported, summary.Errors))
	return summary, nil
}

// usesMetricUnits reports whether either measurement unit is metric.
func usesMetricUnits(s Settings) bool {
	return normalizeUnit(s.DimUnit) == "cm" || normalizeUnit(s.WgtUnit) == "kg"
}
