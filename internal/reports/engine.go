// Package reports computes monthly cost reports and manages their cache.
//
// A month that has already ended is closed: cost ingestion refuses entries
// dated before the current day, so a past month's entry set can never
// change. That invariant is what makes past-month reports safe to cache
// forever, and why reports for the current or a future month are always
// computed fresh and never persisted.
package reports

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"costmanager/internal/core"
)

// CostReader supplies the cost entries a report is computed from.
type CostReader interface {
	CostsByMonth(ctx context.Context, userID int64, year, month int) ([]core.Cost, error)
}

// Cache stores computed reports keyed by (user, year, month). A lookup
// miss is (nil, nil). SaveReport must be idempotent under concurrent
// fills for the same key: an existing cached report is authoritative.
type Cache interface {
	ReportByMonth(ctx context.Context, userID int64, year, month int) (*core.Report, error)
	SaveReport(ctx context.Context, report core.Report) error
}

// Engine decides whether a report request is served from cache or
// computed fresh, and whether the computed result is persisted.
type Engine struct {
	costs CostReader
	cache Cache
	now   func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the engine's notion of the current time.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

func NewEngine(costs CostReader, cache Cache, opts ...Option) *Engine {
	e := &Engine{
		costs: costs,
		cache: cache,
		now:   time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// MonthlyReport returns the report for (userID, year, month).
//
// For a past month it first consults the cache and returns a hit
// verbatim, with no recomputation or merge. On a miss, or for the
// current or a future month, the report is computed from the cost
// entries; only past-month results are persisted, and only after the
// full grouped result has been assembled.
func (e *Engine) MonthlyReport(ctx context.Context, userID int64, year, month int) (core.Report, error) {
	if userID == 0 || year == 0 || month == 0 {
		return core.Report{}, core.ErrBadReportQuery
	}
	if month < 1 || month > 12 {
		return core.Report{}, core.ErrBadReportQuery
	}

	isPast := e.isPastMonth(year, month)

	if isPast {
		cached, err := e.cache.ReportByMonth(ctx, userID, year, month)
		if err != nil {
			return core.Report{}, fmt.Errorf("load cached report: %w", err)
		}
		if cached != nil {
			slog.DebugContext(ctx, "Report served from cache",
				"user_id", userID, "year", year, "month", month)
			return *cached, nil
		}
	}

	entries, err := e.costs.CostsByMonth(ctx, userID, year, month)
	if err != nil {
		return core.Report{}, fmt.Errorf("load cost entries: %w", err)
	}

	report := core.Report{
		UserID: userID,
		Year:   year,
		Month:  month,
		Costs:  core.GroupCosts(entries),
	}

	if isPast {
		// Write-through fill: the month is closed, so the computed
		// content is final and safe to reuse indefinitely.
		if err := e.cache.SaveReport(ctx, report); err != nil {
			return core.Report{}, fmt.Errorf("cache report: %w", err)
		}
	}

	return report, nil
}

// isPastMonth reports whether (year, month) is strictly before the
// current calendar month at the server's current date.
func (e *Engine) isPastMonth(year, month int) bool {
	now := e.now()
	return year < now.Year() || (year == now.Year() && month < int(now.Month()))
}
