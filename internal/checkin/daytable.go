package checkin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"checkin/internal/platform/metrics"
	"checkin/internal/roster"
	"checkin/internal/sheets"
	"checkin/pkg/platform/retry"
	"checkin/pkg/platform/sentinel"
)

// appendPolicy bounds the remote append: 3 attempts, 300ms/600ms/1200ms,
// transient failures only.
var appendPolicy = retry.Policy{
	MaxAttempts: 3,
	BaseDelay:   300 * time.Millisecond,
	Retryable:   sheets.IsTransient,
}

// Entry records when an attendee checked in, as read back from the day table
// or written by this process.
type Entry struct {
	Data string
	Hora string
}

// Record is one check-in row to append.
type Record struct {
	Registration string
	Name         string
	Date         string
	Time         string
}

// DayTable caches one event day's check-in table: the resolved column
// mapping and the set of registration numbers already confirmed. It is
// rebuilt wholesale on every refresh cycle; between refreshes, successful
// appends update the local set so later requests see them without a remote
// read.
type DayTable struct {
	table    string
	cols     roster.DayColumns
	resolved bool

	client  sheets.Client
	metrics *metrics.Metrics
	policy  retry.Policy

	// mu spans the duplicate check, the remote append and the local set
	// update, so two concurrent requests for the same registration number
	// cannot both pass the check before either appends.
	mu        sync.Mutex
	confirmed map[string]Entry
}

// LoadDayTable reads the day table once and populates the duplicate set. A
// missing table or unresolvable header row yields an unresolved adapter
// (degraded, surfaces as MisconfiguredDayTable at request time); any other
// read failure aborts the refresh.
func LoadDayTable(ctx context.Context, client sheets.Client, table string, m *metrics.Metrics, logger *slog.Logger) (*DayTable, error) {
	dt := &DayTable{
		table:     table,
		client:    client,
		metrics:   m,
		policy:    appendPolicy,
		confirmed: make(map[string]Entry),
	}

	rows, err := client.Rows(ctx, table)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			logger.Warn("day table missing from document", "table", table)
			return dt, nil
		}
		return nil, fmt.Errorf("load day table %q: %w", table, err)
	}
	if len(rows) == 0 {
		logger.Warn("day table has no header row", "table", table)
		return dt, nil
	}

	cols, failure := roster.ResolveDayColumns(rows[0])
	if failure != roster.ResolveOK {
		logger.Warn("day table columns unresolved", "table", table, "reason", failure.String())
		return dt, nil
	}
	dt.cols = cols
	dt.resolved = true

	for _, row := range rows[1:] {
		reg := cellAt(row, cols.Registration)
		if reg == "" {
			continue
		}
		dt.confirmed[reg] = Entry{
			Data: cellAt(row, cols.Date),
			Hora: cellAt(row, cols.Time),
		}
	}

	logger.Info("day table loaded", "table", table, "confirmed", len(dt.confirmed))
	return dt, nil
}

// Resolved reports whether the column mapping succeeded at load time.
func (d *DayTable) Resolved() bool { return d.resolved }

// Has reports whether a registration number is already confirmed. Local
// only, no remote call.
func (d *DayTable) Has(registration string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.confirmed[registration]
	return ok
}

// Confirm appends the record unless its registration number is already
// confirmed. It returns the stored entry and whether this call created it.
// The remote append retries transient failures under appendPolicy.
func (d *DayTable) Confirm(ctx context.Context, rec Record) (Entry, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if existing, ok := d.confirmed[rec.Registration]; ok {
		return existing, false, nil
	}

	attempt := 0
	err := retry.Do(ctx, d.policy, func(ctx context.Context) error {
		attempt++
		if attempt > 1 {
			d.metrics.IncrementAppendRetry()
		}
		return d.client.Append(ctx, d.table, d.row(rec))
	})
	if err != nil {
		return Entry{}, false, err
	}

	entry := Entry{Data: rec.Date, Hora: rec.Time}
	d.confirmed[rec.Registration] = entry
	return entry, true, nil
}

// row lays the record out according to the resolved column mapping, so
// appends land under the right headers whatever the table's column order.
func (d *DayTable) row(rec Record) []string {
	width := d.cols.Registration
	for _, c := range []int{d.cols.Name, d.cols.Date, d.cols.Time} {
		if c > width {
			width = c
		}
	}

	row := make([]string, width+1)
	row[d.cols.Registration] = rec.Registration
	row[d.cols.Name] = rec.Name
	row[d.cols.Date] = rec.Date
	row[d.cols.Time] = rec.Time
	return row
}

func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}
