package state

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"checkin/internal/checkin"
	"checkin/internal/platform/config"
	"checkin/internal/platform/metrics"
	"checkin/internal/roster"
	"checkin/internal/sheets"
)

// Refresher rebuilds the snapshot from the remote store: once at startup and
// then on a fixed interval, independent of request traffic. A failed cycle
// keeps the previous snapshot authoritative.
type Refresher struct {
	container *Container
	client    sheets.Client
	builder   *roster.Builder

	profileTables []string
	days          []config.Day
	interval      time.Duration

	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewRefresher wires a refresher to the container it feeds.
func NewRefresher(container *Container, client sheets.Client, cfg config.Config, logger *slog.Logger, m *metrics.Metrics) *Refresher {
	return &Refresher{
		container:     container,
		client:        client,
		builder:       roster.NewBuilder(client, logger),
		profileTables: cfg.ProfileTables,
		days:          cfg.Days,
		interval:      cfg.RefreshInterval,
		logger:        logger,
		metrics:       m,
	}
}

// Run refreshes immediately, then on every tick until the context ends.
// Refresh failures are logged and counted but never stop the loop.
func (r *Refresher) Run(ctx context.Context) error {
	if err := r.RefreshOnce(ctx); err != nil {
		r.logger.Error("initial snapshot build failed, serving not-ready until retry", "error", err)
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := r.RefreshOnce(ctx); err != nil {
				r.logger.Error("snapshot refresh failed, keeping previous snapshot", "error", err)
			}
		}
	}
}

// RefreshOnce builds a complete new snapshot and swaps it in. Any failure
// aborts the whole cycle; the container is left untouched.
func (r *Refresher) RefreshOnce(ctx context.Context) error {
	start := time.Now()

	index, err := r.builder.Build(ctx, r.profileTables)
	if err != nil {
		r.metrics.IncrementRefreshFailure()
		return fmt.Errorf("build roster index: %w", err)
	}

	days := make(map[string]*checkin.DayTable, len(r.days))
	for _, day := range r.days {
		dt, err := checkin.LoadDayTable(ctx, r.client, day.Table, r.metrics, r.logger)
		if err != nil {
			r.metrics.IncrementRefreshFailure()
			return err
		}
		days[day.Window.Label] = dt
	}

	r.container.swap(&checkin.Snapshot{
		Roster:  index,
		Days:    days,
		BuiltAt: start,
	})
	r.metrics.ObserveRefresh(time.Since(start))
	r.logger.Info("snapshot refreshed",
		"attendees", index.Len(),
		"day_tables", len(days),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
