package roster

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"checkin/internal/sheets"
)

// Builder scans the profile category tables and produces a fresh Index.
type Builder struct {
	client sheets.Client
	logger *slog.Logger
}

// NewBuilder wires a builder to the sheets client.
func NewBuilder(client sheets.Client, logger *slog.Logger) *Builder {
	return &Builder{client: client, logger: logger}
}

// Build loads every configured profile table once and merges the rows into a
// new Index. Tables missing from the document or missing required columns
// are skipped with a warning (degraded mode). A failure to list the document
// tables or to read a present table aborts the whole build so the previous
// index stays in effect.
func (b *Builder) Build(ctx context.Context, tables []string) (*Index, error) {
	titles, err := b.client.Titles(ctx)
	if err != nil {
		return nil, fmt.Errorf("load table list: %w", err)
	}
	present := make(map[string]bool, len(titles))
	for _, t := range titles {
		present[t] = true
	}

	// Rows load concurrently; the merge below walks results in configured
	// order so first-writer-wins stays deterministic.
	rowsByTable := make([][][]string, len(tables))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, table := range tables {
		if !present[table] {
			b.logger.Warn("profile table missing from document, skipping", "table", table)
			continue
		}
		i, table := i, table
		g.Go(func() error {
			rows, err := b.client.Rows(gctx, table)
			if err != nil {
				return fmt.Errorf("load profile table %q: %w", table, err)
			}
			rowsByTable[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	idx := &Index{records: make(map[string]AttendeeRecord)}
	for i, table := range tables {
		rows := rowsByTable[i]
		if len(rows) == 0 {
			continue
		}

		cols, failure := ResolveProfileColumns(rows[0])
		if failure != ResolveOK {
			b.logger.Warn("profile table skipped", "table", table, "reason", failure.String())
			continue
		}

		for _, row := range rows[1:] {
			identity := digitsOnly(cell(row, cols.Identity))
			if identity == "" {
				continue
			}
			idx.add(AttendeeRecord{
				IdentityNumber:     identity,
				DisplayName:        cell(row, cols.Name),
				RegistrationNumber: cell(row, cols.Registration),
				SourceTable:        table,
			})
		}
	}

	b.logger.Info("roster index built", "attendees", idx.Len(), "tables", len(tables))
	return idx, nil
}

// cell reads a column; short rows read as empty strings.
func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}
