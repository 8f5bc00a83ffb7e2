package sheets

import (
	"context"
	"fmt"
	"sync"

	"github.com/xuri/excelize/v2"

	"checkin/pkg/platform/sentinel"
)

// WorkbookClient serves the Client interface from a local .xlsx workbook.
// Used for local development and offline events where the remote API is not
// reachable. The file is reopened per call; a mutex keeps appends from
// interleaving with reads.
type WorkbookClient struct {
	mu   sync.Mutex
	path string
}

// NewWorkbookClient builds a workbook-backed client for the given file.
func NewWorkbookClient(path string) *WorkbookClient {
	return &WorkbookClient{path: path}
}

// Titles lists the sheet names of the workbook.
func (c *WorkbookClient) Titles(ctx context.Context) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	f, err := excelize.OpenFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	return f.GetSheetList(), nil
}

// Rows reads every row of one sheet, header included.
func (c *WorkbookClient) Rows(ctx context.Context, table string) ([][]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	f, err := excelize.OpenFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if idx, err := f.GetSheetIndex(table); err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet %q: %w", table, sentinel.ErrNotFound)
	}

	rows, err := f.GetRows(table)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", table, err)
	}
	return rows, nil
}

// Append adds one row after the last occupied row of the sheet.
func (c *WorkbookClient) Append(ctx context.Context, table string, row []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	f, err := excelize.OpenFile(c.path)
	if err != nil {
		return fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if idx, err := f.GetSheetIndex(table); err != nil || idx < 0 {
		return fmt.Errorf("sheet %q: %w", table, sentinel.ErrNotFound)
	}

	rows, err := f.GetRows(table)
	if err != nil {
		return fmt.Errorf("read sheet %q: %w", table, err)
	}

	cell, err := excelize.CoordinatesToCellName(1, len(rows)+1)
	if err != nil {
		return fmt.Errorf("compute append cell: %w", err)
	}

	values := make([]any, len(row))
	for i, v := range row {
		values[i] = v
	}
	if err := f.SetSheetRow(table, cell, &values); err != nil {
		return fmt.Errorf("write row to %q: %w", table, err)
	}
	if err := f.Save(); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
