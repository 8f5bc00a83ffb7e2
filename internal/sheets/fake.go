package sheets

import (
	"context"
	"sync"

	"checkin/pkg/platform/sentinel"
)

// Fake is an in-memory Client for tests. Error hooks let tests inject
// transient failures per operation.
type Fake struct {
	mu     sync.Mutex
	tables map[string][][]string
	order  []string

	// TitlesErr fails Titles when non-nil.
	TitlesErr error
	// RowsErr fails Rows for every table when non-nil.
	RowsErr error
	// AppendErrs is consumed one error per Append call; a nil entry means
	// that call succeeds.
	AppendErrs []error

	appendCalls int
}

// NewFake builds an empty fake store.
func NewFake() *Fake {
	return &Fake{tables: make(map[string][][]string)}
}

// SetTable replaces the rows of one table, creating it if needed.
func (f *Fake) SetTable(name string, rows [][]string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tables[name]; !ok {
		f.order = append(f.order, name)
	}
	f.tables[name] = rows
}

// AppendCalls reports how many Append attempts were made.
func (f *Fake) AppendCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.appendCalls
}

// TableRows returns a copy of the current rows of one table.
func (f *Fake) TableRows(name string) [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	rows := f.tables[name]
	out := make([][]string, len(rows))
	copy(out, rows)
	return out
}

func (f *Fake) Titles(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.TitlesErr != nil {
		return nil, f.TitlesErr
	}
	return append([]string(nil), f.order...), nil
}

func (f *Fake) Rows(ctx context.Context, table string) ([][]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.RowsErr != nil {
		return nil, f.RowsErr
	}
	rows, ok := f.tables[table]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return rows, nil
}

func (f *Fake) Append(ctx context.Context, table string, row []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	call := f.appendCalls
	f.appendCalls++
	if call < len(f.AppendErrs) && f.AppendErrs[call] != nil {
		return f.AppendErrs[call]
	}

	if _, ok := f.tables[table]; !ok {
		return sentinel.ErrNotFound
	}
	f.tables[table] = append(f.tables[table], row)
	return nil
}
