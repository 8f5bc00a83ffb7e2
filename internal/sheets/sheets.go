// Package sheets abstracts the remote tabular store behind a narrow client
// interface. The roster builder and day-table adapters only ever list table
// titles, read all rows of one table, and append a single row.
package sheets

import (
	"context"
	"errors"
	"io"
	"net"
	"syscall"

	"checkin/pkg/platform/sentinel"
)

// Client is the access surface of the spreadsheet-backed store.
type Client interface {
	// Titles lists the table (sheet) names of the document.
	Titles(ctx context.Context) ([]string, error)
	// Rows returns every row of the named table, header row included.
	Rows(ctx context.Context, table string) ([][]string, error)
	// Append adds one row at the end of the named table.
	Append(ctx context.Context, table string, row []string) error
}

// IsTransient reports whether an error is worth retrying: a rate-limit
// signal from the store or a connection reset/timeout. Anything else
// propagates immediately.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, sentinel.ErrRateLimited) {
		return true
	}
	if errors.Is(err, syscall.ECONNRESET) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
