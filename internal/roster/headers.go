package roster

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripAccents decomposes to NFD, drops combining marks and recomposes.
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeHeader maps a free-form spreadsheet column label to its canonical
// form: diacritics stripped, inner whitespace collapsed to single spaces,
// trimmed, lower-cased. Pure and idempotent.
func NormalizeHeader(header string) string {
	out, _, err := transform.String(stripAccents, header)
	if err != nil {
		// Malformed input keeps its bytes; the matching below is substring
		// based and degrades gracefully.
		out = header
	}
	out = strings.ToLower(out)
	return strings.Join(strings.Fields(out), " ")
}

// ResolveFailure enumerates why a header row could not be resolved.
type ResolveFailure int

const (
	ResolveOK ResolveFailure = iota
	MissingIdentityColumn
	MissingNameColumn
	MissingRegistrationColumn
	MissingDateColumn
	MissingTimeColumn
)

func (f ResolveFailure) String() string {
	switch f {
	case ResolveOK:
		return "ok"
	case MissingIdentityColumn:
		return "missing cpf column"
	case MissingNameColumn:
		return "missing nome column"
	case MissingRegistrationColumn:
		return "missing inscricao column"
	case MissingDateColumn:
		return "missing data column"
	case MissingTimeColumn:
		return "missing hora column"
	default:
		return "unknown"
	}
}

// ProfileColumns locates the semantic columns of a profile category table.
// Indexes are -1 when absent.
type ProfileColumns struct {
	Identity     int
	Name         int
	Registration int
}

// statusLike marks registration-adjacent headers that describe the state of
// an inscription rather than its number, e.g. "status da inscricao".
var statusLike = []string{"status", "situacao", "tipo", "categoria"}

// ResolveProfileColumns resolves cpf (exact match), nome (substring) and the
// registration number column. Registration uses a disambiguation rule:
// prefer a header containing "inscr" without any status-like word, fall back
// to the first header containing "inscr".
func ResolveProfileColumns(headers []string) (ProfileColumns, ResolveFailure) {
	cols := ProfileColumns{Identity: -1, Name: -1, Registration: -1}
	firstInscr := -1

	for i, raw := range headers {
		h := NormalizeHeader(raw)
		switch {
		case h == "cpf" && cols.Identity < 0:
			cols.Identity = i
		case strings.Contains(h, "nome") && cols.Name < 0:
			cols.Name = i
		}
		if strings.Contains(h, "inscr") {
			if firstInscr < 0 {
				firstInscr = i
			}
			if cols.Registration < 0 && !containsAny(h, statusLike) {
				cols.Registration = i
			}
		}
	}
	if cols.Registration < 0 {
		cols.Registration = firstInscr
	}

	switch {
	case cols.Identity < 0:
		return cols, MissingIdentityColumn
	case cols.Name < 0:
		return cols, MissingNameColumn
	case cols.Registration < 0:
		return cols, MissingRegistrationColumn
	}
	return cols, ResolveOK
}

// DayColumns locates the semantic columns of a check-in day table. Day
// tables carry no status-like columns, so registration is a plain substring
// match.
type DayColumns struct {
	Registration int
	Name         int
	Date         int
	Time         int
}

// ResolveDayColumns resolves inscr/nome/data/hora by substring match.
func ResolveDayColumns(headers []string) (DayColumns, ResolveFailure) {
	cols := DayColumns{Registration: -1, Name: -1, Date: -1, Time: -1}

	for i, raw := range headers {
		h := NormalizeHeader(raw)
		switch {
		case strings.Contains(h, "inscr") && cols.Registration < 0:
			cols.Registration = i
		case strings.Contains(h, "nome") && cols.Name < 0:
			cols.Name = i
		case strings.Contains(h, "data") && cols.Date < 0:
			cols.Date = i
		case strings.Contains(h, "hora") && cols.Time < 0:
			cols.Time = i
		}
	}

	switch {
	case cols.Registration < 0:
		return cols, MissingRegistrationColumn
	case cols.Name < 0:
		return cols, MissingNameColumn
	case cols.Date < 0:
		return cols, MissingDateColumn
	case cols.Time < 0:
		return cols, MissingTimeColumn
	}
	return cols, ResolveOK
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
