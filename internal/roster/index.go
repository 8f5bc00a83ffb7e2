// Package roster builds and serves the in-memory attendee index derived from
// the profile category tables of the remote store.
package roster

import "strings"

// AttendeeRecord is one pre-registered attendee as derived from a profile
// table row. Records are immutable between rebuilds.
type AttendeeRecord struct {
	// IdentityNumber is the normalized 11-digit CPF.
	IdentityNumber string
	DisplayName    string
	// RegistrationNumber may be empty when the roster row has no ticket
	// code; such attendees cannot check in.
	RegistrationNumber string
	// SourceTable names the profile table the record came from.
	SourceTable string
}

// Index maps identity numbers to attendee records. Built once per refresh
// cycle and never mutated afterwards; requests only read it.
type Index struct {
	records map[string]AttendeeRecord
}

// Lookup returns the record for an identity number.
func (i *Index) Lookup(identityNumber string) (AttendeeRecord, bool) {
	rec, ok := i.records[identityNumber]
	return rec, ok
}

// Len reports how many distinct identity numbers are indexed.
func (i *Index) Len() int {
	return len(i.records)
}

// add applies the merge rule: the first-encountered record wins, unless it
// lacks a registration number and the newcomer has one.
func (i *Index) add(rec AttendeeRecord) {
	existing, ok := i.records[rec.IdentityNumber]
	if ok && !(existing.RegistrationNumber == "" && rec.RegistrationNumber != "") {
		return
	}
	i.records[rec.IdentityNumber] = rec
}

// digitsOnly strips every non-digit rune; "123.456.789-01" → "12345678901".
func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
