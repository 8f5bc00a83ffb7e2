package sentinel

import "errors"

// Sentinel errors for infrastructure facts. The sheets client and store
// adapters return these (optionally wrapped) so services can translate them
// into domain errors at the handler boundary.
//
// These represent factual states about the remote tabular store, not
// validation failures:
// - ErrNotFound: table or row does not exist in the remote store
// - ErrRateLimited: remote store rejected the call with a quota/429 signal
// - ErrUnauthorized: credentials rejected by the remote store
// - ErrUnavailable: remote store temporarily unreachable
//
// For user-input validation, use pkg/domain-errors directly.
var (
	ErrNotFound     = errors.New("not found")
	ErrRateLimited  = errors.New("rate limited")
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnavailable  = errors.New("unavailable")
)
