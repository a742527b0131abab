package marsmission

import "errors"

// Error kinds from spec.md §7. Errors built in this package wrap one of
// these sentinels, so callers can classify them with errors.Is. The
// HTTP and WebSocket handlers do not branch on the kind: each handler
// replies with a fixed status or error message.
var (
	// ErrInvalidInput marks a caller-supplied value that is out of
	// range or malformed (unknown planet, out-of-range N, non-numeric
	// command argument). No engine state changes when this is returned.
	ErrInvalidInput = errors.New("invalid-input")

	// ErrSolverFailure marks a Lambert, propagator or launch-window
	// search that exhausted its iteration or scan budget. Fatal for
	// the affected mission; never corrupts the already-computed
	// schedule prefix.
	ErrSolverFailure = errors.New("solver-failure")

	// ErrSubscriberIO marks a dead realtime subscriber (timeout or
	// closed transport). Only the offending subscriber is affected.
	ErrSubscriberIO = errors.New("subscriber-io-failure")

	// ErrAssetFailure marks a failed optional startup asset download.
	// Logged; startup proceeds with the procedural fallback.
	ErrAssetFailure = errors.New("startup-asset-failure")
)
