package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Lower layers return these
// (optionally wrapped) so callers can translate them into domain errors.
//
//   - ErrNotFound: the named resource (operation, record) does not exist
//   - ErrConflict: the resource already exists
//   - ErrUnavailable: a dependency is temporarily unavailable
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
)
