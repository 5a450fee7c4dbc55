package catalogue

import "errors"

// Sentinel errors for catalogue construction and lookup. ErrNotFound is not
// a hard error: callers translate a failed lookup into their own per-query
// "not found" answer locally.
var (
	ErrDuplicateName   = errors.New("catalogue: duplicate name")
	ErrUnknownStop     = errors.New("catalogue: unknown stop")
	ErrUnknownBus      = errors.New("catalogue: unknown bus")
	ErrMissingDistance = errors.New("catalogue: missing distance for consecutive stops")
	ErrInvalidRoute    = errors.New("catalogue: invalid bus route")
	ErrNotFound        = errors.New("catalogue: not found")
)
