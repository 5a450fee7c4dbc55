package facade

import "errors"

// ErrParse is returned when the structured request envelope is malformed.
var ErrParse = errors.New("facade: malformed request envelope")

// ErrInvalidSettings is returned when a settings section required by a
// later stage is missing (e.g. routing_settings in build mode).
var ErrInvalidSettings = errors.New("facade: invalid settings")
