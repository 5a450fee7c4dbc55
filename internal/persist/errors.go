package persist

import "errors"

// ErrIncompatibleSchema is returned by Load when a blob's schema version is
// not one this build knows how to decode.
var ErrIncompatibleSchema = errors.New("persist: incompatible schema version")

// ErrIO wraps a failure reading or writing the underlying stream.
var ErrIO = errors.New("persist: io error")
