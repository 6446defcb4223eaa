// Package errs provides small error helpers shared by the proxy actors.
package errs

import (
	"errors"
	"strings"
)

// SilentError marks an error that should terminate a connection without
// being logged at warn level (e.g. a client that hung up cleanly).
type SilentError struct {
	Err error
}

func (e *SilentError) Error() string { return e.Err.Error() }
func (e *SilentError) Unwrap() error { return e.Err }

// Silent wraps err as a SilentError.
func Silent(err error) error {
	if err == nil {
		return nil
	}
	return &SilentError{Err: err}
}

// IsConnClosedErr reports whether err indicates the underlying socket
// was already closed by the time this side tried to use it.
func IsConnClosedErr(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "use of closed network connection") ||
		strings.Contains(err.Error(), "broken pipe") ||
		strings.Contains(err.Error(), "connection reset by peer")
}

// IsSilent reports whether err (or something it wraps) is a SilentError.
func IsSilent(err error) bool {
	var s *SilentError
	return errors.As(err, &s)
}
