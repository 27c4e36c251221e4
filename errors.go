package slugging

import "errors"

var (
	// ErrInvalidSource is returned when a slug source accessor produces a
	// value with no sensible text form (a bool, a struct without a String
	// method, or an accessor the record does not expose). It is fatal:
	// the assignment aborts and nothing is written.
	ErrInvalidSource = errors.New("slugging: source value has no text form")

	// ErrNotFound is returned by strict resolution and by store lookups
	// when no record matches by key, slug, or history.
	ErrNotFound = errors.New("slugging: record not found")

	// ErrNotConfigured is returned when a record type has no registered
	// slug configuration.
	ErrNotConfigured = errors.New("slugging: record type not configured")
)
