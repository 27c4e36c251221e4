package postgres

import "errors"

var (
	// ErrUnknownType is returned when a record type has no registered
	// table mapping.
	ErrUnknownType = errors.New("postgres: unknown record type")

	// ErrInvalidTypeSpec is returned by RegisterType for incomplete
	// table mappings.
	ErrInvalidTypeSpec = errors.New("postgres: invalid type spec")
)
