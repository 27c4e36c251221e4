package sqlite

import "errors"

var (
	// ErrUnknownType is returned when a record type has no registered
	// table mapping.
	ErrUnknownType = errors.New("sqlite: unknown record type")

	// ErrInvalidTypeSpec is returned by RegisterType for incomplete
	// table mappings.
	ErrInvalidTypeSpec = errors.New("sqlite: invalid type spec")
)
