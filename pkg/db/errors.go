package db

import "errors"

var (
	ErrParseConfig     = errors.New("db: failed to parse connection url")
	ErrOpenConnection  = errors.New("db: failed to open database connection")
	ErrSetDialect      = errors.New("db migrator: failed to set dialect")
	ErrApplyMigrations = errors.New("db migrator: failed to apply migrations")
)
