package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/jnylen/slugging"
)

// DBTX is the subset of database/sql shared by *sql.DB and *sql.Tx, so a
// Store can run against the database directly or inside an open
// transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TypeSpec maps a record type onto its backing table.
type TypeSpec struct {
	// Name is the record type key, as reported by Record.RecordType.
	Name string
	// Table, PKColumn, and SlugColumn identify the backing table. They
	// are trusted identifiers interpolated into SQL; never pass user
	// input here.
	Table      string
	PKColumn   string
	SlugColumn string
	// Columns are the columns Scan expects, in order.
	Columns []string
	// Scan builds a Record from one row of Columns.
	Scan func(row *sql.Row) (slugging.Record, error)
	// Key is the primary key kind, which drives resolver disambiguation.
	Key slugging.KeyKind
}

// Store implements slugging.Store and slugging.HistoryStore over SQLite
// via modernc.org/sqlite.
type Store struct {
	db           DBTX
	types        map[string]TypeSpec
	historyTable string
}

// Option configures a Store.
type Option func(*Store)

// WithHistoryTable sets the slug history table name.
// Default: "slug_history"
func WithHistoryTable(name string) Option {
	return func(s *Store) {
		s.historyTable = name
	}
}

// New creates a Store over a database or transaction.
func New(db DBTX, opts ...Option) *Store {
	s := &Store{
		db:           db,
		types:        make(map[string]TypeSpec),
		historyTable: "slug_history",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open opens a SQLite database at path with a busy timeout and WAL
// journaling, the settings a concurrent writer workload wants.
func Open(path string) (*sql.DB, error) {
	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open database: %w", err)
	}
	return sqlDB, nil
}

// RegisterType declares the table mapping for a record type.
func (s *Store) RegisterType(spec TypeSpec) error {
	switch {
	case spec.Name == "":
		return fmt.Errorf("%w: empty type name", ErrInvalidTypeSpec)
	case spec.Table == "" || spec.PKColumn == "" || spec.SlugColumn == "":
		return fmt.Errorf("%w: %q needs table, pk column, and slug column", ErrInvalidTypeSpec, spec.Name)
	case len(spec.Columns) == 0 || spec.Scan == nil:
		return fmt.Errorf("%w: %q needs columns and a scan function", ErrInvalidTypeSpec, spec.Name)
	}
	s.types[spec.Name] = spec
	return nil
}

// WithTx returns a Store that runs against tx but shares the registered
// type mappings.
func (s *Store) WithTx(tx DBTX) *Store {
	return &Store{
		db:           tx,
		types:        s.types,
		historyTable: s.historyTable,
	}
}

// KeyKind reports the registered primary key kind for a record type.
// Unregistered types default to opaque string keys.
func (s *Store) KeyKind(recordType string) slugging.KeyKind {
	spec, ok := s.types[recordType]
	if !ok {
		return slugging.KeyString
	}
	return spec.Key
}

func (s *Store) spec(recordType string) (TypeSpec, error) {
	spec, ok := s.types[recordType]
	if !ok {
		return TypeSpec{}, fmt.Errorf("%w: %q", ErrUnknownType, recordType)
	}
	return spec, nil
}

// SlugInUse reports whether any live record other than excludePK holds
// the slug.
func (s *Store) SlugInUse(ctx context.Context, recordType, slug string, excludePK any) (bool, error) {
	spec, err := s.spec(recordType)
	if err != nil {
		return false, err
	}

	var (
		query string
		args  []any
	)
	if excludePK == nil {
		query = fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = ?)`, spec.Table, spec.SlugColumn)
		args = []any{slug}
	} else {
		query = fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = ? AND %s <> ?)`, spec.Table, spec.SlugColumn, spec.PKColumn)
		args = []any{slug, excludePK}
	}

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// FindByPK loads a record by primary key.
func (s *Store) FindByPK(ctx context.Context, recordType string, pk any) (slugging.Record, error) {
	spec, err := s.spec(recordType)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ?`,
		strings.Join(spec.Columns, ", "), spec.Table, spec.PKColumn)
	return scanOne(spec, s.db.QueryRowContext(ctx, query, pk))
}

// FindBySlug loads a record by its current slug.
func (s *Store) FindBySlug(ctx context.Context, recordType, slug string) (slugging.Record, error) {
	spec, err := s.spec(recordType)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ?`,
		strings.Join(spec.Columns, ", "), spec.Table, spec.SlugColumn)
	return scanOne(spec, s.db.QueryRowContext(ctx, query, slug))
}

func scanOne(spec TypeSpec, row *sql.Row) (slugging.Record, error) {
	rec, err := spec.Scan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, slugging.ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

// IsUniqueViolation reports whether err is a SQLite UNIQUE constraint
// violation. Callers racing on the same slug candidate should treat it
// as retryable.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
