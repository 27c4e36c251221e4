package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jnylen/slugging"
	"github.com/jnylen/slugging/pkg/db"
)

// DBTX is the subset of pgx shared by *pgxpool.Pool and pgx.Tx, so a
// Store can run against the pool directly or inside an open transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
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
	Scan func(row pgx.Row) (slugging.Record, error)
	// Key is the primary key kind, which drives resolver disambiguation.
	Key slugging.KeyKind
}

// Store implements slugging.Store and slugging.HistoryStore over
// PostgreSQL via pgx.
type Store struct {
	db           DBTX
	types        map[string]TypeSpec
	historyTable string
}

// Option configures a Store.
type Option func(*Store)

// WithHistoryTable sets the slug history table name. The embedded
// migration only creates the default table; a renamed table is the
// caller's schema to create, with the same columns and indexes.
// Default: "slug_history"
func WithHistoryTable(name string) Option {
	return func(s *Store) {
		s.historyTable = name
	}
}

// New creates a Store over a pool or transaction.
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
// type mappings. Use it to scope engine calls to a caller transaction.
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
		query = fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`, spec.Table, spec.SlugColumn)
		args = []any{slug}
	} else {
		query = fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s <> $2)`, spec.Table, spec.SlugColumn, spec.PKColumn)
		args = []any{slug, excludePK}
	}

	var exists bool
	if err := s.db.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
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

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		strings.Join(spec.Columns, ", "), spec.Table, spec.PKColumn)
	return s.scanOne(spec, s.db.QueryRow(ctx, query, pk))
}

// FindBySlug loads a record by its current slug.
func (s *Store) FindBySlug(ctx context.Context, recordType, slug string) (slugging.Record, error) {
	spec, err := s.spec(recordType)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		strings.Join(spec.Columns, ", "), spec.Table, spec.SlugColumn)
	return s.scanOne(spec, s.db.QueryRow(ctx, query, slug))
}

func (s *Store) scanOne(spec TypeSpec, row pgx.Row) (slugging.Record, error) {
	rec, err := spec.Scan(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, slugging.ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

// IsUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation. Callers racing on the same slug candidate should treat it as
// retryable; db.WithTxRetry does exactly that.
func IsUniqueViolation(err error) bool {
	return db.IsUniqueViolation(err)
}
