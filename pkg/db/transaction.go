package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// WithTx executes fn within a database transaction.
// If fn returns an error, the transaction is rolled back.
// If fn panics, the transaction is rolled back and the panic is re-raised.
// If fn succeeds, the transaction is committed.
//
// Slug assignment belongs inside the same fn as the record write, so the
// slug, the record, and any history entry commit atomically.
func WithTx(ctx context.Context, pool *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	return tx.Commit(ctx)
}

// WithTxRetry runs fn through WithTx up to attempts times, retrying only
// unique constraint violations. Writers racing on the same slug
// candidate both pass the availability check and the loser's commit is
// rejected by the slug column's constraint; its retry runs in a fresh
// transaction, sees the winner's slug, and disambiguates.
func WithTxRetry(ctx context.Context, pool *pgxpool.Pool, attempts int, fn func(tx pgx.Tx) error) error {
	attempts = max(attempts, 1)

	var err error
	for range attempts {
		err = WithTx(ctx, pool, fn)
		if err == nil || !IsUniqueViolation(err) {
			return err
		}
	}
	return err
}

// IsUniqueViolation reports whether err is a PostgreSQL unique
// constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
