// Package db provides PostgreSQL pool bootstrap, transaction, and
// migration helpers for the postgres slugging store.
//
// It wraps [github.com/jackc/pgx/v5/pgxpool] with retrying startup and
// runs schema migrations through [github.com/pressly/goose/v3].
//
// # Usage
//
//	pool, err := db.Open(ctx, os.Getenv("DATABASE_URL"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer pool.Close()
//
// Group a record write with its slug assignment in one transaction:
//
//	err = db.WithTx(ctx, pool, func(tx pgx.Tx) error {
//	    assigner := slugging.NewAssigner(registry, store.WithTx(tx))
//	    if _, err := assigner.Assign(ctx, post, true); err != nil {
//	        return err
//	    }
//	    return insertPost(ctx, tx, post)
//	})
//
// Writers racing on the same slug candidate lose to the slug column's
// unique constraint rather than to a lock; [WithTxRetry] reruns the
// whole fn in a fresh transaction when that happens, so the retry sees
// the winner's slug and disambiguates:
//
//	err = db.WithTxRetry(ctx, pool, 3, savePost)
//
// Apply embedded migrations (the postgres store ships one for its slug
// history table):
//
//	//go:embed migrations/*.sql
//	var migrations embed.FS
//
//	err = db.Migrate(ctx, pool, migrations, "schema_migrations", logger)
package db
