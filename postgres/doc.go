// Package postgres implements the slugging store interfaces over
// PostgreSQL using pgx.
//
// Register a table mapping per record type, then hand the store to the
// engine:
//
//	store := postgres.New(pool)
//	err := store.RegisterType(postgres.TypeSpec{
//	    Name:       "posts",
//	    Table:      "posts",
//	    PKColumn:   "id",
//	    SlugColumn: "slug",
//	    Key:        slugging.KeyInt,
//	    Columns:    []string{"id", "title", "slug"},
//	    Scan: func(row pgx.Row) (slugging.Record, error) {
//	        var p Post
//	        err := row.Scan(&p.ID, &p.Title, &p.Slug)
//	        return &p, err
//	    },
//	})
//
//	assigner := slugging.NewAssigner(registry, store)
//
// Run assignment inside the transaction that writes the record, using
// [Store.WithTx] to scope the store's queries to it. The slug column
// needs a unique constraint; [IsUniqueViolation] classifies the error a
// losing concurrent writer receives, which callers should retry.
//
// [Migrate] creates the slug history table from an embedded goose
// migration.
package postgres
