package postgres

import (
	"context"
	"embed"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jnylen/slugging/pkg/db"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate creates the default "slug_history" table. Record tables, and
// any renamed history table (see WithHistoryTable), are the host
// application's own schema concern.
func Migrate(ctx context.Context, pool *pgxpool.Pool, log *slog.Logger) error {
	return db.Migrate(ctx, pool, migrations, "slugging_schema_migrations", log)
}
