package sqlite

import (
	"context"
	"fmt"
)

// EnsureSchema creates the slug history table and its indexes if they do
// not exist. Record tables are the host application's own schema
// concern. Timestamps are stored as nanoseconds since the epoch.
func (s *Store) EnsureSchema(ctx context.Context) error {
	schema := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %[1]s (
			id          TEXT PRIMARY KEY,
			record_type TEXT NOT NULL,
			record_id   TEXT NOT NULL,
			slug        TEXT NOT NULL,
			created_at  INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_%[1]s_lookup
		ON %[1]s (record_type, slug, created_at DESC);

		CREATE INDEX IF NOT EXISTS idx_%[1]s_owner
		ON %[1]s (record_type, record_id);
	`, s.historyTable)

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("sqlite: failed to create history schema: %w", err)
	}
	return nil
}
