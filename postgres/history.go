package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jnylen/slugging"
)

// AppendHistory inserts one history entry. Entries are append only; the
// engine never updates or deletes them.
func (s *Store) AppendHistory(ctx context.Context, entry slugging.HistoryEntry) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, record_type, record_id, slug, created_at)
		VALUES ($1, $2, $3, $4, $5)`, s.historyTable)

	_, err := s.db.Exec(ctx, query,
		entry.ID, entry.RecordType, entry.OwnerID, entry.Slug, entry.CreatedAt)
	return err
}

// HistorySlugInUse reports whether the slug appears in any entry owned by
// a record other than excludeOwner.
func (s *Store) HistorySlugInUse(ctx context.Context, recordType, slug, excludeOwner string) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM %s
			WHERE record_type = $1 AND slug = $2 AND record_id <> $3
		)`, s.historyTable)

	var exists bool
	if err := s.db.QueryRow(ctx, query, recordType, slug, excludeOwner).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// LatestHistoryOwner returns the owner of the most recent entry holding
// the slug. The ULID id breaks ties between entries created in the same
// instant.
func (s *Store) LatestHistoryOwner(ctx context.Context, recordType, slug string) (string, error) {
	query := fmt.Sprintf(`
		SELECT record_id FROM %s
		WHERE record_type = $1 AND slug = $2
		ORDER BY created_at DESC, id DESC
		LIMIT 1`, s.historyTable)

	var ownerID string
	err := s.db.QueryRow(ctx, query, recordType, slug).Scan(&ownerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", slugging.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return ownerID, nil
}
