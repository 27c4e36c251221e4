package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jnylen/slugging"
)

// AppendHistory inserts one history entry. Entries are append only; the
// engine never updates or deletes them.
func (s *Store) AppendHistory(ctx context.Context, entry slugging.HistoryEntry) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, record_type, record_id, slug, created_at)
		VALUES (?, ?, ?, ?, ?)`, s.historyTable)

	_, err := s.db.ExecContext(ctx, query,
		entry.ID, entry.RecordType, entry.OwnerID, entry.Slug, entry.CreatedAt.UnixNano())
	return err
}

// HistorySlugInUse reports whether the slug appears in any entry owned by
// a record other than excludeOwner.
func (s *Store) HistorySlugInUse(ctx context.Context, recordType, slug, excludeOwner string) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM %s
			WHERE record_type = ? AND slug = ? AND record_id <> ?
		)`, s.historyTable)

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, recordType, slug, excludeOwner).Scan(&exists); err != nil {
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
		WHERE record_type = ? AND slug = ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1`, s.historyTable)

	var ownerID string
	err := s.db.QueryRowContext(ctx, query, recordType, slug).Scan(&ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", slugging.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return ownerID, nil
}

// HistoryEntries returns every entry for the owner, oldest first, the
// current slug included.
func (s *Store) HistoryEntries(ctx context.Context, recordType, ownerID string) ([]slugging.HistoryEntry, error) {
	query := fmt.Sprintf(`
		SELECT id, record_type, record_id, slug, created_at FROM %s
		WHERE record_type = ? AND record_id = ?
		ORDER BY created_at ASC, id ASC`, s.historyTable)

	rows, err := s.db.QueryContext(ctx, query, recordType, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []slugging.HistoryEntry
	for rows.Next() {
		var (
			e  slugging.HistoryEntry
			ns int64
		)
		if err := rows.Scan(&e.ID, &e.RecordType, &e.OwnerID, &e.Slug, &ns); err != nil {
			return nil, err
		}
		e.CreatedAt = time.Unix(0, ns).UTC()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
