package slugging

import "context"

// Store is the record store collaborator. Implementations are expected to
// run inside whatever transactional scope the caller established, so an
// Assign call and the surrounding record write commit atomically.
//
// Lookup methods return ErrNotFound (possibly wrapped) on a miss.
type Store interface {
	// KeyKind reports the primary key type of the given record type's
	// backing table.
	KeyKind(recordType string) KeyKind

	// SlugInUse reports whether any live record of the type other than
	// excludePK currently holds the slug. A nil excludePK excludes
	// nothing.
	SlugInUse(ctx context.Context, recordType, slug string, excludePK any) (bool, error)

	FindByPK(ctx context.Context, recordType string, pk any) (Record, error)
	FindBySlug(ctx context.Context, recordType, slug string) (Record, error)
}

// HistoryStore is the optional append-only log of every slug a record has
// held. Stores that support history implement it alongside Store.
type HistoryStore interface {
	AppendHistory(ctx context.Context, entry HistoryEntry) error

	// HistorySlugInUse reports whether any history entry belonging to an
	// owner other than excludeOwner holds the slug. The exclusion is what
	// lets a record reclaim its own previous slug during regeneration.
	HistorySlugInUse(ctx context.Context, recordType, slug, excludeOwner string) (bool, error)

	// LatestHistoryOwner returns the owner id of the most recent history
	// entry holding the slug, or ErrNotFound.
	LatestHistoryOwner(ctx context.Context, recordType, slug string) (string, error)
}
