package slugging

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// Assigner decides whether a record needs a slug and computes one. Call
// Assign from the host's save lifecycle, inside the same transaction as
// the record write, so the slug and its history entry commit atomically.
//
// Concurrent writers racing on the same candidate may both observe it as
// available; the store's uniqueness constraint on the slug column is the
// final authority, and the caller should treat a constraint violation as
// retryable.
type Assigner struct {
	registry *Registry
	store    Store
	history  HistoryStore
	now      func() time.Time
}

// AssignerOption configures an Assigner.
type AssignerOption func(*Assigner)

// WithClock overrides the timestamp source for history entries.
func WithClock(now func() time.Time) AssignerOption {
	return func(a *Assigner) {
		a.now = now
	}
}

// NewAssigner creates an Assigner over the given registry and store. If
// the store also implements HistoryStore, history-enabled configurations
// record every assigned slug.
func NewAssigner(registry *Registry, store Store, opts ...AssignerOption) *Assigner {
	a := &Assigner{
		registry: registry,
		store:    store,
		now:      time.Now,
	}
	if hs, ok := store.(HistoryStore); ok {
		a.history = hs
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assignment reports the outcome of an Assign call.
type Assignment struct {
	// Slug is the record's slug after the call: the freshly computed one,
	// or the untouched existing one when no recomputation was needed.
	Slug string
	// Computed is false when the call was a no-op.
	Computed bool
}

// Assign computes and sets the record's slug when needed.
//
// New records always compute. Updates compute only when the type's
// regenerate predicate evaluates true against the record's current
// in-memory state; with no predicate configured, the slug is immutable
// after first assignment even if the source fields changed.
//
// A record whose primary key is still the zero value gets a slug but no
// history entry; there is no owner id to record it under yet.
//
// A fatal source error aborts the call with nothing written, history
// included.
func (a *Assigner) Assign(ctx context.Context, rec Record, isNew bool) (Assignment, error) {
	cfg, ok := a.registry.Lookup(rec.RecordType())
	if !ok {
		return Assignment{}, ErrNotConfigured
	}

	if !isNew && (cfg.regenerate == nil || !cfg.regenerate(rec)) {
		return Assignment{Slug: rec.Slug()}, nil
	}

	set := currentSettings()

	final, err := a.compute(ctx, rec, cfg, set)
	if err != nil {
		return Assignment{}, err
	}

	rec.SetSlug(final)

	if cfg.history && a.history != nil && hasKey(rec.PrimaryKey()) {
		entry := HistoryEntry{
			ID:         ulid.Make().String(),
			RecordType: rec.RecordType(),
			OwnerID:    keyText(rec.PrimaryKey()),
			Slug:       final,
			CreatedAt:  a.now().UTC(),
		}
		if err := a.history.AppendHistory(ctx, entry); err != nil {
			return Assignment{}, err
		}
	}

	return Assignment{Slug: final, Computed: true}, nil
}

// compute walks the candidate sequence: slugify, skip empties, truncate,
// and take the first available candidate. A taken candidate falls
// through to the next one; only when every candidate is taken does the
// first candidate's text get a random suffix, without a second
// availability check. The suffix is treated as collision-proof, with the
// store's unique constraint as the backstop. A sequence yielding no text
// at all falls back to a bare generated identifier.
func (a *Assigner) compute(ctx context.Context, rec Record, cfg *Config, set settings) (string, error) {
	first := ""
	for candidate, err := range cfg.source.candidateSeq(rec) {
		if err != nil {
			return "", err
		}

		token := set.slugify(candidate)
		if token == "" {
			continue
		}
		token = truncate(token, set.maxLength)
		if first == "" {
			first = token
		}

		available, err := a.available(ctx, rec, cfg, token, set)
		if err != nil {
			return "", err
		}
		if available {
			return token, nil
		}
	}

	return disambiguate(first), nil
}

// available implements the uniqueness check: not reserved, not held by
// another live record, and (with history on) not held by another owner's
// history entry. The record's own current and past slugs never block it.
func (a *Assigner) available(ctx context.Context, rec Record, cfg *Config, slug string, set settings) (bool, error) {
	if _, reserved := set.reserved[slug]; reserved {
		return false, nil
	}

	inUse, err := a.store.SlugInUse(ctx, rec.RecordType(), slug, rec.PrimaryKey())
	if err != nil {
		return false, err
	}
	if inUse {
		return false, nil
	}

	if cfg.history && a.history != nil {
		taken, err := a.history.HistorySlugInUse(ctx, rec.RecordType(), slug, keyText(rec.PrimaryKey()))
		if err != nil {
			return false, err
		}
		if taken {
			return false, nil
		}
	}

	return true, nil
}

// disambiguate appends a freshly generated identifier to the base, or
// returns the bare identifier for an empty base. The result is not
// re-truncated; the suffix is authoritative.
func disambiguate(base string) string {
	suffix := uuid.NewString()
	if base == "" {
		return suffix
	}
	return base + "-" + suffix
}

// truncate cuts to at most n runes. No separator cleanup happens here:
// the cut text is the exact base the disambiguator builds on.
func truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
