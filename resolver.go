package slugging

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jnylen/slugging/pkg/cache"
)

// Resolver turns an opaque identifier (a primary key rendered as text, a
// current slug, or a historical slug) back into the owning record.
type Resolver struct {
	registry *Registry
	store    Store
	history  HistoryStore
	cache    cache.Cache[string]
	cacheTTL time.Duration
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithCache caches resolved identifiers as primary key text for ttl.
// Stale entries whose key no longer loads fall back to the full lookup
// path and are refreshed. Zero ttl uses the cache's default.
func WithCache(c cache.Cache[string], ttl time.Duration) ResolverOption {
	return func(r *Resolver) {
		r.cache = c
		r.cacheTTL = ttl
	}
}

// NewResolver creates a Resolver over the given registry and store. The
// history fallback activates when the store implements HistoryStore and
// the record type's configuration enables history.
func NewResolver(registry *Registry, store Store, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		registry: registry,
		store:    store,
	}
	if hs, ok := store.(HistoryStore); ok {
		r.history = hs
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve looks up the record the identifier points at. found is false
// when nothing matches; err reports store failures only.
func (r *Resolver) Resolve(ctx context.Context, recordType, identifier string) (rec Record, found bool, err error) {
	rec, err = r.ResolveStrict(ctx, recordType, identifier)
	if errors.Is(err, ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return rec, true, nil
}

// ResolveStrict is Resolve with a miss reported as ErrNotFound.
func (r *Resolver) ResolveStrict(ctx context.Context, recordType, identifier string) (Record, error) {
	if r.cache == nil {
		return r.lookup(ctx, recordType, identifier)
	}

	cacheKey := recordType + ":" + identifier

	// Cached hit: load by key directly. A record deleted since caching
	// falls through to the full path below.
	if pkText, err := r.cache.Get(ctx, cacheKey); err == nil {
		if pk, err := keyFromText(pkText, r.store.KeyKind(recordType)); err == nil {
			if rec, err := r.store.FindByPK(ctx, recordType, pk); err == nil {
				return rec, nil
			}
		}
		_ = r.cache.Delete(ctx, cacheKey)
	}

	pkText, err := cache.GetOrSet(ctx, r.cache, cacheKey, func(ctx context.Context) (string, time.Duration, error) {
		rec, err := r.lookup(ctx, recordType, identifier)
		if err != nil {
			return "", 0, err
		}
		return keyText(rec.PrimaryKey()), r.cacheTTL, nil
	})
	if err != nil {
		return nil, err
	}

	pk, err := keyFromText(pkText, r.store.KeyKind(recordType))
	if err != nil {
		return nil, err
	}
	return r.store.FindByPK(ctx, recordType, pk)
}

// lookup is the uncached resolution path: primary key when the
// identifier is shaped like one, then slug, then the most recent history
// entry's owner.
func (r *Resolver) lookup(ctx context.Context, recordType, identifier string) (Record, error) {
	kind := r.store.KeyKind(recordType)

	if pk, ok := keyCandidate(identifier, kind); ok {
		rec, err := r.store.FindByPK(ctx, recordType, pk)
		if err == nil {
			return rec, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}

	rec, err := r.store.FindBySlug(ctx, recordType, identifier)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	if cfg, ok := r.registry.Lookup(recordType); ok && cfg.history && r.history != nil {
		ownerText, err := r.history.LatestHistoryOwner(ctx, recordType, identifier)
		if err == nil {
			pk, err := keyFromText(ownerText, kind)
			if err != nil {
				return nil, err
			}
			return r.store.FindByPK(ctx, recordType, pk)
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}

	return nil, ErrNotFound
}

// keyCandidate reports whether the identifier is shaped like a primary
// key of the given kind, and the typed key to look up if so. Opaque
// string keys accept any identifier.
func keyCandidate(identifier string, kind KeyKind) (any, bool) {
	switch kind {
	case KeyInt:
		if !isDigits(identifier) {
			return nil, false
		}
		pk, err := keyFromText(identifier, KeyInt)
		if err != nil {
			return nil, false
		}
		return pk, true
	case KeyUUID:
		if uuid.Validate(identifier) != nil {
			return nil, false
		}
		return identifier, true
	default:
		return identifier, true
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
