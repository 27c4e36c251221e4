package slugging_test

import (
	"context"
	"strconv"
	"sync"

	"github.com/jnylen/slugging"
)

// testRecord is a minimal Record backed by a plain field map.
type testRecord struct {
	typ    string
	id     any
	slug   string
	fields map[string]any
}

func (r *testRecord) RecordType() string { return r.typ }
func (r *testRecord) PrimaryKey() any    { return r.id }
func (r *testRecord) Slug() string       { return r.slug }
func (r *testRecord) SetSlug(s string)   { r.slug = s }
func (r *testRecord) Field(name string) (any, bool) {
	v, ok := r.fields[name]
	return v, ok
}

// memStore implements Store and HistoryStore in memory, keyed by the
// textual rendering of each record's primary key.
type memStore struct {
	mu       sync.Mutex
	records  map[string]map[string]slugging.Record
	history  []slugging.HistoryEntry
	keyKinds map[string]slugging.KeyKind

	findBySlugErr error
}

func newMemStore() *memStore {
	return &memStore{
		records:  make(map[string]map[string]slugging.Record),
		keyKinds: make(map[string]slugging.KeyKind),
	}
}

func keyString(pk any) string {
	switch t := pk.(type) {
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return ""
	}
}

func (s *memStore) put(rec slugging.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	byPK, ok := s.records[rec.RecordType()]
	if !ok {
		byPK = make(map[string]slugging.Record)
		s.records[rec.RecordType()] = byPK
	}
	byPK[keyString(rec.PrimaryKey())] = rec
}

func (s *memStore) delete(rec slugging.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records[rec.RecordType()], keyString(rec.PrimaryKey()))
}

func (s *memStore) setKeyKind(recordType string, kind slugging.KeyKind) {
	s.keyKinds[recordType] = kind
}

func (s *memStore) KeyKind(recordType string) slugging.KeyKind {
	if kind, ok := s.keyKinds[recordType]; ok {
		return kind
	}
	return slugging.KeyInt
}

func (s *memStore) SlugInUse(_ context.Context, recordType, slug string, excludePK any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	exclude := keyString(excludePK)
	for pk, rec := range s.records[recordType] {
		if rec.Slug() == slug && pk != exclude {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) FindByPK(_ context.Context, recordType string, pk any) (slugging.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[recordType][keyString(pk)]
	if !ok {
		return nil, slugging.ErrNotFound
	}
	return rec, nil
}

func (s *memStore) FindBySlug(_ context.Context, recordType, slug string) (slugging.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findBySlugErr != nil {
		return nil, s.findBySlugErr
	}
	for _, rec := range s.records[recordType] {
		if rec.Slug() == slug {
			return rec, nil
		}
	}
	return nil, slugging.ErrNotFound
}

func (s *memStore) AppendHistory(_ context.Context, entry slugging.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, entry)
	return nil
}

func (s *memStore) HistorySlugInUse(_ context.Context, recordType, slug, excludeOwner string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.history {
		if e.RecordType == recordType && e.Slug == slug && e.OwnerID != excludeOwner {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) LatestHistoryOwner(_ context.Context, recordType, slug string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.history) - 1; i >= 0; i-- {
		e := s.history[i]
		if e.RecordType == recordType && e.Slug == slug {
			return e.OwnerID, nil
		}
	}
	return "", slugging.ErrNotFound
}

func (s *memStore) slugsFor(recordType, ownerID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, e := range s.history {
		if e.RecordType == recordType && e.OwnerID == ownerID {
			out = append(out, e.Slug)
		}
	}
	return out
}

// plainStore exposes only the Store surface of a memStore, for asserting
// behavior against stores without history support.
type plainStore struct {
	inner *memStore
}

func (s plainStore) KeyKind(recordType string) slugging.KeyKind {
	return s.inner.KeyKind(recordType)
}

func (s plainStore) SlugInUse(ctx context.Context, recordType, slug string, excludePK any) (bool, error) {
	return s.inner.SlugInUse(ctx, recordType, slug, excludePK)
}

func (s plainStore) FindByPK(ctx context.Context, recordType string, pk any) (slugging.Record, error) {
	return s.inner.FindByPK(ctx, recordType, pk)
}

func (s plainStore) FindBySlug(ctx context.Context, recordType, slug string) (slugging.Record, error) {
	return s.inner.FindBySlug(ctx, recordType, slug)
}
