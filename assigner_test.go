package slugging_test

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jnylen/slugging"
)

const uuidPattern = `[a-f0-9]{8}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{12}`

func newPost(id int64, title string) *testRecord {
	return &testRecord{
		typ:    "posts",
		id:     id,
		fields: map[string]any{"title": title},
	}
}

func TestAssigner_NewRecord(t *testing.T) {
	registry := slugging.NewRegistry()
	registry.Register("posts", slugging.NewConfig(slugging.WithSource(slugging.Field("title"))))
	store := newMemStore()
	assigner := slugging.NewAssigner(registry, store)
	ctx := context.Background()

	rec := newPost(1, "Tra la la!")
	store.put(rec)

	got, err := assigner.Assign(ctx, rec, true)
	require.NoError(t, err)
	assert.True(t, got.Computed)
	assert.Equal(t, "tra-la-la", got.Slug)
	assert.Equal(t, "tra-la-la", rec.Slug())
}

func TestAssigner_EmptySourceFallsBackToGeneratedID(t *testing.T) {
	registry := slugging.NewRegistry()
	store := newMemStore()
	assigner := slugging.NewAssigner(registry, store)
	ctx := context.Background()

	tests := []struct {
		name string
		cfg  *slugging.Config
		rec  *testRecord
	}{
		{
			name: "no source configured",
			cfg:  slugging.NewConfig(),
			rec:  newPost(1, "whatever"),
		},
		{
			name: "source yields empty text",
			cfg:  slugging.NewConfig(slugging.WithSource(slugging.Field("title"))),
			rec:  newPost(2, "   !!!   "),
		},
		{
			name: "source field is nil",
			cfg:  slugging.NewConfig(slugging.WithSource(slugging.Field("title"))),
			rec: &testRecord{
				typ:    "posts",
				id:     int64(3),
				fields: map[string]any{"title": nil},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry.Register("posts", tt.cfg)
			store.put(tt.rec)

			got, err := assigner.Assign(ctx, tt.rec, true)
			require.NoError(t, err)
			assert.Regexp(t, "^"+uuidPattern+"$", got.Slug)
		})
	}
}

func TestAssigner_CollisionAppendsSuffix(t *testing.T) {
	registry := slugging.NewRegistry()
	registry.Register("posts", slugging.NewConfig(slugging.WithSource(slugging.Field("title"))))
	store := newMemStore()
	assigner := slugging.NewAssigner(registry, store)
	ctx := context.Background()

	first := newPost(1, "Blah")
	store.put(first)
	_, err := assigner.Assign(ctx, first, true)
	require.NoError(t, err)
	assert.Equal(t, "blah", first.Slug())

	second := newPost(2, "Blah")
	store.put(second)
	_, err = assigner.Assign(ctx, second, true)
	require.NoError(t, err)
	assert.Regexp(t, "^blah-"+uuidPattern+"$", second.Slug())
}

func TestAssigner_CandidatesInOrder(t *testing.T) {
	registry := slugging.NewRegistry()
	registry.Register("posts", slugging.NewConfig(slugging.WithSource(slugging.Candidates(
		slugging.Field("name"),
		slugging.Join("name", "other"),
		slugging.Join("name", "more"),
		slugging.Join("name", "other", "more"),
	))))
	store := newMemStore()
	assigner := slugging.NewAssigner(registry, store)
	ctx := context.Background()

	want := []string{
		"name",
		"name-other-text",
		"name-more-text",
		"name-other-text-more-text",
	}

	for i, expected := range want {
		rec := &testRecord{
			typ: "posts",
			id:  int64(i + 1),
			fields: map[string]any{
				"name":  "Name",
				"other": "Other Text",
				"more":  "More Text",
			},
		}
		store.put(rec)
		_, err := assigner.Assign(ctx, rec, true)
		require.NoError(t, err)
		assert.Equal(t, expected, rec.Slug())
	}

	// Every candidate taken: the first one gets a suffix.
	last := &testRecord{
		typ: "posts",
		id:  int64(5),
		fields: map[string]any{
			"name":  "Name",
			"other": "Other Text",
			"more":  "More Text",
		},
	}
	store.put(last)
	_, err := assigner.Assign(ctx, last, true)
	require.NoError(t, err)
	assert.Regexp(t, "^name-"+uuidPattern+"$", last.Slug())
}

func TestAssigner_TakenCandidateFallsThrough(t *testing.T) {
	registry := slugging.NewRegistry()
	registry.Register("posts", slugging.NewConfig(slugging.WithSource(slugging.Candidates(
		slugging.Field("name"),
		slugging.Join("name", "city"),
	))))
	store := newMemStore()
	assigner := slugging.NewAssigner(registry, store)
	ctx := context.Background()

	for i, want := range []string{"name", "name-berlin"} {
		rec := &testRecord{
			typ:    "posts",
			id:     int64(i + 1),
			fields: map[string]any{"name": "Name", "city": "Berlin"},
		}
		store.put(rec)
		_, err := assigner.Assign(ctx, rec, true)
		require.NoError(t, err)
		assert.Equal(t, want, rec.Slug())
	}

	// Exhausted candidates suffix the first candidate's text, not the
	// last one tried.
	third := &testRecord{
		typ:    "posts",
		id:     int64(3),
		fields: map[string]any{"name": "Name", "city": "Berlin"},
	}
	store.put(third)
	_, err := assigner.Assign(ctx, third, true)
	require.NoError(t, err)
	assert.Regexp(t, "^name-"+uuidPattern+"$", third.Slug())
}

func TestAssigner_JoinSkipsOnEmptyPart(t *testing.T) {
	registry := slugging.NewRegistry()
	registry.Register("posts", slugging.NewConfig(slugging.WithSource(slugging.Candidates(
		slugging.Join("first", "last"),
		slugging.Field("nickname"),
	))))
	store := newMemStore()
	assigner := slugging.NewAssigner(registry, store)
	ctx := context.Background()

	rec := &testRecord{
		typ: "posts",
		id:  int64(1),
		fields: map[string]any{
			"first":    "Jane",
			"last":     "",
			"nickname": "JJ",
		},
	}
	store.put(rec)

	_, err := assigner.Assign(ctx, rec, true)
	require.NoError(t, err)
	assert.Equal(t, "jj", rec.Slug())
}

func TestAssigner_SelfExclusionOnRegenerate(t *testing.T) {
	registry := slugging.NewRegistry()
	registry.Register("posts", slugging.NewConfig(
		slugging.WithSource(slugging.Field("title")),
		slugging.WithRegenerate(func(slugging.Record) bool { return true }),
	))
	store := newMemStore()
	assigner := slugging.NewAssigner(registry, store)
	ctx := context.Background()

	rec := newPost(1, "Stable Title")
	store.put(rec)
	_, err := assigner.Assign(ctx, rec, true)
	require.NoError(t, err)
	require.Equal(t, "stable-title", rec.Slug())

	// Recomputing against an unchanged source keeps the slug verbatim;
	// the record's own row never counts as a collision.
	got, err := assigner.Assign(ctx, rec, false)
	require.NoError(t, err)
	assert.True(t, got.Computed)
	assert.Equal(t, "stable-title", rec.Slug())
}

func TestAssigner_NoPredicateKeepsSlugOnUpdate(t *testing.T) {
	registry := slugging.NewRegistry()
	registry.Register("posts", slugging.NewConfig(slugging.WithSource(slugging.Field("title"))))
	store := newMemStore()
	assigner := slugging.NewAssigner(registry, store)
	ctx := context.Background()

	rec := newPost(1, "Original")
	store.put(rec)
	_, err := assigner.Assign(ctx, rec, true)
	require.NoError(t, err)
	require.Equal(t, "original", rec.Slug())

	rec.fields["title"] = "Changed Entirely"
	got, err := assigner.Assign(ctx, rec, false)
	require.NoError(t, err)
	assert.False(t, got.Computed)
	assert.Equal(t, "original", rec.Slug())
}

func TestAssigner_RegeneratePredicate(t *testing.T) {
	registry := slugging.NewRegistry()
	store := newMemStore()
	assigner := slugging.NewAssigner(registry, store)
	ctx := context.Background()

	regenerate := false
	registry.Register("posts", slugging.NewConfig(
		slugging.WithSource(slugging.Field("title")),
		slugging.WithRegenerate(func(slugging.Record) bool { return regenerate }),
	))

	rec := newPost(1, "Original")
	store.put(rec)
	_, err := assigner.Assign(ctx, rec, true)
	require.NoError(t, err)

	rec.fields["title"] = "Changed"

	got, err := assigner.Assign(ctx, rec, false)
	require.NoError(t, err)
	assert.False(t, got.Computed)
	assert.Equal(t, "original", rec.Slug())

	regenerate = true
	got, err = assigner.Assign(ctx, rec, false)
	require.NoError(t, err)
	assert.True(t, got.Computed)
	assert.Equal(t, "changed", rec.Slug())
}

func TestAssigner_Truncation(t *testing.T) {
	t.Cleanup(slugging.ResetDefaults)
	slugging.SetMaxLength(10)

	registry := slugging.NewRegistry()
	registry.Register("posts", slugging.NewConfig(slugging.WithSource(slugging.Field("title"))))
	store := newMemStore()
	assigner := slugging.NewAssigner(registry, store)
	ctx := context.Background()

	rec := newPost(1, "A Considerably Longer Title Than Allowed")
	store.put(rec)

	_, err := assigner.Assign(ctx, rec, true)
	require.NoError(t, err)
	assert.Equal(t, 10, utf8.RuneCountInString(rec.Slug()))
	assert.True(t, strings.HasPrefix("a-considerably-longer-title-than-allowed", rec.Slug()))
}

func TestAssigner_ReservedWordForcesSuffix(t *testing.T) {
	t.Cleanup(slugging.ResetDefaults)
	slugging.SetReservedWords("admin", "api")

	registry := slugging.NewRegistry()
	registry.Register("posts", slugging.NewConfig(slugging.WithSource(slugging.Field("title"))))
	store := newMemStore()
	assigner := slugging.NewAssigner(registry, store)
	ctx := context.Background()

	rec := newPost(1, "Admin")
	store.put(rec)

	_, err := assigner.Assign(ctx, rec, true)
	require.NoError(t, err)
	assert.Regexp(t, "^admin-"+uuidPattern+"$", rec.Slug())
}

func TestAssigner_InvalidSource(t *testing.T) {
	registry := slugging.NewRegistry()
	store := newMemStore()
	assigner := slugging.NewAssigner(registry, store)
	ctx := context.Background()

	tests := []struct {
		name   string
		source slugging.Source
		fields map[string]any
	}{
		{
			name:   "boolean field value",
			source: slugging.Field("published"),
			fields: map[string]any{"published": true},
		},
		{
			name:   "missing field",
			source: slugging.Field("nope"),
			fields: map[string]any{"title": "x"},
		},
		{
			name:   "missing field inside join",
			source: slugging.Join("title", "nope"),
			fields: map[string]any{"title": "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry.Register("posts", slugging.NewConfig(slugging.WithSource(tt.source)))
			rec := &testRecord{typ: "posts", id: int64(1), fields: tt.fields}
			store.put(rec)

			_, err := assigner.Assign(ctx, rec, true)
			assert.ErrorIs(t, err, slugging.ErrInvalidSource)
			assert.Empty(t, rec.Slug())
			assert.Empty(t, store.history)
		})
	}
}

func TestAssigner_InvalidFieldBehindWinnerIsNeverRead(t *testing.T) {
	registry := slugging.NewRegistry()
	registry.Register("posts", slugging.NewConfig(slugging.WithSource(slugging.Candidates(
		slugging.Field("title"),
		slugging.Field("published"),
	))))
	store := newMemStore()
	assigner := slugging.NewAssigner(registry, store)
	ctx := context.Background()

	rec := &testRecord{
		typ:    "posts",
		id:     int64(1),
		fields: map[string]any{"title": "Fine", "published": true},
	}
	store.put(rec)

	_, err := assigner.Assign(ctx, rec, true)
	require.NoError(t, err)
	assert.Equal(t, "fine", rec.Slug())
}

func TestAssigner_NotConfigured(t *testing.T) {
	assigner := slugging.NewAssigner(slugging.NewRegistry(), newMemStore())

	_, err := assigner.Assign(context.Background(), newPost(1, "x"), true)
	assert.ErrorIs(t, err, slugging.ErrNotConfigured)
}

func TestAssigner_HistoryRecordsEverySlug(t *testing.T) {
	registry := slugging.NewRegistry()
	registry.Register("posts", slugging.NewConfig(
		slugging.WithSource(slugging.Field("title")),
		slugging.WithHistory(),
		slugging.WithRegenerate(func(slugging.Record) bool { return true }),
	))
	store := newMemStore()
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	assigner := slugging.NewAssigner(registry, store, slugging.WithClock(func() time.Time { return fixed }))
	ctx := context.Background()

	rec := newPost(7, "Blah")
	store.put(rec)
	_, err := assigner.Assign(ctx, rec, true)
	require.NoError(t, err)

	rec.fields["title"] = "New blah"
	_, err = assigner.Assign(ctx, rec, false)
	require.NoError(t, err)
	require.Equal(t, "new-blah", rec.Slug())

	assert.Equal(t, []string{"blah", "new-blah"}, store.slugsFor("posts", "7"))
	for _, e := range store.history {
		assert.Equal(t, "posts", e.RecordType)
		assert.Equal(t, fixed, e.CreatedAt)
		assert.NotEmpty(t, e.ID)
	}
}

func TestAssigner_HistoricalSlugBlocksOtherOwners(t *testing.T) {
	registry := slugging.NewRegistry()
	registry.Register("posts", slugging.NewConfig(
		slugging.WithSource(slugging.Field("title")),
		slugging.WithHistory(),
		slugging.WithRegenerate(func(slugging.Record) bool { return true }),
	))
	store := newMemStore()
	assigner := slugging.NewAssigner(registry, store)
	ctx := context.Background()

	first := newPost(1, "Blah")
	store.put(first)
	_, err := assigner.Assign(ctx, first, true)
	require.NoError(t, err)

	first.fields["title"] = "Renamed"
	_, err = assigner.Assign(ctx, first, false)
	require.NoError(t, err)
	require.Equal(t, "renamed", first.Slug())

	second := newPost(2, "Blah")
	store.put(second)
	_, err = assigner.Assign(ctx, second, true)
	require.NoError(t, err)
	assert.Regexp(t, "^blah-"+uuidPattern+"$", second.Slug())
}

func TestAssigner_OwnHistoryNeverBlocks(t *testing.T) {
	registry := slugging.NewRegistry()
	registry.Register("posts", slugging.NewConfig(
		slugging.WithSource(slugging.Field("title")),
		slugging.WithHistory(),
		slugging.WithRegenerate(func(slugging.Record) bool { return true }),
	))
	store := newMemStore()
	assigner := slugging.NewAssigner(registry, store)
	ctx := context.Background()

	rec := newPost(1, "Blah")
	store.put(rec)
	_, err := assigner.Assign(ctx, rec, true)
	require.NoError(t, err)

	rec.fields["title"] = "Other"
	_, err = assigner.Assign(ctx, rec, false)
	require.NoError(t, err)

	rec.fields["title"] = "Blah"
	_, err = assigner.Assign(ctx, rec, false)
	require.NoError(t, err)
	assert.Equal(t, "blah", rec.Slug())
}

func TestAssigner_HistorySkippedWithoutPrimaryKey(t *testing.T) {
	registry := slugging.NewRegistry()
	registry.Register("posts", slugging.NewConfig(
		slugging.WithSource(slugging.Field("title")),
		slugging.WithHistory(),
	))
	store := newMemStore()
	assigner := slugging.NewAssigner(registry, store)
	ctx := context.Background()

	tests := []struct {
		name string
		id   any
	}{
		{name: "nil key", id: nil},
		{name: "zero int64", id: int64(0)},
		{name: "empty string key", id: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &testRecord{
				typ:    "posts",
				id:     tt.id,
				fields: map[string]any{"title": "Not Inserted Yet " + tt.name},
			}

			got, err := assigner.Assign(ctx, rec, true)
			require.NoError(t, err)
			assert.True(t, got.Computed)
			assert.NotEmpty(t, rec.Slug())
			assert.Empty(t, store.history, "no owner id to record the entry under")
		})
	}
}

func TestAssigner_HistoryWithPlainStoreIsSkipped(t *testing.T) {
	registry := slugging.NewRegistry()
	registry.Register("posts", slugging.NewConfig(
		slugging.WithSource(slugging.Field("title")),
		slugging.WithHistory(),
	))
	store := newMemStore()
	assigner := slugging.NewAssigner(registry, plainStore{inner: store})
	ctx := context.Background()

	rec := newPost(1, "Blah")
	store.put(rec)

	_, err := assigner.Assign(ctx, rec, true)
	require.NoError(t, err)
	assert.Equal(t, "blah", rec.Slug())
	assert.Empty(t, store.history)
}
