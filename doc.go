// Package slugging assigns human-readable, URL-safe, unique slugs to
// records in a backing store and resolves identifiers (primary keys,
// current slugs, or historical slugs) back to the owning record.
//
// The engine is an in-process library: it never persists records itself.
// The host save lifecycle calls the [Assigner] before a write commits,
// and lookups go through the [Resolver]. Storage is abstracted behind
// the [Store] and [HistoryStore] interfaces, with ready-made backends in
// the postgres and sqlite subpackages.
//
// # Quick Start
//
// Declare a configuration per record type, then wire an assigner and a
// resolver over your store:
//
//	registry := slugging.NewRegistry()
//	registry.Register("posts", slugging.NewConfig(
//	    slugging.WithSource(slugging.Field("title")),
//	    slugging.WithHistory(),
//	))
//
//	assigner := slugging.NewAssigner(registry, store)
//	resolver := slugging.NewResolver(registry, store)
//
//	// Inside the transaction that saves the record:
//	if _, err := assigner.Assign(ctx, post, true); err != nil {
//	    return err
//	}
//
//	// On lookup:
//	rec, err := resolver.ResolveStrict(ctx, "posts", "tra-la-la")
//
// # Sources
//
// Slug text is derived from one or more record fields, tried in order
// until one yields usable text:
//
//	slugging.Field("title")
//	slugging.Join("title", "subtitle")
//	slugging.Candidates(
//	    slugging.Field("name"),
//	    slugging.Join("name", "city"),
//	)
//
// A joined candidate is skipped entirely when any of its fields is empty.
// A field with no text form at all (a boolean, or a struct without a
// String method) aborts the whole assignment with [ErrInvalidSource]. A
// record whose every candidate comes up empty gets a generated identifier
// in canonical UUID form.
//
// # Uniqueness and History
//
// A candidate is taken when another live record of the same type holds
// it, when it appears in the reserved-words set, or, with history on,
// when it ever belonged to a different record. A taken candidate falls
// through to the next one; when every candidate is taken, a random
// identifier is appended to the first candidate's text. A record's own
// current and past slugs never block it, so regenerating back to a
// previous value succeeds.
//
// With [WithHistory], every assigned slug is appended to an immutable
// log, and the resolver follows stale slugs to the record that once held
// them.
//
// # Process-wide configuration
//
// The slugify function, reserved-words set, and maximum slug length are
// process-wide and overridable; see [SetSlugify], [SetReservedWords], and
// [SetMaxLength]. Set them during startup or test setup; they are read
// once per computation and are not synchronized.
//
// # Concurrency
//
// Availability checks and the final write are expected to share one store
// transaction. Across concurrent writers the unique constraint on the
// slug column is the final authority: the engine surfaces constraint
// violations unmodified, and callers should treat them as retryable.
package slugging
