package slugging

import (
	"maps"

	"github.com/jnylen/slugging/pkg/slugify"
)

// DefaultMaxLength is the built-in slug length limit.
const DefaultMaxLength = 50

// Process-wide overrides. These are read once at the start of each slug
// computation and are intended to be set during process or test-fixture
// setup; no internal locking is provided, so do not mutate them while
// assignments are running.
var (
	slugifyFn     = func(text string) string { return slugify.Make(text) }
	reservedWords = map[string]struct{}{}
	maxLength     = DefaultMaxLength
)

// SetSlugify replaces the process-wide slugify function. It takes effect
// on the next slug computation. A nil fn restores the default.
func SetSlugify(fn func(string) string) {
	if fn == nil {
		fn = func(text string) string { return slugify.Make(text) }
	}
	slugifyFn = fn
}

// SetReservedWords replaces the process-wide set of slugs that are never
// assigned verbatim. Reserved candidates always receive a disambiguation
// suffix.
func SetReservedWords(words ...string) {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	reservedWords = set
}

// ReservedWords returns a copy of the current reserved-word set.
func ReservedWords() []string {
	out := make([]string, 0, len(reservedWords))
	for w := range reservedWords {
		out = append(out, w)
	}
	return out
}

// SetMaxLength sets the process-wide slug length limit. Values below one
// restore the default.
func SetMaxLength(n int) {
	if n < 1 {
		n = DefaultMaxLength
	}
	maxLength = n
}

// MaxLength returns the current process-wide slug length limit.
func MaxLength() int {
	return maxLength
}

// ResetDefaults restores the built-in slugify function, an empty reserved
// set, and the default length limit. Intended for test teardown.
func ResetDefaults() {
	SetSlugify(nil)
	reservedWords = map[string]struct{}{}
	maxLength = DefaultMaxLength
}

// settings is the snapshot of the process-wide configuration taken at the
// start of a computation, so overrides changed mid-flight cannot change
// behavior within one assignment.
type settings struct {
	slugify   func(string) string
	reserved  map[string]struct{}
	maxLength int
}

func currentSettings() settings {
	return settings{
		slugify:   slugifyFn,
		reserved:  maps.Clone(reservedWords),
		maxLength: maxLength,
	}
}
