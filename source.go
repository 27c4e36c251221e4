package slugging

import (
	"errors"
	"fmt"
	"iter"
	"strings"
)

type sourceKind int

const (
	sourceNone sourceKind = iota
	sourceField
	sourceJoin
	sourceCandidates
)

// Source describes where candidate slug text comes from. Build one with
// Field, Join, or Candidates; the zero value is "no source" and always
// falls through to a generated identifier.
type Source struct {
	accessor   string
	accessors  []string
	candidates []Source
	kind       sourceKind
}

// Field derives slug text from a single record field.
func Field(name string) Source {
	return Source{kind: sourceField, accessor: name}
}

// Join derives slug text by joining several record fields with a single
// space. The candidate is only produced when every field yields non-empty
// text; otherwise the whole candidate is skipped.
func Join(names ...string) Source {
	return Source{kind: sourceJoin, accessors: names}
}

// Candidates tries each source in order; the first one yielding usable
// text wins. Nested Candidates are flattened in order.
func Candidates(sources ...Source) Source {
	return Source{kind: sourceCandidates, candidates: sources}
}

// candidateSeq lazily produces candidate strings from the record. Later
// accessors are never invoked once the consumer stops, so an invalid
// field behind a usable candidate is never touched. The sequence is
// restartable: ranging again re-reads the record.
func (s Source) candidateSeq(rec Record) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		s.emit(rec, yield)
	}
}

func (s Source) emit(rec Record, yield func(string, error) bool) bool {
	switch s.kind {
	case sourceNone:
		return true

	case sourceField:
		text, err := accessorText(rec, s.accessor)
		return yield(text, err)

	case sourceJoin:
		parts := make([]string, 0, len(s.accessors))
		for _, name := range s.accessors {
			text, err := accessorText(rec, name)
			if err != nil {
				return yield("", err)
			}
			if text == "" {
				// One empty part skips the whole joined candidate.
				return true
			}
			parts = append(parts, text)
		}
		return yield(strings.Join(parts, " "), nil)

	case sourceCandidates:
		for _, c := range s.candidates {
			if !c.emit(rec, yield) {
				return false
			}
		}
		return true

	default:
		return true
	}
}

func accessorText(rec Record, name string) (string, error) {
	v, ok := rec.Field(name)
	if !ok {
		return "", errors.Join(ErrInvalidSource, fmt.Errorf("record type %q has no field %q", rec.RecordType(), name))
	}
	return fieldText(v)
}
