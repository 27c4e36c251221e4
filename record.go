package slugging

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// Record is a persisted entity the engine can slug. The engine only reads
// arbitrary fields as slug sources and reads/writes the slug field; how
// the record is stored is the host's concern.
type Record interface {
	// RecordType keys the record into the configuration registry and the
	// store, typically the table name.
	RecordType() string

	// PrimaryKey returns the record's key. Supported kinds are integers
	// (int, int64), UUID text, and opaque strings. May be the zero value
	// for records not yet inserted, in which case history cannot be
	// recorded for them.
	PrimaryKey() any

	Slug() string
	SetSlug(slug string)

	// Field returns the named source field's current in-memory value,
	// pending changes included. ok is false when the record exposes no
	// such field.
	Field(name string) (value any, ok bool)
}

// KeyKind describes the primary key type of a record store, which decides
// how the resolver disambiguates identifiers.
type KeyKind int

const (
	// KeyInt is a numeric primary key. All-digit identifiers are tried
	// as keys before slugs.
	KeyInt KeyKind = iota
	// KeyString is an opaque text primary key. Identifiers are always
	// tried as keys before slugs.
	KeyString
	// KeyUUID is a UUID-shaped text primary key. Only syntactically
	// valid UUIDs are tried as keys.
	KeyUUID
)

// HistoryEntry records one slug a record has held. Entries are append
// only; the engine never updates or deletes them.
type HistoryEntry struct {
	CreatedAt  time.Time
	ID         string
	RecordType string
	OwnerID    string
	Slug       string
}

// fieldText classifies a source accessor result. Strings pass through,
// nil maps to empty text, Stringers and numbers are rendered, and
// everything else (booleans included) is invalid.
func fieldText(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case fmt.Stringer:
		return t.String(), nil
	case int:
		return strconv.Itoa(t), nil
	case int8, int16, int32:
		return fmt.Sprintf("%d", t), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", t), nil
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	default:
		return "", errors.Join(ErrInvalidSource, fmt.Errorf("value of type %T", v))
	}
}

// keyText renders a primary key for history storage and cache keys.
func keyText(pk any) string {
	switch t := pk.(type) {
	case nil:
		return ""
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprintf("%v", pk)
	}
}

// hasKey reports whether pk can own a history entry. A zero value means
// the record has not been inserted yet.
func hasKey(pk any) bool {
	switch t := pk.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case int:
		return t != 0
	case int64:
		return t != 0
	default:
		return true
	}
}

// keyFromText converts a stored key string back to the store's key type.
func keyFromText(s string, kind KeyKind) (any, error) {
	if kind != KeyInt {
		return s, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, errors.Join(ErrNotFound, err)
	}
	return n, nil
}
