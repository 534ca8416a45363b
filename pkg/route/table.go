package route

import (
	"errors"
	"slices"
	"strings"
)

const placeholderPrefix = ":"

// Entry is a single route table row.
type Entry[H any] struct {
	Handler H      // opaque reference to the page entry point
	Pattern string // e.g. "/flight/:id"
	Title   string // display title passed through to the handler
	Private bool   // requires authentication
}

// Table is an immutable, insertion-ordered set of route entries.
// It is safe for concurrent use once built.
type Table[H any] struct {
	index    map[string]int
	entries  []Entry[H]
	segments [][]string
	def      int
}

// NewTable builds a table from entries in the given order.
// defaultPattern names the entry used when a location resolves to an
// unregistered key; it must be one of the entries.
func NewTable[H any](defaultPattern string, entries ...Entry[H]) (*Table[H], error) {
	t := &Table[H]{
		index:    make(map[string]int, len(entries)),
		entries:  make([]Entry[H], 0, len(entries)),
		segments: make([][]string, 0, len(entries)),
	}

	for _, e := range entries {
		if err := validatePattern(e.Pattern); err != nil {
			return nil, err
		}
		if _, exists := t.index[e.Pattern]; exists {
			return nil, errors.Join(ErrDuplicatePattern, errors.New(e.Pattern))
		}
		t.index[e.Pattern] = len(t.entries)
		t.entries = append(t.entries, e)
		t.segments = append(t.segments, strings.Split(e.Pattern, "/"))
	}

	def, ok := t.index[defaultPattern]
	if !ok {
		return nil, errors.Join(ErrUnknownPattern, errors.New("default: "+defaultPattern))
	}
	t.def = def

	return t, nil
}

// MustTable is like NewTable but panics on error.
// Intended for package-level route tables.
func MustTable[H any](defaultPattern string, entries ...Entry[H]) *Table[H] {
	t, err := NewTable(defaultPattern, entries...)
	if err != nil {
		panic(err)
	}
	return t
}

// Lookup returns the entry registered under pattern.
func (t *Table[H]) Lookup(pattern string) (Entry[H], bool) {
	i, ok := t.index[pattern]
	if !ok {
		var zero Entry[H]
		return zero, false
	}
	return t.entries[i], true
}

// Default returns the entry used for unregistered keys.
func (t *Table[H]) Default() Entry[H] {
	return t.entries[t.def]
}

// Entries returns a copy of the entries in registration order.
func (t *Table[H]) Entries() []Entry[H] {
	return slices.Clone(t.entries)
}

// Len returns the number of registered entries.
func (t *Table[H]) Len() int {
	return len(t.entries)
}

func validatePattern(pattern string) error {
	if pattern == "" || !strings.HasPrefix(pattern, "/") {
		return errors.Join(ErrInvalidPattern, errors.New("must start with /: "+pattern))
	}
	if pattern != strings.ToLower(pattern) {
		return errors.Join(ErrInvalidPattern, errors.New("must be lowercase: "+pattern))
	}
	for seg := range strings.SplitSeq(pattern, "/") {
		if seg == placeholderPrefix {
			return errors.Join(ErrInvalidPattern, errors.New("unnamed placeholder: "+pattern))
		}
	}
	return nil
}
