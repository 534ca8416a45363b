package route

import (
	"errors"
	"maps"
	"strconv"
)

// Conventional param slots populated from fixed location positions.
const (
	ParamResource = "resource" // segment 1, lowercased
	ParamID       = "id"       // segment 2, case preserved
	ParamVerb     = "verb"     // segment 3, lowercased
)

// Params maps placeholder names to the values extracted from a location.
type Params map[string]string

// Get returns the value for name or an empty string.
func (p Params) Get(name string) string {
	return p[name]
}

// Lookup returns the value for name and whether it was present.
func (p Params) Lookup(name string) (string, bool) {
	v, ok := p[name]
	return v, ok
}

// First returns the first non-empty value among names.
func (p Params) First(names ...string) string {
	for _, name := range names {
		if v := p[name]; v != "" {
			return v
		}
	}
	return ""
}

// Int parses the named value as a base 10 integer.
func (p Params) Int(name string) (int, error) {
	v, ok := p[name]
	if !ok || v == "" {
		return 0, errors.Join(ErrMissingParam, errors.New(name))
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.Join(ErrInvalidParam, err)
	}
	return n, nil
}

// Clone returns a copy that can be modified independently.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	maps.Copy(out, p)
	return out
}
