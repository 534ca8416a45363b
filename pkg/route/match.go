package route

import "strings"

// Kind tells which matching step produced a Match.
type Kind uint8

const (
	KindExact    Kind = iota + 1 // whole location equals a table key
	KindPattern                  // ordered placeholder scan
	KindFallback                 // synthesized "/resource/:id/verb" shape
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindExact:
		return "exact"
	case KindPattern:
		return "pattern"
	case KindFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Match is the result of matching a single location.
// Pattern is the table key selected, or the synthesized fallback shape,
// which may not be registered.
type Match struct {
	Params  Params
	Pattern string
	Kind    Kind
}

// Resolution is a Match together with the entry it resolved to.
// Defaulted reports that Match.Pattern is not registered and the table's
// default entry was substituted.
type Resolution[H any] struct {
	Entry     Entry[H]
	Match     Match
	Defaulted bool
}

// Normalize turns a raw location into a path. A leading "#" is dropped and
// an empty location becomes "/".
func Normalize(location string) string {
	location = strings.TrimPrefix(location, "#")
	if location == "" {
		return "/"
	}
	return location
}

// Match maps location to a table key and extracts params.
// It never fails; see Resolve for default substitution.
func (t *Table[H]) Match(location string) Match {
	original := Normalize(location)
	lower := strings.ToLower(original)

	originalParts := strings.Split(original, "/")
	lowerParts := strings.Split(lower, "/")
	slots := fixedSlots(lowerParts, originalParts)

	if _, ok := t.index[lower]; ok {
		return Match{Pattern: lower, Params: slots, Kind: KindExact}
	}

	for i, segs := range t.segments {
		if len(segs) != len(lowerParts) {
			continue
		}
		if params, ok := bind(segs, lowerParts, originalParts, slots); ok {
			return Match{Pattern: t.entries[i].Pattern, Params: params, Kind: KindPattern}
		}
	}

	return Match{Pattern: fallbackPattern(slots), Params: slots, Kind: KindFallback}
}

// Resolve matches location and substitutes the default entry when the
// matched key is not registered.
func (t *Table[H]) Resolve(location string) Resolution[H] {
	m := t.Match(location)
	if i, ok := t.index[m.Pattern]; ok {
		return Resolution[H]{Entry: t.entries[i], Match: m}
	}
	return Resolution[H]{Entry: t.entries[t.def], Match: m, Defaulted: true}
}

// fixedSlots fills resource, id and verb from positions 1, 2 and 3.
// Positions absent from the location leave their slot unset.
func fixedSlots(lowerParts, originalParts []string) Params {
	p := make(Params, 4)
	if len(lowerParts) > 1 {
		p[ParamResource] = lowerParts[1]
	}
	if len(originalParts) > 2 {
		p[ParamID] = originalParts[2]
	}
	if len(lowerParts) > 3 {
		p[ParamVerb] = lowerParts[3]
	}
	return p
}

// bind compares a pattern with a candidate of equal length. On success it
// returns slots overlaid with the placeholder bindings; slots is not modified.
func bind(pattern, lowerParts, originalParts []string, slots Params) (Params, bool) {
	var named [][2]string
	for i, seg := range pattern {
		if name, ok := strings.CutPrefix(seg, placeholderPrefix); ok {
			named = append(named, [2]string{name, originalParts[i]})
			continue
		}
		if seg != lowerParts[i] {
			return nil, false
		}
	}

	params := slots.Clone()
	for _, kv := range named {
		params[kv[0]] = kv[1]
	}
	return params, true
}

// fallbackPattern builds the legacy "/resource/:id/verb" shape. Empty slots
// are treated as absent, so "/" + "" yields "/" and a missing resource with a
// present id yields "//:id".
func fallbackPattern(slots Params) string {
	pattern := "/"
	if r := slots[ParamResource]; r != "" {
		pattern = "/" + r
	}
	if slots[ParamID] != "" {
		pattern += "/:id"
	}
	if v := slots[ParamVerb]; v != "" {
		pattern += "/" + v
	}
	return pattern
}
