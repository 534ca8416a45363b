package sanitizer

import (
	"html"
	"strings"
	"sync"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

var strict = sync.OnceValue(bluemonday.StrictPolicy)

// Text strips all markup, unescapes entities and collapses whitespace.
// Use for names, documents and other free-text form values.
func Text(s string) string {
	clean := html.UnescapeString(strict().Sanitize(s))
	return strings.Join(strings.Fields(clean), " ")
}

// Email trims and lowercases an address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Digits keeps only ASCII digits. Card numbers and CVVs go through it.
func Digits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// Upper is Text uppercased, for airport codes and holder names.
func Upper(s string) string {
	return strings.ToUpper(Text(s))
}

// Alnum keeps letters and digits, for document numbers and booking codes.
func Alnum(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}
