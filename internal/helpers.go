package internal

import (
	"fmt"
	"strconv"
	"strings"
)

// Scalar is a type Param, Query and Form can convert to.
type Scalar interface {
	~string | ~int | ~int64 | ~float64 | ~bool
}

// ContextValue returns the value under key as T, or the zero T.
func ContextValue[T any](c Context, key any) T {
	if v, ok := c.Get(key).(T); ok {
		return v
	}
	var zero T
	return zero
}

// Param converts a chi URL parameter. Unparsable values yield the zero T.
func Param[T Scalar](c Context, name string) T {
	v, _ := convert[T](c.Param(name))
	return v
}

// Query converts a query parameter, falling back to def when it is empty
// or unparsable.
func Query[T Scalar](c Context, name string, def T) T {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	v, ok := convert[T](raw)
	if !ok {
		return def
	}
	return v
}

// Form converts a form value. Unparsable values yield the zero T.
func Form[T Scalar](c Context, name string) T {
	v, _ := convert[T](strings.TrimSpace(c.Form(name)))
	return v
}

// FormInts parses every value of a repeated form field as an int.
func FormInts(c Context, name string) ([]int, error) {
	raw := c.FormValues(name)
	out := make([]int, 0, len(raw))
	for _, s := range raw {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", name, err)
		}
		out = append(out, n)
	}
	return out, nil
}

func convert[T Scalar](raw string) (T, bool) {
	var zero T
	var (
		v   any
		err error
	)
	switch any(zero).(type) {
	case string:
		v = raw
	case int:
		v, err = strconv.Atoi(raw)
	case int64:
		v, err = strconv.ParseInt(raw, 10, 64)
	case float64:
		v, err = strconv.ParseFloat(raw, 64)
	case bool:
		v, err = strconv.ParseBool(raw)
	default:
		return zero, false
	}
	if err != nil {
		return zero, false
	}
	return v.(T), true
}
