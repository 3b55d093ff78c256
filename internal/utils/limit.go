// Package utils holds small parsing helpers for HTTP query parameters.
package utils

import (
	"strconv"
	"strings"
)

// AtoiDefault parses s as a base-10 int, returning def when s is empty or
// malformed. Surrounding whitespace is not trimmed.
func AtoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

// Limit parses a result-cap query value. Missing, malformed or non-positive
// values yield def; anything above max is clamped. A max of zero means no
// upper bound.
func Limit(s string, def, max int) int {
	n := AtoiDefault(strings.TrimSpace(s), def)
	if n < 1 {
		n = def
	}
	if max > 0 && n > max {
		n = max
	}
	return n
}
