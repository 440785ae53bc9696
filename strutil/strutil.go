// Package strutil holds nil-tolerant string comparisons.
package strutil

import "strings"

// Equal reports whether a and b point to equal strings. Two nil pointers are
// equal; a nil and a non-nil pointer are not.
func Equal(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// StartsWith reports whether *s begins with *prefix and returns the remainder
// after the prefix. A nil s or prefix never matches.
func StartsWith(s, prefix *string) (rest string, ok bool) {
	if s == nil || prefix == nil {
		return "", false
	}
	return strings.CutPrefix(*s, *prefix)
}

// HasPrefix is StartsWith for plain strings.
func HasPrefix(s, prefix string) bool {
	return strings.HasPrefix(s, prefix)
}

// Ptr returns a pointer to s.
func Ptr(s string) *string {
	return &s
}
