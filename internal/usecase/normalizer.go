package usecase

import (
	"regexp"
	"strings"
)

// Package-level compiled regex patterns for performance
var (
	nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9\s]`)
	multipleSpacesRegex  = regexp.MustCompile(`\s+`)
)

// Normalize canonicalizes a free-text name into a matching/filtering key:
// lowercase, strip everything outside [a-z0-9 ], collapse whitespace runs,
// trim. Idempotent and total; empty input maps to "" and callers treat ""
// as no value.
func Normalize(raw string) string {
	s := strings.ToLower(raw)
	s = nonAlphanumericRegex.ReplaceAllString(s, "")
	s = multipleSpacesRegex.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
