// Package textproc provides text normalization and closed-vocabulary skill extraction.
package textproc

import (
	"regexp"
	"strings"
)

var (
	reNonAlnum = regexp.MustCompile(`[^a-z0-9\s]+`)
	reSpaces   = regexp.MustCompile(`\s+`)
)

// Normalize lowercases text, replaces everything outside [a-z0-9\s] with a
// space, and collapses whitespace. Pure function.
func Normalize(text string) string {
	s := strings.ToLower(text)
	s = reNonAlnum.ReplaceAllString(s, " ")
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Tokens returns the whitespace-separated tokens of the normalized text.
func Tokens(text string) []string {
	n := Normalize(text)
	if n == "" {
		return nil
	}
	return strings.Split(n, " ")
}
