// Package textnorm trims and validates raw text before it reaches a parser or
// a storage key.
package textnorm

import (
	"errors"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrEmptyInput is returned when the input is empty or whitespace-only.
var ErrEmptyInput = errors.New("input cannot be empty or only whitespace")

// Normalize returns raw with surrounding whitespace removed.
func Normalize(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrEmptyInput
	}
	return trimmed, nil
}

// NormalizeKey normalizes raw for case-insensitive lookups: trimmed,
// NFC-composed and lowercased.
func NormalizeKey(raw string) (string, error) {
	trimmed, err := Normalize(raw)
	if err != nil {
		return "", err
	}
	return strings.ToLower(norm.NFC.String(trimmed)), nil
}

// IsBlank reports whether s has no non-whitespace characters.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
