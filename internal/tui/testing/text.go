// Package testing provides test utilities for the TUI and the rendered reports.
package testing

import (
	"regexp"
	"strings"
)

var (
	ansiRegex       = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
)

// StripANSI removes all ANSI escape codes from a string.
func StripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// NormalizeWhitespace collapses whitespace runs to single spaces and trims the
// result, so wrapped text can be matched as a phrase.
func NormalizeWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// ContainsInOrder checks if the output contains all specified strings in order.
func ContainsInOrder(output string, expected ...string) bool {
	offset := 0
	for _, exp := range expected {
		index := strings.Index(output[offset:], exp)
		if index == -1 {
			return false
		}
		offset += index + len(exp)
	}
	return true
}

// PlainView strips styling and collapses whitespace.
func PlainView(view string) string {
	return NormalizeWhitespace(StripANSI(view))
}
