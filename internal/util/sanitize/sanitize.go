// Package sanitize cleans user-supplied text before it is interpolated into
// rendered output.
//
// Song titles, artist names and lyrics come from uploads and are otherwise
// displayed verbatim; this package strips terminal control sequences and
// invisible Unicode characters so a crafted title cannot corrupt the display.
package sanitize

import (
	"strings"
	"unicode"
)

// invisible characters removed from all fields
var invisibleChars = []string{
	"\u200B", // Zero-width space
	"\u200C", // Zero-width non-joiner
	"\u200D", // Zero-width joiner
	"\uFEFF", // Zero-width no-break space (BOM)
	"\u00AD", // Soft hyphen
	"\u2060", // Word joiner
	"\u180E", // Mongolian vowel separator
}

// Field sanitizes a single-line display field: control characters are dropped
// (including ESC, which starts ANSI sequences), invisible characters removed,
// and surrounding whitespace trimmed.
func Field(s string) string {
	if s == "" {
		return s
	}

	s = removeInvisibleChars(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsControl(r) {
			continue
		}
		b.WriteRune(r)
	}

	return strings.TrimSpace(b.String())
}

// Block sanitizes multi-line text such as lyrics: newlines and tabs survive,
// other control characters are dropped, and line endings are normalized to LF.
func Block(s string) string {
	if s == "" {
		return s
	}

	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = removeInvisibleChars(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r != '\n' && r != '\t' && unicode.IsControl(r) {
			continue
		}
		b.WriteRune(r)
	}

	return strings.TrimSpace(b.String())
}

func removeInvisibleChars(s string) string {
	for _, char := range invisibleChars {
		s = strings.ReplaceAll(s, char, "")
	}
	return s
}
