package app

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// sanitize drops control characters and invalid bytes. Catalog text comes
// from file tags and can contain anything.
func sanitize(s string) string {
	if utf8.ValidString(s) && !strings.ContainsFunc(s, unsafeRune) {
		return s
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t', r == '\u00a0':
			return ' '
		case unsafeRune(r):
			return -1
		}
		return r
	}, strings.ToValidUTF8(s, ""))
}

func unsafeRune(r rune) bool {
	return r == utf8.RuneError || r == '\u00a0' || unicode.IsControl(r)
}

// fit sanitizes s and truncates it to width cells. A width of zero or less
// means unknown and leaves the text whole.
func fit(s string, width int) string {
	s = sanitize(s)
	if width <= 0 {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
