package usecase

import (
	"strings"
	"unicode"

	"github.com/spf13/cast"
)

// Normalize lowercases text and strips every character that is not an ASCII
// letter or whitespace. Whitespace runs are left untouched.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	lowered := strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		if (r >= 'a' && r <= 'z') || isSpace(r) {
			b.WriteRune(r)
		}
	}

	return b.String()
}

// isSpace reports whitespace as regular expressions' \s class does for
// Unicode text: unicode.IsSpace plus the ASCII separators U+001C to U+001F.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= '\x1c' && r <= '\x1f')
}

// NormalizeValue coerces an arbitrary value to text and normalizes it.
// Numbers keep only their letters (so "12.5" becomes ""), nil becomes "".
func NormalizeValue(v interface{}) string {
	return Normalize(cast.ToString(v))
}

// tokenize splits normalized text into vocabulary terms.
// Terms are whitespace-separated runs of at least two characters.
func tokenize(normalized string) []string {
	fields := strings.FieldsFunc(normalized, isSpace)

	tokens := fields[:0]
	for _, f := range fields {
		if len(f) < 2 {
			continue
		}
		tokens = append(tokens, f)
	}

	return tokens
}
