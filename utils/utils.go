package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MarkdownSpecialChars lists every character Telegram MarkdownV2 treats as markup.
const MarkdownSpecialChars = "_*[]()~`>#+-=|{}.!"

func AssertInvariant(condition bool, message string) {
	if !condition {
		panic("invariant violated - " + message)
	}
}

// EscapeMarkdown prefixes every markup character in text with a backslash.
// All other characters are left untouched.
func EscapeMarkdown(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if strings.ContainsRune(MarkdownSpecialChars, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Capitalize upper-cases the first character of s and lower-cases the rest,
// so "asset_TAG" becomes "Asset_tag".
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	first, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(first)) + strings.ToLower(s[size:])
}
