package internal

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// prettyKey turns a key segment into a sentence: "fooBar", "foo_bar" and
// "foo-bar" all become "Foo bar".
func prettyKey(segment string) string {
	words := splitWords(segment)
	if len(words) == 0 {
		return ""
	}
	// Casers keep state and must not be shared between goroutines.
	lower, title := cases.Lower(language.Und), cases.Title(language.Und)
	for i, w := range words {
		words[i] = lower.String(w)
	}
	words[0] = title.String(words[0])
	return strings.Join(words, " ")
}

// splitWords splits on any non alphanumeric rune and on case boundaries,
// keeping acronyms together ("parseHTMLBody" -> parse, HTML, Body).
func splitWords(s string) []string {
	runes := []rune(s)
	var (
		words []string
		start = -1
	)

	flush := func(end int) {
		if start >= 0 && end > start {
			words = append(words, string(runes[start:end]))
		}
		start = -1
	}

	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush(i)
			continue
		}
		if start < 0 {
			start = i
			continue
		}
		prev := runes[i-1]
		switch {
		case unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)):
			flush(i)
			start = i
		case unicode.IsUpper(r) && unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
			flush(i)
			start = i
		}
	}
	flush(len(runes))

	return words
}
