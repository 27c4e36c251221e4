package slugify

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransform strips combining marks after NFD decomposition, which
// turns "é" into "e", "ü" into "u", and so on.
var foldTransform = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// asciiFold maps Latin letters that do not decompose into a base letter
// plus combining marks, so the NFD pass alone cannot handle them.
var asciiFold = map[rune]string{
	'ß': "s", 'ẞ': "s",
	'æ': "a", 'Æ': "a",
	'œ': "o", 'Œ': "o",
	'ø': "o", 'Ø': "o",
	'ł': "l", 'Ł': "l",
	'đ': "d", 'Đ': "d",
	'ð': "d", 'Ð': "d",
}

// Make converts text into a URL-safe token.
// It is deterministic and never fails; unusable input produces "".
func Make(text string, opts ...Option) string {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	for from, to := range o.replacements {
		text = strings.ReplaceAll(text, from, to)
	}

	if o.stripChars != "" {
		text = strings.Map(func(r rune) rune {
			if strings.ContainsRune(o.stripChars, r) {
				return -1
			}
			return r
		}, text)
	}

	text = transliterate(text)

	if o.lowercase {
		text = strings.ToLower(text)
	}

	var b strings.Builder
	b.Grow(len(text))
	pendingSep := false
	for _, r := range text {
		if isAlphanumeric(r) {
			if pendingSep && b.Len() > 0 {
				b.WriteString(o.separator)
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	result := b.String()

	if o.maxLength > 0 {
		result = cutRunes(result, o.maxLength)
		if o.separator != "" {
			result = strings.TrimRight(result, o.separator)
		}
	}

	return result
}

// transliterate folds the input to ASCII where a mapping exists. Runes
// with no mapping stay non-ASCII and become separators downstream.
func transliterate(s string) string {
	var mapped strings.Builder
	mapped.Grow(len(s))
	for _, r := range s {
		if repl, ok := asciiFold[r]; ok {
			mapped.WriteString(repl)
			continue
		}
		mapped.WriteRune(r)
	}

	folded, _, err := transform.String(foldTransform, mapped.String())
	if err != nil {
		return mapped.String()
	}
	return folded
}

func isAlphanumeric(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func cutRunes(s string, n int) string {
	if n <= 0 {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
