// Package slug converts video titles into URL-safe slugs and the
// search tokens derived from them. Both the indexing and the query
// paths must use the same rules so that a query for a title always
// matches the words that title was indexed under.
package slug

import (
	"strings"
)

const separator = '-'

// asciiFold maps common accented runes to their ASCII equivalents.
// Anything not covered here and not alphanumeric is treated as a separator.
var asciiFold = map[rune]string{
	'à': "a", 'á': "a", 'â': "a", 'ã': "a", 'ä': "a", 'å': "a",
	'è': "e", 'é': "e", 'ê': "e", 'ë': "e",
	'ì': "i", 'í': "i", 'î': "i", 'ï': "i",
	'ò': "o", 'ó': "o", 'ô': "o", 'õ': "o", 'ö': "o", 'ø': "o",
	'ù': "u", 'ú': "u", 'û': "u", 'ü': "u",
	'ç': "c", 'ñ': "n", 'ý': "y", 'ß': "ss", 'æ': "ae", 'œ': "oe",
}

// Make normalizes a raw title into a slug: lowercase, ASCII-folded,
// with every run of non-alphanumeric runes collapsed into a single
// separator. An empty or all-punctuation title yields an empty slug.
func Make(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	pendingSep := false
	for _, r := range strings.ToLower(title) {
		if folded, ok := asciiFold[r]; ok {
			if pendingSep && b.Len() > 0 {
				b.WriteByte(separator)
			}
			pendingSep = false
			b.WriteString(folded)
			continue
		}
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingSep && b.Len() > 0 {
				b.WriteByte(separator)
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}

	return b.String()
}

// Words splits a slug into its distinct non-empty tokens, preserving
// first-occurrence order. The same function tokenizes search queries
// (after running them through Make).
func Words(s string) []string {
	if s == "" {
		return nil
	}

	seen := make(map[string]struct{})
	var words []string
	for _, w := range strings.Split(s, string(separator)) {
		if w == "" {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		words = append(words, w)
	}
	return words
}
