package textutil

import (
	"strings"
	"unicode"

	"github.com/songiapp/songidb/internal/chords"
)

// tokenSeparators is the fixed punctuation class words are split on,
// in addition to whitespace.
const tokenSeparators = `-().,;!?"'/+*&`

// Tokenize splits texts into the set of lowercase index words. Diacritics,
// HTML-like tags, and chord annotations are stripped first; per word all
// non-[a-z] characters are dropped and words shorter than two characters are
// discarded. The result keeps first-seen order with duplicates merged.
//
// The same function feeds the word indexes at write time and the query
// tokens at search time; prefix matching relies on both sides agreeing.
func Tokenize(texts ...string) []string {
	seen := make(map[string]bool)
	var res []string

	for _, text := range texts {
		clean := strings.ToLower(RemoveDiacritics(RemoveHTMLTags(chords.Remove(text))))
		words := strings.FieldsFunc(clean, func(r rune) bool {
			return unicode.IsSpace(r) || strings.ContainsRune(tokenSeparators, r)
		})
		for _, w := range words {
			var b strings.Builder
			for _, r := range w {
				if r >= 'a' && r <= 'z' {
					b.WriteRune(r)
				}
			}
			t := b.String()
			if len(t) >= 2 && !seen[t] {
				seen[t] = true
				res = append(res, t)
			}
		}
	}
	return res
}

// LongestToken returns the longest token, first-seen winning ties. It seeds
// the index prefix scan, since the longest token prunes the most rows.
func LongestToken(tokens []string) string {
	best := ""
	for _, t := range tokens {
		if len(t) > len(best) {
			best = t
		}
	}
	return best
}
