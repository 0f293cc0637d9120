// Package textutil provides the text normalization shared by the indexing
// and query sides: diacritics stripping, tokenization into index words,
// first-letter bucketing, kebab-case identifiers, and locale-aware sorting.
package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// diacriticsRemover decomposes to NFD and drops combining marks.
var diacriticsRemover = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))

// RemoveDiacritics strips combining diacritical marks, so "Émile" becomes
// "Emile". Input that fails to transform is returned unchanged.
func RemoveDiacritics(s string) string {
	out, _, err := transform.String(diacriticsRemover, s)
	if err != nil {
		return s
	}
	return out
}

var htmlTagPattern = regexp.MustCompile(`<[^>]+>`)

// RemoveHTMLTags strips HTML-like tags with a non-greedy bracket match.
func RemoveHTMLTags(s string) string {
	return htmlTagPattern.ReplaceAllString(s, "")
}

// FirstLetter returns the first alphabetic character of the normalized
// string, uppercased. Names that are empty or start with a non-ASCII-letter
// map to the "*" bucket.
func FirstLetter(s string) string {
	t := strings.TrimSpace(RemoveDiacritics(s))
	if t == "" {
		return "*"
	}
	r := unicode.ToUpper([]rune(t)[0])
	if r < 'A' || r > 'Z' {
		return "*"
	}
	return string(r)
}

var apostropheRemover = strings.NewReplacer("'", "", "’", "")

// KebabCase converts a display name to a stable identifier: diacritics and
// apostrophes stripped, words split on non-alphanumerics, case boundaries,
// and letter/digit transitions, lowercased and joined with "-". An
// apostrophe joins its word ("don't" becomes "dont") instead of splitting
// it. Returns "" when the input contains no words.
func KebabCase(s string) string {
	rs := []rune(apostropheRemover.Replace(RemoveDiacritics(s)))

	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, strings.ToLower(string(cur)))
			cur = nil
		}
	}

	for i, r := range rs {
		switch {
		case unicode.IsDigit(r):
			if len(cur) > 0 && !unicode.IsDigit(cur[len(cur)-1]) {
				flush()
			}
			cur = append(cur, r)
		case unicode.IsLetter(r):
			if len(cur) > 0 && unicode.IsDigit(cur[len(cur)-1]) {
				flush()
			}
			if unicode.IsUpper(r) && len(cur) > 0 {
				prev := cur[len(cur)-1]
				next := rune(0)
				if i+1 < len(rs) {
					next = rs[i+1]
				}
				// camelCase boundary, or end of an uppercase run ("ABCDef").
				if unicode.IsLower(prev) || (unicode.IsUpper(prev) && unicode.IsLower(next)) {
					flush()
				}
			}
			cur = append(cur, r)
		default:
			flush()
		}
	}
	flush()

	return strings.Join(words, "-")
}
