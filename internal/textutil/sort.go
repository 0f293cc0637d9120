package textutil

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// LocaleSort sorts items in place by the locale-collated order of key.
// A fresh collator is built per call; collators are not safe for
// concurrent use.
func LocaleSort[T any](items []T, key func(T) string) {
	c := collate.New(language.Und)
	sort.SliceStable(items, func(i, j int) bool {
		return c.CompareString(key(items[i]), key(items[j])) < 0
	})
}
