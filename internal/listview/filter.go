// Package listview derives the visible page of a collection from a search
// term, a page size and a page index.
package listview

import (
	"strings"

	"golang.org/x/text/cases"
)

// Searchable exposes every field value except the id as text.
type Searchable interface {
	SearchValues() []string
}

// Filter keeps the items where any searchable value contains term,
// ignoring case. Only an empty term keeps everything: a blank term is
// matched like any other. The input is not modified.
func Filter[T Searchable](items []T, term string) []T {
	if term == "" {
		return items
	}

	fold := cases.Fold()
	needle := fold.String(term)

	out := make([]T, 0, len(items))
	for _, item := range items {
		if Matches(item, needle, fold) {
			out = append(out, item)
		}
	}
	return out
}

// Matches reports whether item contains the already folded needle.
func Matches(item Searchable, needle string, fold cases.Caser) bool {
	for _, v := range item.SearchValues() {
		if strings.Contains(fold.String(v), needle) {
			return true
		}
	}
	return false
}
