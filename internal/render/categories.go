// Package render prints a bibliography as categorized Markdown listings.
package render

import (
	"sort"
	"strings"

	"github.com/matsen/pubs/internal/bibtex"
	"github.com/matsen/pubs/internal/reference"
)

// Category is a listing heading and the entry types filed under it.
type Category struct {
	Name  string
	Types []string
}

// Categories in output order. Entry types not listed here are not rendered.
var Categories = []Category{
	{Name: "Journal Articles", Types: []string{"article"}},
	{Name: "Conference Papers", Types: []string{"inproceedings", "proceedings"}},
	{Name: "Books and Chapters", Types: []string{"book", "incollection"}},
	{Name: "Theses", Types: []string{"phdthesis", "mastersthesis"}},
}

// Accepts reports whether entries of the given type belong to the category.
func (c Category) Accepts(entryType string) bool {
	entryType = strings.ToLower(entryType)
	for _, t := range c.Types {
		if t == entryType {
			return true
		}
	}
	return false
}

// CategoryFor returns the first category accepting the entry type.
func CategoryFor(entryType string) (Category, bool) {
	for _, c := range Categories {
		if c.Accepts(entryType) {
			return c, true
		}
	}
	return Category{}, false
}

// Section is one rendered category with its publications in display order.
type Section struct {
	Category     string                  `json:"category"`
	Publications []reference.Publication `json:"publications"`
}

// SortEntries orders entries by year, newest first. The comparison is on the
// year string; entries without a year sort last. Ties keep file order.
func SortEntries(entries []*bibtex.Entry) []*bibtex.Entry {
	sorted := make([]*bibtex.Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return reference.SortYear(sorted[i]) > reference.SortYear(sorted[j])
	})
	return sorted
}

// Group files the sorted entries under their categories. Each entry lands in
// at most one section and empty categories are dropped.
func Group(db *bibtex.Database) []Section {
	sorted := SortEntries(db.Entries())

	byCategory := make(map[string][]reference.Publication)
	for _, e := range sorted {
		c, ok := CategoryFor(e.Type)
		if !ok {
			continue
		}
		byCategory[c.Name] = append(byCategory[c.Name], reference.FromEntry(e))
	}

	var sections []Section
	for _, c := range Categories {
		pubs := byCategory[c.Name]
		if len(pubs) == 0 {
			continue
		}
		sections = append(sections, Section{Category: c.Name, Publications: pubs})
	}
	return sections
}
