// Package reference turns parsed bibliography entries into publications
// ready for display.
package reference

import (
	"strings"

	"github.com/matsen/pubs/internal/bibtex"
)

// Placeholders used when an entry lacks a field.
const (
	NoYear       = "n.d."
	NoTitle      = "Untitled"
	NoVenue      = "Preprint"
	UnsortedYear = "0000" // Sort key for entries without a year
)

// DOIPrefix is the resolver prefix prepended to every DOI link.
const DOIPrefix = "https://doi.org/"

// VenueFields lists the fields tried, in order, for the publication outlet.
var VenueFields = []string{"journal", "booktitle", "publisher", "school"}

// Publication is one entry in the form it is displayed.
type Publication struct {
	Key     string   `json:"key"`
	Type    string   `json:"type"`
	Year    string   `json:"year"`
	Title   string   `json:"title"`
	Venue   string   `json:"venue"`
	DOI     string   `json:"doi,omitempty"` // Without resolver prefix; empty means no link
	Authors []Author `json:"authors"`
	Editors []Author `json:"editors,omitempty"`
}

var braceStripper = strings.NewReplacer("{", "", "}", "")

// FromEntry applies the display fallbacks to an entry.
func FromEntry(e *bibtex.Entry) Publication {
	pub := Publication{
		Key:   e.Key,
		Type:  strings.ToLower(e.Type),
		Year:  fieldOr(e, NoYear, "year"),
		Title: braceStripper.Replace(fieldOr(e, NoTitle, "title")),
		Venue: fieldOr(e, NoVenue, VenueFields...),
	}

	if doi, ok := e.Field("doi"); ok && doi != "" {
		pub.DOI = NormalizeDOI(doi)
	}

	authors := e.Authors()
	pub.Authors = make([]Author, 0, len(authors))
	for _, p := range authors {
		pub.Authors = append(pub.Authors, AuthorFromPerson(p))
	}
	for _, p := range e.Editors() {
		pub.Editors = append(pub.Editors, AuthorFromPerson(p))
	}

	return pub
}

// SortYear returns the year used to order entries.
func SortYear(e *bibtex.Entry) string {
	return fieldOr(e, UnsortedYear, "year")
}

// NormalizeDOI strips a leading resolver prefix so it is not doubled.
func NormalizeDOI(doi string) string {
	return strings.TrimPrefix(doi, DOIPrefix)
}

// DOIURL returns the resolver link for a DOI.
func DOIURL(doi string) string {
	return DOIPrefix + NormalizeDOI(doi)
}

// HasDOI reports whether the publication links to a DOI.
func (p Publication) HasDOI() bool {
	return p.DOI != ""
}

func fieldOr(e *bibtex.Entry, fallback string, names ...string) string {
	if v, ok := e.FirstField(names...); ok {
		return v
	}
	return fallback
}
