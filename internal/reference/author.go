package reference

import (
	"strings"

	"github.com/matsen/pubs/internal/bibtex"
)

// Author is the display form of a bibliography person.
type Author struct {
	First string `json:"first"` // First given name only
	Last  string `json:"last"`  // First last-name word only
}

// AuthorFromPerson keeps the first given name and the first last-name word.
// Middle names, "von" parts and lineage are not displayed.
func AuthorFromPerson(p bibtex.Person) Author {
	return Author{First: p.FirstName(), Last: p.LastName()}
}

// Name formats the author as "First Last".
func (a Author) Name() string {
	return strings.TrimSpace(a.First + " " + a.Last)
}
