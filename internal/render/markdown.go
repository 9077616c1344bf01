package render

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/matsen/pubs/internal/bibtex"
	"github.com/matsen/pubs/internal/reference"
)

// FormatAuthors joins author names with ", ". A name containing highlight is
// wrapped in bold; an empty highlight matches nothing.
func FormatAuthors(authors []reference.Author, highlight string) string {
	names := make([]string, len(authors))
	for i, a := range authors {
		name := a.Name()
		if highlight != "" && strings.Contains(name, highlight) {
			name = "**" + name + "**"
		}
		names[i] = name
	}
	return strings.Join(names, ", ")
}

// FormatEntry formats one publication as a numbered Markdown list item.
func FormatEntry(p reference.Publication, highlight string) string {
	var link string
	if p.HasDOI() {
		link = fmt.Sprintf(" [[Link](%s)]", reference.DOIURL(p.DOI))
	}
	return fmt.Sprintf("1. %s (%s). **%s.** *%s*.%s",
		FormatAuthors(p.Authors, highlight), p.Year, p.Title, p.Venue, link)
}

// Markdown writes each non-empty category as a "###" heading, one line per
// entry and a blank line.
func Markdown(w io.Writer, db *bibtex.Database, highlight string) error {
	bw := bufio.NewWriter(w)
	for _, s := range Group(db) {
		fmt.Fprintf(bw, "### %s\n", s.Category)
		for _, p := range s.Publications {
			fmt.Fprintln(bw, FormatEntry(p, highlight))
		}
		fmt.Fprintln(bw)
	}
	return bw.Flush()
}

// JSON writes the grouped publications as indented JSON.
func JSON(w io.Writer, db *bibtex.Database) error {
	sections := Group(db)
	if sections == nil {
		sections = []Section{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sections)
}
