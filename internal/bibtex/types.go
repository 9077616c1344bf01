// Package bibtex reads BibTeX bibliographies.
package bibtex

import (
	"errors"
	"fmt"
	"strings"
)

// ErrFileNotFound is returned by LoadFile when the bibliography does not exist.
var ErrFileNotFound = errors.New("bibliography file not found")

// Database holds the entries of one bibliography in file order.
type Database struct {
	entries []*Entry
	keys    map[string]bool
}

func newDatabase() *Database {
	return &Database{keys: make(map[string]bool)}
}

// Entries returns the entries in the order they appear in the source.
func (db *Database) Entries() []*Entry {
	return db.entries
}

// Len returns the number of entries.
func (db *Database) Len() int {
	return len(db.entries)
}

func (db *Database) add(e *Entry) bool {
	if db.keys[e.Key] {
		return false
	}
	db.keys[e.Key] = true
	db.entries = append(db.entries, e)
	return true
}

// Entry is a single bibliography record.
type Entry struct {
	Key     string              // Citation key, case preserved
	Type    string              // Entry type, lowercased (article, book, ...)
	Fields  map[string]string   // Field values keyed by lowercased name
	Persons map[string][]Person // Parsed name lists (author, editor)
}

// personFields are the fields whose values are parsed as name lists.
var personFields = []string{"author", "editor"}

// Field returns the value of a field.
func (e *Entry) Field(name string) (string, bool) {
	v, ok := e.Fields[strings.ToLower(name)]
	return v, ok
}

// FirstField returns the value of the first present field in names.
func (e *Entry) FirstField(names ...string) (string, bool) {
	for _, name := range names {
		if v, ok := e.Field(name); ok {
			return v, true
		}
	}
	return "", false
}

// Authors returns the parsed author list.
func (e *Entry) Authors() []Person {
	return e.Persons["author"]
}

// Editors returns the parsed editor list.
func (e *Entry) Editors() []Person {
	return e.Persons["editor"]
}

// Person is a name split into its BibTeX parts.
type Person struct {
	First   []string `json:"first,omitempty"`
	Middle  []string `json:"middle,omitempty"`
	Prelast []string `json:"prelast,omitempty"` // "von" part
	Last    []string `json:"last,omitempty"`
	Lineage []string `json:"lineage,omitempty"` // "Jr" part
}

// FirstName returns the first given name, or "".
func (p Person) FirstName() string {
	if len(p.First) == 0 {
		return ""
	}
	return p.First[0]
}

// LastName returns the first last-name word, or "".
func (p Person) LastName() string {
	if len(p.Last) == 0 {
		return ""
	}
	return p.Last[0]
}

// ParseError represents an error while parsing BibTeX source.
type ParseError struct {
	Line    int    // Line number where error occurred (1-indexed)
	Message string // Description of the error
	Context string // Entry key or token near the error
}

func (e ParseError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("line %d: %s (%s)", e.Line, e.Message, e.Context)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}
