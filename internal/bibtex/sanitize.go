package bibtex

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// dedupedFields lists the fields that exporters are known to repeat within
// one entry. Only the first occurrence of each survives Sanitize.
var dedupedFields = map[string]bool{
	"doi": true,
}

// Sanitize removes repeated doi lines inside each entry so the strict parser
// accepts the bibliography. It works on raw text, one line at a time: the
// first "doi =" line of an entry is kept and later ones are dropped. Every
// other line is copied unchanged. Lines have no length limit; a line that is
// not valid UTF-8 is reported as a ParseError.
func Sanitize(r io.Reader) (string, error) {
	reader := bufio.NewReader(r)

	var kept []string
	seen := make(map[string]bool)
	insideEntry := false
	lineNum := 0

	for {
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return "", fmt.Errorf("reading bibliography: %w", err)
		}
		if err == io.EOF && line == "" {
			break
		}
		lineNum++
		line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
		if !utf8.ValidString(line) {
			return "", ParseError{Line: lineNum, Message: "invalid UTF-8"}
		}

		stripped := strings.ToLower(strings.TrimSpace(line))
		drop := false

		if strings.HasPrefix(stripped, "@") {
			seen = make(map[string]bool)
			insideEntry = true
		} else if insideEntry {
			if name, _, found := strings.Cut(stripped, "="); found {
				name = strings.TrimSpace(name)
				if dedupedFields[name] {
					drop = seen[name]
					seen[name] = true
				}
			}
		}

		if !drop {
			kept = append(kept, line)
		}
		if err == io.EOF {
			break
		}
	}

	return strings.Join(kept, "\n"), nil
}

// LoadFile reads, sanitizes and parses a .bib file.
func LoadFile(path string) (*Database, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	cleaned, err := Sanitize(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	db, err := Parse(strings.NewReader(cleaned))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return db, nil
}
