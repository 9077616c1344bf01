// Package page discovers the context of the page being built: its declared
// title and the bibliographies sitting next to it.
package page

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Default discovery patterns, matched in a single directory.
const (
	MarkupPattern = "*.qmd"
	BibPattern    = "*.bib"
)

const titleKey = "title:"

// FindFiles returns the regular files in dir matching pattern, sorted by name.
// Subdirectories are not searched and hidden files (leading ".") are skipped,
// so editor drafts and macOS "._" sidecars never match "*.bib" or "*.qmd".
func FindFiles(dir, pattern string) ([]string, error) {
	if strings.Contains(pattern, "/") || strings.Contains(pattern, "**") {
		return nil, fmt.Errorf("pattern must match a single directory: %s", pattern)
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern: %s", pattern)
	}

	matches, err := doublestar.Glob(os.DirFS(dir), pattern)
	if err != nil {
		return nil, fmt.Errorf("glob error: %w", err)
	}

	var files []string
	for _, match := range matches {
		if strings.HasPrefix(filepath.Base(match), ".") {
			continue
		}
		path := filepath.Join(dir, match)
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, path)
	}
	sort.Strings(files)
	return files, nil
}

// TitleFromReader returns the value of the first "title:" line.
// One layer of double quotes and then one layer of single quotes is removed.
func TitleFromReader(r io.Reader) (string, bool, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, titleKey) {
			continue
		}
		_, value, _ := strings.Cut(line, ":")
		value = strings.TrimSpace(value)
		value = trimOne(value, '"')
		value = trimOne(value, '\'')
		return value, true, nil
	}
	return "", false, scanner.Err()
}

// FindTitle reads the title of the first markup file in dir.
// It reports false when there is no markup file or it declares no title.
func FindTitle(dir, pattern string) (string, bool, error) {
	files, err := FindFiles(dir, pattern)
	if err != nil {
		return "", false, err
	}
	if len(files) == 0 {
		return "", false, nil
	}

	file, err := os.Open(files[0])
	if err != nil {
		return "", false, fmt.Errorf("opening %s: %w", files[0], err)
	}
	defer file.Close()

	title, ok, err := TitleFromReader(file)
	if err != nil {
		return "", false, fmt.Errorf("reading %s: %w", files[0], err)
	}
	return title, ok, nil
}

// trimOne removes at most one q from each end of s.
func trimOne(s string, q byte) string {
	if len(s) > 0 && s[0] == q {
		s = s[1:]
	}
	if len(s) > 0 && s[len(s)-1] == q {
		s = s[:len(s)-1]
	}
	return s
}
