package bibtex

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ParseNames splits a name list on "and" and parses each name.
func ParseNames(value string) []Person {
	var persons []Person
	var current []string
	flush := func() {
		if len(current) > 0 {
			persons = append(persons, parseName(strings.Join(current, " ")))
			current = nil
		}
	}

	for _, word := range splitWords(value) {
		if strings.EqualFold(word, "and") {
			flush()
			continue
		}
		current = append(current, word)
	}
	flush()

	return persons
}

// parseName handles the three BibTeX name forms:
// "First von Last", "von Last, First" and "von Last, Jr, First".
func parseName(name string) Person {
	var p Person
	parts := splitTopLevel(name, ',')

	switch len(parts) {
	case 1:
		words := splitWords(name)
		pos := findPos(words, isVonWord)
		firstMiddle := append([]string(nil), words[:pos]...)
		vonLast := append([]string(nil), words[pos:]...)
		if len(vonLast) == 0 && len(firstMiddle) > 0 {
			vonLast = append(vonLast, firstMiddle[len(firstMiddle)-1])
			firstMiddle = firstMiddle[:len(firstMiddle)-1]
		}
		p.setFirstMiddle(firstMiddle)
		p.setVonLast(vonLast)
	case 2:
		p.setVonLast(splitWords(parts[0]))
		p.setFirstMiddle(splitWords(parts[1]))
	default:
		// Anything past the third part is ignored.
		p.setVonLast(splitWords(parts[0]))
		p.Lineage = splitWords(parts[1])
		p.setFirstMiddle(splitWords(parts[2]))
	}

	return p
}

func (p *Person) setFirstMiddle(words []string) {
	if len(words) == 0 {
		return
	}
	p.First = append(p.First, words[0])
	p.Middle = append(p.Middle, words[1:]...)
}

// setVonLast assigns the "von" prefix and last name. The final word is
// always part of the last name, even when it starts lowercase.
func (p *Person) setVonLast(words []string) {
	if len(words) == 0 {
		return
	}
	head, tail := words[:len(words)-1], words[len(words)-1]
	if len(head) > 0 {
		pos := len(head)
		for pos > 0 && !isVonWord(head[pos-1]) {
			pos--
		}
		p.Prelast = append(p.Prelast, head[:pos]...)
		p.Last = append(p.Last, head[pos:]...)
	}
	p.Last = append(p.Last, tail)
}

func findPos(words []string, pred func(string) bool) int {
	for i, w := range words {
		if pred(w) {
			return i
		}
	}
	return len(words)
}

// isVonWord reports whether the first letter outside braces is lowercase.
func isVonWord(word string) bool {
	depth := 0
	for _, r := range word {
		switch {
		case r == '{':
			depth++
		case r == '}':
			if depth > 0 {
				depth--
			}
		case depth == 0 && unicode.IsLetter(r):
			return unicode.IsLower(r)
		}
	}
	return false
}

// splitWords splits on whitespace and '~' outside braces.
func splitWords(s string) []string {
	var words []string
	depth := 0
	start := -1
	for i, r := range s {
		sep := depth == 0 && (unicode.IsSpace(r) || r == '~')
		switch r {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		}
		if sep {
			if start >= 0 {
				words = append(words, s[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		words = append(words, s[start:])
	}
	return words
}

// splitTopLevel splits on sep outside braces and trims each part.
func splitTopLevel(s string, sep rune) []string {
	var parts []string
	depth := 0
	start := 0
	for i, r := range s {
		switch {
		case r == '{':
			depth++
		case r == '}':
			if depth > 0 {
				depth--
			}
		case r == sep && depth == 0:
			parts = append(parts, strings.TrimSpace(s[start:i]))
			start = i + utf8.RuneLen(r)
		}
	}
	return append(parts, strings.TrimSpace(s[start:]))
}
