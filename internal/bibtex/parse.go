package bibtex

import (
	"fmt"
	"io"
	"strings"
)

// monthMacros are the string macros every BibTeX style predefines.
var monthMacros = map[string]string{
	"jan": "January",
	"feb": "February",
	"mar": "March",
	"apr": "April",
	"may": "May",
	"jun": "June",
	"jul": "July",
	"aug": "August",
	"sep": "September",
	"oct": "October",
	"nov": "November",
	"dec": "December",
}

// Parse reads BibTeX source and returns its entries.
//
// Parsing is strict: a field repeated within one entry, a repeated citation
// key, an undefined macro or an unterminated value is a ParseError.
// Text outside of @-blocks is ignored, as are @comment and @preamble.
func Parse(r io.Reader) (*Database, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading bibliography: %w", err)
	}

	p := &parser{
		src:    string(data),
		line:   1,
		macros: make(map[string]string, len(monthMacros)),
		db:     newDatabase(),
	}
	for k, v := range monthMacros {
		p.macros[k] = v
	}

	if err := p.run(); err != nil {
		return nil, err
	}
	return p.db, nil
}

// ParseString is a convenience function that parses from a string.
func ParseString(content string) (*Database, error) {
	return Parse(strings.NewReader(content))
}

type parser struct {
	src    string
	pos    int
	line   int
	macros map[string]string
	db     *Database
}

func (p *parser) errorf(context, format string, args ...interface{}) error {
	return ParseError{
		Line:    p.line,
		Message: fmt.Sprintf(format, args...),
		Context: context,
	}
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) advance() {
	if p.src[p.pos] == '\n' {
		p.line++
	}
	p.pos++
}

func (p *parser) skipSpace() {
	for !p.eof() && isSpace(p.peek()) {
		p.advance()
	}
}

// skipTo advances to the next occurrence of c and reports whether one was found.
func (p *parser) skipTo(c byte) bool {
	for !p.eof() {
		if p.peek() == c {
			return true
		}
		p.advance()
	}
	return false
}

func (p *parser) skipLine() {
	for !p.eof() && p.peek() != '\n' {
		p.advance()
	}
}

func (p *parser) expect(c byte, context string) error {
	p.skipSpace()
	if p.peek() != c {
		if p.eof() {
			return p.errorf(context, "expected %q, got end of input", c)
		}
		return p.errorf(context, "expected %q, got %q", c, p.peek())
	}
	p.advance()
	return nil
}

func (p *parser) ident() string {
	start := p.pos
	for !p.eof() && isIdentChar(p.peek()) {
		p.advance()
	}
	return p.src[start:p.pos]
}

func (p *parser) run() error {
	for p.skipTo('@') {
		p.advance()
		p.skipSpace()

		typ := strings.ToLower(p.ident())
		if typ == "" {
			return p.errorf("", "expected entry type after @")
		}
		p.skipSpace()

		open := p.peek()
		if open != '{' && open != '(' {
			if typ == "comment" {
				p.skipLine()
				continue
			}
			return p.errorf(typ, "expected '{' or '(' after @%s", typ)
		}
		closer := byte('}')
		if open == '(' {
			closer = ')'
		}

		var err error
		switch typ {
		case "comment":
			err = p.skipBlock(open, closer)
		case "preamble":
			p.advance()
			if _, err = p.value(typ); err == nil {
				err = p.expect(closer, typ)
			}
		case "string":
			p.advance()
			err = p.stringMacro(closer)
		default:
			p.advance()
			err = p.entry(typ, closer)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// skipBlock consumes a balanced block starting at the opening delimiter.
func (p *parser) skipBlock(open, closer byte) error {
	startLine := p.line
	depth := 0
	for !p.eof() {
		switch p.peek() {
		case open:
			depth++
		case closer:
			depth--
		}
		p.advance()
		if depth == 0 {
			return nil
		}
	}
	return ParseError{Line: startLine, Message: "unterminated @comment"}
}

func (p *parser) stringMacro(closer byte) error {
	p.skipSpace()
	name := strings.ToLower(p.ident())
	if name == "" {
		return p.errorf("string", "expected macro name")
	}
	if err := p.expect('=', name); err != nil {
		return err
	}
	v, err := p.value(name)
	if err != nil {
		return err
	}
	p.macros[name] = v
	return p.expect(closer, name)
}

func (p *parser) entry(typ string, closer byte) error {
	p.skipSpace()
	start := p.pos
	for !p.eof() {
		c := p.peek()
		if c == ',' || c == closer || isSpace(c) {
			break
		}
		p.advance()
	}
	key := p.src[start:p.pos]
	if key == "" {
		return p.errorf(typ, "missing citation key")
	}

	e := &Entry{
		Key:     key,
		Type:    typ,
		Fields:  make(map[string]string),
		Persons: make(map[string][]Person),
	}

	for {
		p.skipSpace()
		if p.eof() {
			return p.errorf(key, "unterminated entry")
		}
		c := p.peek()
		if c == closer {
			p.advance()
			break
		}
		if c != ',' {
			return p.errorf(key, "expected ',' or %q, got %q", closer, c)
		}
		p.advance()
		p.skipSpace()
		if p.peek() == closer {
			// Trailing comma after the last field
			p.advance()
			break
		}

		name := strings.ToLower(p.ident())
		if name == "" {
			return p.errorf(key, "expected field name")
		}
		if err := p.expect('=', key); err != nil {
			return err
		}
		fieldLine := p.line
		v, err := p.value(key)
		if err != nil {
			return err
		}
		if _, dup := e.Fields[name]; dup {
			return ParseError{
				Line:    fieldLine,
				Message: fmt.Sprintf("repeated field %q", name),
				Context: key,
			}
		}
		e.Fields[name] = v
	}

	for _, f := range personFields {
		if v, ok := e.Fields[f]; ok {
			e.Persons[f] = ParseNames(v)
		}
	}

	if !p.db.add(e) {
		return p.errorf(key, "repeated entry key")
	}
	return nil
}

// value parses a field value: one or more parts joined with '#'.
func (p *parser) value(context string) (string, error) {
	var b strings.Builder
	for {
		p.skipSpace()
		part, err := p.valuePart(context)
		if err != nil {
			return "", err
		}
		b.WriteString(part)
		p.skipSpace()
		if p.peek() != '#' {
			break
		}
		p.advance()
	}
	return collapseSpace(b.String()), nil
}

func (p *parser) valuePart(context string) (string, error) {
	switch p.peek() {
	case '{':
		return p.delimited('}', context)
	case '"':
		return p.delimited('"', context)
	}

	name := p.ident()
	if name == "" {
		if p.eof() {
			return "", p.errorf(context, "expected field value, got end of input")
		}
		return "", p.errorf(context, "expected field value, got %q", p.peek())
	}
	if isNumber(name) {
		return name, nil
	}
	v, ok := p.macros[strings.ToLower(name)]
	if !ok {
		return "", p.errorf(context, "undefined macro %q", name)
	}
	return v, nil
}

// delimited reads a braced or quoted value. The outer delimiters are
// dropped; inner braces are kept verbatim and must balance.
func (p *parser) delimited(closer byte, context string) (string, error) {
	startLine := p.line
	p.advance()
	start := p.pos
	depth := 0
	for !p.eof() {
		c := p.peek()
		switch {
		case c == '{':
			depth++
		case c == '}' && depth > 0:
			depth--
		case c == closer && depth == 0:
			v := p.src[start:p.pos]
			p.advance()
			return v, nil
		case c == '}':
			return "", p.errorf(context, "unbalanced '}' in value")
		}
		p.advance()
	}
	return "", ParseError{Line: startLine, Message: "unterminated value", Context: context}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isIdentChar(c byte) bool {
	if c <= ' ' || c == 0x7f {
		return false
	}
	return !strings.ContainsRune(`"#%'(),={}`, rune(c))
}

func isNumber(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

func collapseSpace(s string) string {
	return strings.Join(strings.FieldsFunc(s, func(r rune) bool {
		return r < 0x80 && isSpace(byte(r))
	}), " ")
}
