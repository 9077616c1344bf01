package bibtex

import (
	"errors"
	"strings"
	"testing"
)

func TestParse_BasicArticle(t *testing.T) {
	src := `@article{Doe2020,
  author = {Jane Doe and Smith, John},
  title = {A {Study}},
  journal = {Nature},
  year = 2020,
  doi = {10.1/xyz}
}`

	db, err := ParseString(src)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	if db.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", db.Len())
	}

	e := db.Entries()[0]
	if e.Key != "Doe2020" {
		t.Errorf("Key = %q, want Doe2020", e.Key)
	}
	if e.Type != "article" {
		t.Errorf("Type = %q, want article", e.Type)
	}

	fields := map[string]string{
		"title":   "A {Study}",
		"journal": "Nature",
		"year":    "2020",
		"doi":     "10.1/xyz",
	}
	for name, want := range fields {
		if got, _ := e.Field(name); got != want {
			t.Errorf("Field(%q) = %q, want %q", name, got, want)
		}
	}

	authors := e.Authors()
	if len(authors) != 2 {
		t.Fatalf("len(Authors()) = %d, want 2", len(authors))
	}
	if authors[0].FirstName() != "Jane" || authors[0].LastName() != "Doe" {
		t.Errorf("author 0 = %+v, want Jane Doe", authors[0])
	}
	if authors[1].FirstName() != "John" || authors[1].LastName() != "Smith" {
		t.Errorf("author 1 = %+v, want John Smith", authors[1])
	}
}

func TestParse_Editors(t *testing.T) {
	db, err := ParseString(`@incollection{c, author = {Jane Doe}, editor = {Smith, John and Ann Lee}}`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}

	editors := db.Entries()[0].Editors()
	if len(editors) != 2 {
		t.Fatalf("len(Editors()) = %d, want 2", len(editors))
	}
	if editors[0].LastName() != "Smith" || editors[1].LastName() != "Lee" {
		t.Errorf("Editors() = %+v, want Smith and Lee", editors)
	}
}

func TestParse_TypeAndFieldNamesCaseInsensitive(t *testing.T) {
	db, err := ParseString(`@InProceedings{Key1, TITLE = "Hello", BookTitle = {Conf}}`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	e := db.Entries()[0]
	if e.Type != "inproceedings" {
		t.Errorf("Type = %q, want inproceedings", e.Type)
	}
	if e.Key != "Key1" {
		t.Errorf("Key = %q, want Key1", e.Key)
	}
	if v, ok := e.Field("Title"); !ok || v != "Hello" {
		t.Errorf("Field(Title) = %q, %v", v, ok)
	}
	if v, ok := e.Field("booktitle"); !ok || v != "Conf" {
		t.Errorf("Field(booktitle) = %q, %v", v, ok)
	}
}

func TestParse_PreservesFileOrder(t *testing.T) {
	src := `@misc{b, title={B}}
@misc{a, title={A}}
@misc{c, title={C}}`
	db, err := ParseString(src)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}

	var keys []string
	for _, e := range db.Entries() {
		keys = append(keys, e.Key)
	}
	if got := strings.Join(keys, ","); got != "b,a,c" {
		t.Errorf("entry order = %s, want b,a,c", got)
	}
}

func TestParse_MacrosAndConcatenation(t *testing.T) {
	src := `@string{nat = "Nature"}
@STRING(pub = {Springer})
@article{k,
  journal = nat # { Genetics},
  publisher = pub,
  month = jan,
}`
	db, err := ParseString(src)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	e := db.Entries()[0]
	tests := map[string]string{
		"journal":   "Nature Genetics",
		"publisher": "Springer",
		"month":     "January",
	}
	for name, want := range tests {
		if got, _ := e.Field(name); got != want {
			t.Errorf("Field(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestParse_CommentsAndPreambleSkipped(t *testing.T) {
	src := `This text is ignored.
@comment{jabref-meta: databaseType:bibtex;}
@preamble{"\newcommand{\noop}[1]{}"}
@book{k, title = {T}, publisher = {P}}
@Comment jabref trailer`
	db, err := ParseString(src)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	if db.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", db.Len())
	}
	if db.Entries()[0].Type != "book" {
		t.Errorf("Type = %q, want book", db.Entries()[0].Type)
	}
}

func TestParse_CollapsesWhitespace(t *testing.T) {
	src := "@article{k,\n  title = {A long\n      title\twith   gaps}\n}"
	db, err := ParseString(src)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	if got, _ := db.Entries()[0].Field("title"); got != "A long title with gaps" {
		t.Errorf("title = %q", got)
	}
}

func TestParse_QuotedValueWithBraces(t *testing.T) {
	db, err := ParseString(`@article{k, title = "The {"}Quote{"} Paper"}`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	if got, _ := db.Entries()[0].Field("title"); got != `The {"}Quote{"} Paper` {
		t.Errorf("title = %q", got)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantMsg string
	}{
		{
			name:    "repeated field",
			src:     "@article{k,\n  doi = {1},\n  doi = {2}\n}",
			wantMsg: `repeated field "doi"`,
		},
		{
			name:    "repeated key",
			src:     "@article{k, title={A}}\n@article{k, title={B}}",
			wantMsg: "repeated entry key",
		},
		{
			name:    "undefined macro",
			src:     "@article{k, journal = nowhere}",
			wantMsg: `undefined macro "nowhere"`,
		},
		{
			name:    "unterminated value",
			src:     "@article{k, title = {never closed}",
			wantMsg: "unterminated",
		},
		{
			name:    "missing key",
			src:     "@article{, title = {A}}",
			wantMsg: "missing citation key",
		},
		{
			name:    "missing equals",
			src:     "@article{k, title {A}}",
			wantMsg: "expected '='",
		},
		{
			name:    "missing delimiter",
			src:     "@article k",
			wantMsg: "expected '{' or '('",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.src)
			if err == nil {
				t.Fatal("ParseString() error = nil, want error")
			}
			var pe ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("error type = %T, want ParseError", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestParse_RepeatedFieldLineNumber(t *testing.T) {
	_, err := ParseString("@article{k,\n  doi = {1},\n  doi = {2}\n}")
	var pe ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want ParseError", err)
	}
	if pe.Line != 3 {
		t.Errorf("Line = %d, want 3", pe.Line)
	}
	if pe.Context != "k" {
		t.Errorf("Context = %q, want k", pe.Context)
	}
}

func TestEntry_FirstField(t *testing.T) {
	e := &Entry{Fields: map[string]string{"booktitle": "Conf", "school": "MIT"}}

	got, ok := e.FirstField("journal", "booktitle", "school")
	if !ok || got != "Conf" {
		t.Errorf("FirstField() = %q, %v, want Conf, true", got, ok)
	}

	if _, ok := e.FirstField("journal", "publisher"); ok {
		t.Error("FirstField() found a field that is not present")
	}
}
