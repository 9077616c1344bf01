package render

import (
	"strings"
	"testing"

	"github.com/matsen/pubs/internal/bibtex"
)

func TestCategoryFor(t *testing.T) {
	tests := []struct {
		entryType string
		want      string
		wantOK    bool
	}{
		{"article", "Journal Articles", true},
		{"ARTICLE", "Journal Articles", true},
		{"inproceedings", "Conference Papers", true},
		{"proceedings", "Conference Papers", true},
		{"book", "Books and Chapters", true},
		{"incollection", "Books and Chapters", true},
		{"phdthesis", "Theses", true},
		{"mastersthesis", "Theses", true},
		{"misc", "", false},
		{"techreport", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.entryType, func(t *testing.T) {
			got, ok := CategoryFor(tt.entryType)
			if ok != tt.wantOK || got.Name != tt.want {
				t.Errorf("CategoryFor(%q) = %q, %v, want %q, %v", tt.entryType, got.Name, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestCategories_TypesAreDisjoint(t *testing.T) {
	seen := make(map[string]string)
	for _, c := range Categories {
		for _, typ := range c.Types {
			if prev, dup := seen[typ]; dup {
				t.Errorf("type %q in both %q and %q", typ, prev, c.Name)
			}
			seen[typ] = c.Name
		}
	}
}

func keysOf(entries []*bibtex.Entry) string {
	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = e.Key
	}
	return strings.Join(keys, ",")
}

func TestSortEntries(t *testing.T) {
	db, err := bibtex.ParseString(`
@article{old, year = {1999}}
@article{none, title = {No year}}
@article{new, year = {2021}}
@article{mid1, year = {2010}}
@article{mid2, year = {2010}}
`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}

	got := keysOf(SortEntries(db.Entries()))
	if got != "new,mid1,mid2,old,none" {
		t.Errorf("SortEntries() = %s, want new,mid1,mid2,old,none", got)
	}

	// Input slice is untouched
	if keysOf(db.Entries()) != "old,none,new,mid1,mid2" {
		t.Errorf("SortEntries() modified its input: %s", keysOf(db.Entries()))
	}
}

func TestGroup(t *testing.T) {
	db, err := bibtex.ParseString(`
@misc{skip, year = {2030}}
@phdthesis{thesis, year = {2015}, school = {MIT}}
@article{a1, year = {2018}}
@inproceedings{c1, year = {2019}}
@article{a2, year = {2020}}
@proceedings{c2, year = {2017}}
`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}

	sections := Group(db)

	var got []string
	for _, s := range sections {
		var keys []string
		for _, p := range s.Publications {
			keys = append(keys, p.Key)
		}
		got = append(got, s.Category+":"+strings.Join(keys, ","))
	}
	want := "Journal Articles:a2,a1|Conference Papers:c1,c2|Theses:thesis"
	if strings.Join(got, "|") != want {
		t.Errorf("Group() = %s, want %s", strings.Join(got, "|"), want)
	}
}

func TestGroup_Empty(t *testing.T) {
	db, err := bibtex.ParseString("@misc{k, title = {T}}")
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	if sections := Group(db); len(sections) != 0 {
		t.Errorf("Group() = %+v, want no sections", sections)
	}
}
