// Package taxonomy holds the canonical skill dictionary used by all
// matchers. It is loaded once at process start and never mutated, so a
// single instance can be shared by every analysis without locking.
package taxonomy

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/resumatch/resumatch/internal/nlp"
)

//go:embed data.json
var embeddedData []byte

type fileFormat struct {
	Version    string `json:"version"`
	Categories map[string]struct {
		Skills map[string][]string `json:"skills"`
	} `json:"categories"`
}

// Entry is a canonical skill with its category and synonyms.
type Entry struct {
	Canonical string
	Category  string
	Synonyms  []string
}

// Taxonomy maps normalized terms (canonical names and synonyms) to their
// canonical entry.
type Taxonomy struct {
	version string
	entries []Entry
	lookup  map[string]*Entry
}

// Load builds the taxonomy from the first available source: url, then
// path, then the embedded default dictionary.
func Load(path, url string) (*Taxonomy, error) {
	data := embeddedData

	switch {
	case url != "":
		client := resty.New().SetTimeout(10 * time.Second)
		resp, err := client.R().Get(url)
		if err != nil {
			return nil, fmt.Errorf("fetch taxonomy from %s: %w", url, err)
		}
		if resp.IsError() {
			return nil, fmt.Errorf("fetch taxonomy from %s: status %d", url, resp.StatusCode())
		}
		data = resp.Body()
	case path != "":
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read taxonomy file: %w", err)
		}
		data = b
	}

	return parse(data)
}

// Default returns the taxonomy compiled into the binary.
func Default() *Taxonomy {
	t, err := parse(embeddedData)
	if err != nil {
		panic(fmt.Sprintf("embedded taxonomy is invalid: %v", err))
	}
	return t
}

func parse(data []byte) (*Taxonomy, error) {
	var raw fileFormat
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse taxonomy: %w", err)
	}
	if len(raw.Categories) == 0 {
		return nil, fmt.Errorf("taxonomy has no categories")
	}

	t := &Taxonomy{
		version: raw.Version,
		lookup:  make(map[string]*Entry),
	}

	categories := make([]string, 0, len(raw.Categories))
	for c := range raw.Categories {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	for _, category := range categories {
		skills := raw.Categories[category].Skills
		names := make([]string, 0, len(skills))
		for name := range skills {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			t.entries = append(t.entries, Entry{
				Canonical: name,
				Category:  category,
				Synonyms:  skills[name],
			})
		}
	}

	for i := range t.entries {
		e := &t.entries[i]
		t.lookup[nlp.Normalize(e.Canonical)] = e
		for _, syn := range e.Synonyms {
			t.lookup[nlp.Normalize(syn)] = e
		}
	}

	return t, nil
}

// Version identifies the loaded dictionary for reproducibility stamping.
func (t *Taxonomy) Version() string { return t.version }

// Len returns the number of canonical entries.
func (t *Taxonomy) Len() int { return len(t.entries) }

// Canonicalize resolves a term (case-insensitive, synonym-aware) to its
// canonical skill name. Unknown terms return ok=false; that is a normal
// outcome, the caller keeps them as free-text skills.
func (t *Taxonomy) Canonicalize(term string) (string, bool) {
	e, ok := t.lookup[nlp.Normalize(term)]
	if !ok {
		return "", false
	}
	return e.Canonical, true
}

// Category returns the category of a known term.
func (t *Taxonomy) Category(term string) (string, bool) {
	e, ok := t.lookup[nlp.Normalize(term)]
	if !ok {
		return "", false
	}
	return e.Category, true
}

// ExtractSkills scans free text and returns the canonical names of every
// taxonomy skill mentioned in it, in dictionary order.
func (t *Taxonomy) ExtractSkills(text string) []string {
	norm := " " + nlp.Normalize(text) + " "
	found := make([]string, 0, 8)
	seen := make(map[string]bool)

	for i := range t.entries {
		e := &t.entries[i]
		if seen[e.Canonical] {
			continue
		}
		if containsTerm(norm, e.Canonical) {
			found = append(found, e.Canonical)
			seen[e.Canonical] = true
			continue
		}
		for _, syn := range e.Synonyms {
			if containsTerm(norm, syn) {
				found = append(found, e.Canonical)
				seen[e.Canonical] = true
				break
			}
		}
	}
	return found
}

// containsTerm matches a normalized term on word boundaries so that "go"
// does not match inside "google" or "r" inside "react".
func containsTerm(normText, term string) bool {
	nt := nlp.Normalize(term)
	if nt == "" {
		return false
	}
	return strings.Contains(normText, " "+nt+" ")
}
