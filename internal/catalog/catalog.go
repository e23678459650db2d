package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
)

//go:embed perfumes.json
var embeddedPerfumes []byte

// Catalog is an immutable, validated set of perfumes.
// All accessors return copies, so a Catalog is safe for concurrent use.
type Catalog struct {
	items []Perfume
	byID  map[string]int
}

// Default loads the catalog compiled into the binary
func Default() (*Catalog, error) {
	return Load(embeddedPerfumes)
}

// LoadFile loads a catalog from a JSON file on disk
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Load(data)
}

// Load parses and validates a JSON array of perfumes
func Load(data []byte) (*Catalog, error) {
	var items []Perfume
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return New(items)
}

// New builds a catalog from the given perfumes after checking their invariants
func New(items []Perfume) (*Catalog, error) {
	c := &Catalog{
		items: make([]Perfume, 0, len(items)),
		byID:  make(map[string]int, len(items)),
	}

	var errs []error
	for i, p := range items {
		if err := validatePerfume(p); err != nil {
			errs = append(errs, fmt.Errorf("perfume #%d (%s): %w", i, p.ID, err))
			continue
		}
		if _, dup := c.byID[p.ID]; dup {
			errs = append(errs, fmt.Errorf("perfume #%d: duplicate id %q", i, p.ID))
			continue
		}
		c.byID[p.ID] = len(c.items)
		c.items = append(c.items, p.clone())
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return c, nil
}

func validatePerfume(p Perfume) error {
	var errs []error

	if p.ID == "" {
		errs = append(errs, errors.New("id is required"))
	}
	if p.Name == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if p.Price <= 0 {
		errs = append(errs, fmt.Errorf("price must be positive, got %v", p.Price))
	}
	if !p.Gender.Valid() {
		errs = append(errs, fmt.Errorf("gender must be male, female or unisex, got %q", p.Gender))
	}
	if p.AgeRange.Min > p.AgeRange.Max {
		errs = append(errs, fmt.Errorf("ageRange min %d exceeds max %d", p.AgeRange.Min, p.AgeRange.Max))
	}
	if p.Rating != nil {
		for _, r := range []struct {
			name  string
			value *int
		}{
			{"sweetness", p.Rating.Sweetness},
			{"longevity", p.Rating.Longevity},
			{"sillage", p.Rating.Sillage},
			{"uniqueness", p.Rating.Uniqueness},
		} {
			if r.value != nil && (*r.value < 1 || *r.value > 5) {
				errs = append(errs, fmt.Errorf("rating.%s must be between 1 and 5, got %d", r.name, *r.value))
			}
		}
	}

	return errors.Join(errs...)
}

// Len returns the number of perfumes
func (c *Catalog) Len() int {
	return len(c.items)
}

// All returns every perfume in catalog order
func (c *Catalog) All() []Perfume {
	out := make([]Perfume, len(c.items))
	for i, p := range c.items {
		out[i] = p.clone()
	}
	return out
}

// Get looks up a perfume by ID
func (c *Catalog) Get(id string) (Perfume, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Perfume{}, false
	}
	return c.items[i].clone(), true
}

// List returns perfumes matching the options, in catalog order
func (c *Catalog) List(opts ListOptions) []Perfume {
	var out []Perfume
	for _, p := range c.items {
		if opts.Gender != nil && !p.SuitsGender(*opts.Gender) {
			continue
		}
		if opts.Brand != nil && !strings.EqualFold(p.Brand, *opts.Brand) {
			continue
		}
		if opts.MaxPrice != nil && p.Price > *opts.MaxPrice {
			continue
		}
		out = append(out, p.clone())
		if opts.Limit > 0 && len(out) >= opts.Limit {
			break
		}
	}
	return out
}

// Search finds perfumes whose name, brand, description or notes contain the query (case-insensitive)
func (c *Catalog) Search(query string) []Perfume {
	q := NormalizeKeyword(query)
	if q == "" {
		return nil
	}

	var out []Perfume
	for _, p := range c.items {
		if matchesQuery(&p, q) {
			out = append(out, p.clone())
		}
	}
	return out
}

func matchesQuery(p *Perfume, q string) bool {
	if strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Brand), q) ||
		strings.Contains(strings.ToLower(p.Description), q) {
		return true
	}
	for _, n := range p.Notes {
		if strings.Contains(NormalizeKeyword(n), q) {
			return true
		}
	}
	return false
}

// NoteMatch is a perfume together with the requested notes it contains
type NoteMatch struct {
	Perfume      Perfume  `json:"perfume"`
	MatchedNotes []string `json:"matched_notes"`
}

// ByNotes returns perfumes containing any of the given notes, most matches first.
// A non-nil gender restricts results to perfumes suiting it.
func (c *Catalog) ByNotes(notes []string, gender *Gender) []NoteMatch {
	wanted := make([]string, 0, len(notes))
	for _, n := range notes {
		if n = NormalizeKeyword(n); n != "" {
			wanted = append(wanted, n)
		}
	}
	if len(wanted) == 0 {
		return nil
	}

	var out []NoteMatch
	for _, p := range c.items {
		if gender != nil && !p.SuitsGender(*gender) {
			continue
		}
		var matched []string
		for _, w := range wanted {
			if ContainsKeyword(p.Notes, w) {
				matched = append(matched, w)
			}
		}
		if len(matched) > 0 {
			out = append(out, NoteMatch{Perfume: p.clone(), MatchedNotes: matched})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i].MatchedNotes) > len(out[j].MatchedNotes)
	})
	return out
}

// Brands returns the sorted set of brand names
func (c *Catalog) Brands() []string {
	seen := make(map[string]bool)
	var brands []string
	for _, p := range c.items {
		if !seen[p.Brand] {
			seen[p.Brand] = true
			brands = append(brands, p.Brand)
		}
	}
	sort.Strings(brands)
	return brands
}

// Notes returns the sorted set of normalized scent notes
func (c *Catalog) Notes() []string {
	seen := make(map[string]bool)
	var notes []string
	for _, p := range c.items {
		for _, n := range p.Notes {
			n = NormalizeKeyword(n)
			if n != "" && !seen[n] {
				seen[n] = true
				notes = append(notes, n)
			}
		}
	}
	sort.Strings(notes)
	return notes
}

// NormalizeKeyword lower-cases and trims a note or characteristic.
// Every keyword comparison in the module goes through it.
func NormalizeKeyword(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ContainsKeyword reports whether list contains keyword after normalization
func ContainsKeyword(list []string, keyword string) bool {
	keyword = NormalizeKeyword(keyword)
	for _, v := range list {
		if NormalizeKeyword(v) == keyword {
			return true
		}
	}
	return false
}
