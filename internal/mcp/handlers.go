package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/vijay-prabhu/perfume-finder/internal/catalog"
	"github.com/vijay-prabhu/perfume-finder/internal/recommend"
)

const defaultListLimit = 20

func (s *Server) registerHandlers() {
	s.handlers["list_perfumes"] = s.handleListPerfumes
	s.handlers["get_perfume"] = s.handleGetPerfume
	s.handlers["search_perfumes"] = s.handleSearchPerfumes
	s.handlers["find_perfumes_by_notes"] = s.handleFindByNotes
}

func parseGender(value string) (*catalog.Gender, error) {
	if value == "" {
		return nil, nil
	}
	g := catalog.Gender(strings.ToLower(value))
	if !g.Valid() {
		return nil, fmt.Errorf("invalid gender %q (use male, female or unisex)", value)
	}
	return &g, nil
}

type listPerfumesParams struct {
	Gender   string  `json:"gender"`
	Brand    string  `json:"brand"`
	MaxPrice float64 `json:"max_price"`
	Limit    int     `json:"limit"`
}

func (s *Server) handleListPerfumes(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p listPerfumesParams
	if params != nil {
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, fmt.Errorf("invalid parameters: %w", err)
		}
	}

	gender, err := parseGender(p.Gender)
	if err != nil {
		return nil, err
	}

	opts := catalog.ListOptions{Gender: gender, Limit: defaultListLimit}
	if p.Brand != "" {
		opts.Brand = &p.Brand
	}
	if p.MaxPrice > 0 {
		opts.MaxPrice = &p.MaxPrice
	}
	if p.Limit > 0 {
		opts.Limit = p.Limit
	}

	perfumes := s.catalog.List(opts)
	if perfumes == nil {
		perfumes = []catalog.Perfume{}
	}
	return perfumes, nil
}

type getPerfumeParams struct {
	ID string `json:"id"`
}

func (s *Server) handleGetPerfume(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p getPerfumeParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	if p.ID == "" {
		return nil, fmt.Errorf("id is required")
	}

	perfume, ok := s.catalog.Get(p.ID)
	if !ok {
		return nil, fmt.Errorf("perfume not found: %s", p.ID)
	}
	return perfume, nil
}

type searchPerfumesParams struct {
	Query string `json:"query"`
}

func (s *Server) handleSearchPerfumes(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p searchPerfumesParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	if strings.TrimSpace(p.Query) == "" {
		return nil, fmt.Errorf("query is required")
	}

	perfumes := s.catalog.Search(p.Query)
	if perfumes == nil {
		perfumes = []catalog.Perfume{}
	}
	return perfumes, nil
}

type findByNotesParams struct {
	Notes  []string `json:"notes"`
	Gender string   `json:"gender"`
}

func (s *Server) handleFindByNotes(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p findByNotesParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	if len(p.Notes) == 0 {
		return nil, fmt.Errorf("at least one note is required")
	}

	gender, err := parseGender(p.Gender)
	if err != nil {
		return nil, err
	}

	matches := s.catalog.ByNotes(p.Notes, gender)
	if matches == nil {
		matches = []catalog.NoteMatch{}
	}
	return matches, nil
}

// Resource handlers

func (s *Server) handleReadResource(ctx context.Context, uri string) (string, error) {
	switch uri {
	case "perfume://catalog":
		return s.getResourceCatalog(), nil
	case "perfume://brands":
		return s.getResourceBrands(), nil
	case "perfume://notes":
		return s.getResourceNotes(), nil
	case "perfume://survey-stats":
		return s.getResourceSurveyStats(ctx)
	default:
		return "", fmt.Errorf("unknown resource: %s", uri)
	}
}

var budgetOrder = []recommend.Budget{
	recommend.BudgetLow,
	recommend.BudgetMedium,
	recommend.BudgetHigh,
	recommend.BudgetLuxury,
}

func (s *Server) getResourceCatalog() string {
	byGender := make(map[catalog.Gender]int)
	byBudget := make(map[recommend.Budget]int)
	for _, p := range s.catalog.All() {
		byGender[p.Gender]++
		for _, b := range budgetOrder {
			if r, _ := recommend.BudgetRange(b); r.Contains(p.Price) {
				byBudget[b]++
				break
			}
		}
	}

	var b strings.Builder
	b.WriteString("Perfume Catalog\n===============\n")
	fmt.Fprintf(&b, "Total Perfumes: %d\n", s.catalog.Len())
	fmt.Fprintf(&b, "  - Male:   %d\n", byGender[catalog.GenderMale])
	fmt.Fprintf(&b, "  - Female: %d\n", byGender[catalog.GenderFemale])
	fmt.Fprintf(&b, "  - Unisex: %d\n", byGender[catalog.GenderUnisex])
	b.WriteString("\nBy Budget:\n")
	for _, budget := range budgetOrder {
		r, _ := recommend.BudgetRange(budget)
		fmt.Fprintf(&b, "  - %-7s (%s): %d\n", budget, r, byBudget[budget])
	}
	return b.String()
}

func (s *Server) getResourceBrands() string {
	byBrand := make(map[string][]string)
	for _, p := range s.catalog.All() {
		byBrand[p.Brand] = append(byBrand[p.Brand], p.Name)
	}

	var b strings.Builder
	b.WriteString("Brands\n======\n\n")
	for _, brand := range s.catalog.Brands() {
		fmt.Fprintf(&b, "%s (%d):\n", brand, len(byBrand[brand]))
		for _, name := range byBrand[brand] {
			fmt.Fprintf(&b, "  - %s\n", name)
		}
	}
	return b.String()
}

func (s *Server) getResourceNotes() string {
	notes := s.catalog.Notes()

	var b strings.Builder
	fmt.Fprintf(&b, "Scent Notes (%d)\n================\n\n", len(notes))
	b.WriteString(strings.Join(notes, ", "))
	b.WriteString("\n")
	return b.String()
}

func (s *Server) getResourceSurveyStats(ctx context.Context) (string, error) {
	result := "Quiz Statistics\n===============\n\n"

	if s.db == nil {
		result += "Quiz statistics are unavailable: no database is configured.\n"
		return result, nil
	}

	stats, err := s.db.GetStats(ctx, nil)
	if err != nil {
		return "", err
	}

	if stats.TotalSubmissions == 0 {
		result += "No quiz submissions yet.\n"
		return result, nil
	}

	result += fmt.Sprintf(`Total Submissions: %d
Average Age:       %.1f
Served by AI:      %d
Served locally:    %d
No matches:        %d
`, stats.TotalSubmissions, stats.AverageAge, stats.AIServed, stats.LocalServed, stats.NoMatches)

	result += countSection("By Gender", stats.ByGender)
	result += countSection("By Occasion", stats.ByOccasion)
	result += countSection("By Budget", stats.ByBudget)
	return result, nil
}

func countSection(title string, counts map[string]int) string {
	if len(counts) == 0 {
		return ""
	}
	out := fmt.Sprintf("\n%s:\n", title)
	for _, key := range sortedKeys(counts) {
		out += fmt.Sprintf("  - %s: %d\n", key, counts[key])
	}
	return out
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
