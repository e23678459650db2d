package recommend

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vijay-prabhu/perfume-finder/internal/catalog"
)

// Point values for each scoring rule
const (
	genderPoints       = 20
	agePoints          = 15
	budgetPoints       = 15
	likedNotePoints    = 5
	dislikedNotePoints = 10
	preferenceMax      = 5
	preferenceFactor   = 3
	occasionPoints     = 5
)

// DefaultLimit is the number of recommendations returned when the caller does not choose
const DefaultLimit = 3

// Result is a ranked perfume with its score and the reasons it matched
type Result struct {
	Perfume      catalog.Perfume `json:"perfume"`
	MatchScore   int             `json:"matchScore"`
	MatchReasons []string        `json:"matchReasons"`
}

// breakdown records what each rule contributed for one perfume
type breakdown struct {
	gated           bool
	age             bool
	budget          bool
	likedMatches    []string
	dislikedMatches int
	preference      int
	occasionMatches int
}

func (b breakdown) total() int {
	if b.gated {
		return 0
	}

	score := genderPoints
	if b.age {
		score += agePoints
	}
	if b.budget {
		score += budgetPoints
	}
	score += len(b.likedMatches) * likedNotePoints
	score -= b.dislikedMatches * dislikedNotePoints
	score += b.preference
	score += b.occasionMatches * occasionPoints

	return max(score, 0)
}

// evaluate runs every rule against the perfume. The gender gate short-circuits.
func evaluate(p *catalog.Perfume, s *Survey) breakdown {
	if !p.SuitsGender(s.Gender) {
		return breakdown{gated: true}
	}

	b := breakdown{
		age: p.AgeRange.Contains(s.Age),
	}

	if r, ok := BudgetRange(s.Budget); ok {
		b.budget = r.Contains(p.Price)
	}

	for _, note := range s.LikedNotes {
		if catalog.ContainsKeyword(p.Notes, note) {
			b.likedMatches = append(b.likedMatches, catalog.NormalizeKeyword(note))
		}
	}

	for _, note := range s.DislikedNotes {
		if catalog.ContainsKeyword(p.Notes, note) {
			b.dislikedMatches++
		}
	}

	if p.Rating != nil {
		prefs := s.Preferences
		b.preference += proximity(p.Rating.Sweetness, prefs.Sweetness)
		b.preference += proximity(p.Rating.Longevity, prefs.Longevity)
		b.preference += proximity(p.Rating.Sillage, prefs.Sillage)
		b.preference += proximity(p.Rating.Uniqueness, prefs.Uniqueness)
	}

	keywords := occasionKeywords[s.Occasion]
	for _, c := range p.Characteristics {
		if catalog.ContainsKeyword(keywords, c) {
			b.occasionMatches++
		}
	}

	return b
}

// proximity rewards a preference close to the perfume's rating.
// A value missing on either side contributes nothing.
func proximity(rating, pref *int) int {
	if rating == nil || pref == nil {
		return 0
	}
	diff := *rating - *pref
	if diff < 0 {
		diff = -diff
	}
	return (preferenceMax - diff) * preferenceFactor
}

// Score computes the match score of a perfume for the survey. It is never negative.
func Score(p catalog.Perfume, s Survey) int {
	return evaluate(&p, &s).total()
}

// Explain lists human-readable reasons the perfume matches the survey.
// Only rules that contributed points produce a reason; a perfume excluded by
// the gender gate has none.
func Explain(p catalog.Perfume, s Survey) []string {
	return reasons(&p, &s, evaluate(&p, &s))
}

func reasons(p *catalog.Perfume, s *Survey, b breakdown) []string {
	if b.gated {
		return nil
	}

	out := []string{genderReason(p.Gender)}

	if b.age {
		out = append(out, fmt.Sprintf("Popular with wearers aged %d-%d", p.AgeRange.Min, p.AgeRange.Max))
	}
	if b.budget {
		r, _ := BudgetRange(s.Budget)
		out = append(out, fmt.Sprintf("Fits your %s budget (%s)", s.Budget, r))
	}
	if len(b.likedMatches) > 0 {
		out = append(out, "Contains notes you love: "+strings.Join(uniqueKeywords(b.likedMatches), ", "))
	}
	if b.occasionMatches > 0 {
		out = append(out, "Well suited for "+occasionPhrase(s.Occasion))
	}

	return out
}

// uniqueKeywords drops repeated keywords, keeping first-seen order
func uniqueKeywords(keywords []string) []string {
	seen := make(map[string]bool, len(keywords))
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}

func genderReason(g catalog.Gender) string {
	switch g {
	case catalog.GenderMale:
		return "Designed for men"
	case catalog.GenderFemale:
		return "Designed for women"
	default:
		return "Unisex scent that suits anyone"
	}
}

func occasionPhrase(o Occasion) string {
	switch o {
	case OccasionDaily:
		return "everyday wear"
	case OccasionSpecial:
		return "special occasions"
	case OccasionNight:
		return "evenings out"
	case OccasionWork:
		return "the workplace"
	default:
		return string(o)
	}
}

// Recommend ranks perfumes for the survey and returns at most limit results.
// Perfumes scoring zero are dropped; equal scores keep catalog order.
// The inputs are not modified, so concurrent calls are safe.
func Recommend(items []catalog.Perfume, s Survey, limit int) []Result {
	if limit <= 0 {
		return []Result{}
	}

	results := make([]Result, 0, len(items))
	for i := range items {
		p := &items[i]
		b := evaluate(p, &s)
		score := b.total()
		if score <= 0 {
			continue
		}
		results = append(results, Result{
			Perfume:      *p,
			MatchScore:   score,
			MatchReasons: reasons(p, &s, b),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchScore > results[j].MatchScore
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}
