package recommend

import (
	"context"
	"log"
	"sort"

	"github.com/vijay-prabhu/perfume-finder/internal/catalog"
)

// Source identifies which engine produced a set of recommendations
type Source string

const (
	SourceAI    Source = "ai"
	SourceLocal Source = "local"
)

// Suggestion is a recommendation returned by an external provider
type Suggestion struct {
	ID           string   `json:"id"`
	MatchScore   int      `json:"matchScore"`
	MatchReasons []string `json:"matchReasons"`
}

// Provider is an external recommendation engine tried before the local scorer
type Provider interface {
	Recommend(ctx context.Context, s Survey, limit int) ([]Suggestion, error)
}

// Outcome is the result of a recommendation request
type Outcome struct {
	Source          Source   `json:"source"`
	Recommendations []Result `json:"recommendations"`
}

// Service recommends perfumes from a catalog, preferring an external provider
// and falling back to the local scorer on any provider failure.
type Service struct {
	catalog  *catalog.Catalog
	provider Provider
}

// NewService creates a recommendation service. provider may be nil.
func NewService(cat *catalog.Catalog, provider Provider) *Service {
	return &Service{
		catalog:  cat,
		provider: provider,
	}
}

// Recommend validates the survey and returns at most limit recommendations
func (s *Service) Recommend(ctx context.Context, survey Survey, limit int) (*Outcome, error) {
	if err := survey.Validate(); err != nil {
		return nil, err
	}

	if s.provider != nil && limit > 0 {
		results, err := s.fromProvider(ctx, survey, limit)
		if err == nil && len(results) > 0 {
			return &Outcome{Source: SourceAI, Recommendations: results}, nil
		}
		if err != nil {
			log.Printf("AI recommendations unavailable, using local scorer: %v", err)
		}
	}

	return &Outcome{
		Source:          SourceLocal,
		Recommendations: Recommend(s.catalog.All(), survey, limit),
	}, nil
}

// fromProvider resolves provider suggestions against the catalog. Unknown and
// repeated IDs are dropped, scores are floored at zero and non-positive ones
// discarded, and the rest are ranked best first like the local scorer.
func (s *Service) fromProvider(ctx context.Context, survey Survey, limit int) ([]Result, error) {
	suggestions, err := s.provider.Recommend(ctx, survey, limit)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(suggestions))
	seen := make(map[string]bool)
	for _, sg := range suggestions {
		if seen[sg.ID] {
			continue
		}
		p, ok := s.catalog.Get(sg.ID)
		if !ok {
			continue
		}
		seen[sg.ID] = true

		score := max(sg.MatchScore, 0)
		if score <= 0 {
			continue
		}
		results = append(results, Result{
			Perfume:      p,
			MatchScore:   score,
			MatchReasons: sg.MatchReasons,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchScore > results[j].MatchScore
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}
