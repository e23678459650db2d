package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vijay-prabhu/perfume-finder/internal/catalog"
)

type fakeProvider struct {
	suggestions []Suggestion
	err         error
	calls       int
}

func (f *fakeProvider) Recommend(ctx context.Context, s Survey, limit int) ([]Suggestion, error) {
	f.calls++
	return f.suggestions, f.err
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	return cat
}

func TestService_UsesProvider(t *testing.T) {
	provider := &fakeProvider{suggestions: []Suggestion{
		{ID: "oud-wood", MatchScore: 92, MatchReasons: []string{"Rich oud"}},
		{ID: "does-not-exist", MatchScore: 90},
		{ID: "oud-wood", MatchScore: 80},
		{ID: "aventus", MatchScore: 75},
	}}
	svc := NewService(testCatalog(t), provider)

	out, err := svc.Recommend(context.Background(), baseSurvey(), DefaultLimit)
	require.NoError(t, err)

	assert.Equal(t, SourceAI, out.Source)
	require.Len(t, out.Recommendations, 2)
	assert.Equal(t, "oud-wood", out.Recommendations[0].Perfume.ID)
	assert.Equal(t, 92, out.Recommendations[0].MatchScore)
	assert.Equal(t, "aventus", out.Recommendations[1].Perfume.ID)
}

func TestService_ProviderScoresRankedAndFloored(t *testing.T) {
	provider := &fakeProvider{suggestions: []Suggestion{
		{ID: "sauvage-edt", MatchScore: -5},
		{ID: "aventus", MatchScore: 40},
		{ID: "bleu-de-chanel-edp", MatchScore: 90},
		{ID: "oud-wood", MatchScore: 0},
		{ID: "black-orchid", MatchScore: 40},
	}}
	svc := NewService(testCatalog(t), provider)

	out, err := svc.Recommend(context.Background(), baseSurvey(), DefaultLimit)
	require.NoError(t, err)

	assert.Equal(t, SourceAI, out.Source)
	ids := make([]string, len(out.Recommendations))
	for i, r := range out.Recommendations {
		ids[i] = r.Perfume.ID
		assert.Positive(t, r.MatchScore)
	}
	assert.Equal(t, []string{"bleu-de-chanel-edp", "aventus", "black-orchid"}, ids)
}

func TestService_FallsBackWhenProviderScoresAreNotPositive(t *testing.T) {
	provider := &fakeProvider{suggestions: []Suggestion{
		{ID: "sauvage-edt", MatchScore: -5},
		{ID: "oud-wood", MatchScore: 0},
	}}
	svc := NewService(testCatalog(t), provider)

	out, err := svc.Recommend(context.Background(), baseSurvey(), DefaultLimit)
	require.NoError(t, err)
	assert.Equal(t, SourceLocal, out.Source)
}

func TestService_FallsBackOnError(t *testing.T) {
	cat := testCatalog(t)
	provider := &fakeProvider{err: errors.New("not implemented")}
	svc := NewService(cat, provider)

	s := baseSurvey()
	out, err := svc.Recommend(context.Background(), s, DefaultLimit)
	require.NoError(t, err)

	assert.Equal(t, 1, provider.calls)
	assert.Equal(t, SourceLocal, out.Source)
	assert.Equal(t, Recommend(cat.All(), s, DefaultLimit), out.Recommendations)
}

func TestService_FallsBackOnUnknownIDs(t *testing.T) {
	provider := &fakeProvider{suggestions: []Suggestion{{ID: "ghost"}}}
	svc := NewService(testCatalog(t), provider)

	out, err := svc.Recommend(context.Background(), baseSurvey(), DefaultLimit)
	require.NoError(t, err)
	assert.Equal(t, SourceLocal, out.Source)
}

func TestService_NoProvider(t *testing.T) {
	cat := testCatalog(t)
	svc := NewService(cat, nil)

	s := baseSurvey()
	out, err := svc.Recommend(context.Background(), s, 5)
	require.NoError(t, err)
	assert.Equal(t, SourceLocal, out.Source)
	assert.Equal(t, Recommend(cat.All(), s, 5), out.Recommendations)
}

func TestService_RejectsInvalidSurvey(t *testing.T) {
	provider := &fakeProvider{}
	svc := NewService(testCatalog(t), provider)

	s := baseSurvey()
	s.Budget = "cheap"

	_, err := svc.Recommend(context.Background(), s, DefaultLimit)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Zero(t, provider.calls)
}
