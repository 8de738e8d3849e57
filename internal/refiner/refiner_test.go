package refiner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docrank/internal/domain"
	"docrank/internal/query"
)

func ranked(body string) domain.RankedSection {
	return domain.RankedSection{
		ScoredSection: domain.ScoredSection{
			Section: domain.Section{Document: "doc.pdf", Page: 2, Title: "Methods", Body: body},
			Score:   0.73,
		},
		Rank: 1,
	}
}

func TestRefineShortBodyKeptWhole(t *testing.T) {
	r := New(4, 500)
	q := query.Build("Analyst", "review methods")
	body := "First sentence here. Second sentence there. Third one closes."

	ex := r.Refine(ranked(body), q, nil, nil)
	assert.Equal(t, "First sentence here. Second sentence there. Third one closes.", ex.RefinedText)
}

func TestRefineShortBodyWithTrailingFragmentKeptWhole(t *testing.T) {
	r := New(4, 500)
	q := query.Build("Analyst", "review methods")
	body := "The method works well. Key limitations include memory use and training time"

	ex := r.Refine(ranked(body), q, nil, nil)
	assert.Equal(t, body, ex.RefinedText)
}

func TestRefineCarriesRankAndScore(t *testing.T) {
	r := New(4, 500)
	ex := r.Refine(ranked("Some body text."), query.Build("", ""), nil, nil)
	assert.Equal(t, 1, ex.Rank)
	assert.Equal(t, 0.73, ex.Score)
	assert.Equal(t, "doc.pdf", ex.Document)
	assert.Equal(t, 2, ex.Page)
	assert.Equal(t, "Methods", ex.Title)
}

func TestRefineSelectsByQueryButKeepsOriginalOrder(t *testing.T) {
	r := New(2, 500)
	q := query.Build("", "graph gnn")
	body := strings.Join([]string{
		"Opening remarks say nothing relevant.",
		"The gnn graph approach works well.",
		"An aside about formatting conventions.",
		"Another unrelated digression follows.",
		"Later the graph gnn idea returns again.",
		"Closing remarks wrap everything up.",
	}, " ")

	ex := r.Refine(ranked(body), q, nil, nil)
	require.Equal(t, "The gnn graph approach works well. Later the graph gnn idea returns again.", ex.RefinedText)
}

func TestRefineWhitespaceBodyFallsBack(t *testing.T) {
	r := New(4, 500)
	sec := ranked("   \n\t  ")
	ex := r.Refine(sec, query.Build("Analyst", "anything"), nil, nil)
	assert.Equal(t, "", ex.RefinedText)
	assert.Equal(t, 1, ex.Rank)
}

func TestRefineRespectsCharCap(t *testing.T) {
	r := New(3, 40)
	body := "A first sentence that is fairly long on its own. A second long sentence follows it. And a third sentence too. Plus a fourth."
	ex := r.Refine(ranked(body), query.Build("", ""), nil, nil)
	assert.LessOrEqual(t, len(ex.RefinedText), 40)
	assert.NotEmpty(t, ex.RefinedText)
}
