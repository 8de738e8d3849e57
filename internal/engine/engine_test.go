package engine

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docrank/internal/domain"
	"docrank/internal/embedding/tfidf"
	"docrank/internal/refiner"
	"docrank/internal/scorer"
	"docrank/internal/segmenter"
)

func newTestEngine(topN int) *Engine {
	return New(
		segmenter.New(0),
		scorer.New(scorer.DefaultWeights(), 0),
		refiner.New(4, 500),
		tfidf.NewEmbedder(),
		topN,
	)
}

func testDocs() []domain.Document {
	pageA := domain.Page{Number: 1, Text: "1. Introduction\n" +
		"this opening section talks broadly about the report structure and thanks the many people involved. " +
		"it lists chapters, acknowledges reviewers, and promises details later in the text for readers."}
	pageB := domain.Page{Number: 1, Text: "METHODOLOGY\n" +
		"we study graph neural networks, known as GNN models, and compare GNN training methods in depth. " +
		"the graph structure of the data drives the choice of methods, and each GNN variant is evaluated " +
		"on several benchmark graph datasets using identical methods and shared evaluation settings throughout."}
	return []domain.Document{
		{ID: "docA.pdf", Pages: []domain.Page{pageA}},
		{ID: "docB.pdf", Pages: []domain.Page{pageB}},
	}
}

func TestRunRanksRelevantSectionFirst(t *testing.T) {
	eng := newTestEngine(10)
	res := eng.Run(testDocs(), "ML Researcher", "study GNN methods")

	require.Len(t, res.Sections, 2)
	assert.Equal(t, "docB.pdf", res.Sections[0].Document)
	assert.Equal(t, 1, res.Sections[0].Rank)
	assert.Equal(t, "docA.pdf", res.Sections[1].Document)
	assert.Equal(t, 2, res.Sections[1].Rank)
	assert.Greater(t, res.Sections[0].Score, res.Sections[1].Score)
}

func TestRunEmptyQueryDegradesGracefully(t *testing.T) {
	eng := newTestEngine(10)
	res := eng.Run(testDocs(), "", "")

	require.Len(t, res.Sections, 2)
	for _, s := range res.Sections {
		assert.Zero(t, s.Sub.Keyword)
		assert.Zero(t, s.Sub.Semantic)
	}
	assert.Len(t, res.Excerpts, 2)
}

func TestRunExcludesEmptyDocuments(t *testing.T) {
	docs := append(testDocs(), domain.Document{
		ID:    "empty.pdf",
		Pages: []domain.Page{{Number: 1, Text: "   \n "}},
	})
	eng := newTestEngine(10)
	res := eng.Run(docs, "ML Researcher", "study GNN methods")

	require.Len(t, res.Sections, 2)
	for _, s := range res.Sections {
		assert.NotEqual(t, "empty.pdf", s.Document)
	}
}

func TestRunNoDocuments(t *testing.T) {
	eng := newTestEngine(10)
	res := eng.Run(nil, "Analyst", "review")
	assert.Empty(t, res.Sections)
	assert.Empty(t, res.Excerpts)
	assert.Empty(t, res.All)
}

func TestRunIsDeterministic(t *testing.T) {
	eng := newTestEngine(10)
	first := eng.Run(testDocs(), "ML Researcher", "study GNN methods")
	second := eng.Run(testDocs(), "ML Researcher", "study GNN methods")
	assert.Equal(t, first, second)
}

func TestRunTruncatesToTopN(t *testing.T) {
	var pages []domain.Page
	for i := 1; i <= 5; i++ {
		pages = append(pages, domain.Page{Number: i, Text: strings.Repeat("plain prose about assorted topics fills this page nicely. ", 6)})
	}
	docs := []domain.Document{{ID: "big.pdf", Pages: pages}}

	eng := newTestEngine(3)
	res := eng.Run(docs, "Analyst", "find anything")

	assert.Len(t, res.Sections, 3)
	assert.Len(t, res.Excerpts, 3)
	assert.Len(t, res.All, 5)
}

type failingEmbedder struct{}

func (failingEmbedder) Name() string           { return "failing" }
func (failingEmbedder) Prepare([]string) error { return errors.New("model unavailable") }
func (failingEmbedder) Dimension() int         { return 0 }
func (failingEmbedder) Embed(string) ([]float64, error) {
	return nil, errors.New("model unavailable")
}

func TestRunDegradesWhenEmbedderFails(t *testing.T) {
	eng := New(segmenter.New(0), scorer.New(scorer.DefaultWeights(), 0), refiner.New(4, 500), failingEmbedder{}, 10)
	res := eng.Run(testDocs(), "ML Researcher", "study GNN methods")

	require.Len(t, res.Sections, 2)
	for _, s := range res.Sections {
		assert.False(t, s.Sub.SemanticOK)
	}
	// Keyword overlap still separates the documents.
	assert.Equal(t, "docB.pdf", res.Sections[0].Document)
}

func TestRunWithoutEmbedder(t *testing.T) {
	eng := New(segmenter.New(0), scorer.New(scorer.DefaultWeights(), 0), refiner.New(4, 500), nil, 10)
	res := eng.Run(testDocs(), "ML Researcher", "study GNN methods")
	require.Len(t, res.Sections, 2)
	assert.False(t, res.Sections[0].Sub.SemanticOK)
}
