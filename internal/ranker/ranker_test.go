package ranker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docrank/internal/domain"
)

func scored(doc string, page int, score float64) domain.ScoredSection {
	return domain.ScoredSection{
		Section: domain.Section{Document: doc, Page: page, Title: "T", Body: "b"},
		Score:   score,
	}
}

func TestRankAssignsDenseRanks(t *testing.T) {
	in := []domain.ScoredSection{
		scored("a.pdf", 1, 0.2),
		scored("a.pdf", 2, 0.9),
		scored("b.pdf", 1, 0.5),
	}
	top, all := Rank(in, 0)

	require.Len(t, all, 3)
	assert.Equal(t, all, top)
	for i, rs := range all {
		assert.Equal(t, i+1, rs.Rank)
	}
	assert.Equal(t, 0.9, all[0].Score)
	assert.Equal(t, 0.2, all[2].Score)
}

func TestRankTieBreaksByDocumentThenPage(t *testing.T) {
	in := []domain.ScoredSection{
		scored("b.pdf", 1, 0.5),
		scored("a.pdf", 2, 0.5),
		scored("a.pdf", 1, 0.5),
	}
	_, all := Rank(in, 0)

	assert.Equal(t, "a.pdf", all[0].Document)
	assert.Equal(t, 1, all[0].Page)
	assert.Equal(t, "a.pdf", all[1].Document)
	assert.Equal(t, 2, all[1].Page)
	assert.Equal(t, "b.pdf", all[2].Document)
}

func TestRankTruncation(t *testing.T) {
	in := []domain.ScoredSection{
		scored("a.pdf", 1, 0.1),
		scored("a.pdf", 2, 0.2),
		scored("a.pdf", 3, 0.3),
		scored("a.pdf", 4, 0.4),
		scored("a.pdf", 5, 0.5),
	}
	top, all := Rank(in, 2)

	require.Len(t, top, 2)
	require.Len(t, all, 5)
	assert.Equal(t, 1, top[0].Rank)
	assert.Equal(t, 2, top[1].Rank)
	assert.Equal(t, 5, all[4].Rank)
}

func TestRankDoesNotMutateInput(t *testing.T) {
	in := []domain.ScoredSection{
		scored("a.pdf", 1, 0.1),
		scored("a.pdf", 2, 0.9),
	}
	Rank(in, 0)
	assert.Equal(t, 0.1, in[0].Score)
}

func TestRankDeterminism(t *testing.T) {
	in := []domain.ScoredSection{
		scored("c.pdf", 3, 0.5),
		scored("a.pdf", 7, 0.5),
		scored("b.pdf", 2, 0.8),
	}
	_, first := Rank(in, 0)
	_, second := Rank(in, 0)
	assert.Equal(t, first, second)
}
