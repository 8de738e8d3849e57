package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docrank/internal/domain"
)

type stubEngine struct{}

func (stubEngine) Run(docs []domain.Document, persona, job string) *domain.Result {
	return &domain.Result{}
}

func TestSplitPersonaJob(t *testing.T) {
	p, j := splitPersonaJob("ML Researcher :: study GNN methods")
	assert.Equal(t, "ML Researcher", p)
	assert.Equal(t, "study GNN methods", j)

	p, j = splitPersonaJob("just a job line")
	assert.Equal(t, "", p)
	assert.Equal(t, "just a job line", j)
}

func TestWindowSizeFloorsViewport(t *testing.T) {
	m := New(stubEngine{}, nil, "Analyst", "review")

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 5, Height: 4})
	got, ok := updated.(Model)
	require.True(t, ok)
	assert.GreaterOrEqual(t, got.viewport.Width, 20)
	assert.GreaterOrEqual(t, got.viewport.Height, 3)
}

func TestHighlightKeywordsNoQueryJoinsSentences(t *testing.T) {
	out := highlightKeywords("One sentence. Another one.", "the and of")
	assert.Equal(t, "One sentence. Another one.", out)
}
