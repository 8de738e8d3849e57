package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docrank/internal/domain"
)

func sampleResult() *domain.Result {
	rs := domain.RankedSection{
		ScoredSection: domain.ScoredSection{
			Section: domain.Section{Document: "a.pdf", Page: 3, Title: "Methods", Body: "body"},
			Score:   0.123456,
		},
		Rank: 1,
	}
	return &domain.Result{
		Sections: []domain.RankedSection{rs},
		Excerpts: []domain.Excerpt{{
			Document: "a.pdf", Page: 3, Title: "Methods",
			RefinedText: "The key finding.", Rank: 1, Score: 0.123456,
		}},
		All: []domain.RankedSection{rs},
	}
}

func TestBuildRoundsScores(t *testing.T) {
	started := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	rep := Build(sampleResult(), []string{"a.pdf"}, "Analyst", "review", started, 1234*time.Millisecond)

	require.Len(t, rep.ExtractedSections, 1)
	assert.Equal(t, 0.1235, rep.ExtractedSections[0].RelevanceScore)
	assert.Equal(t, 0.1235, rep.SubsectionAnalysis[0].RelevanceScore)
	assert.Equal(t, 1.23, rep.Metadata.ProcessingTimeSeconds)
	assert.Equal(t, "2026-08-30T12:00:00Z", rep.Metadata.ProcessingTimestamp)
}

func TestEncodeFieldNames(t *testing.T) {
	rep := Build(sampleResult(), []string{"a.pdf"}, "Analyst", "review", time.Now(), time.Second)

	var buf bytes.Buffer
	require.NoError(t, rep.Encode(&buf))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Contains(t, decoded, "metadata")
	require.Contains(t, decoded, "extracted_sections")
	require.Contains(t, decoded, "subsection_analysis")

	meta := decoded["metadata"].(map[string]any)
	assert.Equal(t, "Analyst", meta["persona"])
	assert.Equal(t, "review", meta["job_to_be_done"])

	first := decoded["extracted_sections"].([]any)[0].(map[string]any)
	assert.Equal(t, "a.pdf", first["document"])
	assert.Equal(t, float64(3), first["page_number"])
	assert.Equal(t, float64(1), first["importance_rank"])

	sub := decoded["subsection_analysis"].([]any)[0].(map[string]any)
	assert.Equal(t, "The key finding.", sub["refined_text"])
}

func TestEmptyResultEncodesEmptyLists(t *testing.T) {
	rep := Build(&domain.Result{}, nil, "", "", time.Now(), 0)

	var buf bytes.Buffer
	require.NoError(t, rep.Encode(&buf))
	assert.Contains(t, buf.String(), `"extracted_sections": []`)
	assert.Contains(t, buf.String(), `"subsection_analysis": []`)
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	rep := Build(sampleResult(), []string{"a.pdf"}, "Analyst", "review", time.Now(), time.Second)
	require.NoError(t, rep.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var loaded Report
	require.NoError(t, json.Unmarshal(data, &loaded))
	assert.Equal(t, "Analyst", loaded.Metadata.Persona)
	assert.Len(t, loaded.ExtractedSections, 1)
}
