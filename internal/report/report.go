package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"docrank/internal/domain"
)

// Report is the persisted output record: the engine's ranked sections and
// excerpts embedded alongside run metadata owned by this collaborator.
type Report struct {
	Metadata           Metadata          `json:"metadata"`
	ExtractedSections  []SectionEntry    `json:"extracted_sections"`
	SubsectionAnalysis []SubsectionEntry `json:"subsection_analysis"`
}

type Metadata struct {
	InputDocuments        []string `json:"input_documents"`
	Persona               string   `json:"persona"`
	JobToBeDone           string   `json:"job_to_be_done"`
	ProcessingTimestamp   string   `json:"processing_timestamp"`
	ProcessingTimeSeconds float64  `json:"processing_time_seconds"`
}

type SectionEntry struct {
	Document       string  `json:"document"`
	PageNumber     int     `json:"page_number"`
	SectionTitle   string  `json:"section_title"`
	ImportanceRank int     `json:"importance_rank"`
	RelevanceScore float64 `json:"relevance_score"`
}

type SubsectionEntry struct {
	Document       string  `json:"document"`
	PageNumber     int     `json:"page_number"`
	SectionTitle   string  `json:"section_title"`
	RefinedText    string  `json:"refined_text"`
	ImportanceRank int     `json:"importance_rank"`
	RelevanceScore float64 `json:"relevance_score"`
}

// Build assembles the report from a pipeline result. Scores are rounded to
// four decimals for the persisted record.
func Build(res *domain.Result, inputs []string, persona, job string, started time.Time, elapsed time.Duration) *Report {
	r := &Report{
		Metadata: Metadata{
			InputDocuments:        inputs,
			Persona:               persona,
			JobToBeDone:           job,
			ProcessingTimestamp:   started.Format(time.RFC3339),
			ProcessingTimeSeconds: math.Round(elapsed.Seconds()*100) / 100,
		},
		ExtractedSections:  make([]SectionEntry, 0, len(res.Sections)),
		SubsectionAnalysis: make([]SubsectionEntry, 0, len(res.Excerpts)),
	}
	for _, s := range res.Sections {
		r.ExtractedSections = append(r.ExtractedSections, SectionEntry{
			Document:       s.Document,
			PageNumber:     s.Page,
			SectionTitle:   s.Title,
			ImportanceRank: s.Rank,
			RelevanceScore: round4(s.Score),
		})
	}
	for _, x := range res.Excerpts {
		r.SubsectionAnalysis = append(r.SubsectionAnalysis, SubsectionEntry{
			Document:       x.Document,
			PageNumber:     x.Page,
			SectionTitle:   x.Title,
			RefinedText:    x.RefinedText,
			ImportanceRank: x.Rank,
			RelevanceScore: round4(x.Score),
		})
	}
	return r
}

// Encode writes the indented JSON record to w.
func (r *Report) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(r)
}

// WriteFile persists the report to path.
func (r *Report) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()
	if err := r.Encode(f); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
