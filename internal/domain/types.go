package domain

// LineStyle carries font metadata for a single line of page text, when the
// extraction collaborator can provide it. Line is the 0-based index into the
// page's newline-split text.
type LineStyle struct {
	Line     int
	FontSize float64
	Bold     bool
}

// Page is one page of raw extracted text. Styles is optional and may be nil
// or cover only a subset of lines.
type Page struct {
	Number int
	Text   string
	Styles []LineStyle
}

// Document is a single source file loaded into the system.
type Document struct {
	ID    string
	Pages []Page
}

// Section is a titled unit of a page's text produced by the segmenter.
// Body is never empty; Title is a detected heading or a synthesized fallback.
type Section struct {
	Document    string
	Page        int
	Title       string
	Body        string
	StartOffset int
}

// Query is the immutable relevance query built once per run from the persona
// and job-to-be-done texts.
type Query struct {
	Persona  string
	Job      string
	Combined string
	Keywords map[string]struct{}
}

// Empty reports whether the query carries no usable text.
func (q Query) Empty() bool { return q.Combined == "" }

// HasKeyword reports whether tok is part of the query keyword set.
func (q Query) HasKeyword(tok string) bool {
	_, ok := q.Keywords[tok]
	return ok
}

// SubScores are the scorer's component signals, kept for diagnostics.
// SemanticOK is false when the embedding backend failed and the semantic
// term was excluded with weights renormalized over the remaining two.
type SubScores struct {
	Semantic   float64
	Keyword    float64
	Quality    float64
	SemanticOK bool
}

// ScoredSection is a section with its composite relevance score.
type ScoredSection struct {
	Section
	Score float64
	Sub   SubScores
}

// RankedSection is a scored section with its global importance rank
// (1 = most relevant, dense across the whole multi-document set).
type RankedSection struct {
	ScoredSection
	Rank int
}

// Excerpt is the refined sub-section text for one top-ranked section,
// carrying its parent's rank and score.
type Excerpt struct {
	Document    string
	Page        int
	Title       string
	RefinedText string
	Rank        int
	Score       float64
}

// Result is the full output of one pipeline run. Sections is truncated to
// the configured top N; All retains the complete ranked list.
type Result struct {
	Sections []RankedSection
	Excerpts []Excerpt
	All      []RankedSection
}
