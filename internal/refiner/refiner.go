package refiner

import (
	"math"
	"sort"
	"strings"

	"docrank/internal/domain"
	"docrank/internal/embedding"
	"docrank/internal/textutil"
)

// Refiner condenses top-ranked sections to sentence-level excerpts. Sentences
// are scored against the query with the semantic and keyword signals (the
// quality term is omitted and the weights renormalized to 0.6/0.4), then the
// best ones are re-emitted in their original order of appearance.
type Refiner struct {
	maxSentences int
	maxChars     int
}

// New creates a refiner with a sentence-count budget and a character cap.
// Non-positive arguments select the defaults of 4 sentences and 500 chars.
func New(maxSentences, maxChars int) *Refiner {
	if maxSentences <= 0 {
		maxSentences = 4
	}
	if maxChars <= 0 {
		maxChars = 500
	}
	return &Refiner{maxSentences: maxSentences, maxChars: maxChars}
}

const (
	semanticWeight = 0.6
	keywordWeight  = 0.4
)

// Refine produces the excerpt for one ranked section, carrying over its rank
// and score. emb and queryVec come from the same run as the section scores;
// either may be nil, degrading sentence scoring to the keyword signal alone.
// Refinement never drops a section: a body with no extractable sentences
// falls back to the truncated original body.
func (r *Refiner) Refine(sec domain.RankedSection, q domain.Query, emb embedding.Embedder, queryVec []float64) domain.Excerpt {
	out := domain.Excerpt{
		Document: sec.Document,
		Page:     sec.Page,
		Title:    sec.Title,
		Rank:     sec.Rank,
		Score:    sec.Score,
	}

	sentences := textutil.Sentences(sec.Body)
	if len(sentences) == 0 {
		out.RefinedText = textutil.Truncate(textutil.Collapse(sec.Body), r.maxChars)
		return out
	}
	if len(sentences) <= r.maxSentences {
		out.RefinedText = textutil.Truncate(strings.Join(sentences, " "), r.maxChars)
		return out
	}

	type ranked struct {
		idx   int
		score float64
	}
	scores := make([]ranked, len(sentences))
	for i, sent := range sentences {
		scores[i] = ranked{idx: i, score: r.sentenceScore(sent, q, emb, queryVec)}
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].score > scores[j].score })

	selected := make([]int, r.maxSentences)
	for i := 0; i < r.maxSentences; i++ {
		selected[i] = scores[i].idx
	}
	sort.Ints(selected)

	parts := make([]string, 0, len(selected))
	for _, idx := range selected {
		parts = append(parts, sentences[idx])
	}
	out.RefinedText = textutil.Truncate(strings.Join(parts, " "), r.maxChars)
	return out
}

func (r *Refiner) sentenceScore(sentence string, q domain.Query, emb embedding.Embedder, queryVec []float64) float64 {
	kw := keywordOverlap(sentence, q)
	if emb == nil || queryVec == nil {
		return kw
	}
	vec, err := emb.Embed(sentence)
	if err != nil {
		return kw
	}
	sem := embedding.Cosine(vec, queryVec)
	if sem < 0 {
		sem = 0
	}
	return semanticWeight*sem + keywordWeight*kw
}

// keywordOverlap counts distinct query keywords present in the sentence,
// normalized by sqrt sentence length.
func keywordOverlap(sentence string, q domain.Query) float64 {
	if len(q.Keywords) == 0 {
		return 0
	}
	tokens := textutil.Keywords(sentence)
	if len(tokens) == 0 {
		return 0
	}
	seen := make(map[string]struct{}, len(tokens))
	hits := 0
	for _, tok := range tokens {
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		if q.HasKeyword(tok) {
			hits++
		}
	}
	score := float64(hits) / math.Sqrt(float64(len(tokens)))
	if score > 1 {
		return 1
	}
	return score
}
