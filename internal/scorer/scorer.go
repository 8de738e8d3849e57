package scorer

import (
	"math"

	"docrank/internal/domain"
	"docrank/internal/embedding"
	"docrank/internal/textutil"
)

// Weights are the composite-score weights. They are renormalized over the
// keyword and quality terms when the semantic signal is unavailable.
type Weights struct {
	Semantic float64
	Keyword  float64
	Quality  float64
}

// DefaultWeights is the documented 0.5/0.3/0.2 split.
func DefaultWeights() Weights {
	return Weights{Semantic: 0.5, Keyword: 0.3, Quality: 0.2}
}

// A keyword occurring more often than this in one section stops counting,
// so repetition cannot grow the overlap signal without bound.
const repetitionCap = 3

// Scorer computes composite relevance scores. It is pure and stateless per
// call; every section can be scored independently of the others.
type Scorer struct {
	weights       Weights
	minBodyTokens int
	idealMin      int
	idealMax      int
}

// New creates a scorer. minBodyTokens <= 0 selects the default incomplete-
// section threshold of 10 tokens.
func New(w Weights, minBodyTokens int) *Scorer {
	if w.Semantic+w.Keyword+w.Quality <= 0 {
		w = DefaultWeights()
	}
	if minBodyTokens <= 0 {
		minBodyTokens = 10
	}
	return &Scorer{
		weights:       w,
		minBodyTokens: minBodyTokens,
		idealMin:      30,
		idealMax:      300,
	}
}

// Score returns the scored section for sec against q. secVec and queryVec
// are the pre-computed embeddings of the section text and the query combined
// text; either may be nil when the embedding backend failed, in which case
// the semantic term is excluded and the remaining weights renormalized.
func (s *Scorer) Score(sec domain.Section, q domain.Query, secVec, queryVec []float64) domain.ScoredSection {
	sub := domain.SubScores{SemanticOK: secVec != nil && queryVec != nil}
	if sub.SemanticOK {
		sub.Semantic = clamp01(embedding.Cosine(secVec, queryVec))
	}
	sub.Keyword = s.keywordScore(sec, q)
	sub.Quality = s.qualityScore(sec, q)

	ws, wk, wq := s.weights.Semantic, s.weights.Keyword, s.weights.Quality
	if !sub.SemanticOK {
		total := wk + wq
		if total > 0 {
			wk, wq = wk/total, wq/total
		}
		ws = 0
	}
	return domain.ScoredSection{
		Section: sec,
		Score:   ws*sub.Semantic + wk*sub.Keyword + wq*sub.Quality,
		Sub:     sub,
	}
}

// keywordScore measures query keyword occurrences in the section text,
// normalized by sqrt section length so long sections gain no free advantage.
func (s *Scorer) keywordScore(sec domain.Section, q domain.Query) float64 {
	if len(q.Keywords) == 0 {
		return 0
	}
	tokens := textutil.Keywords(sec.Title + " " + sec.Body)
	if len(tokens) == 0 {
		return 0
	}
	counts := make(map[string]int)
	matched := 0
	for _, tok := range tokens {
		if !q.HasKeyword(tok) {
			continue
		}
		if counts[tok] >= repetitionCap {
			continue
		}
		counts[tok]++
		matched++
	}
	return clamp01(float64(matched) / math.Sqrt(float64(len(tokens))))
}

// qualityScore is a deterministic content heuristic: a length-preference
// curve, a boost for query keywords in the title, and a penalty for bodies
// below the minimum token count.
func (s *Scorer) qualityScore(sec domain.Section, q domain.Query) float64 {
	bodyTokens := len(textutil.Tokenize(sec.Body))
	quality := 0.7 * s.lengthScore(bodyTokens)
	if titleHasKeyword(sec.Title, q) {
		quality += 0.3
	}
	if bodyTokens < s.minBodyTokens {
		quality -= 0.25
	}
	return clamp01(quality)
}

// lengthScore rises linearly up to the ideal minimum, stays flat through the
// ideal band, and decays hyperbolically past the ideal maximum.
func (s *Scorer) lengthScore(n int) float64 {
	switch {
	case n <= 0:
		return 0
	case n < s.idealMin:
		return float64(n) / float64(s.idealMin)
	case n <= s.idealMax:
		return 1
	default:
		return float64(s.idealMax) / float64(n)
	}
}

func titleHasKeyword(title string, q domain.Query) bool {
	if len(q.Keywords) == 0 {
		return false
	}
	for _, tok := range textutil.Keywords(title) {
		if q.HasKeyword(tok) {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
