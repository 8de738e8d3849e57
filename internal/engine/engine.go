package engine

import (
	"docrank/internal/domain"
	"docrank/internal/embedding"
	"docrank/internal/query"
	"docrank/internal/ranker"
	"docrank/internal/refiner"
	"docrank/internal/scorer"
	"docrank/internal/segmenter"
)

// Engine is the single-threaded ranking pipeline: segment every page, build
// the query once, batch-embed the corpus, score each section independently,
// rank globally, and refine the top sections. It always produces a result;
// per-document and embedding failures degrade locally instead of aborting.
type Engine struct {
	seg  *segmenter.Segmenter
	sc   *scorer.Scorer
	ref  *refiner.Refiner
	emb  embedding.Embedder
	topN int
}

// New assembles an engine. emb may be nil, which disables the semantic
// signal entirely (scorer weights renormalize over keyword and quality).
func New(seg *segmenter.Segmenter, sc *scorer.Scorer, ref *refiner.Refiner, emb embedding.Embedder, topN int) *Engine {
	if topN <= 0 {
		topN = 10
	}
	return &Engine{seg: seg, sc: sc, ref: ref, emb: emb, topN: topN}
}

// Run executes one full pipeline pass over the document set. Documents that
// yield no sections are silently excluded from ranking.
func (e *Engine) Run(docs []domain.Document, persona, job string) *domain.Result {
	q := query.Build(persona, job)

	var sections []domain.Section
	for _, d := range docs {
		for _, p := range d.Pages {
			sections = append(sections, e.seg.Segment(d.ID, p)...)
		}
	}
	if len(sections) == 0 {
		return &domain.Result{}
	}

	// Batch embedding: one Prepare over all section texts plus the query,
	// then one Embed per text. A failed backend drops the semantic signal
	// for the whole run; a single failed section degrades only itself.
	texts := make([]string, len(sections))
	for i, s := range sections {
		texts[i] = s.Title + " " + s.Body
	}
	secVecs := make([][]float64, len(sections))
	var queryVec []float64
	semantic := e.emb != nil
	if semantic {
		corpus := make([]string, 0, len(texts)+1)
		corpus = append(corpus, texts...)
		corpus = append(corpus, q.Combined)
		if err := e.emb.Prepare(corpus); err != nil {
			semantic = false
		}
	}
	if semantic {
		v, err := e.emb.Embed(q.Combined)
		if err != nil {
			semantic = false
		} else {
			queryVec = v
		}
	}
	if semantic {
		for i := range texts {
			if v, err := e.emb.Embed(texts[i]); err == nil {
				secVecs[i] = v
			}
		}
	}

	scored := make([]domain.ScoredSection, len(sections))
	for i := range sections {
		var qv, sv []float64
		if semantic {
			qv, sv = queryVec, secVecs[i]
		}
		scored[i] = e.sc.Score(sections[i], q, sv, qv)
	}

	top, all := ranker.Rank(scored, e.topN)

	var refEmb embedding.Embedder
	if semantic {
		refEmb = e.emb
	}
	excerpts := make([]domain.Excerpt, 0, len(top))
	for _, rs := range top {
		excerpts = append(excerpts, e.ref.Refine(rs, q, refEmb, queryVec))
	}

	return &domain.Result{Sections: top, Excerpts: excerpts, All: all}
}
