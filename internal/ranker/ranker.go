package ranker

import (
	"sort"

	"docrank/internal/domain"
)

// Rank orders scored sections descending by composite score and assigns
// dense 1-based importance ranks across the whole multi-document set. Score
// ties break by (document, page) ascending so identical input always yields
// identical output. It returns the list truncated to topN alongside the full
// ranked list; topN <= 0 means no truncation.
func Rank(scored []domain.ScoredSection, topN int) (top, all []domain.RankedSection) {
	ordered := make([]domain.ScoredSection, len(scored))
	copy(ordered, scored)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Score != ordered[j].Score {
			return ordered[i].Score > ordered[j].Score
		}
		if ordered[i].Document != ordered[j].Document {
			return ordered[i].Document < ordered[j].Document
		}
		return ordered[i].Page < ordered[j].Page
	})

	all = make([]domain.RankedSection, len(ordered))
	for i, s := range ordered {
		all[i] = domain.RankedSection{ScoredSection: s, Rank: i + 1}
	}
	if topN <= 0 || topN >= len(all) {
		return all, all
	}
	return all[:topN], all
}
