package query

import (
	"strings"

	"docrank/internal/domain"
	"docrank/internal/textutil"
)

// Build merges the persona and job-to-be-done texts into a single immutable
// relevance query. Both inputs may be empty; the resulting query then has an
// empty combined text and keyword set, which downstream scoring treats as a
// zero-contribution signal rather than an error.
func Build(persona, job string) domain.Query {
	persona = strings.TrimSpace(persona)
	job = strings.TrimSpace(job)
	combined := textutil.Collapse(persona + " " + job)
	return domain.Query{
		Persona:  persona,
		Job:      job,
		Combined: combined,
		Keywords: textutil.KeywordSet(combined),
	}
}
