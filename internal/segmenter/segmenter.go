package segmenter

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"docrank/internal/domain"
)

// DefaultMaxHeadingLen is the length gate above which a line is never
// treated as a heading.
const DefaultMaxHeadingLen = 120

// Segmenter partitions page text into titled sections using an ordered list
// of heading-detection rules. Rules are evaluated in fixed priority order;
// the style rule applies only when line metadata is present.
type Segmenter struct {
	maxHeadingLen int
	rules         []rule
}

type rule struct {
	name  string
	match func(line string) bool
}

var (
	numberedRe = regexp.MustCompile(`^\d+(\.\d+)*\.?\s+\S`)
	romanRe    = regexp.MustCompile(`^[IVXLC]+\.\s+\S`)
	digitsRe   = regexp.MustCompile(`^[\d\s.,-]+$`)
)

// New creates a segmenter. maxHeadingLen <= 0 selects the default gate.
func New(maxHeadingLen int) *Segmenter {
	if maxHeadingLen <= 0 {
		maxHeadingLen = DefaultMaxHeadingLen
	}
	return &Segmenter{
		maxHeadingLen: maxHeadingLen,
		rules: []rule{
			{name: "numbered", match: func(l string) bool { return numberedRe.MatchString(l) }},
			{name: "roman", match: func(l string) bool { return romanRe.MatchString(l) }},
			{name: "titlecase", match: isTitleCase},
			{name: "allcaps", match: isAllCaps},
			{name: "colon", match: isColonTerminated},
		},
	}
}

// Segment produces the ordered candidate sections of one page. Every line of
// non-blank text lands in exactly one section title or body. A page with no
// detected heading yields a single fallback section; a whitespace-only page
// yields none.
func (s *Segmenter) Segment(docID string, page domain.Page) []domain.Section {
	if strings.TrimSpace(page.Text) == "" {
		return nil
	}

	lines := strings.Split(page.Text, "\n")
	offsets := lineOffsets(lines)
	styles := styleIndex(page.Styles)
	median := medianFontSize(page.Styles)

	type part struct {
		title    string
		startOff int
		body     []string
	}
	var parts []part
	cur := -1

	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if s.isHeading(line, styles[i], median) {
			if cur >= 0 && len(parts[cur].body) == 0 && parts[cur].title != "" {
				// Consecutive headings merge into the section keyed by
				// the first one; later headings become body text.
				parts[cur].body = append(parts[cur].body, line)
				continue
			}
			parts = append(parts, part{title: line, startOff: offsets[i]})
			cur = len(parts) - 1
			continue
		}
		if cur < 0 {
			// Text before the first heading gets a synthesized title.
			parts = append(parts, part{startOff: offsets[i]})
			cur = 0
		}
		parts[cur].body = append(parts[cur].body, line)
	}
	if len(parts) == 0 {
		return nil
	}

	// A trailing heading with nothing under it merges backward rather than
	// surviving as an empty-bodied section.
	last := len(parts) - 1
	if len(parts[last].body) == 0 {
		if len(parts) > 1 {
			parts[len(parts)-2].body = append(parts[len(parts)-2].body, parts[last].title)
			parts = parts[:last]
		} else {
			parts[last].body = []string{parts[last].title}
		}
	}

	sections := make([]domain.Section, 0, len(parts))
	for _, p := range parts {
		title := p.title
		if title == "" {
			title = fmt.Sprintf("Page %d Content", page.Number)
		}
		sections = append(sections, domain.Section{
			Document:    docID,
			Page:        page.Number,
			Title:       title,
			Body:        strings.Join(p.body, "\n"),
			StartOffset: p.startOff,
		})
	}
	return sections
}

func (s *Segmenter) isHeading(line string, style *domain.LineStyle, medianSize float64) bool {
	if len(line) < 3 || len(line) > s.maxHeadingLen {
		return false
	}
	if digitsRe.MatchString(line) {
		return false
	}
	for _, r := range s.rules {
		if r.match(line) {
			return true
		}
	}
	if style != nil && (style.Bold || (medianSize > 0 && style.FontSize > medianSize)) {
		return startsUpper(line) && !strings.HasSuffix(line, ".")
	}
	return false
}

// isTitleCase matches short lines where every significant word is
// capitalized, e.g. "Materials and Methods".
func isTitleCase(line string) bool {
	if strings.HasSuffix(line, ".") || strings.HasSuffix(line, ",") || strings.HasSuffix(line, ";") {
		return false
	}
	words := strings.Fields(line)
	if len(words) == 0 || len(words) > 12 {
		return false
	}
	for i, w := range words {
		r := []rune(w)[0]
		if unicode.IsUpper(r) || unicode.IsDigit(r) {
			continue
		}
		if i > 0 && connectives[strings.ToLower(w)] {
			continue
		}
		return false
	}
	return true
}

func isAllCaps(line string) bool {
	if strings.HasSuffix(line, ".") {
		return false
	}
	if len(strings.Fields(line)) > 12 {
		return false
	}
	hasLetter := false
	for _, r := range line {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}

func isColonTerminated(line string) bool {
	return strings.HasSuffix(line, ":") && len(strings.Fields(line)) <= 8
}

func startsUpper(line string) bool {
	for _, r := range line {
		return unicode.IsUpper(r)
	}
	return false
}

var connectives = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true,
	"of": true, "in": true, "on": true, "to": true, "for": true,
	"with": true, "at": true, "by": true,
}

func lineOffsets(lines []string) []int {
	offs := make([]int, len(lines))
	off := 0
	for i, l := range lines {
		offs[i] = off
		off += len(l) + 1
	}
	return offs
}

func styleIndex(styles []domain.LineStyle) map[int]*domain.LineStyle {
	if len(styles) == 0 {
		return nil
	}
	m := make(map[int]*domain.LineStyle, len(styles))
	for i := range styles {
		m[styles[i].Line] = &styles[i]
	}
	return m
}

func medianFontSize(styles []domain.LineStyle) float64 {
	if len(styles) == 0 {
		return 0
	}
	sizes := make([]float64, 0, len(styles))
	for _, st := range styles {
		if st.FontSize > 0 {
			sizes = append(sizes, st.FontSize)
		}
	}
	if len(sizes) == 0 {
		return 0
	}
	sort.Float64s(sizes)
	mid := len(sizes) / 2
	if len(sizes)%2 == 0 {
		return (sizes[mid-1] + sizes[mid]) / 2
	}
	return sizes[mid]
}
