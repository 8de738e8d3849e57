package extract

import (
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"docrank/internal/domain"
)

// MaxDocuments is the hard cap on PDFs per run.
const MaxDocuments = 10

// Files above this size get a warning; extraction still proceeds.
const warnSizeBytes = 50 << 20

// Extractor loads PDF documents from disk into the engine's input shape:
// per-page raw text plus per-line font metadata where the library can
// recover it. It validates files with pdfcpu before extraction and can fall
// back to the pdftotext binary when the Go library fails.
type Extractor struct {
	FallbackPdftotext bool
}

// LoadDir loads every *.pdf in dir, sorted by name. A document that fails
// extraction is skipped with a warning so the remaining documents still
// rank. It errors only when the directory holds no PDFs at all or more than
// MaxDocuments.
func (e *Extractor) LoadDir(dir string) ([]domain.Document, []string, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.pdf"))
	if err != nil {
		return nil, nil, fmt.Errorf("scan input directory: %w", err)
	}
	if len(paths) == 0 {
		return nil, nil, fmt.Errorf("no PDF files found in %s", dir)
	}
	if len(paths) > MaxDocuments {
		return nil, nil, fmt.Errorf("too many PDF files (%d), maximum is %d", len(paths), MaxDocuments)
	}
	sort.Strings(paths)

	var docs []domain.Document
	var warnings []string
	for _, p := range paths {
		if fi, err := os.Stat(p); err == nil && fi.Size() > warnSizeBytes {
			warnings = append(warnings, fmt.Sprintf("%s is large (%.1fMB)", filepath.Base(p), float64(fi.Size())/(1<<20)))
		}
		doc, err := e.LoadFile(p)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("skipping %s: %v", filepath.Base(p), err))
			continue
		}
		docs = append(docs, doc)
	}
	return docs, warnings, nil
}

// LoadFile extracts one PDF into a Document identified by its base name.
func (e *Extractor) LoadFile(path string) (domain.Document, error) {
	doc := domain.Document{ID: filepath.Base(path)}
	if err := api.ValidateFile(path, nil); err != nil {
		return doc, fmt.Errorf("validate pdf: %w", err)
	}
	if n, err := api.PageCountFile(path); err != nil {
		return doc, fmt.Errorf("count pdf pages: %w", err)
	} else if n == 0 {
		return doc, fmt.Errorf("pdf has no pages")
	}
	pages, err := extractPages(path)
	if err != nil && e.FallbackPdftotext {
		pages, err = extractPdftotext(path)
	}
	if err != nil {
		return doc, fmt.Errorf("extract pdf text: %w", err)
	}
	doc.Pages = pages
	return doc, nil
}

func extractPages(path string) ([]domain.Page, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var pages []domain.Page
	for i := 1; i <= reader.NumPage(); i++ {
		p := reader.Page(i)
		if p.V.IsNull() {
			continue
		}
		pages = append(pages, extractPage(p, i))
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("no extractable pages")
	}
	return pages, nil
}

// extractPage prefers the positioned-text walk, which preserves per-line
// font size and weight; when that fails it keeps the plain text and drops
// the style metadata.
func extractPage(p pdflib.Page, num int) domain.Page {
	if lines, ok := styledLines(p); ok {
		texts := make([]string, len(lines))
		styles := make([]domain.LineStyle, len(lines))
		for i, l := range lines {
			texts[i] = l.text
			styles[i] = domain.LineStyle{Line: i, FontSize: l.fontSize, Bold: l.bold}
		}
		return domain.Page{Number: num, Text: strings.Join(texts, "\n"), Styles: styles}
	}
	text, err := p.GetPlainText(nil)
	if err != nil {
		text = ""
	}
	return domain.Page{Number: num, Text: text}
}

type styledLine struct {
	text     string
	fontSize float64
	bold     bool
}

// styledLines groups the page's positioned text fragments into visual lines
// by Y coordinate, top to bottom. The pdf library panics on some malformed
// font tables, so the walk is fenced with recover.
func styledLines(p pdflib.Page) (lines []styledLine, ok bool) {
	defer func() {
		if recover() != nil {
			lines, ok = nil, false
		}
	}()
	content := p.Content()
	if len(content.Text) == 0 {
		return nil, false
	}

	groups := make(map[int][]pdflib.Text)
	for _, t := range content.Text {
		y := int(math.Round(t.Y))
		groups[y] = append(groups[y], t)
	}
	ys := make([]int, 0, len(groups))
	for y := range groups {
		ys = append(ys, y)
	}
	// PDF Y grows upward; descending Y is reading order.
	sort.Sort(sort.Reverse(sort.IntSlice(ys)))

	for _, y := range ys {
		frags := groups[y]
		sort.Slice(frags, func(i, j int) bool { return frags[i].X < frags[j].X })
		var sb strings.Builder
		line := styledLine{}
		for _, fr := range frags {
			sb.WriteString(fr.S)
			if fr.FontSize > line.fontSize {
				line.fontSize = fr.FontSize
			}
			if strings.Contains(fr.Font, "Bold") {
				line.bold = true
			}
		}
		line.text = sb.String()
		if strings.TrimSpace(line.text) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return nil, false
	}
	return lines, true
}

// extractPdftotext shells out to pdftotext, splitting pages on form feeds.
// No style metadata is available on this path.
func extractPdftotext(path string) ([]domain.Page, error) {
	out, err := exec.Command("pdftotext", "-layout", path, "-").Output()
	if err != nil {
		return nil, fmt.Errorf("pdftotext: %w", err)
	}
	var pages []domain.Page
	for i, text := range strings.Split(string(out), "\f") {
		if strings.TrimSpace(text) == "" {
			continue
		}
		pages = append(pages, domain.Page{Number: i + 1, Text: text})
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("no extractable pages")
	}
	return pages, nil
}
