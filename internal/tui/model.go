package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"docrank/internal/domain"
	"docrank/internal/textutil"
)

// EnginePort is the TUI-facing subset of the ranking engine.
type EnginePort interface {
	Run(docs []domain.Document, persona, job string) *domain.Result
}

// Model is the Bubble Tea model for the result explorer. Arrow keys walk the
// ranked sections; entering a new "persona :: job" line re-ranks in place.
type Model struct {
	engine   EnginePort
	docs     []domain.Document
	input    textinput.Model
	viewport viewport.Model
	result   *domain.Result
	persona  string
	job      string
	status   string
	cursor   int
	ready    bool
}

// New creates the explorer model and runs the initial ranking pass.
func New(eng EnginePort, docs []domain.Document, persona, job string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "persona :: job, then Enter to re-rank"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	m := Model{
		engine:   eng,
		docs:     docs,
		input:    ti,
		viewport: vp,
		persona:  persona,
		job:      job,
	}
	m.result = eng.Run(docs, persona, job)
	m.status = fmt.Sprintf("Ranked %d sections for %q / %q", len(m.result.All), persona, job)
	return m
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := sectionBoxStyle.GetFrameSize()
		_, qh := inputBoxStyle.GetFrameSize()
		reserved := 2 + 1 + qh + 1
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderCurrentSection())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			line := strings.TrimSpace(m.input.Value())
			if line != "" {
				m.persona, m.job = splitPersonaJob(line)
				m.result = m.engine.Run(m.docs, m.persona, m.job)
				m.cursor = 0
				m.status = fmt.Sprintf("Ranked %d sections for %q / %q", len(m.result.All), m.persona, m.job)
				m.viewport.SetContent(m.renderCurrentSection())
				return m, nil
			}
		case "down":
			if len(m.result.Sections) > 0 {
				m.cursor = (m.cursor + 1) % len(m.result.Sections)
				m.viewport.SetContent(m.renderCurrentSection())
				return m, nil
			}
		case "up":
			if len(m.result.Sections) > 0 {
				m.cursor = (m.cursor - 1 + len(m.result.Sections)) % len(m.result.Sections)
				m.viewport.SetContent(m.renderCurrentSection())
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the explorer layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("docrank explorer")
	context := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).
		Render(fmt.Sprintf("persona: %s | job: %s", m.persona, m.job))
	section := sectionBoxStyle.Render(m.viewport.View())
	input := inputBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	return header + "\n" + context + "\n" + section + "\n" + input + "\n" + status
}

func (m Model) renderCurrentSection() string {
	if m.result == nil || len(m.result.Sections) == 0 {
		return "No ranked sections."
	}
	s := m.result.Sections[m.cursor]
	head := fmt.Sprintf("#%d  %s  (%s, page %d)", s.Rank, s.Title, s.Document, s.Page)
	scores := fmt.Sprintf("score=%.4f  semantic=%.3f  keyword=%.3f  quality=%.3f",
		s.Score, s.Sub.Semantic, s.Sub.Keyword, s.Sub.Quality)
	if !s.Sub.SemanticOK {
		scores += "  (semantic unavailable)"
	}
	body := s.Body
	if m.cursor < len(m.result.Excerpts) {
		body = m.result.Excerpts[m.cursor].RefinedText
	}
	return head + "\n" + scores + "\n\n" + highlightKeywords(body, m.persona+" "+m.job)
}

var (
	sectionBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	highlightStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

// splitPersonaJob parses the "persona :: job" input line; without the
// separator the whole line is treated as the job.
func splitPersonaJob(line string) (persona, job string) {
	if i := strings.Index(line, "::"); i >= 0 {
		return strings.TrimSpace(line[:i]), strings.TrimSpace(line[i+2:])
	}
	return "", line
}

// highlightKeywords emphasizes the sentence with the strongest query-keyword
// overlap so the eye lands on why the section ranked where it did.
func highlightKeywords(text, query string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	sentences := textutil.Sentences(text)
	if len(sentences) == 0 {
		return text
	}
	keywords := textutil.KeywordSet(query)
	if len(keywords) == 0 {
		return strings.Join(sentences, " ")
	}
	bestIdx := 0
	bestScore := -1
	for i, s := range sentences {
		score := 0
		seen := make(map[string]struct{})
		for _, tok := range textutil.Keywords(s) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			if _, ok := keywords[tok]; ok {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	for i := range sentences {
		if i == bestIdx {
			sentences[i] = highlightStyle.Render(sentences[i])
		}
	}
	return strings.Join(sentences, " ")
}
