package search

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"messcut/internal/messcut"
	"messcut/internal/tui/messages"
	"messcut/internal/tui/theme"
)

var (
	labelStyle    = lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(theme.TextBright).Background(theme.Primary)
	dayStyle      = theme.Marked
	emptyStyle    = lipgloss.NewStyle().Foreground(theme.TextMuted).Italic(true)
)

// Searcher is the part of the service the search view needs.
type Searcher interface {
	Search(query string) []messcut.Entry
}

// Model lists marks whose day or note fuzzy-matches the query.
type Model struct {
	svc     Searcher
	input   textinput.Model
	results []messcut.Entry
	cursor  int
	width   int
	height  int
}

func New(svc Searcher) Model {
	ti := textinput.New()
	ti.Placeholder = "search notes or dates"
	ti.Prompt = "/ "
	ti.CharLimit = 64
	return Model{svc: svc, input: ti}
}

// Activate clears the query, reloads results and focuses the input.
func (m *Model) Activate() tea.Cmd {
	m.input.SetValue("")
	m.refresh()
	return m.input.Focus()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = max(width-4, 10)
}

func (m Model) Results() []messcut.Entry {
	return m.results
}

func (m *Model) refresh() {
	m.results = m.svc.Search(m.input.Value())
	if m.cursor >= len(m.results) {
		m.cursor = max(0, len(m.results)-1)
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			m.input.Blur()
			return m, messages.SwitchView(messages.ViewCalendar)
		case "up", "ctrl+k":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "ctrl+j":
			if m.cursor < len(m.results)-1 {
				m.cursor++
			}
			return m, nil
		case "enter":
			if len(m.results) == 0 {
				return m, nil
			}
			m.input.Blur()
			return m, messages.Emit(messages.JumpToDateMsg{Date: m.results[m.cursor].Date})
		}
	}

	var cmd tea.Cmd
	prev := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != prev {
		m.cursor = 0
		m.refresh()
	}
	return m, cmd
}

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(labelStyle.Render(" Search") + "  " + m.input.View())
	sb.WriteString("\n\n")

	if len(m.results) == 0 {
		sb.WriteString("   " + emptyStyle.Render("No matching marks"))
		sb.WriteString("\n")
		return sb.String()
	}

	limit := len(m.results)
	if m.height > 4 && limit > m.height-4 {
		limit = m.height - 4
	}
	for i, e := range m.results[:limit] {
		line := fmt.Sprintf("%s  %s", dayStyle.Render(e.DayKey), e.Note)
		if i == m.cursor {
			line = selectedStyle.Render(fmt.Sprintf("%s  %s", e.DayKey, e.Note))
			sb.WriteString(" > " + line)
		} else {
			sb.WriteString("   " + line)
		}
		sb.WriteString("\n")
	}
	if limit < len(m.results) {
		sb.WriteString("   " + emptyStyle.Render(fmt.Sprintf("... %d more", len(m.results)-limit)))
		sb.WriteString("\n")
	}
	return sb.String()
}
