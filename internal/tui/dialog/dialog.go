package dialog

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"messcut/internal/dates"
	"messcut/internal/messcut"
	"messcut/internal/tui/messages"
	"messcut/internal/tui/theme"
)

var (
	boxStyle    = theme.ModalBox
	titleStyle  = theme.ModalTitle
	saveStyle   = theme.Ok
	unmarkStyle = theme.Error
	hintStyle   = theme.ModalHelp
)

// State is the open/closed state of the dialog.
type State int

const (
	Closed State = iota
	OpenNew
	OpenEdit
)

func (s State) String() string {
	switch s {
	case OpenNew:
		return "open-for-new"
	case OpenEdit:
		return "open-for-edit"
	default:
		return "closed"
	}
}

// Model collects or edits the note for one date.
type Model struct {
	state State
	date  time.Time
	note  textarea.Model
	width int
}

func New() Model {
	ta := textarea.New()
	ta.Placeholder = "Add a note (optional)"
	ta.ShowLineNumbers = false
	ta.CharLimit = 500
	ta.SetWidth(44)
	ta.SetHeight(4)
	return Model{note: ta, width: 50}
}

// Open shows the dialog for date. With an existing mark the note is
// prefilled and the unmark action is offered.
func (m *Model) Open(date time.Time, existing *messcut.Mark) tea.Cmd {
	m.date = date
	m.note.Reset()
	if existing != nil {
		m.state = OpenEdit
		m.note.SetValue(existing.Note)
	} else {
		m.state = OpenNew
	}
	return m.note.Focus()
}

// Close hides the dialog and forgets the date and note.
func (m *Model) Close() {
	m.state = Closed
	m.date = time.Time{}
	m.note.Reset()
	m.note.Blur()
}

func (m Model) IsOpen() bool {
	return m.state != Closed
}

func (m Model) State() State {
	return m.state
}

func (m Model) Date() time.Time {
	return m.date
}

// Value returns the note text as typed.
func (m Model) Value() string {
	return m.note.Value()
}

func (m *Model) SetWidth(w int) {
	m.width = min(max(w-4, 30), 60)
	m.note.SetWidth(m.width - 6)
}

// Title is the dialog heading for the current state.
func (m Model) Title() string {
	if m.state == OpenEdit {
		return "Edit Mess Cut - " + dates.FormatDisplay(m.date)
	}
	return "Mark Mess Cut - " + dates.FormatDisplay(m.date)
}

// Update handles keys while the dialog is open. Saving and unmarking emit a
// message for the app and close the dialog.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.IsOpen() {
		return m, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			m.Close()
			return m, nil
		case "ctrl+s":
			save := messages.SaveMarkMsg{Date: m.date, Note: strings.TrimSpace(m.note.Value())}
			m.Close()
			return m, messages.Emit(save)
		case "ctrl+d":
			if m.state != OpenEdit {
				return m, nil
			}
			unmark := messages.UnmarkMsg{Date: m.date}
			m.Close()
			return m, messages.Emit(unmark)
		}
	}

	var cmd tea.Cmd
	m.note, cmd = m.note.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if !m.IsOpen() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(m.Title()))
	sb.WriteString("\n\n")
	sb.WriteString(m.note.View())
	sb.WriteString("\n\n")

	actions := []string{saveStyle.Render("[ctrl+s]") + " Save"}
	if m.state == OpenEdit {
		actions = append(actions, unmarkStyle.Render("[ctrl+d]")+" Unmark")
	}
	actions = append(actions, hintStyle.Render("[esc]")+" Cancel")
	sb.WriteString(strings.Join(actions, "  "))

	return boxStyle.Width(m.width).Render(sb.String())
}

// Overlay centers the dialog in a width x height area.
func (m Model) Overlay(width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, m.View())
}
