package shared

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"messcut/internal/tui/theme"
)

var (
	confirmModalBoxStyle = theme.ModalBox
	confirmTitleStyle    = theme.ModalTitle
	confirmYesStyle      = theme.Ok
	confirmNoStyle       = theme.Error
)

// ConfirmationModal displays a simple yes/no confirmation dialog
type ConfirmationModal struct {
	Message string // Primary question
	Details string // Additional context (optional)
	Width   int
}

// ConfirmationResultMsg is sent when the user answers the modal
type ConfirmationResultMsg struct {
	Confirmed bool
}

func NewConfirmationModal(message, details string, width int) *ConfirmationModal {
	return &ConfirmationModal{
		Message: message,
		Details: details,
		Width:   width,
	}
}

// Update handles key events for the confirmation modal
func (m *ConfirmationModal) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "enter":
		return func() tea.Msg { return ConfirmationResultMsg{Confirmed: true} }
	case "n", "esc":
		return func() tea.Msg { return ConfirmationResultMsg{Confirmed: false} }
	}
	return nil
}

func (m *ConfirmationModal) View() string {
	content := confirmTitleStyle.Render(m.Message) + "\n"
	if m.Details != "" {
		content += "\n" + m.Details + "\n"
	}
	content += "\n"
	content += confirmYesStyle.Render("[y]") + " Yes  "
	content += confirmNoStyle.Render("[n/esc]") + " No"

	return confirmModalBoxStyle.Width(m.Width).Render(content)
}

// Overlay centers the modal on a width x height screen.
func (m *ConfirmationModal) Overlay(width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, m.View())
}
