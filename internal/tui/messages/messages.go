package messages

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ViewType represents the different screens of the application
type ViewType int

const (
	ViewCalendar ViewType = iota
	ViewSearch
)

// SwitchViewMsg is sent by child views to switch to a different view
type SwitchViewMsg struct {
	View ViewType
}

// DateSelectedMsg is sent when a day cell is activated in the calendar
type DateSelectedMsg struct {
	Date time.Time
}

// SaveMarkMsg is sent by the dialog when the user saves a note for a date
type SaveMarkMsg struct {
	Date time.Time
	Note string
}

// UnmarkMsg is sent by the dialog when the user removes a date's mark
type UnmarkMsg struct {
	Date time.Time
}

// JumpToDateMsg switches to the calendar and moves the cursor to Date
type JumpToDateMsg struct {
	Date time.Time
}

func SwitchView(v ViewType) tea.Cmd {
	return func() tea.Msg {
		return SwitchViewMsg{View: v}
	}
}

// Emit wraps msg in a command.
func Emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return msg
	}
}
