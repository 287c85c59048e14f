package calendar

import (
	"github.com/charmbracelet/lipgloss"
	"messcut/internal/tui/theme"
)

const cellWidth = 5

var (
	calDayHeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(theme.TextMuted).Width(cellWidth).Align(lipgloss.Center)
	calDayStyle        = lipgloss.NewStyle().Width(cellWidth).Align(lipgloss.Center)
	calTodayStyle      = theme.Today.Width(cellWidth).Align(lipgloss.Center)
	calCursorStyle     = theme.Cursor.Width(cellWidth).Align(lipgloss.Center)
	calMarkedStyle     = theme.Marked.Width(cellWidth).Align(lipgloss.Center)
	calAdjacentStyle   = theme.Adjacent.Width(cellWidth).Align(lipgloss.Center)
	calAdjMarkedStyle  = lipgloss.NewStyle().Foreground(theme.Danger).Faint(true).Width(cellWidth).Align(lipgloss.Center)
	calMonthTitleStyle = theme.Title
	navHintStyle       = theme.HelpHint
	detailHeaderStyle  = theme.Subtitle
	emptyStyle         = lipgloss.NewStyle().Foreground(theme.TextMuted).Italic(true)
	noteStyle          = theme.Note
)
