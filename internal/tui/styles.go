package tui

import (
	"github.com/charmbracelet/lipgloss"
	"messcut/internal/tui/theme"
)

var (
	TitleStyle     = theme.Title
	StatusBarStyle = theme.StatusBar
	HelpStyle      = theme.HelpHint
	ErrorStyle     = theme.Error

	headerStyle    = theme.Header
	statLabelStyle = theme.Muted
	statValueStyle = theme.StatNum
	todayLabel     = lipgloss.NewStyle().Foreground(theme.Secondary)
)
