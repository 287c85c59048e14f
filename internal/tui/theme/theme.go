package theme

import "github.com/charmbracelet/lipgloss"

// ---------------------------------------------------------------------------
// Color palette: ANSI 0-15 plus one 256-color surface
// ---------------------------------------------------------------------------

var (
	Text       = lipgloss.Color("7")
	TextMuted  = lipgloss.Color("8")
	TextBright = lipgloss.Color("15")

	Primary   = lipgloss.Color("4")   // blue
	Secondary = lipgloss.Color("6")   // cyan
	Success   = lipgloss.Color("2")   // green
	Warning   = lipgloss.Color("3")   // yellow
	Danger    = lipgloss.Color("1")   // red
	Surface   = lipgloss.Color("236") // dark bg
	Border    = lipgloss.Color("8")
)

// ---------------------------------------------------------------------------
// Semantic text styles
// ---------------------------------------------------------------------------

var (
	Title    = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	Subtitle = lipgloss.NewStyle().Bold(true).Foreground(Secondary)
	Muted    = lipgloss.NewStyle().Foreground(TextMuted)
	Bold     = lipgloss.NewStyle().Bold(true)

	Error = lipgloss.NewStyle().Bold(true).Foreground(Danger)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(Warning)
	Ok    = lipgloss.NewStyle().Bold(true).Foreground(Success)

	Cursor   = lipgloss.NewStyle().Bold(true).Foreground(TextBright).Background(Primary)
	Marked   = lipgloss.NewStyle().Bold(true).Foreground(Danger)
	Today    = lipgloss.NewStyle().Bold(true).Foreground(Success)
	Adjacent = lipgloss.NewStyle().Foreground(TextMuted)
	Note     = lipgloss.NewStyle().Foreground(Text).Italic(true)
	StatNum  = lipgloss.NewStyle().Bold(true).Foreground(Warning)
)

// ---------------------------------------------------------------------------
// Reusable component helpers
// ---------------------------------------------------------------------------

var (
	ModalBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	ModalTitle = lipgloss.NewStyle().Bold(true).Foreground(Warning)

	ModalHelp = lipgloss.NewStyle().Foreground(TextMuted)

	StatusBar = lipgloss.NewStyle().
			Foreground(TextMuted).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Border)

	HelpHint = lipgloss.NewStyle().Foreground(TextMuted)

	Header = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(Border).
		PaddingLeft(1)
)
