package shared

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"messcut/internal/tui/theme"
)

// HelpBind represents a single keybind entry
type HelpBind struct {
	Key  string
	Desc string
}

// HelpSection represents a group of related keybinds
type HelpSection struct {
	Title string
	Binds []HelpBind
}

var (
	helpSectionStyle = lipgloss.NewStyle().Bold(true).Foreground(theme.Primary)
	helpKeyStyle     = lipgloss.NewStyle().Bold(true).Foreground(theme.Secondary)
	helpDescStyle    = lipgloss.NewStyle().Foreground(theme.Text)
	helpBoxStyle     = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(theme.Primary).
				Padding(1, 2)
	helpDismissStyle = theme.Muted
)

// RenderHelpPopup renders a centered help popup with the given sections and
// an optional footer line.
func RenderHelpPopup(sections []HelpSection, footer string, width, height int) string {
	line := func(key, desc string) string {
		return "  " + helpKeyStyle.Width(14).Render(key) + helpDescStyle.Render(desc)
	}

	var content strings.Builder
	for i, section := range sections {
		if i > 0 {
			content.WriteString("\n")
		}
		content.WriteString(helpSectionStyle.Render(section.Title) + "\n")
		for _, bind := range section.Binds {
			content.WriteString(line(bind.Key, bind.Desc) + "\n")
		}
	}

	if footer != "" {
		content.WriteString("\n" + helpDismissStyle.Render(footer) + "\n")
	}
	content.WriteString("\n" + helpDismissStyle.Render("Press any key to close"))

	box := helpBoxStyle.Render(content.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
