package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"messcut/internal/config"
	"messcut/internal/dates"
	"messcut/internal/messcut"
	calview "messcut/internal/tui/calendar"
	"messcut/internal/tui/dialog"
	"messcut/internal/tui/search"
	"messcut/internal/tui/shared"
)

// minHeight fits the header, the six-week grid, the detail and stats lines
// and the status bar.
const minHeight = 16

// AppModel is the root model: it routes input to the month view, the note
// dialog and the search view, and applies their messages to the service.
type AppModel struct {
	cfg         *config.Config
	svc         *messcut.Service
	currentView ViewType
	monthView   calview.MonthModel
	dialog      dialog.Model
	searchView  search.Model
	showHelp    bool
	confirmQuit *shared.ConfirmationModal
	width       int
	height      int
	ready       bool
}

// NewAppModel creates the root application model
func NewAppModel(cfg *config.Config, svc *messcut.Service) AppModel {
	return AppModel{
		cfg:         cfg,
		svc:         svc,
		currentView: ViewCalendar,
		monthView:   calview.NewMonthModel(svc.Store()),
		dialog:      dialog.New(),
		searchView:  search.New(svc),
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		contentHeight := msg.Height - 3 // Reserve space for status bar
		m.monthView.SetSize(msg.Width, contentHeight)
		m.searchView.SetSize(msg.Width, contentHeight)
		m.dialog.SetWidth(msg.Width)
		return m, nil

	case DateSelectedMsg:
		return m, m.dialog.Open(msg.Date, m.svc.GetMessCutData(msg.Date))

	case SaveMarkMsg:
		m.svc.MarkMessCut(msg.Date, msg.Note)
		return m, nil

	case UnmarkMsg:
		m.svc.UnmarkMessCut(msg.Date)
		return m, nil

	case shared.ConfirmationResultMsg:
		m.confirmQuit = nil
		if msg.Confirmed {
			return m, tea.Quit
		}
		return m, nil

	case JumpToDateMsg:
		m.currentView = ViewCalendar
		m.monthView.JumpTo(msg.Date)
		return m, nil

	case SwitchViewMsg:
		m.currentView = msg.View
		if msg.View == ViewSearch {
			return m, m.searchView.Activate()
		}
		return m, nil

	case tea.MouseMsg:
		// Overlays that take keys also take the mouse.
		if m.showHelp || m.confirmQuit != nil {
			return m, nil
		}
		if m.dialog.IsOpen() {
			if msg.Action == tea.MouseActionRelease && !m.insideDialog(msg.X, msg.Y) {
				m.dialog.Close()
			}
			return m, nil
		}
		if m.currentView == ViewCalendar {
			msg.Y -= lipgloss.Height(m.renderHeader())
			var cmd tea.Cmd
			m.monthView, cmd = m.monthView.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		// Global keys: ctrl+c always quits
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		// Dismiss help overlay on any key
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		if m.confirmQuit != nil {
			return m, m.confirmQuit.Update(msg)
		}

		// The dialog and the search input take every key while active.
		if m.dialog.IsOpen() {
			var cmd tea.Cmd
			m.dialog, cmd = m.dialog.Update(msg)
			return m, cmd
		}
		if m.currentView == ViewSearch {
			var cmd tea.Cmd
			m.searchView, cmd = m.searchView.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "q":
			if err := m.svc.Store().Err(); err != nil {
				m.confirmQuit = shared.NewConfirmationModal("Quit without saving?",
					"The last change could not be saved:\n"+err.Error(), min(m.width-4, 56))
				return m, nil
			}
			return m, tea.Quit
		case "?":
			m.showHelp = true
			return m, nil
		case "/":
			m.currentView = ViewSearch
			return m, m.searchView.Activate()
		}
	}

	// Dispatch to current child view
	var cmd tea.Cmd
	if m.dialog.IsOpen() {
		m.dialog, cmd = m.dialog.Update(msg)
		return m, cmd
	}
	switch m.currentView {
	case ViewCalendar:
		m.monthView, cmd = m.monthView.Update(msg)
	case ViewSearch:
		m.searchView, cmd = m.searchView.Update(msg)
	}
	return m, cmd
}

func (m AppModel) insideDialog(x, y int) bool {
	box := m.dialog.View()
	w, h := lipgloss.Width(box), lipgloss.Height(box)
	left := (m.width - w) / 2
	top := (m.height - h) / 2
	return x >= left && x < left+w && y >= top && y < top+h
}

func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.height < minHeight {
		return shared.CenterContent(HelpStyle.Render("Terminal too small"), m.height)
	}

	if m.showHelp {
		return m.renderHelpOverlay()
	}

	if m.confirmQuit != nil {
		return m.confirmQuit.Overlay(m.width, m.height)
	}

	if m.dialog.IsOpen() {
		return m.dialog.Overlay(m.width, m.height)
	}

	var content string
	switch m.currentView {
	case ViewSearch:
		content = m.searchView.View()
	default:
		content = lipgloss.JoinVertical(lipgloss.Left,
			m.renderHeader(),
			m.monthView.View(),
			m.renderStats(),
		)
	}

	body := shared.FitHeight(content, m.height-2)
	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderStatusBar())
}

func (m AppModel) renderHeader() string {
	title := TitleStyle.Render("Mess Cut Tracker")
	now := todayLabel.Render(dates.Now().Format("January 2006"))
	gap := m.width - lipgloss.Width(title) - lipgloss.Width(now) - 2
	if gap < 1 {
		gap = 1
	}
	return headerStyle.Width(m.width).Render(title + strings.Repeat(" ", gap) + now)
}

func (m AppModel) renderStats() string {
	month := m.monthView.CurrentMonth()
	stats := m.svc.MonthlyStats(month.Year(), month.Month())

	label := fmt.Sprintf(" Mess cuts in %s: ", month.Format("January 2006"))
	line := statLabelStyle.Render(label) + statValueStyle.Render(fmt.Sprintf("%d", stats.Count))
	if stats.LongestStreak > 1 {
		line += statLabelStyle.Render("   Longest streak: ") + statValueStyle.Render(fmt.Sprintf("%d days", stats.LongestStreak))
	}
	return "\n" + line
}

func (m AppModel) renderStatusBar() string {
	statusText := "enter: mark/edit | H/L: month | /: search | ?: help | q: quit"
	if m.currentView == ViewSearch {
		statusText = "Search | enter: jump to date | esc: back"
	}
	if err := m.svc.Store().Err(); err != nil {
		return StatusBarStyle.Width(m.width).Render(ErrorStyle.Render("Not saved: " + err.Error()))
	}
	return StatusBarStyle.Width(m.width).Render(HelpStyle.Render(statusText))
}

func (m AppModel) renderHelpOverlay() string {
	sections := []shared.HelpSection{
		{
			Title: "Calendar",
			Binds: []shared.HelpBind{
				{Key: "h / l", Desc: "Previous / next day"},
				{Key: "j / k", Desc: "Next / previous week"},
				{Key: "H / L", Desc: "Previous / next month"},
				{Key: "t", Desc: "Jump to today"},
				{Key: "enter", Desc: "Mark or edit the selected day"},
				{Key: "click", Desc: "Mark or edit a day"},
			},
		},
		{
			Title: "Note Dialog",
			Binds: []shared.HelpBind{
				{Key: "ctrl+s", Desc: "Save"},
				{Key: "ctrl+d", Desc: "Unmark (existing marks)"},
				{Key: "esc", Desc: "Cancel"},
			},
		},
		{
			Title: "Global",
			Binds: []shared.HelpBind{
				{Key: "/", Desc: "Search notes"},
				{Key: "?", Desc: "Show this help"},
				{Key: "q", Desc: "Quit"},
				{Key: "ctrl+c", Desc: "Force quit"},
			},
		},
	}
	footer := ""
	if m.cfg != nil {
		footer = "Data: " + m.cfg.DataDir
	}
	return shared.RenderHelpPopup(sections, footer, m.width, m.height)
}

// DisplayedMonth returns the first day of the month shown in the calendar.
func (m AppModel) DisplayedMonth() time.Time {
	return m.monthView.CurrentMonth()
}
