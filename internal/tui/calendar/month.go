package calendar

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	gridpkg "messcut/internal/calendar"
	"messcut/internal/dates"
	"messcut/internal/messcut"
	"messcut/internal/tui/messages"
)

// GridOriginY is the line of the first week row within View's output.
const GridOriginY = 3

var dayHeaders = [7]string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

// MarkSource is what the month view reads from the store.
type MarkSource interface {
	IsMarked(date time.Time) bool
	Get(date time.Time) (messcut.Mark, bool)
}

// MonthModel is the month calendar view
type MonthModel struct {
	viewMonth  time.Time // first of the month being viewed
	cursorDate time.Time // the day under cursor in the calendar
	marks      MarkSource
	width      int
	height     int
}

// NewMonthModel creates a month view showing the current month
func NewMonthModel(marks MarkSource) MonthModel {
	now := dates.Midnight(dates.Now())
	return MonthModel{
		viewMonth:  dates.FirstOfMonth(now),
		cursorDate: now,
		marks:      marks,
	}
}

// SetSize updates the view dimensions
func (m *MonthModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// CurrentMonth returns the first day of the displayed month
func (m MonthModel) CurrentMonth() time.Time {
	return m.viewMonth
}

// Cursor returns the date under the cursor
func (m MonthModel) Cursor() time.Time {
	return m.cursorDate
}

// Render rebuilds the grid for the displayed month from the store.
func (m MonthModel) Render() gridpkg.Grid {
	return gridpkg.Build(m.viewMonth, dates.Now(), m.marks)
}

// PreviousMonth shows the previous month with the cursor on its first day
func (m *MonthModel) PreviousMonth() {
	m.viewMonth = m.viewMonth.AddDate(0, -1, 0)
	m.cursorDate = m.viewMonth
}

// NextMonth shows the next month with the cursor on its first day
func (m *MonthModel) NextMonth() {
	m.viewMonth = m.viewMonth.AddDate(0, 1, 0)
	m.cursorDate = m.viewMonth
}

// JumpTo shows date's month with the cursor on date
func (m *MonthModel) JumpTo(date time.Time) {
	m.cursorDate = dates.Midnight(date)
	m.viewMonth = dates.FirstOfMonth(m.cursorDate)
}

// Update handles key and mouse events for the month view
func (m MonthModel) Update(msg tea.Msg) (MonthModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKeys(msg)
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonLeft {
			if date, ok := m.CellAt(msg.X, msg.Y); ok {
				m.cursorDate = date
				return m, messages.Emit(messages.DateSelectedMsg{Date: date})
			}
		}
	case messages.JumpToDateMsg:
		m.JumpTo(msg.Date)
	}
	return m, nil
}

func (m MonthModel) updateKeys(msg tea.KeyMsg) (MonthModel, tea.Cmd) {
	switch msg.String() {
	case "h", "left":
		m.moveCursor(-1)
	case "l", "right":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-7)
	case "j", "down":
		m.moveCursor(7)
	case "H", "[", "pgup":
		m.PreviousMonth()
	case "L", "]", "pgdown":
		m.NextMonth()
	case "t":
		m.JumpTo(dates.Now())
	case "enter", " ":
		return m, messages.Emit(messages.DateSelectedMsg{Date: m.cursorDate})
	}
	return m, nil
}

func (m *MonthModel) moveCursor(days int) {
	m.cursorDate = m.cursorDate.AddDate(0, 0, days)
	if !dates.IsSameMonth(m.cursorDate, m.viewMonth) {
		m.viewMonth = dates.FirstOfMonth(m.cursorDate)
	}
}

// CellAt maps a position inside View's output to the date of the cell
// drawn there, including days of the adjacent months.
func (m MonthModel) CellAt(x, y int) (time.Time, bool) {
	row := y - GridOriginY
	col := x / cellWidth
	if row < 0 || row >= gridpkg.Weeks || col < 0 || col >= 7 {
		return time.Time{}, false
	}
	g := m.Render()
	return g.Cells[row*7+col].Date, true
}

// View renders the month view
func (m MonthModel) View() string {
	var sb strings.Builder

	// Title line
	title := calMonthTitleStyle.Render(fmt.Sprintf(" %s", m.viewMonth.Format("January 2006")))
	nav := navHintStyle.Render("[hjkl: move] [H/L: month] [t: today] [enter: mark]")

	titleLine := title
	padding := m.width - lipgloss.Width(title) - lipgloss.Width(nav) - 1
	if padding > 0 {
		titleLine += strings.Repeat(" ", padding) + nav
	}
	sb.WriteString(titleLine)
	sb.WriteString("\n\n")

	sb.WriteString(m.renderGrid(m.Render()))
	sb.WriteString("\n")

	sb.WriteString(m.renderDetail())

	return sb.String()
}

func (m MonthModel) renderGrid(g gridpkg.Grid) string {
	var sb strings.Builder

	for _, d := range dayHeaders {
		sb.WriteString(calDayHeaderStyle.Render(d))
	}
	sb.WriteString("\n")

	for week := 0; week < gridpkg.Weeks; week++ {
		for _, cell := range g.Week(week) {
			sb.WriteString(m.renderCell(cell))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (m MonthModel) renderCell(cell gridpkg.Cell) string {
	dayStr := fmt.Sprintf("%2d", cell.Date.Day())
	if cell.Marked {
		dayStr += "*"
	}

	switch {
	case dates.IsSameDay(cell.Date, m.cursorDate):
		return calCursorStyle.Render(dayStr)
	case !cell.CurrentMonth && cell.Marked:
		return calAdjMarkedStyle.Render(dayStr)
	case !cell.CurrentMonth:
		return calAdjacentStyle.Render(dayStr)
	case cell.Today:
		return calTodayStyle.Render(dayStr)
	case cell.Marked:
		return calMarkedStyle.Render(dayStr)
	default:
		return calDayStyle.Render(dayStr)
	}
}

func (m MonthModel) renderDetail() string {
	header := detailHeaderStyle.Render(fmt.Sprintf(" %s", m.cursorDate.Format("Mon, Jan 2")))

	mark, ok := m.marks.Get(m.cursorDate)
	if !ok {
		return header + "  " + emptyStyle.Render("Not marked") + "\n"
	}

	line := header + "  " + calMarkedStyle.UnsetWidth().Render("Mess cut")
	if mark.Note != "" {
		line += "  " + noteStyle.Render(mark.Note)
	}
	return line + "\n"
}
