package calendar

import (
	"time"

	"messcut/internal/dates"
)

const (
	// Weeks is the fixed number of rows in a month grid.
	Weeks = 6
	// CellCount is the number of day cells in a grid.
	CellCount = Weeks * 7
)

// Headers are the weekday column labels, Sunday first.
var Headers = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Cell is one day of the grid.
type Cell struct {
	Date         time.Time
	CurrentMonth bool
	Today        bool
	Marked       bool
}

// Grid is a month laid out as six full weeks.
type Grid struct {
	Year  int
	Month time.Month
	Cells [CellCount]Cell
}

// MarkChecker reports whether a date is marked.
type MarkChecker interface {
	IsMarked(date time.Time) bool
}

// Build lays out the month containing month: days borrowed from the previous
// month up to the first weekday, the whole month, then days of the next month
// until all 42 cells are filled. marks may be nil.
func Build(month, today time.Time, marks MarkChecker) Grid {
	first := dates.FirstOfMonth(month)
	g := Grid{Year: first.Year(), Month: first.Month()}

	start := first.AddDate(0, 0, -int(first.Weekday()))
	for i := range g.Cells {
		d := start.AddDate(0, 0, i)
		g.Cells[i] = Cell{
			Date:         d,
			CurrentMonth: dates.IsSameMonth(d, first),
			Today:        dates.IsSameDay(d, today),
			Marked:       marks != nil && marks.IsMarked(d),
		}
	}
	return g
}

// CurrentMonthCount returns how many cells belong to the grid's month.
func (g Grid) CurrentMonthCount() int {
	n := 0
	for _, c := range g.Cells {
		if c.CurrentMonth {
			n++
		}
	}
	return n
}

// Index returns the cell index of date, or -1 if it is not on the grid.
func (g Grid) Index(date time.Time) int {
	for i, c := range g.Cells {
		if dates.IsSameDay(c.Date, date) {
			return i
		}
	}
	return -1
}

// Week returns the cells of row w.
func (g Grid) Week(w int) []Cell {
	return g.Cells[w*7 : w*7+7]
}

// MarkedCount returns how many current-month cells are marked.
func (g Grid) MarkedCount() int {
	n := 0
	for _, c := range g.Cells {
		if c.CurrentMonth && c.Marked {
			n++
		}
	}
	return n
}
