package calendar

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"messcut/internal/dates"
	"messcut/internal/messcut"
	"messcut/internal/storage"
	"messcut/internal/tui/messages"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func fixClock(t *testing.T, now time.Time) {
	t.Helper()
	orig := dates.Now
	dates.Now = func() time.Time { return now }
	t.Cleanup(func() { dates.Now = orig })
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newModel(t *testing.T) (MonthModel, *messcut.Store) {
	t.Helper()
	fixClock(t, time.Date(2024, 1, 10, 12, 0, 0, 0, time.Local))
	store := messcut.NewStore(storage.NewMemoryStorage(), "")
	m := NewMonthModel(store)
	m.SetSize(80, 20)
	return m, store
}

func TestNewMonthModelShowsCurrentMonth(t *testing.T) {
	m, _ := newModel(t)
	if !dates.IsSameDay(m.CurrentMonth(), date(2024, 1, 1)) {
		t.Errorf("expected January 2024, got %v", m.CurrentMonth())
	}
	if !strings.Contains(m.View(), "January 2024") {
		t.Error("expected month title in view")
	}
}

func TestMonthNavigation(t *testing.T) {
	m, _ := newModel(t)

	m, _ = m.Update(key("L"))
	if m.CurrentMonth().Month() != time.February {
		t.Errorf("expected February, got %s", m.CurrentMonth().Month())
	}

	m, _ = m.Update(key("H"))
	m, _ = m.Update(key("H"))
	if m.CurrentMonth().Month() != time.December || m.CurrentMonth().Year() != 2023 {
		t.Errorf("expected December 2023, got %v", m.CurrentMonth())
	}

	m, _ = m.Update(key("t"))
	if !dates.IsSameDay(m.Cursor(), date(2024, 1, 10)) {
		t.Errorf("expected cursor on today, got %v", m.Cursor())
	}
}

func TestCursorCrossesMonth(t *testing.T) {
	m, _ := newModel(t)
	m.JumpTo(date(2024, 1, 1))

	m, _ = m.Update(key("left"))
	if !dates.IsSameDay(m.Cursor(), date(2023, 12, 31)) {
		t.Errorf("expected 2023-12-31, got %v", m.Cursor())
	}
	if m.CurrentMonth().Month() != time.December {
		t.Errorf("expected view to follow cursor into December, got %s", m.CurrentMonth().Month())
	}
}

func TestEnterEmitsDateSelected(t *testing.T) {
	m, _ := newModel(t)
	m.JumpTo(date(2024, 1, 15))

	_, cmd := m.Update(key("enter"))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(messages.DateSelectedMsg)
	if !ok {
		t.Fatalf("expected DateSelectedMsg, got %T", cmd())
	}
	if !dates.IsSameDay(msg.Date, date(2024, 1, 15)) {
		t.Errorf("expected 2024-01-15, got %v", msg.Date)
	}
}

func TestClickSelectsAdjacentMonthCell(t *testing.T) {
	m, _ := newModel(t)

	// Row 0, column 0 of January 2024 is December 31.
	_, cmd := m.Update(tea.MouseMsg{X: 1, Y: GridOriginY, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if cmd == nil {
		t.Fatal("expected a command for a click on the grid")
	}
	msg := cmd().(messages.DateSelectedMsg)
	if !dates.IsSameDay(msg.Date, date(2023, 12, 31)) {
		t.Errorf("expected 2023-12-31, got %v", msg.Date)
	}

	if _, ok := m.CellAt(1, 0); ok {
		t.Error("expected no cell on the title line")
	}
}

func TestViewShowsMarksAndNote(t *testing.T) {
	m, store := newModel(t)
	store.Mark(date(2024, 1, 15), "skip")
	m.JumpTo(date(2024, 1, 15))

	view := m.View()
	if !strings.Contains(view, "15*") {
		t.Error("expected marked day to carry an asterisk")
	}
	if !strings.Contains(view, "skip") {
		t.Error("expected note of the cursor day in the detail line")
	}

	g := m.Render()
	if g.MarkedCount() != 1 {
		t.Errorf("expected 1 marked cell, got %d", g.MarkedCount())
	}
}

func TestRenderIsIdempotent(t *testing.T) {
	m, _ := newModel(t)
	if m.View() != m.View() {
		t.Error("expected identical output on repeated renders")
	}
	if got := strings.Count(m.renderGrid(m.Render()), "\n"); got != 7 {
		t.Errorf("expected header plus 6 week lines, got %d lines", got)
	}
}
