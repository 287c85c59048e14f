package dialog

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"messcut/internal/messcut"
	"messcut/internal/tui/messages"
)

var day = time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local)

func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestOpenForNew(t *testing.T) {
	m := New()
	m.Open(day, nil)

	if m.State() != OpenNew {
		t.Fatalf("expected open-for-new, got %s", m.State())
	}
	if m.Title() != "Mark Mess Cut - 15/03/2024" {
		t.Errorf("unexpected title %q", m.Title())
	}
	if strings.Contains(m.View(), "Unmark") {
		t.Error("unmark action should be hidden for a new mark")
	}
}

func TestOpenForEdit(t *testing.T) {
	m := New()
	m.Open(day, &messcut.Mark{Note: "skip"})

	if m.State() != OpenEdit {
		t.Fatalf("expected open-for-edit, got %s", m.State())
	}
	if m.Value() != "skip" {
		t.Errorf("expected prefilled note, got %q", m.Value())
	}
	if !strings.HasPrefix(m.Title(), "Edit Mess Cut") {
		t.Errorf("unexpected title %q", m.Title())
	}
	if !strings.Contains(m.View(), "Unmark") {
		t.Error("expected unmark action for an existing mark")
	}
}

func TestSaveEmitsTrimmedNoteAndCloses(t *testing.T) {
	m := New()
	m.Open(day, nil)
	m = typeText(m, "  dinner out  ")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if m.IsOpen() {
		t.Error("expected dialog to close after save")
	}
	if cmd == nil {
		t.Fatal("expected save command")
	}
	save, ok := cmd().(messages.SaveMarkMsg)
	if !ok {
		t.Fatalf("expected SaveMarkMsg, got %T", cmd())
	}
	if save.Note != "dinner out" {
		t.Errorf("expected trimmed note, got %q", save.Note)
	}
	if !save.Date.Equal(day) {
		t.Errorf("expected %v, got %v", day, save.Date)
	}
}

func TestSaveWithEmptyNote(t *testing.T) {
	m := New()
	m.Open(day, nil)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	save := cmd().(messages.SaveMarkMsg)
	if save.Note != "" {
		t.Errorf("expected empty note, got %q", save.Note)
	}
}

func TestUnmarkOnlyInEditState(t *testing.T) {
	m := New()
	m.Open(day, nil)
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	if cmd != nil || !m.IsOpen() {
		t.Error("unmark should do nothing for a new mark")
	}

	m.Open(day, &messcut.Mark{Note: "x"})
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	if m.IsOpen() {
		t.Error("expected dialog to close after unmark")
	}
	unmark, ok := cmd().(messages.UnmarkMsg)
	if !ok || !unmark.Date.Equal(day) {
		t.Errorf("expected UnmarkMsg for %v, got %#v", day, unmark)
	}
}

func TestEscapeCancels(t *testing.T) {
	m := New()
	m.Open(day, &messcut.Mark{Note: "keep"})

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd != nil {
		t.Error("cancel should not emit a message")
	}
	if m.IsOpen() || m.Value() != "" || !m.Date().IsZero() {
		t.Error("expected closed dialog with reset state")
	}
}

func TestClosedDialogIgnoresInput(t *testing.T) {
	m := New()
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd != nil || m.View() != "" {
		t.Error("closed dialog should ignore input and render nothing")
	}
}
