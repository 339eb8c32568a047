package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestMenuMarksCompletedLevels(t *testing.T) {
	store := openStore(t)
	if _, _, err := store.Complete("test-001", 1, 2*time.Second); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	m := NewMenuModel(testPacks(t)[0].Levels, store, testConfig())

	if m.Cursor() != 1 {
		t.Errorf("Cursor() = %d, want first unsolved level", m.Cursor())
	}
	view := m.View()
	if !strings.Contains(view, "1/2 solved") {
		t.Errorf("View() missing solved count:\n%s", view)
	}
	if !strings.Contains(view, "best 1 moves, 0:02") {
		t.Errorf("View() missing best result:\n%s", view)
	}
}

func TestMenuSelect(t *testing.T) {
	m := NewMenuModel(testPacks(t)[0].Levels, nil, testConfig())

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(MenuModel)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)

	if cmd == nil {
		t.Error("select should end the menu program")
	}
	sel := m.Selected()
	if sel == nil || sel.Level.ID != "test-002" {
		t.Fatalf("Selected() = %+v, want test-002", sel)
	}
}

func TestMenuCursorBounds(t *testing.T) {
	m := NewMenuModel(testPacks(t)[0].Levels, nil, testConfig())

	for range 5 {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
		m = next.(MenuModel)
	}
	if m.Cursor() != 0 {
		t.Errorf("Cursor() = %d, want 0", m.Cursor())
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	m = next.(MenuModel)
	if m.Cursor() != 1 {
		t.Errorf("Cursor() = %d, want last level", m.Cursor())
	}
}

func TestMenuRecordsAndQuit(t *testing.T) {
	m := NewMenuModel(testPacks(t)[0].Levels, nil, testConfig())

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if !next.(MenuModel).WantsRecords() {
		t.Error("tab should open records")
	}

	next, _ = m.Update(runeKey('q'))
	if !next.(MenuModel).IsQuitting() {
		t.Error("q should quit")
	}
}

func TestRecordsModel(t *testing.T) {
	store := openStore(t)
	if _, _, err := store.Complete("test-002", 3, 65*time.Second); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	m := NewRecordsModel(testPacks(t), store, 100, 30)
	if got := len(m.table.Rows()); got != 2 {
		t.Fatalf("rows = %d, want 2", got)
	}

	row := m.table.Rows()[1]
	if row[2] != "3" || row[3] != "1:05" {
		t.Errorf("row = %v, want 3 moves in 1:05", row)
	}
	if m.table.Rows()[0][2] != "-" {
		t.Errorf("unsolved row = %v, want placeholders", m.table.Rows()[0])
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(RecordsModel)
	if !strings.Contains(m.View(), "Recent: 3 moves/1:05") {
		t.Errorf("View() missing recent runs:\n%s", m.View())
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(RecordsModel).IsGoingBack() {
		t.Error("esc should go back")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{1500 * time.Millisecond, "0:02"},
		{59 * time.Second, "0:59"},
		{61 * time.Second, "1:01"},
		{10 * time.Minute, "10:00"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
