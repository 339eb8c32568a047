package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-sokoban/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"arrow left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"wasd down", runeKey('s'), core.ActionDown, false},
		{"wasd right", runeKey('d'), core.ActionRight, false},
		{"vim up", runeKey('k'), core.ActionUp, false},
		{"vim left", runeKey('h'), core.ActionLeft, false},
		{"undo", runeKey('u'), core.ActionUndo, false},
		{"undo backspace", tea.KeyMsg{Type: tea.KeyBackspace}, core.ActionUndo, false},
		{"restart", runeKey('r'), core.ActionRestart, false},
		{"next", runeKey('n'), core.ActionNext, false},
		{"prev", runeKey('['), core.ActionPrev, false},
		{"confirm", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"pause", runeKey('p'), core.ActionPause, false},
		{"back", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"quit", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('x'), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action {
				t.Errorf("MapKey() action = %v, want %v", action, tt.action)
			}
			if quit != tt.quit {
				t.Errorf("MapKey() quit = %v, want %v", quit, tt.quit)
			}
		})
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	if km.MapKeyToFrame(runeKey('w'), &frame) {
		t.Fatal("w should not quit")
	}
	if km.MapKeyToFrame(runeKey('u'), &frame) {
		t.Fatal("u should not quit")
	}
	if !km.MapKeyToFrame(runeKey('q'), &frame) {
		t.Fatal("q should quit")
	}

	if !frame.Has(core.ActionUp) || !frame.Has(core.ActionUndo) {
		t.Errorf("frame = %v, want up and undo", frame.Actions)
	}
	if frame.Has(core.ActionQuit) {
		t.Error("quit should not be added to the frame")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey('j'), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyPgDown}, MenuActionPageDown},
		{tea.KeyMsg{Type: tea.KeyPgUp}, MenuActionPageUp},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionRecords},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{runeKey('q'), MenuActionQuit},
		{runeKey('x'), MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}
