package tui

import (
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

func TestPlayerName(t *testing.T) {
	tests := map[string]string{
		"alice":   "alice",
		" Alice ": "alice",
		"":        "guest",
		"   ":     "guest",
	}
	for in, want := range tests {
		if got := playerName(in); got != want {
			t.Errorf("playerName(%q) = %q, expected %q", in, got, want)
		}
	}
}

func TestSessionLimiter(t *testing.T) {
	l := newSessionLimiter(2)

	if !l.acquire("alice") || !l.acquire("alice") {
		t.Fatal("first two sessions should be allowed")
	}
	if l.acquire("alice") {
		t.Error("third session should be refused")
	}
	if !l.acquire("bob") {
		t.Error("other players are counted separately")
	}
	if l.total() != 3 {
		t.Errorf("total = %d, expected 3", l.total())
	}

	l.release("alice")
	if !l.acquire("alice") {
		t.Error("released slot should be reusable")
	}

	l.release("alice")
	l.release("alice")
	l.release("bob")
	if l.total() != 0 {
		t.Errorf("total = %d after releasing everything", l.total())
	}
}

func TestSessionLimiterUnlimited(t *testing.T) {
	l := newSessionLimiter(0)
	for range 10 {
		if !l.acquire("alice") {
			t.Fatal("limit 0 should never refuse")
		}
	}
}

func TestPlayerProgress(t *testing.T) {
	store := openStore(t)
	packs := testPacks(t)
	alice := store.ForPlayer("alice")

	if _, _, err := alice.Complete("test-001", 1, time.Second); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	// Records of levels the server no longer offers are not counted.
	if _, _, err := alice.Complete("gone-001", 1, time.Second); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	solved, total, err := playerProgress(alice, packs)
	if err != nil {
		t.Fatalf("playerProgress() error = %v", err)
	}
	if solved != 1 || total != 2 {
		t.Errorf("alice progress = %d/%d, expected 1/2", solved, total)
	}

	solved, _, err = playerProgress(store.ForPlayer("bob"), packs)
	if err != nil {
		t.Fatalf("playerProgress() error = %v", err)
	}
	if solved != 0 {
		t.Errorf("bob solved = %d, expected 0", solved)
	}
}

func TestSessionModelPerPlayer(t *testing.T) {
	store := openStore(t)
	srv := &SSHServer{
		config: SSHServerConfig{
			TickRate: 30,
			Packs:    testPacks(t),
		},
		store:    store,
		logger:   log.New(io.Discard),
		sessions: newSessionLimiter(1),
	}

	if _, _, err := store.ForPlayer("alice").Complete("test-001", 1, time.Second); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	alice := srv.sessionModel("Alice", 80, 24)
	if alice.opts.Store.Player() != "alice" {
		t.Errorf("store player = %q, expected alice", alice.opts.Store.Player())
	}
	if !alice.menu.items[0].Done {
		t.Error("alice should see her solved level")
	}
	if !strings.Contains(alice.View(), "alice: 1/2 solved") {
		t.Errorf("menu should greet alice with her progress:\n%s", alice.View())
	}

	bob := srv.sessionModel("bob", 80, 24)
	if bob.menu.items[0].Done {
		t.Error("bob must not see alice's records")
	}
	// Bob starts on the first level since he has solved nothing.
	if bob.menu.Cursor() != 0 {
		t.Errorf("bob cursor = %d, expected 0", bob.menu.Cursor())
	}

	// Completing a level as bob stays in bob's records.
	bob = sessionSend(t, bob, tea.KeyMsg{Type: tea.KeyEnter})
	bob = sessionSend(t, bob, tea.KeyMsg{Type: tea.KeyRight})
	bob = sessionSend(t, bob, TickMsg(time.Now()))
	done, err := store.ForPlayer("bob").CompletedLevels()
	if err != nil {
		t.Fatalf("CompletedLevels() error = %v", err)
	}
	if !done["test-001"] {
		t.Error("bob's completion should be saved under bob")
	}
	if local, _ := store.CompletedLevels(); len(local) != 0 {
		t.Errorf("local records = %v, expected none", local)
	}
}

func TestSessionModelWithoutStore(t *testing.T) {
	srv := &SSHServer{
		config:   SSHServerConfig{TickRate: 30, Packs: testPacks(t)},
		logger:   log.New(io.Discard),
		sessions: newSessionLimiter(1),
	}

	m := srv.sessionModel("", 80, 24)
	if m.opts.Store != nil {
		t.Error("session should run without records")
	}
	if m.opts.Player != "guest" {
		t.Errorf("player = %q, expected guest", m.opts.Player)
	}
}
