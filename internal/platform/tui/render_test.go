package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-sokoban/internal/core"
)

func TestRenderScreenKeepsLayout(t *testing.T) {
	s := core.NewScreen(10, 3)
	s.DrawTextWithColor(0, 0, "##", core.ColorGray)
	s.DrawTextWithColor(2, 0, "@", core.ColorBrightCyan)
	s.DrawTextWithColor(0, 2, "moves", core.ColorCyan)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if !strings.Contains(lines[0], "##") || !strings.Contains(lines[0], "@") {
		t.Errorf("line 0 = %q, want wall and player", lines[0])
	}
	if !strings.Contains(lines[2], "moves") {
		t.Errorf("line 2 = %q, want text", lines[2])
	}
}

func TestEveryColorHasStyle(t *testing.T) {
	for c := core.ColorDefault; c <= core.ColorGray; c++ {
		if _, ok := colorStyles[c]; !ok {
			t.Errorf("color %d has no style", c)
		}
	}
}
