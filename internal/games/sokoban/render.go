package sokoban

import (
	"fmt"
	"math"
	"time"

	platformcore "github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
)

const (
	hudHeight    = 2 // Title line and separator
	footerHeight = 1 // Controls line
)

// glyph is how one board cell is drawn.
type glyph struct {
	text  string
	color platformcore.Color
}

var (
	glyphWall        = glyph{"██", platformcore.ColorGray}
	glyphFloor       = glyph{"  ", platformcore.ColorDefault}
	glyphGoal        = glyph{"··", platformcore.ColorYellow}
	glyphBlock       = glyph{"[]", platformcore.ColorOrange}
	glyphBlockOnGoal = glyph{"[]", platformcore.ColorBrightGreen}
	glyphPlayer      = glyph{"@@", platformcore.ColorBrightCyan}
)

// Render draws the HUD, the board and any overlay.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	if g.level == nil {
		dst.DrawTextCentered(dst.Height()/2, "No levels to play", platformcore.ColorRed)
		return
	}

	g.renderHUD(dst)
	g.renderFooter(dst)

	board := platformcore.NewRect(0, hudHeight, dst.Width(), dst.Height()-hudHeight-footerHeight)
	if !g.renderBoard(dst, board) {
		dst.DrawTextCentered(board.Y+board.H/2, "Terminal too small for this level", platformcore.ColorRed)
		return
	}

	switch {
	case g.finished:
		g.renderOverlay(dst, board, "All levels solved!", "Press B for the menu or Q to quit", platformcore.ColorBrightGreen)
	case g.solved:
		line := fmt.Sprintf("%d moves in %s", g.level.Moves(), formatElapsed(g.level.Elapsed()))
		g.renderOverlay(dst, board, "Level solved! "+line, "Enter: next level   R: replay", platformcore.ColorBrightGreen)
	case g.paused:
		g.renderOverlay(dst, board, "Paused", "Press P to resume", platformcore.ColorBrightYellow)
	}
}

func (g *Game) renderHUD(dst *platformcore.Screen) {
	title := g.current.Title()
	hud := fmt.Sprintf(" SOKOBAN  %s  [%d/%d]  Moves: %d  Time: %s  Goals: %d/%d",
		title, g.index+1, len(g.all), g.level.Moves(), formatElapsed(g.level.Elapsed()),
		g.level.GoalsFilled(), len(g.level.Blocks()))
	dst.DrawTextWithColor(0, 0, hud, platformcore.ColorCyan)
	dst.DrawHLine(0, 1, dst.Width(), '─', platformcore.ColorGray)
}

func (g *Game) renderFooter(dst *platformcore.Screen) {
	controls := " Arrows/WASD/HJKL: move  U: undo  R: restart  N/[: skip  P: pause  Q: quit"
	if out, ok := g.LastOutcome(); ok && !out.Accepted() && out.Reason != core.RejectBusy {
		controls = fmt.Sprintf(" Can't move %s: %s", out.Dir, rejectText(out.Reason))
	}
	dst.DrawTextWithColor(0, dst.Height()-1, controls, platformcore.ColorGray)
}

func rejectText(r core.RejectReason) string {
	switch r {
	case core.RejectWall:
		return "wall"
	case core.RejectBlocked:
		return "block can't be pushed"
	default:
		return r.String()
	}
}

// renderBoard draws the grid centered in area. Cells are two characters
// wide when they fit, one otherwise. Returns false if the level does not
// fit at all.
func (g *Game) renderBoard(dst *platformcore.Screen, area platformcore.Rect) bool {
	grid := g.level.Grid()

	cellW := 2
	if grid.W*cellW > area.W {
		cellW = 1
	}
	if grid.W*cellW > area.W || grid.H > area.H {
		return false
	}

	origin := area.Centered(grid.W*cellW, grid.H)

	for y := 0; y < grid.H; y++ {
		for x := 0; x < grid.W; x++ {
			var gl glyph
			switch grid.At(core.C(x, y)) {
			case core.TileWall:
				gl = glyphWall
			case core.TileGoal:
				gl = glyphGoal
			case core.TileFloor:
				gl = glyphFloor
			default:
				continue
			}
			drawGlyph(dst, origin.X+x*cellW, origin.Y+y, cellW, gl)
		}
	}

	for _, b := range g.level.Blocks() {
		gl := glyphBlock
		if b.Goal {
			gl = glyphBlockOnGoal
		}
		px, py := piecePosition(origin, cellW, b.Col, b.Row)
		drawGlyph(dst, px, py, cellW, gl)
	}

	p := g.level.Player()
	px, py := piecePosition(origin, cellW, p.Col, p.Row)
	drawGlyph(dst, px, py, cellW, glyphPlayer)
	return true
}

// piecePosition maps a fractional board position to screen coordinates,
// so pieces glide between cells while in transit.
func piecePosition(origin platformcore.Rect, cellW int, col, row float64) (int, int) {
	x := origin.X + int(math.Round(col*float64(cellW)))
	y := origin.Y + int(math.Round(row))
	return x, y
}

func drawGlyph(dst *platformcore.Screen, x, y, cellW int, gl glyph) {
	runes := []rune(gl.text)
	for i := 0; i < cellW && i < len(runes); i++ {
		dst.SetWithColor(x+i, y, runes[i], gl.color)
	}
}

func (g *Game) renderOverlay(dst *platformcore.Screen, area platformcore.Rect, line1, line2 string, c platformcore.Color) {
	w := max(len([]rune(line1)), len([]rune(line2))) + 4
	box := area.Centered(w, 4)
	for y := box.Y; y < box.Bottom(); y++ {
		dst.DrawHLine(box.X, y, box.W, ' ', platformcore.ColorDefault)
	}
	dst.DrawBox(box, c)
	dst.DrawTextWithColor(box.X+2, box.Y+1, line1, c)
	dst.DrawTextWithColor(box.X+2, box.Y+2, line2, platformcore.ColorGray)
}

func formatElapsed(d time.Duration) string {
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
