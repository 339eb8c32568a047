package core

import "strings"

// RenderASCII writes the level using the level text symbols, one line per
// row with trailing blanks trimmed. Pieces are drawn at their destination
// cells, so the output is the settled state and parses back to the same
// layout.
func RenderASCII(lv *Level) string {
	g := lv.Grid()
	var sb strings.Builder

	rows := make([][]rune, g.H)
	for y := 0; y < g.H; y++ {
		row := make([]rune, g.W)
		for x := 0; x < g.W; x++ {
			row[x] = tileSymbol(g.At(C(x, y)))
		}
		rows[y] = row
	}

	for _, c := range lv.BlockCells() {
		if g.InBounds(c) {
			if g.At(c) == TileGoal {
				rows[c.Y][c.X] = SymBlockOnGoal
			} else {
				rows[c.Y][c.X] = SymBlock
			}
		}
	}

	if p := lv.Player().Dest; lv.layout.HasPlayer && g.InBounds(p) {
		if g.At(p) == TileGoal {
			rows[p.Y][p.X] = SymPlayerOnGoal
		} else {
			rows[p.Y][p.X] = SymPlayer
		}
	}

	for y, row := range rows {
		if y > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(strings.TrimRight(string(row), " "))
	}
	return sb.String()
}

func tileSymbol(t Tile) rune {
	switch t {
	case TileWall:
		return SymWall
	case TileGoal:
		return SymGoal
	default:
		return SymFloor
	}
}
