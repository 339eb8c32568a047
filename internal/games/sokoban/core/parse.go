package core

import "unicode/utf8"

// Level text symbols.
const (
	SymWall         = '#'
	SymPlayer       = '@'
	SymPlayerOnGoal = '+'
	SymBlock        = '$'
	SymBlockOnGoal  = '*'
	SymGoal         = '.'
	SymFloor        = ' '
)

// Layout is the result of parsing a level: the static grid plus the start
// cells of the moving pieces.
type Layout struct {
	Grid      *Grid
	Player    Coord
	HasPlayer bool
	Blocks    []Coord
}

// Parser fills a fixed-size grid one text line at a time.
// Each Feed populates the first row that is still completely undefined,
// so a level split across several calls parses the same as one call.
type Parser struct {
	grid      *Grid
	player    Coord
	hasPlayer bool
	blocks    []Coord
}

// NewParser creates a parser for a level of the given dimensions.
func NewParser(rows, cols int) *Parser {
	return &Parser{
		grid:   NewGrid(cols, rows),
		blocks: make([]Coord, 0),
	}
}

// Feed parses one line into the next unpopulated row.
// Unknown symbols are skipped. Floor before the first wall on a line is
// padding, and floor on the first or last row is never placed.
func (p *Parser) Feed(line string) {
	row := p.nextRow()
	if row < 0 {
		return
	}
	last := p.grid.H - 1

	begin := false
	col := 0
	for _, r := range line {
		if col >= p.grid.W {
			break
		}
		c := C(col, row)
		col++

		switch r {
		case SymWall:
			begin = true
			p.grid.set(c, TileWall)
		case SymPlayer:
			p.player, p.hasPlayer = c, true
			p.grid.set(c, TileFloor)
		case SymPlayerOnGoal:
			p.player, p.hasPlayer = c, true
			p.grid.set(c, TileGoal)
		case SymBlock:
			p.blocks = append(p.blocks, c)
			p.grid.set(c, TileFloor)
		case SymBlockOnGoal:
			p.blocks = append(p.blocks, c)
			p.grid.set(c, TileGoal)
		case SymGoal:
			p.grid.set(c, TileGoal)
		case SymFloor:
			if row == 0 || row == last || !begin {
				continue
			}
			p.grid.set(c, TileFloor)
		}
	}
}

// nextRow returns the first row with no tiles yet, or -1 when all are filled.
func (p *Parser) nextRow() int {
	for y := 0; y < p.grid.H; y++ {
		if p.grid.rowEmpty(y) {
			return y
		}
	}
	return -1
}

// Layout returns the parsed result. The block slice is a copy.
func (p *Parser) Layout() Layout {
	blocks := make([]Coord, len(p.blocks))
	copy(blocks, p.blocks)
	return Layout{
		Grid:      p.grid,
		Player:    p.player,
		HasPlayer: p.hasPlayer,
		Blocks:    blocks,
	}
}

// ParseLevel parses the lines of a single level. The grid has one row per
// line and as many columns as the longest line.
func ParseLevel(lines []string) Layout {
	cols := 0
	for _, line := range lines {
		if n := utf8.RuneCountInString(line); n > cols {
			cols = n
		}
	}

	p := NewParser(len(lines), cols)
	for _, line := range lines {
		p.Feed(line)
	}
	return p.Layout()
}
