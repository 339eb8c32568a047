package levels

import (
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
)

// commentPrefix starts a title or comment line in a pack file.
const commentPrefix = ";"

// Span locates one level inside the lines of a pack file.
// Start and End are inclusive line indices.
type Span struct {
	Start int
	End   int
	Cols  int    // Longest line of the level
	Title string // Text of the comment line right above the level, if any
}

// Rows returns the number of lines in the span.
func (s Span) Rows() int {
	return s.End - s.Start + 1
}

// Scan finds every level in a pack. A level is a maximal run of lines that
// each contain a wall; any other line ends it.
func Scan(lines []string) []Span {
	var spans []Span
	var cur *Span
	title := ""

	for i, line := range lines {
		if isLevelLine(line) {
			if cur == nil {
				cur = &Span{Start: i, Title: title}
			}
			cur.End = i
			cur.Cols = max(cur.Cols, utf8.RuneCountInString(line))
			continue
		}

		if cur != nil {
			spans = append(spans, *cur)
			cur = nil
			title = ""
		}
		if t, ok := commentText(line); ok {
			title = t
		} else if strings.TrimSpace(line) != "" {
			title = ""
		}
	}
	if cur != nil {
		spans = append(spans, *cur)
	}
	return spans
}

// SplitLines splits pack text into lines, accepting both LF and CRLF.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

func isLevelLine(line string) bool {
	if strings.HasPrefix(strings.TrimSpace(line), commentPrefix) {
		return false
	}
	return strings.ContainsRune(line, core.SymWall)
}

func commentText(line string) (string, bool) {
	s := strings.TrimSpace(line)
	if !strings.HasPrefix(s, commentPrefix) {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(s, commentPrefix)), true
}
