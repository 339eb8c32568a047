package levels

import "fmt"

// Pack is an ordered collection of levels read from one file.
type Pack struct {
	Name     string // Relative file path without extension, used in level IDs
	Title    string // Display title
	Levels   []Level
	FilePath string
}

// ParsePack splits pack text into levels. Levels keep file order.
func ParsePack(name, text string) (*Pack, error) {
	lines := SplitLines(text)
	spans := Scan(lines)
	if len(spans) == 0 {
		return nil, fmt.Errorf("pack %s: %w", name, ErrNoLevels)
	}

	p := &Pack{
		Name:   name,
		Title:  name,
		Levels: make([]Level, 0, len(spans)),
	}
	for i, s := range spans {
		index := i + 1
		body := make([]string, s.Rows())
		copy(body, lines[s.Start:s.End+1])
		p.Levels = append(p.Levels, Level{
			ID:    LevelID(name, index),
			Pack:  name,
			Index: index,
			Name:  s.Title,
			Lines: body,
			Cols:  s.Cols,
		})
	}
	return p, nil
}

// Len returns the number of levels.
func (p *Pack) Len() int {
	return len(p.Levels)
}

// applyManifest copies titles, names and solutions from the manifest.
func (p *Pack) applyManifest(m ManifestPack) {
	if m.Title != "" {
		p.Title = m.Title
	}
	for _, ml := range m.Levels {
		if ml.Index < 1 || ml.Index > len(p.Levels) {
			continue
		}
		lvl := &p.Levels[ml.Index-1]
		if ml.Name != "" {
			lvl.Name = ml.Name
		}
		if ml.Solution != "" {
			lvl.Solution = ml.Solution
		}
	}
}

// dropInvalid removes levels that cannot be played and won. Remaining
// levels keep their IDs. Returns the validation error of each dropped level.
func (p *Pack) dropInvalid() []error {
	var errs []error
	kept := p.Levels[:0]
	for i := range p.Levels {
		if err := p.Levels[i].Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		kept = append(kept, p.Levels[i])
	}
	p.Levels = kept
	return errs
}
