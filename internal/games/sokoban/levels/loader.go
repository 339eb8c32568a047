package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
)

//go:embed packs
var embeddedPacks embed.FS

// Loader handles loading level packs from a directory.
type Loader struct {
	Root    string
	fsys    fs.FS
	skipped []error
}

// NewLoader creates a loader reading packs below root.
// An empty root selects the built-in packs.
func NewLoader(root string) *Loader {
	if root == "" {
		return NewEmbeddedLoader()
	}
	return &Loader{Root: root, fsys: os.DirFS(root)}
}

// NewEmbeddedLoader creates a loader over the built-in packs.
func NewEmbeddedLoader() *Loader {
	sub, err := fs.Sub(embeddedPacks, "packs")
	if err != nil {
		panic(fmt.Sprintf("levels: embedded packs: %v", err))
	}
	return &Loader{Root: "", fsys: sub}
}

// LoadAll recursively scans and loads every pack.
// Packs are ordered by manifest order, then by name. Files without levels,
// levels that fail Validate and packs whose name is already taken are
// skipped; Skipped reports why.
func (l *Loader) LoadAll() ([]*Pack, error) {
	l.skipped = nil
	manifest, err := l.loadManifest()
	if err != nil {
		return nil, err
	}

	var packs []*Pack
	seen := make(map[string]string)
	err = fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(path.Ext(p))
		if !isSupportedExtension(ext) {
			return nil
		}

		pack, err := l.LoadFile(p)
		if err != nil {
			l.skipped = append(l.skipped, err)
			return nil
		}
		if prev, ok := seen[pack.Name]; ok {
			l.skipped = append(l.skipped, fmt.Errorf("%s: %q also used by %s: %w", p, pack.Name, prev, ErrDuplicatePack))
			return nil
		}
		seen[pack.Name] = p

		// Manifest indices refer to file positions, so apply before filtering.
		if m, ok := manifest.Packs[pack.Name]; ok {
			pack.applyManifest(m)
		}
		for _, err := range pack.dropInvalid() {
			l.skipped = append(l.skipped, fmt.Errorf("%s: %w", p, err))
		}
		if pack.Len() == 0 {
			l.skipped = append(l.skipped, fmt.Errorf("%s: %w", p, ErrNoLevels))
			return nil
		}
		packs = append(packs, pack)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.describe(), err)
	}

	if len(packs) == 0 {
		return nil, fmt.Errorf("%s: %w", l.describe(), ErrNoLevels)
	}

	sort.SliceStable(packs, func(i, j int) bool {
		oi, oj := manifest.Packs[packs[i].Name].Order, manifest.Packs[packs[j].Name].Order
		if oi != oj {
			return oi < oj
		}
		return packs[i].Name < packs[j].Name
	})
	return packs, nil
}

// Skipped returns what the last LoadAll left out: unreadable files, files
// without levels, duplicate pack names and unplayable levels.
func (l *Loader) Skipped() []error {
	return l.skipped
}

// LoadFile loads a single pack file relative to the loader root.
// Levels are not validated.
func (l *Loader) LoadFile(p string) (*Pack, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", p, err)
	}

	pack, err := ParsePack(PackName(p), string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing file %s: %w", p, err)
	}

	pack.FilePath = p
	for i := range pack.Levels {
		pack.Levels[i].FilePath = p
	}
	return pack, nil
}

// PackName derives a pack name from a slash-separated path relative to
// the loader root: "basics.txt" is "basics", "classic/basics.sok" is
// "classic-basics".
func PackName(p string) string {
	p = path.Clean(p)
	p = strings.TrimSuffix(p, path.Ext(p))
	return strings.ReplaceAll(p, "/", "-")
}

// Levels returns the levels of every pack in play order.
func (l *Loader) Levels() ([]Level, error) {
	packs, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	var all []Level
	for _, p := range packs {
		all = append(all, p.Levels...)
	}
	return all, nil
}

// Find resolves a level reference: an ID, or a 1-based position in play
// order.
func (l *Loader) Find(ref string) (Level, error) {
	all, err := l.Levels()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range all {
		if lvl.ID == ref {
			return lvl, nil
		}
	}

	var n int
	if _, err := fmt.Sscanf(ref, "%d", &n); err == nil && fmt.Sprint(n) == ref {
		if n >= 1 && n <= len(all) {
			return all[n-1], nil
		}
	}
	return Level{}, fmt.Errorf("%s: %w", ref, ErrLevelNotFound)
}

// ListIDs returns all level IDs in play order.
func (l *Loader) ListIDs() ([]string, error) {
	all, err := l.Levels()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(all))
	for i, lvl := range all {
		ids[i] = lvl.ID
	}
	return ids, nil
}

func (l *Loader) loadManifest() (Manifest, error) {
	data, err := fs.ReadFile(l.fsys, ManifestFile)
	if errors.Is(err, fs.ErrNotExist) {
		return Manifest{}, nil
	}
	if err != nil {
		return Manifest{}, fmt.Errorf("reading manifest: %w", err)
	}

	m, err := ParseManifest(data)
	if err != nil {
		return Manifest{}, fmt.Errorf("parsing manifest %s: %w", ManifestFile, err)
	}
	return m, nil
}

func (l *Loader) describe() string {
	if l.Root == "" {
		return "built-in packs"
	}
	return l.Root
}

// FormatExtensions returns supported pack file extensions.
func FormatExtensions() []string {
	return []string{".txt", ".sok"}
}

func isSupportedExtension(ext string) bool {
	for _, supported := range FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
