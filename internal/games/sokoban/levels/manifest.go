package levels

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ManifestFile is the name of the optional manifest in a pack directory.
const ManifestFile = "pack.yaml"

// Manifest describes the packs of a directory: display titles, level
// names and known solutions.
type Manifest struct {
	Packs map[string]ManifestPack `yaml:"packs"`
}

// ManifestPack is the manifest entry of one pack, keyed by file stem.
type ManifestPack struct {
	Title  string          `yaml:"title"`
	Order  int             `yaml:"order,omitempty"`
	Levels []ManifestLevel `yaml:"levels,omitempty"`
}

// ManifestLevel annotates one level by its 1-based index.
type ManifestLevel struct {
	Index    int    `yaml:"index"`
	Name     string `yaml:"name,omitempty"`
	Solution string `yaml:"solution,omitempty"`
}

// ParseManifest parses a YAML manifest.
func ParseManifest(data []byte) (Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return m, nil
}
