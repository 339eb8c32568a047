package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the file name searched for in the config directories.
const ConfigFile = "sokoban.yaml"

// Load loads the configuration.
// Search order: customPath -> ~/.sokoban/configs/sokoban.yaml -> ./configs/sokoban.yaml -> embedded default
// Files are decoded over the defaults, so a partial file only overrides
// the keys it names.
func Load(customPath string) (SokobanConfig, error) {
	cfg, err := defaults()
	if err != nil {
		return cfg, err
	}

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range searchPaths() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		candidate := cfg
		if err := yaml.Unmarshal(data, &candidate); err == nil {
			return candidate, nil
		}
	}

	return cfg, nil
}

// defaults decodes the embedded default YAML.
func defaults() (SokobanConfig, error) {
	cfg := DefaultSokobanConfig()
	if err := yaml.Unmarshal(defaultSokobanYAML, &cfg); err != nil {
		return DefaultSokobanConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func searchPaths() []string {
	var paths []string
	if p := userConfigPath(ConfigFile); p != "" {
		paths = append(paths, p)
	}
	return append(paths, filepath.Join("configs", ConfigFile))
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".sokoban", "configs", filename)
}

// DataDir returns ~/.sokoban, or .sokoban when home is unavailable.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sokoban"
	}
	return filepath.Join(home, ".sokoban")
}
