package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/sokoban.yaml
var defaultSokobanYAML []byte

// DefaultSokobanConfig returns the default configuration.
func DefaultSokobanConfig() SokobanConfig {
	return SokobanConfig{
		Motion: MotionConfig{
			Velocity:      0.25,
			DebugVelocity: 1.0,
		},
		Play: PlayConfig{
			TickRate: 30,
		},
		Storage: StorageConfig{
			DBPath: "~/.sokoban/records.db",
		},
		Server: ServerConfig{
			Address:            ":23235",
			IdleTimeout:        30 * time.Minute,
			MaxSessionsPerUser: 3,
		},
	}
}
