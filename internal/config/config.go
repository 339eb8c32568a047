// Package config provides YAML-based configuration loading for Sokoban.
package config

import (
	"errors"
	"fmt"
	"time"
)

// SokobanConfig contains all configuration for the game and its front ends.
type SokobanConfig struct {
	Motion  MotionConfig  `yaml:"motion"`
	Play    PlayConfig    `yaml:"play"`
	Storage StorageConfig `yaml:"storage"`
	Server  ServerConfig  `yaml:"server"`
}

// MotionConfig defines how fast pieces glide between cells.
type MotionConfig struct {
	Velocity      float64 `yaml:"velocity"`       // Cells per tick
	DebugVelocity float64 `yaml:"debug_velocity"` // Cells per tick in debug mode
}

// PlayConfig defines the play loop.
type PlayConfig struct {
	TickRate  int    `yaml:"tick_rate"`
	LevelsDir string `yaml:"levels_dir"`
	Debug     bool   `yaml:"debug"`
}

// StorageConfig locates the records database.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// ServerConfig defines the SSH server.
type ServerConfig struct {
	Address     string        `yaml:"address"`
	HostKeyPath string        `yaml:"host_key_path"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
	// MaxSessionsPerUser caps concurrent sessions of one SSH user; 0 means no cap.
	MaxSessionsPerUser int `yaml:"max_sessions_per_user"`
}

// EffectiveVelocity returns the velocity for the current mode.
func (c SokobanConfig) EffectiveVelocity() float64 {
	if c.Play.Debug {
		return c.Motion.DebugVelocity
	}
	return c.Motion.Velocity
}

// Validate checks value ranges.
func (c SokobanConfig) Validate() error {
	var errs []error
	if c.Motion.Velocity <= 0 {
		errs = append(errs, fmt.Errorf("motion.velocity must be positive, got %v", c.Motion.Velocity))
	}
	if c.Motion.DebugVelocity <= 0 {
		errs = append(errs, fmt.Errorf("motion.debug_velocity must be positive, got %v", c.Motion.DebugVelocity))
	}
	if c.Play.TickRate < 1 || c.Play.TickRate > 240 {
		errs = append(errs, fmt.Errorf("play.tick_rate must be within 1..240, got %d", c.Play.TickRate))
	}
	if c.Storage.DBPath == "" {
		errs = append(errs, errors.New("storage.db_path must be set"))
	}
	if c.Server.IdleTimeout < 0 {
		errs = append(errs, fmt.Errorf("server.idle_timeout must not be negative, got %v", c.Server.IdleTimeout))
	}
	if c.Server.MaxSessionsPerUser < 0 {
		errs = append(errs, fmt.Errorf("server.max_sessions_per_user must not be negative, got %d", c.Server.MaxSessionsPerUser))
	}
	return errors.Join(errs...)
}
