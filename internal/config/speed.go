package config

import "fmt"

// SpeedPreset is a named motion speed.
type SpeedPreset string

const (
	SpeedSlow    SpeedPreset = "slow"
	SpeedNormal  SpeedPreset = "normal"
	SpeedFast    SpeedPreset = "fast"
	SpeedInstant SpeedPreset = "instant"
)

// SpeedPresets lists the presets in increasing speed.
var SpeedPresets = []SpeedPreset{SpeedSlow, SpeedNormal, SpeedFast, SpeedInstant}

// VelocityForPreset returns the velocity in cells per tick for a preset.
func VelocityForPreset(preset SpeedPreset) (float64, error) {
	switch preset {
	case SpeedSlow:
		return 0.125, nil
	case SpeedNormal:
		return 0.25, nil
	case SpeedFast:
		return 0.5, nil
	case SpeedInstant:
		return 1.0, nil
	default:
		return 0, fmt.Errorf("unknown speed %q (want one of %v)", preset, SpeedPresets)
	}
}

// ApplySpeedPreset overrides the motion velocity with a preset.
// An empty preset leaves the config unchanged.
func ApplySpeedPreset(cfg *SokobanConfig, preset SpeedPreset) error {
	if preset == "" {
		return nil
	}
	v, err := VelocityForPreset(preset)
	if err != nil {
		return err
	}
	cfg.Motion.Velocity = v
	return nil
}
