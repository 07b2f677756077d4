package config

import "netlayout/internal/force"

// Preset names how quickly a layout settles
type Preset string

const (
	PresetFast    Preset = "fast"    // ~66 ticks, for ungrouped layouts
	PresetSettled Preset = "settled" // ~300 ticks, gives clustering time to tighten groups
)

// ParsePreset converts a string to Preset, defaulting to PresetFast
func ParsePreset(s string) Preset {
	switch s {
	case "fast":
		return PresetFast
	case "settled":
		return PresetSettled
	default:
		return PresetFast
	}
}

// PresetProfile holds the decay parameters of a preset
type PresetProfile struct {
	AlphaDecay    float64 `yaml:"alpha_decay"`
	AlphaMin      float64 `yaml:"alpha_min"`
	VelocityDecay float64 `yaml:"velocity_decay"`
}

// PresetProfiles maps presets to their decay parameters
var PresetProfiles = map[Preset]PresetProfile{
	PresetFast: {
		AlphaDecay:    force.FastDecay,
		AlphaMin:      force.DefaultAlphaMin,
		VelocityDecay: force.DefaultVelocityDecay,
	},
	PresetSettled: {
		AlphaDecay:    force.SettledDecay,
		AlphaMin:      force.DefaultAlphaMin,
		VelocityDecay: force.DefaultVelocityDecay,
	},
}

// GetProfile returns the profile for a preset
func (p Preset) GetProfile() PresetProfile {
	if profile, ok := PresetProfiles[p]; ok {
		return profile
	}
	return PresetProfiles[PresetFast]
}

// TicksToConverge returns how many ticks a layout runs under this preset
func (p Preset) TicksToConverge() int {
	profile := p.GetProfile()
	return force.TicksToConverge(profile.AlphaDecay, profile.AlphaMin)
}
