package config

import "time"

// Config is the on-disk configuration of the layout server
type Config struct {
	Version    int              `yaml:"version" toml:"version"`
	Server     ServerConfig     `yaml:"server" toml:"server"`
	Database   DatabaseConfig   `yaml:"database" toml:"database"`
	Layout     LayoutConfig     `yaml:"layout" toml:"layout"`
	Clustering ClusteringConfig `yaml:"clustering" toml:"clustering"`
	Watch      WatchConfig      `yaml:"watch,omitempty" toml:"watch,omitempty"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Addr         string   `yaml:"addr" toml:"addr" validate:"required"`
	TickInterval Duration `yaml:"tick_interval" toml:"tick_interval" validate:"gt=0"`
}

// DatabaseConfig holds database settings
type DatabaseConfig struct {
	Path string `yaml:"path" toml:"path" validate:"required"`
}

// LayoutConfig holds the viewport and force parameters
type LayoutConfig struct {
	Width          float64  `yaml:"width" toml:"width" validate:"gt=0"`
	Height         float64  `yaml:"height" toml:"height" validate:"gt=0"`
	NodeRadius     float64  `yaml:"node_radius" toml:"node_radius" validate:"gte=0"`
	ChargeStrength float64  `yaml:"charge_strength" toml:"charge_strength" validate:"gte=0"`
	LinkDistance   float64  `yaml:"link_distance" toml:"link_distance" validate:"gt=0"`
	Preset         Preset   `yaml:"preset,omitempty" toml:"preset,omitempty" validate:"omitempty,oneof=fast settled"`
	AlphaDecay     *float64 `yaml:"alpha_decay,omitempty" toml:"alpha_decay,omitempty" validate:"omitempty,gt=0,lt=1"`
	Clustering     *bool    `yaml:"clustering,omitempty" toml:"clustering,omitempty"`
	ShowClouds     *bool    `yaml:"show_clouds,omitempty" toml:"show_clouds,omitempty"`
}

// ClusteringEnabled reports whether same-group elements are pulled together
func (l LayoutConfig) ClusteringEnabled() bool {
	return l.Clustering == nil || *l.Clustering
}

// CloudsVisible reports whether cloud placeholders start visible
func (l LayoutConfig) CloudsVisible() bool {
	return l.ShowClouds == nil || *l.ShowClouds
}

// ClusteringConfig holds the clustering adjuster parameters
type ClusteringConfig struct {
	CoarseThreshold    float64 `yaml:"coarse_threshold" toml:"coarse_threshold" validate:"gt=0"`
	FineThreshold      float64 `yaml:"fine_threshold" toml:"fine_threshold" validate:"gt=0,ltefield=CoarseThreshold"`
	Pull               float64 `yaml:"pull" toml:"pull" validate:"gt=0,lte=1"`
	CrossGroupStrength float64 `yaml:"cross_group_strength" toml:"cross_group_strength" validate:"gte=0,lte=1"`
	EnergeticAlpha     float64 `yaml:"energetic_alpha" toml:"energetic_alpha" validate:"gt=0,lt=1"`
}

// WatchConfig names a document file that is reloaded into its session on change
type WatchConfig struct {
	Path     string   `yaml:"path,omitempty" toml:"path,omitempty"`
	Debounce Duration `yaml:"debounce,omitempty" toml:"debounce,omitempty"`
}

// Duration wraps time.Duration for YAML and TOML unmarshaling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, used by the TOML decoder
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
