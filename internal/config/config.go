// Package config provides configuration management for netlayout.
//
// Config file locations (priority order):
//  1. $NETLAYOUT_CONFIG
//  2. ./netlayout.yaml
//  3. $XDG_CONFIG_HOME/netlayout/config.yaml
//  4. ~/.config/netlayout/config.yaml
//  5. /etc/netlayout/config.yaml
//
// Files ending in .toml are read as TOML, everything else as YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"netlayout/internal/cluster"
	"netlayout/internal/force"
)

var validate = validator.New()

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		// No config found - return defaults
		return DefaultConfig(), "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if isTOML(path) {
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, path, fmt.Errorf("parse config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}

	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	var data []byte
	if isTOML(path) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(c); err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		data = buf.Bytes()
	} else {
		var err error
		data, err = yaml.Marshal(c)
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
	}

	return os.WriteFile(path, data, 0644)
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":3000"
	}
	if c.Server.TickInterval == 0 {
		c.Server.TickInterval = Duration(16 * time.Millisecond)
	}
	if c.Database.Path == "" {
		c.Database.Path = "./netlayout.db"
	}

	l := &c.Layout
	if l.Width == 0 {
		l.Width = 960
	}
	if l.Height == 0 {
		l.Height = 600
	}
	if l.NodeRadius == 0 {
		l.NodeRadius = force.DefaultNodeRadius
	}
	if l.ChargeStrength == 0 {
		l.ChargeStrength = -force.DefaultRepulsionStrength
	}
	if l.LinkDistance == 0 {
		l.LinkDistance = force.DefaultLinkDistance
	}

	cl := &c.Clustering
	if cl.CoarseThreshold == 0 {
		cl.CoarseThreshold = cluster.DefaultCoarseThreshold
	}
	if cl.FineThreshold == 0 {
		cl.FineThreshold = cluster.DefaultFineThreshold
	}
	if cl.Pull == 0 {
		cl.Pull = cluster.DefaultPull
	}
	if cl.CrossGroupStrength == 0 {
		cl.CrossGroupStrength = 0.1
	}
	if cl.EnergeticAlpha == 0 {
		cl.EnergeticAlpha = cluster.DefaultEnergeticAlpha
	}

	if c.Watch.Debounce == 0 {
		c.Watch.Debounce = Duration(500 * time.Millisecond)
	}
}

// Validate checks field constraints
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// EffectivePreset returns the preset in use: an explicit preset, otherwise
// settled when clustering is enabled and fast when it is not
func (c *Config) EffectivePreset() Preset {
	if c.Layout.Preset != "" {
		return c.Layout.Preset
	}
	if c.Layout.ClusteringEnabled() {
		return PresetSettled
	}
	return PresetFast
}

// EffectiveDecay returns the alpha decay to use (override > preset)
func (c *Config) EffectiveDecay() float64 {
	if c.Layout.AlphaDecay != nil {
		return *c.Layout.AlphaDecay
	}
	return c.EffectivePreset().GetProfile().AlphaDecay
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	preset := c.EffectivePreset()

	summary := fmt.Sprintf("Listen: %s, Database: %s\n", c.Server.Addr, c.Database.Path)
	summary += fmt.Sprintf("Viewport: %.0fx%.0f, Preset: %s (decay %.4f, ~%d ticks)\n",
		c.Layout.Width, c.Layout.Height, preset, c.EffectiveDecay(), preset.TicksToConverge())
	summary += fmt.Sprintf("Clustering: %v, Clouds visible: %v", c.Layout.ClusteringEnabled(), c.Layout.CloudsVisible())
	if c.Watch.Path != "" {
		summary += fmt.Sprintf("\nWatching: %s", c.Watch.Path)
	}

	return summary
}
