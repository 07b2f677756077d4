package config

import (
	"os"
	"path/filepath"
)

const (
	// EnvConfigPath names an explicit config file
	EnvConfigPath = "NETLAYOUT_CONFIG"
	// ConfigFileName is the config file looked for in the working directory
	ConfigFileName = "netlayout.yaml"
	// ConfigDirName is the directory under XDG and /etc holding config.yaml or config.toml
	ConfigDirName = "netlayout"
)

// configExtensions are tried in order in every search location
var configExtensions = []string{".yaml", ".yml", ".toml"}

// SearchPaths returns the config file candidates in priority order. Every
// location accepts YAML or TOML:
//
//	$NETLAYOUT_CONFIG
//	./netlayout.{yaml,yml,toml}
//	$XDG_CONFIG_HOME/netlayout/config.{yaml,yml,toml}
//	~/.config/netlayout/config.{yaml,yml,toml}
//	/etc/netlayout/config.{yaml,yml,toml}
func SearchPaths() []string {
	var paths []string
	if path := os.Getenv(EnvConfigPath); path != "" {
		paths = append(paths, path)
	}

	base := trimExt(ConfigFileName)
	for _, ext := range configExtensions {
		paths = append(paths, base+ext)
	}

	for _, dir := range configDirs() {
		for _, ext := range configExtensions {
			paths = append(paths, filepath.Join(dir, "config"+ext))
		}
	}
	return paths
}

// FindConfigPath returns the first existing file of SearchPaths, made absolute
// when it was found relative to the working directory. It returns "" when no
// config file exists.
func FindConfigPath() string {
	for _, path := range SearchPaths() {
		if !fileExists(path) {
			continue
		}
		if !filepath.IsAbs(path) {
			if abs, err := filepath.Abs(path); err == nil {
				return abs
			}
		}
		return path
	}
	return ""
}

// DefaultConfigPath returns where `config init` writes a new file: the user
// config dir when one is known, otherwise the working directory
func DefaultConfigPath() string {
	dirs := configDirs()
	if len(dirs) > 1 {
		return filepath.Join(dirs[0], "config.yaml")
	}
	return ConfigFileName
}

// EnsureConfigDir creates the directory of a config path
func EnsureConfigDir(configPath string) error {
	return os.MkdirAll(filepath.Dir(configPath), 0755)
}

// configDirs lists the per-user directories before the system one
func configDirs() []string {
	var dirs []string
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		dirs = append(dirs, filepath.Join(xdgHome, ConfigDirName))
	}
	if home := os.Getenv("HOME"); home != "" {
		dirs = append(dirs, filepath.Join(home, ".config", ConfigDirName))
	}
	return append(dirs, filepath.Join("/etc", ConfigDirName))
}

func trimExt(name string) string {
	return name[:len(name)-len(filepath.Ext(name))]
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
