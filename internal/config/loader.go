package config

import (
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

// Loader handles loading the configuration.
type Loader struct {
	Version      string // Build version, used to determine dev mode
	OverridePath string // Set at compile time or by -config
}

// NewLoader creates a new Loader.
func NewLoader(version string, overridePath string) *Loader {
	return &Loader{
		Version:      version,
		OverridePath: overridePath,
	}
}

// Load reads the first config file found, or returns defaults.
func (l *Loader) Load() (*Config, error) {
	path := l.GetConfigPath()
	if path == "" {
		return New(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(f)
}

// DefaultPath is where `config save` writes when no file exists yet.
func DefaultPath() string {
	home, err := homedir.Dir()
	if err != nil {
		return "config.rc"
	}
	return filepath.Join(home, ".config", "retouch", "config.rc")
}

// GetConfigPath returns the path to the configuration file, or empty string if not found.
func (l *Loader) GetConfigPath() string {
	if l.OverridePath != "" {
		if p, err := homedir.Expand(l.OverridePath); err == nil {
			if _, err := os.Stat(p); err == nil {
				return p
			}
		}
	}

	// Local run directory (dev mode)
	if l.Version == "dev" {
		wd, _ := os.Getwd()
		localPath := filepath.Join(wd, ".retouchrc")
		if _, err := os.Stat(localPath); err == nil {
			return localPath
		}
	}

	xdgPath := DefaultPath()
	if _, err := os.Stat(xdgPath); err == nil {
		return xdgPath
	}

	fallback := filepath.Join(filepath.Dir(xdgPath), "retouch.rc")
	if _, err := os.Stat(fallback); err == nil {
		return fallback
	}

	return ""
}
