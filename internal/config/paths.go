package config

import (
	"os"
	"path/filepath"
)

// Paths holds all the file system paths used by the application
type Paths struct {
	Home       string // ~/.gridterm
	ConfigPath string // ~/.gridterm/config.yaml
	LogDir     string // ~/.gridterm/logs
}

// DefaultPaths returns the default paths configuration
func DefaultPaths() (*Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return PathsFor(filepath.Join(home, ".gridterm")), nil
}

// PathsFor lays out the paths under an application home directory
func PathsFor(appHome string) *Paths {
	return &Paths{
		Home:       appHome,
		ConfigPath: filepath.Join(appHome, "config.yaml"),
		LogDir:     filepath.Join(appHome, "logs"),
	}
}

// EnsureDirectories creates all required directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.Home, p.LogDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
