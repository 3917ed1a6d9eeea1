package config

import (
	"os"
	"path/filepath"
)

// Paths resolves the filesystem locations used by redact.
type Paths struct {
	configDir string
	dataDir   string
}

// DefaultPaths returns the default paths based on the XDG Base Directory
// spec: config under ~/.config/redact, data under ~/.local/share/redact.
func DefaultPaths() *Paths {
	home := homeDir()

	configBase := os.Getenv("XDG_CONFIG_HOME")
	if configBase == "" {
		configBase = filepath.Join(home, ".config")
	}
	dataBase := os.Getenv("XDG_DATA_HOME")
	if dataBase == "" {
		dataBase = filepath.Join(home, ".local", "share")
	}

	return &Paths{
		configDir: filepath.Join(configBase, "redact"),
		dataDir:   filepath.Join(dataBase, "redact"),
	}
}

// ConfigFile returns the path to the configuration file.
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.configDir, "config.yaml")
}

// TokenDatabaseFile returns the path to the token store database.
func (p *Paths) TokenDatabaseFile() string {
	return filepath.Join(p.dataDir, "tokens.db")
}

// EnsureDirectories creates the config and data directories.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.configDir, p.dataDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}

func homeDir() string {
	if h, err := os.UserHomeDir(); err == nil {
		return h
	}
	return "."
}
