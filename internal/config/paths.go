package config

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "lk"

// Paths holds the locations lk reads and writes outside the working tree.
type Paths struct {
	// ConfigDir holds lk.yaml and lk.log (~/.config/lk).
	ConfigDir string
}

// DefaultPaths follows the XDG Base Directory layout, or %APPDATA% on
// Windows.
func DefaultPaths() *Paths {
	home := homeDir()

	if runtime.GOOS == "windows" {
		appData := os.Getenv("APPDATA")
		if appData == "" {
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		return &Paths{ConfigDir: filepath.Join(appData, appName)}
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(home, ".config")
	}
	return &Paths{ConfigDir: filepath.Join(configHome, appName)}
}

// ConfigFile returns the path to lk.yaml.
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.ConfigDir, "lk.yaml")
}

// LogFile returns the path to lk.log.
func (p *Paths) LogFile() string {
	return filepath.Join(p.ConfigDir, "lk.log")
}

// EnsureDirs creates the config directory.
func (p *Paths) EnsureDirs() error {
	return os.MkdirAll(p.ConfigDir, 0o755)
}

// homeDir falls back to the temp directory when there is no home, so lk
// still runs in stripped-down containers.
func homeDir() string {
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return home
	}
	return os.TempDir()
}
