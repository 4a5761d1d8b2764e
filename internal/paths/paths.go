// Package paths resolves where cratepub looks for its configuration file and
// where the publish journal lives.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// File and directory names.
const (
	AppName           = "cratepub"
	WorkspaceFileName = ".cratepub.yaml"
	UserConfigName    = "config.yaml"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "CRATEPUB_CONFIG_DIR"
	EnvDataDir   = "CRATEPUB_DATA_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/cratepub (fallback ~/.config/cratepub)
// macOS:   ~/Library/Application Support/cratepub
// Windows: %APPDATA%/cratepub
func DefaultConfigDir() (string, error) {
	if runtime.GOOS == "linux" {
		return xdgDir("XDG_CONFIG_HOME", ".config")
	}
	dir, err := platformDir.userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName), nil
}

// DefaultDataDir returns the platform-specific default data directory.
//
// Linux:   $XDG_DATA_HOME/cratepub (fallback ~/.local/share/cratepub)
// macOS and Windows: same as DefaultConfigDir.
func DefaultDataDir() (string, error) {
	if runtime.GOOS == "linux" {
		return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
	}
	return DefaultConfigDir()
}

func xdgDir(env, homeRel string) (string, error) {
	if xdg := os.Getenv(env); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, homeRel, AppName), nil
}

// ResolveConfigDir returns the user configuration directory:
// CRATEPUB_CONFIG_DIR if set, else DefaultConfigDir().
func ResolveConfigDir() (string, error) {
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveConfigFile returns the configuration file to read, or "" when
// there is none. Precedence: explicit path > <root>/.cratepub.yaml >
// <config dir>/config.yaml. An explicit path is returned even if it does
// not exist so the caller can report it.
func ResolveConfigFile(explicit, root string) (string, error) {
	if explicit != "" {
		return filepath.Abs(explicit)
	}
	if p := filepath.Join(root, WorkspaceFileName); fileExists(p) {
		return filepath.Abs(p)
	}
	dir, err := ResolveConfigDir()
	if err != nil {
		return "", err
	}
	if p := filepath.Join(dir, UserConfigName); fileExists(p) {
		return p, nil
	}
	return "", nil
}

// ResolveJournalDir returns the journal directory following the precedence
// chain: configured value > CRATEPUB_DATA_DIR env > DefaultDataDir().
func ResolveJournalDir(configured string) (string, error) {
	if configured != "" {
		return filepath.Abs(configured)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultDataDir()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
