// Package config resolves configuration and data directory locations and
// loads the gqlmirror CLI's config.yaml.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// CWD-relative directory names. ResolveDataDir falls back to
// DefaultDataDirName when no override is active; ResolveConfigDir does not
// use DefaultConfigDirName and falls back to DefaultConfigDir() instead.
const (
	DefaultConfigDirName = ".gqlmirror"
	DefaultDataDirName   = ".gqlmirror-db"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "GQLMIRROR_CONFIG_DIR"
	EnvDataDir   = "GQLMIRROR_DATA_DIR"
)

// appDirName is the subdirectory gqlmirror claims under whichever parent
// directory the platform or an override resolves to.
const appDirName = "gqlmirror"

// platformDir holds platform-detection functions that can be overridden in
// tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// xdgDir resolves one of the two platform-specific application directories.
// On Linux it checks xdgEnv first, then falls back to $HOME joined with
// homeFallback; everywhere else it defers to the OS's own per-user config
// directory (os.UserConfigDir), which already does the right thing on macOS
// and Windows.
func xdgDir(xdgEnv string, homeFallback ...string) (string, error) {
	if runtime.GOOS != "linux" {
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, appDirName), nil
	}

	if xdg := os.Getenv(xdgEnv); xdg != "" {
		return filepath.Join(xdg, appDirName), nil
	}

	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	parts := append(append([]string{home}, homeFallback...), appDirName)
	return filepath.Join(parts...), nil
}

// DefaultConfigDir returns the platform-specific default configuration
// directory.
//
// Linux:   $XDG_CONFIG_HOME/gqlmirror (fallback ~/.config/gqlmirror)
// macOS:   ~/Library/Application Support/gqlmirror
// Windows: %APPDATA%/gqlmirror
func DefaultConfigDir() (string, error) {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// DefaultDataDir returns the platform-specific data directory. ResolveDataDir
// does not fall back to it; its default is the CWD-relative
// DefaultDataDirName.
//
// Linux:   $XDG_DATA_HOME/gqlmirror (fallback ~/.local/share/gqlmirror)
// macOS:   ~/Library/Application Support/gqlmirror
// Windows: %APPDATA%/gqlmirror
func DefaultDataDir() (string, error) {
	return xdgDir("XDG_DATA_HOME", ".local", "share")
}

// resolveFromChain returns the absolute path of the first non-empty
// candidate, in order, or falls back to fallback() if every candidate is
// empty.
func resolveFromChain(fallback func() (string, error), candidates ...string) (string, error) {
	for _, c := range candidates {
		if c != "" {
			return filepath.Abs(c)
		}
	}
	return fallback()
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > GQLMIRROR_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	return resolveFromChain(DefaultConfigDir, flag, os.Getenv(EnvConfigDir))
}

// ResolveDataDir returns the data directory following the precedence chain:
// flag > configYAMLValue > GQLMIRROR_DATA_DIR env > $(CWD)/DefaultDataDirName.
func ResolveDataDir(flag, configYAMLValue string) (string, error) {
	cwdDefault := func() (string, error) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		return filepath.Join(cwd, DefaultDataDirName), nil
	}
	return resolveFromChain(cwdDefault, flag, configYAMLValue, os.Getenv(EnvDataDir))
}
