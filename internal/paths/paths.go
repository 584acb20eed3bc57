// Package paths resolves the semval configuration and data directories.
//
// Both directories follow the same precedence chain: an explicit flag, then
// the config file (data dir only), then an environment variable, then a
// project-local directory when one exists in the working directory, and
// finally the platform default.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppName is the directory name used under the platform config and data roots.
const AppName = "semval"

// ProjectDirName is the project-local directory that holds both config.yaml
// and the data files when present in the working directory.
const ProjectDirName = ".semval"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "SEMVAL_CONFIG_DIR"
	EnvDataDir   = "SEMVAL_DATA_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
	getwd         func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
	getwd:         os.Getwd,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/semval (fallback ~/.config/semval)
// macOS:   ~/Library/Application Support/semval
// Windows: %APPDATA%/semval
func DefaultConfigDir() (string, error) {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// DefaultDataDir returns the platform-specific default data directory.
//
// Linux:   $XDG_DATA_HOME/semval (fallback ~/.local/share/semval)
// macOS and Windows share the config location.
func DefaultDataDir() (string, error) {
	return xdgDir("XDG_DATA_HOME", ".local", "share")
}

// xdgDir resolves AppName under an XDG base directory on Linux and under
// os.UserConfigDir elsewhere.
func xdgDir(env string, homeFallback ...string) (string, error) {
	if runtime.GOOS != "linux" {
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, AppName), nil
	}
	if xdg := os.Getenv(env); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(append(append([]string{home}, homeFallback...), AppName)...), nil
}

// projectDir returns $(CWD)/.semval when that directory exists.
func projectDir() (string, bool) {
	cwd, err := platformDir.getwd()
	if err != nil {
		return "", false
	}
	dir := filepath.Join(cwd, ProjectDirName)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", false
	}
	return dir, true
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > SEMVAL_CONFIG_DIR > ./.semval > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	if dir, ok := projectDir(); ok {
		return dir, nil
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the data directory following the precedence chain:
// flag > configValue > SEMVAL_DATA_DIR > ./.semval/data > DefaultDataDir().
func ResolveDataDir(flag, configValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configValue != "" {
		return filepath.Abs(configValue)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	if dir, ok := projectDir(); ok {
		return filepath.Join(dir, "data"), nil
	}
	return DefaultDataDir()
}
