// Package paths provides centralized path handling for slink.
// It implements XDG Base Directory specification compliance and
// provides a consistent API for all path operations in the codebase.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/slink/pkg/errors"
)

// Environment variable names
const (
	// EnvSlinkDataDir overrides the XDG data directory for slink
	EnvSlinkDataDir = "SLINK_DATA_DIR"

	// EnvSlinkConfigDir overrides the XDG config directory for slink
	EnvSlinkConfigDir = "SLINK_CONFIG_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
const (
	// SlinkDirName is the directory name for slink-specific files
	SlinkDirName = "slink"

	// ConfigFileName is the name of the configuration file
	ConfigFileName = "config.toml"

	// BackupsDirName is the subdirectory for backed up files
	BackupsDirName = "backups"

	// LogFileName is the name of the log file
	LogFileName = "slink.log"
)

// Paths provides centralized path management for slink
type Paths interface {
	DataDir() string
	ConfigDir() string
	StateDir() string
	ConfigFilePath() string
	BackupsDir() string
	LogFilePath() string
	NormalizePath(path string) (string, error)
}

// paths provides centralized path management for slink
type paths struct {
	// xdgData is the XDG data directory
	xdgData string

	// xdgConfig is the XDG config directory
	xdgConfig string

	// xdgState is the XDG state directory
	xdgState string
}

// New creates a new Paths instance. Directories are resolved from the
// SLINK_DATA_DIR and SLINK_CONFIG_DIR overrides first, then from the
// XDG base directories.
func New() (Paths, error) {
	p := &paths{}
	if err := p.setupXDGDirs(); err != nil {
		return nil, err
	}
	return p, nil
}

// setupXDGDirs initializes XDG directories, respecting environment overrides
func (p *paths) setupXDGDirs() error {
	// Data directory
	if dataDir := os.Getenv(EnvSlinkDataDir); dataDir != "" {
		p.xdgData = expandHome(dataDir)
	} else {
		p.xdgData = filepath.Join(xdg.DataHome, SlinkDirName)
	}

	// Config directory
	if configDir := os.Getenv(EnvSlinkConfigDir); configDir != "" {
		p.xdgConfig = expandHome(configDir)
	} else {
		p.xdgConfig = filepath.Join(xdg.ConfigHome, SlinkDirName)
	}

	// State directory - XDG doesn't provide StateHome, so we check manually
	if stateDir := os.Getenv("XDG_STATE_HOME"); stateDir != "" {
		p.xdgState = filepath.Join(stateDir, SlinkDirName)
	} else {
		homeDir, _ := os.UserHomeDir()
		p.xdgState = filepath.Join(homeDir, ".local", "state", SlinkDirName)
	}

	return nil
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			// Fallback to HOME env var
			homeDir = os.Getenv(EnvHome)
			if homeDir == "" {
				// Can't expand, return as-is
				return path
			}
		}

		if len(path) == 1 {
			return homeDir
		}

		// Handle both ~/ and ~
		if path[1] == '/' || path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:])
		}

		// ~something (not the user's home)
		return path
	}

	return path
}

// DataDir returns the XDG data directory for slink
func (p *paths) DataDir() string {
	return p.xdgData
}

// ConfigDir returns the XDG config directory for slink
func (p *paths) ConfigDir() string {
	return p.xdgConfig
}

// StateDir returns the XDG state directory for slink
func (p *paths) StateDir() string {
	return p.xdgState
}

// ConfigFilePath returns the path to the slink configuration file
func (p *paths) ConfigFilePath() string {
	return filepath.Join(p.xdgConfig, ConfigFileName)
}

// BackupsDir returns the default directory for backed up files
func (p *paths) BackupsDir() string {
	return filepath.Join(p.xdgData, BackupsDirName)
}

// LogFilePath returns the path to the slink log file
// Respects XDG_STATE_HOME if set
func (p *paths) LogFilePath() string {
	return filepath.Join(p.xdgState, LogFileName)
}

// NormalizePath normalizes a path by expanding home, making it absolute,
// and cleaning it
func (p *paths) NormalizePath(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "empty path")
	}

	// Expand home directory
	expanded := expandHome(path)

	// Make absolute
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInternal, "failed to get absolute path")
	}

	// Clean the path
	return filepath.Clean(abs), nil
}

// ExpandHome is a utility function that expands ~ in paths
func ExpandHome(path string) string {
	return expandHome(path)
}
