package config

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/slink/pkg/errors"
	"github.com/arthur-debert/slink/pkg/paths"
)

// DefaultFilename is the spec file name searched for when none is configured
const DefaultFilename = "sls"

// DefaultDepth disables the descent limit when searching for spec files
const DefaultDepth = -1

// Config holds the user-configurable settings for slink
type Config struct {
	// Filename is the name of the spec files to search for
	Filename string `koanf:"filename" toml:"filename"`

	// BackupDir is where the backup action moves displaced files
	BackupDir string `koanf:"backup_dir" toml:"backup_dir"`

	// Depth limits how deep the spec file search descends.
	// Negative means no limit, zero means the starting directory only.
	Depth int `koanf:"depth" toml:"depth"`

	// AlwaysSkip resolves every conflict by skipping, without prompting
	AlwaysSkip bool `koanf:"always_skip" toml:"always_skip"`

	// AlwaysBackup resolves every conflict by backing up, without prompting
	AlwaysBackup bool `koanf:"always_backup" toml:"always_backup"`
}

// Default returns the built-in configuration. The backup directory is
// resolved against the given paths instance.
func Default(p paths.Paths) *Config {
	return &Config{
		Filename:  DefaultFilename,
		BackupDir: p.BackupsDir(),
		Depth:     DefaultDepth,
	}
}

// Validate checks the configuration for settings slink cannot run with
func (c *Config) Validate() error {
	if c.Filename == "" {
		return errors.New(errors.ErrConfigValid, "filename must not be empty")
	}
	if strings.ContainsRune(c.Filename, filepath.Separator) {
		return errors.Newf(errors.ErrConfigValid, "filename %q must not contain a path separator", c.Filename)
	}
	if c.AlwaysSkip && c.AlwaysBackup {
		return errors.New(errors.ErrConfigValid, "always_skip and always_backup cannot both be enabled")
	}
	return nil
}
