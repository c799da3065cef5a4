package params

import (
	"path/filepath"

	"github.com/arthur-debert/slink/pkg/config"
	"github.com/arthur-debert/slink/pkg/errors"
	"github.com/arthur-debert/slink/pkg/logging"
)

// CLI holds the run-related values coming from the command line. Empty means
// "not given" for Filename and BackupDir; Depth travels with DepthSet since
// zero is a meaningful depth.
type CLI struct {
	Dir          string
	Filename     string
	BackupDir    string
	Depth        int
	DepthSet     bool
	AlwaysSkip   bool
	AlwaysBackup bool
}

// Params aggregates the command line and the configuration file into the
// validated settings of one run. A value from the command line always takes
// precedence; a configuration value applies only when the equivalent was not
// given on the command line.
type Params struct {
	Dir          string
	Filename     string
	BackupDir    string
	Depth        int
	AlwaysSkip   bool
	AlwaysBackup bool
}

// New merges cli over cfg and validates the result.
//
// The always flags travel as a pair: when either is set on the command line
// the configuration pair is ignored entirely, so a config always_skip cannot
// leak into a run invoked with --always-backup.
func New(cli CLI, cfg *config.Config) (Params, error) {
	logger := logging.GetLogger("params")

	if cfg.BackupDir != "" && !filepath.IsAbs(cfg.BackupDir) {
		return Params{}, errors.Newf(errors.ErrConfigValid,
			"backup_dir %q in the configuration file must be an absolute path", cfg.BackupDir)
	}
	if cli.AlwaysSkip && cli.AlwaysBackup {
		return Params{}, errors.New(errors.ErrInvalidInput,
			"always-skip and always-backup cannot be combined")
	}
	if cfg.AlwaysSkip && cfg.AlwaysBackup {
		return Params{}, errors.New(errors.ErrConfigValid,
			"always_skip and always_backup cannot both be enabled")
	}

	p := Params{
		Dir:          cli.Dir,
		Filename:     cfg.Filename,
		BackupDir:    cfg.BackupDir,
		Depth:        cfg.Depth,
		AlwaysSkip:   cli.AlwaysSkip,
		AlwaysBackup: cli.AlwaysBackup,
	}
	if cli.Filename != "" {
		p.Filename = cli.Filename
	}
	if cli.BackupDir != "" {
		p.BackupDir = cli.BackupDir
	}
	if cli.DepthSet {
		p.Depth = cli.Depth
	}
	if !cli.AlwaysSkip && !cli.AlwaysBackup {
		p.AlwaysSkip = cfg.AlwaysSkip
		p.AlwaysBackup = cfg.AlwaysBackup
	}

	logger.Debug().
		Str("dir", p.Dir).
		Str("filename", p.Filename).
		Str("backupDir", p.BackupDir).
		Int("depth", p.Depth).
		Bool("alwaysSkip", p.AlwaysSkip).
		Bool("alwaysBackup", p.AlwaysBackup).
		Msg("Resolved run parameters")

	return p, nil
}

// Interactive reports whether conflicts and invalid lines go through the
// prompter instead of a pre-selected policy
func (p Params) Interactive() bool {
	return !p.AlwaysSkip && !p.AlwaysBackup
}
