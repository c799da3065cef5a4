package config

import (
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/slink/pkg/errors"
	"github.com/arthur-debert/slink/pkg/logging"
	"github.com/arthur-debert/slink/pkg/paths"
	"github.com/arthur-debert/slink/pkg/types"
)

// EnvPrefix is the prefix for environment variable overrides
const EnvPrefix = "SLINK_"

// Load assembles the effective configuration from built-in defaults, the
// config file, and SLINK_* environment variables, in increasing priority.
// A missing config file is created with the default values so a fresh
// install leaves something editable behind.
func Load(fsys types.FS, p paths.Paths) (*Config, error) {
	logger := logging.GetLogger("config")

	k := koanf.New(".")

	// 1. Built-in defaults
	defaults := Default(p)
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"filename":      defaults.Filename,
		"backup_dir":    defaults.BackupDir,
		"depth":         defaults.Depth,
		"always_skip":   defaults.AlwaysSkip,
		"always_backup": defaults.AlwaysBackup,
	}, "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load default config")
	}

	// 2. Config file, created on first run
	configPath := p.ConfigFilePath()
	data, err := fsys.ReadFile(configPath)
	switch {
	case err == nil:
		if err := k.Load(&rawBytesProvider{data}, toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigValid, "failed to parse config file %s", configPath)
		}
		logger.Debug().Str("path", configPath).Msg("Loaded config file")
	case os.IsNotExist(err):
		if writeErr := WriteDefault(fsys, p); writeErr != nil {
			logger.Warn().Err(writeErr).Str("path", configPath).Msg("Could not create default config file")
		} else {
			logger.Info().Str("path", configPath).Msg("Created default config file")
		}
	default:
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read config file %s", configPath)
	}

	// 3. Environment variable overrides, e.g. SLINK_FILENAME or SLINK_DEPTH
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	// 4. Unmarshal with weak typing so env var strings coerce cleanly
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigValid, "failed to unmarshal configuration")
	}

	cfg.BackupDir = paths.ExpandHome(cfg.BackupDir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Debug().
		Str("filename", cfg.Filename).
		Str("backupDir", cfg.BackupDir).
		Int("depth", cfg.Depth).
		Bool("alwaysSkip", cfg.AlwaysSkip).
		Bool("alwaysBackup", cfg.AlwaysBackup).
		Msg("Configuration resolved")

	return &cfg, nil
}
