package config

import (
	toml "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/slink/pkg/paths"
	"github.com/arthur-debert/slink/pkg/types"
)

// WriteDefault serializes the default configuration to the config file,
// creating the config directory if needed
func WriteDefault(fsys types.FS, p paths.Paths) error {
	if err := fsys.MkdirAll(p.ConfigDir(), 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(Default(p))
	if err != nil {
		return err
	}

	return fsys.WriteFile(p.ConfigFilePath(), data, 0644)
}
