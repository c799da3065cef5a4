package config

import (
	_ "embed"
	"errors"
)

//go:embed embedded/config.toml
var configTemplate []byte

// GetConfigTemplate returns the annotated configuration template
func GetConfigTemplate() string {
	return string(configTemplate)
}

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}
