// Package config handles configuration management for slink.
// It supports loading configuration from TOML files and environment
// variables, and creates the config file with defaults on first run.
package config
