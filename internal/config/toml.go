// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Practice PracticeConfig `toml:"practice"`
	Server   ServerConfig   `toml:"server"`
}

// PracticeConfig maps practice-related settings. Pointer fields distinguish
// "unset" from zero values so flags can override only what the file sets.
type PracticeConfig struct {
	Source     *string `toml:"source"`
	Length     *string `toml:"length"`
	Difficulty *string `toml:"difficulty"`
	Category   *string `toml:"category"`
	Theme      *string `toml:"theme"`
}

// ServerConfig maps backend-related settings.
type ServerConfig struct {
	Addr      *string `toml:"addr"`
	ServerURL *string `toml:"server-url"`
	UserID    *string `toml:"user-id"`
	Username  *string `toml:"username"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
