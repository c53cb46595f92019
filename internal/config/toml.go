// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Keyboard KeyboardFileConfig `toml:"keyboard"`
	Callout  CalloutFileConfig  `toml:"callout"`
}

// KeyboardFileConfig maps keyboard-related settings.
type KeyboardFileConfig struct {
	Lang       *string `toml:"lang"`
	KeyWidth   *int    `toml:"key-width"`
	KeyHeight  *int    `toml:"key-height"`
	LongPress  *int    `toml:"long-press-ms"`
	Haptic     *string `toml:"haptic"`
	Mouse      *bool   `toml:"mouse"`
	Alternates *string `toml:"alternates"`
}

// CalloutFileConfig maps callout tuning.
type CalloutFileConfig struct {
	MaxKeyWidth    *float64 `toml:"max-key-width"`
	MaxKeyHeight   *float64 `toml:"max-key-height"`
	IndexSpan      *float64 `toml:"index-span"`
	ResetRatio     *float64 `toml:"reset-ratio"`
	ClampOvershoot *bool    `toml:"clamp-overshoot"`
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
