// Package config handles global epoch configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Environment variables honored between flags and the config file.
const (
	EnvOffset    = "EPOCH_OFFSET"
	EnvPrecision = "EPOCH_PRECISION"
)

// Config is the persisted epoch configuration. Fields hold the same
// text forms the matching flags accept; validation happens where the
// values are consumed.
type Config struct {
	// Offset is the default UTC offset ("+9", "-0530", "+5:45"),
	// used when neither --utc nor --offset is given.
	Offset string `toml:"offset"`

	// Precision is the default timestamp precision, "second" or
	// "millisecond".
	Precision string `toml:"precision"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for CLI output and markdown
	// rendering. Supported values are ANSI color codes ("0" to "255")
	// or hex colors ("#RRGGBB").
	Accent string `toml:"accent"`

	// CodeTheme sets the Glamour/Chroma theme used for rendered
	// markdown code blocks, e.g. "monokai", "dracula", "github".
	CodeTheme string `toml:"code_theme"`
}

// FromEnv returns the overrides present in EPOCH_* variables.
func FromEnv() *Config {
	return &Config{
		Offset:    strings.TrimSpace(os.Getenv(EnvOffset)),
		Precision: strings.TrimSpace(os.Getenv(EnvPrecision)),
	}
}

// Load loads the configuration from the default location. A missing
// file yields an empty config.
func Load() (*Config, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &Config{}, nil
	}

	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &config, nil
}

// DefaultPath returns the default config file path. An existing
// ~/.config/epoch/config.toml wins (XDG style); otherwise the
// OS-specific user config dir is used.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "epoch", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "epoch", "config.toml")
	}

	return filepath.Join(".", "config.toml")
}

// XDGPath returns the XDG-style config path (~/.config/epoch/config.toml).
func XDGPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "epoch", "config.toml"), nil
}

// CreateDefault creates a commented template config if none exists and
// returns its path.
func CreateDefault() (string, error) {
	return CreateDefaultAt(DefaultPath())
}

// CreateDefaultAt creates the template config at path unless the file
// already exists.
func CreateDefaultAt(path string) (string, error) {
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	defaultConfig := `# epoch configuration
# See: https://github.com/aidanlsb/epoch

# Default UTC offset, applied when --utc and --offset are absent.
# Accepts the flag forms: +9, -0530, +5:45
# offset = "+09:00"

# Default timestamp precision: "second" or "millisecond".
# Overridden by EPOCH_PRECISION and by --precision.
# precision = "second"

# Optional UI accent color for headers/links in terminal output.
# Supports ANSI color codes (0-255) or hex (#RRGGBB).
# [ui]
# accent = "39"
# code_theme = "monokai"
`

	if err := os.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return path, nil
}
