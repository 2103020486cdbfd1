// Package config resolves the trowel home directory and loads the
// optional configuration file kept there.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// HomeEnv names the environment variable pointing at the trowel home
// directory, which doubles as the secondary task search root.
const HomeEnv = "TROWEL_HOME"

// Color modes for styled output.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds the settings read from config.yaml under the trowel
// home directory.
type Config struct {
	// Color controls styled output: auto, always, or never.
	Color string `yaml:"color"`
	// Verbose turns on discovery diagnostics without the flag.
	Verbose bool `yaml:"verbose"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{Color: ColorAuto}
}

// Home reports the trowel home directory: $TROWEL_HOME when set,
// otherwise ~/.trowel. Returns "" when no home directory can be
// determined.
func Home() string {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".trowel")
}

// File reports the path of the config file under the trowel home.
func File() string {
	home := Home()
	if home == "" {
		return ""
	}
	return filepath.Join(home, "config.yaml")
}

// Load reads the config file at path, layering it over the defaults. A
// missing file yields the defaults; a malformed one is an error naming
// the path. The NO_COLOR environment variable forces Color to never.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// No file, defaults apply.
	case err != nil:
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		if err := cfg.validate(); err != nil {
			return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
		}
	}

	if os.Getenv("NO_COLOR") != "" {
		cfg.Color = ColorNever
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
		return nil
	default:
		return fmt.Errorf("color must be %s, %s, or %s, got %q", ColorAuto, ColorAlways, ColorNever, c.Color)
	}
}
