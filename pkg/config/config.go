// Package config holds the YAML configuration for the vardr CLI:
// where the accounting files live, which record layout to assume and
// how to present output. The parsing packages take no configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vardr/utmp/pkg/codec"
)

// Config represents the vardr configuration.
type Config struct {
	// UtmpPath is the live session file read by `vardr who`.
	UtmpPath string `yaml:"utmp_path"`
	// WtmpPath is the login history file read by `vardr last` and the
	// default input of `vardr dump`.
	WtmpPath string `yaml:"wtmp_path"`
	// Layout names the record layout: "native", "x32" or "x64".
	Layout  string  `yaml:"layout"`
	Output  Output  `yaml:"output"`
	Logging Logging `yaml:"logging"`
}

// Output contains presentation configuration.
type Output struct {
	// Format is "table" or "json".
	Format string `yaml:"format"`
}

// Logging contains logging configuration.
type Logging struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a default configuration.
func DefaultConfig() *Config {
	return &Config{
		UtmpPath: "/var/run/utmp",
		WtmpPath: "/var/log/wtmp",
		Layout:   "native",
		Output: Output{
			Format: "table",
		},
		Logging: Logging{
			Level: "warn",
		},
	}
}

// LoadConfig loads configuration from the specified path.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves the configuration to the specified path.
func SaveConfig(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ResolveLayout maps a layout name from the config or command line to
// its codec layout.
func ResolveLayout(name string) (codec.Layout, error) {
	switch name {
	case "", "native":
		return codec.LayoutNative, nil
	case "x32":
		return codec.Layout32, nil
	case "x64":
		return codec.Layout64, nil
	}
	return codec.Layout{}, fmt.Errorf("unknown layout %q (want native, x32 or x64)", name)
}

// DefaultConfigPath returns the default configuration path for the
// current platform.
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./vardr.yaml"
	}
	return filepath.Join(homeDir, ".config", "vardr", "config.yaml")
}

// ConfigExists checks if a configuration file exists.
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
