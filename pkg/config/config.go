// pkg/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultDistRoot is the distribution server toolchains resolve from unless
// the config overrides it.
const DefaultDistRoot = "https://dist.toolup.dev"

// Config holds toolup configuration.
type Config struct {
	Home     string `yaml:"home"`
	DistRoot string `yaml:"dist_root"`
	Profile  string `yaml:"profile"`
	Debug    bool   `yaml:"debug"`
}

// DefaultConfig returns a default configuration.
func DefaultConfig() *Config {
	return &Config{
		Home:     defaultHome(),
		DistRoot: DefaultDistRoot,
		Profile:  "default",
		Debug:    false,
	}
}

// LoadConfig loads configuration from file, falling back to defaults when
// the file does not exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return DefaultConfig(), nil
		}
		path = filepath.Join(home, ".config", "toolup", "config.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Home == "" {
		cfg.Home = defaultHome()
	}
	if cfg.DistRoot == "" {
		cfg.DistRoot = DefaultDistRoot
	}
	return cfg, nil
}

// SaveConfig saves configuration to file.
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		path = filepath.Join(home, ".config", "toolup", "config.yaml")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

func defaultHome() string {
	if path := os.Getenv("TOOLUP_HOME"); path != "" {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "toolup")
	}

	return filepath.Join(home, ".toolup")
}
