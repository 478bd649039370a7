package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	APIKey        string `yaml:"api_key,omitempty"`
	Model         string `yaml:"model"`
	AvoidEmDashes bool   `yaml:"avoid_em_dashes"`
	DefaultPreset string `yaml:"default_preset,omitempty"`
	CustomPrompt  string `yaml:"custom_prompt,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:         DefaultModel,
		AvoidEmDashes: true,
	}
}

func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "rewrite-this"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config file at path (the default location when path is
// empty), layered over defaults, then applies environment overrides.
// A missing file is not an error; defaults plus environment apply.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	return cfg, nil
}

// applyEnv lets REWRITE_THIS_API_KEY or ANTHROPIC_API_KEY override the
// file. Any .env loading happens at the CLI entry point, before Load.
func (c *Config) applyEnv() {
	if key := os.Getenv("REWRITE_THIS_API_KEY"); key != "" {
		c.APIKey = key
		return
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" && c.APIKey == "" {
		c.APIKey = key
	}
}

// MaskedAPIKey renders the key for display without revealing it.
func (c *Config) MaskedAPIKey() string {
	if c.APIKey == "" {
		return "Not set"
	}
	if len(c.APIKey) > 8 {
		return c.APIKey[:4] + "****" + c.APIKey[len(c.APIKey)-4:]
	}
	return "****"
}
