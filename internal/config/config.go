// Package config handles global pubs configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents configuration stored in ~/.config/pubs/config.yml.
type Config struct {
	MarkupPattern string `yaml:"markup_pattern,omitempty"` // Page file glob, default *.qmd
	BibPattern    string `yaml:"bib_pattern,omitempty"`    // Bibliography glob, default *.bib
	Highlight     string `yaml:"highlight,omitempty"`      // Used when the page declares no title
}

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME.
	ConfigDir = "pubs"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"
)

// Environment variables that override the config file.
const (
	EnvHighlight     = "PUBS_HIGHLIGHT"
	EnvMarkupPattern = "PUBS_MARKUP_PATTERN"
	EnvBibPattern    = "PUBS_BIB_PATTERN"
)

// configCache caches the loaded config.
var configCache *Config

// Path returns the path to the config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/pubs/config.yml.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDir, ConfigFile)
}

// Load reads the config file and applies environment overrides.
// A missing file is not an error.
func Load() (*Config, error) {
	if configCache != nil {
		return configCache, nil
	}

	cfg, err := readFile(Path())
	if err != nil {
		return nil, err
	}

	cfg.Highlight = GetConfigValue(EnvHighlight, cfg.Highlight)
	cfg.MarkupPattern = GetConfigValue(EnvMarkupPattern, cfg.MarkupPattern)
	cfg.BibPattern = GetConfigValue(EnvBibPattern, cfg.BibPattern)

	configCache = cfg
	return cfg, nil
}

func readFile(path string) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &cfg, nil
}

// ResetCache clears the cached config.
// Useful for testing.
func ResetCache() {
	configCache = nil
}

// GetConfigValue returns the environment value if set, else configValue.
func GetConfigValue(envKey, configValue string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	return configValue
}

// HelpfulConfigMessage describes where configuration is read from.
func HelpfulConfigMessage() string {
	configPath := Path()
	return fmt.Sprintf(`Configuration is read from %s, e.g.:
  highlight: Jane Doe
  markup_pattern: "*.qmd"
  bib_pattern: "*.bib"

Environment variables %s, %s and %s override the file.`,
		configPath, EnvHighlight, EnvMarkupPattern, EnvBibPattern)
}
