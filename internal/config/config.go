package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the complete configuration for refract
type Config struct {
	Format string      `yaml:"format"`
	Input  InputConfig `yaml:"input"`
	Color  ColorConfig `yaml:"color"`
	Keys   KeysConfig  `yaml:"keys"`
	Dev    DevConfig   `yaml:"dev"`
}

// InputConfig controls how input documents are read
type InputConfig struct {
	Format string `yaml:"format"`
}

// ColorConfig controls when output is colorized
type ColorConfig struct {
	// Mode is auto, always or never. Auto colorizes only when the
	// destination is a terminal.
	Mode string `yaml:"mode"`
}

// KeysConfig controls mapping-key rewriting
type KeysConfig struct {
	Case string `yaml:"case"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Verbose int `yaml:"verbose"`
}

// Valid values for the enum fields.
var (
	outputFormats = []string{"json", "yaml", "toml"}
	inputFormats  = []string{"json", "yaml"}
	colorModes    = []string{"auto", "always", "never"}
	keyCases      = []string{"none", "camel", "pascal", "snake", "kebab"}
)

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Format: "json",
		Input: InputConfig{
			Format: "json",
		},
		Color: ColorConfig{
			Mode: "auto",
		},
		Keys: KeysConfig{
			Case: "none",
		},
		Dev: DevConfig{
			Verbose: 0,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".refract.yml", ".refract.yaml", "refract.yml", "refract.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Search up the directory tree
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate checks every enum field against its allowed values
func (c *Config) Validate() error {
	if !contains(outputFormats, c.Format) {
		return fmt.Errorf("invalid output format '%s': must be one of json, yaml, toml", c.Format)
	}
	if !contains(inputFormats, c.Input.Format) {
		return fmt.Errorf("invalid input format '%s': must be one of json, yaml", c.Input.Format)
	}
	if !contains(colorModes, c.Color.Mode) {
		return fmt.Errorf("invalid color mode '%s': must be one of auto, always, never", c.Color.Mode)
	}
	if !contains(keyCases, c.Keys.Case) {
		return fmt.Errorf("invalid key case '%s': must be one of none, camel, pascal, snake, kebab", c.Keys.Case)
	}
	return nil
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

// LoadConfigWithCLI loads config with CLI argument precedence. CLI values
// still carrying their defaults defer to the config file, so a config file
// can change the effective default while explicit flags always win.
func LoadConfigWithCLI(configPath, cliFormat, cliInputFormat, cliColorMode, cliKeyCase string, cliVerbose int) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if cliFormat != "" && cliFormat != "json" {
		cfg.Format = cliFormat
	}
	if cliInputFormat != "" && cliInputFormat != "json" {
		cfg.Input.Format = cliInputFormat
	}
	if cliColorMode != "" && cliColorMode != "auto" {
		cfg.Color.Mode = cliColorMode
	}
	if cliKeyCase != "" && cliKeyCase != "none" {
		cfg.Keys.Case = cliKeyCase
	}
	if cliVerbose > 0 {
		cfg.Dev.Verbose = cliVerbose
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
