package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"decorate/internal/logging"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the decorate tool.
type Config struct {
	Decorate DecorateConfig `yaml:"decorate"`
	Write    WriteConfig    `yaml:"write"`
	Walk     WalkConfig     `yaml:"walk"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DecorateConfig controls the rewritten declaration.
type DecorateConfig struct {
	Marker  string `yaml:"marker"`  // macro wrapped around the function name
	Comment string `yaml:"comment"` // appended after the declaration
}

// WriteConfig controls how sources are written back.
type WriteConfig struct {
	Atomic bool `yaml:"atomic"` // temp file + rename instead of truncate in place
}

// WalkConfig selects files for `decorate walk`.
type WalkConfig struct {
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Decorate: DecorateConfig{
			Marker:  "M68K_FAST_FUNC",
			Comment: "/* In SRAM */",
		},
		Write: WriteConfig{
			Atomic: true,
		},
		Walk: WalkConfig{
			Includes: []string{"**/*.c"},
			Excludes: []string{"**/.git/**", "**/build/**"},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for decorate.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "decorate.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".decorate", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks values that would produce broken C or an unusable run.
func (c *Config) Validate() error {
	var errs []error

	if !identPattern.MatchString(c.Decorate.Marker) {
		errs = append(errs, fmt.Errorf("decorate.marker %q is not a C identifier", c.Decorate.Marker))
	}
	if strings.TrimSpace(c.Decorate.Comment) == "" {
		errs = append(errs, errors.New("decorate.comment must not be empty"))
	}
	if strings.ContainsAny(c.Decorate.Comment, "\r\n") {
		errs = append(errs, errors.New("decorate.comment must be a single line"))
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging.level: %w", err))
	}

	return errors.Join(errs...)
}
