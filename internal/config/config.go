// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"rollcall/internal/matcher"
	"rollcall/internal/normalizer"
	"rollcall/internal/paths"

	"gopkg.in/yaml.v3"
)

// Built-in defaults
const (
	DefaultFormat       = "text"
	DefaultPreviewChars = 2000
	DefaultPort         = "8080"
	DefaultMaxUploadMB  = 32
)

// ValidFormats lists the output formats a config may select
var ValidFormats = []string{"text", "json", "yaml", "csv"}

// Config represents the application configuration
type Config struct {
	Defaults struct {
		Format       string  `yaml:"format"`
		Threshold    float64 `yaml:"threshold"`
		NoColor      bool    `yaml:"no_color"`
		Debug        bool    `yaml:"debug"`
		PreviewChars int     `yaml:"preview_chars"`
	} `yaml:"defaults"`

	Normalizer struct {
		Particles []string `yaml:"particles"`
	} `yaml:"normalizer"`

	Matching struct {
		// Workers bounds the parallel matcher, 0 means GOMAXPROCS
		Workers int `yaml:"workers"`
	} `yaml:"matching"`

	Web struct {
		Port        string `yaml:"port"`
		MaxUploadMB int    `yaml:"max_upload_mb"`
	} `yaml:"web"`

	// Profiles for different matching scenarios
	Profiles map[string]Profile `yaml:"profiles"`
}

// Profile overrides defaults by name. Zero values leave the default untouched.
type Profile struct {
	Format      string  `yaml:"format"`
	Threshold   float64 `yaml:"threshold"`
	NoColor     bool    `yaml:"no_color"`
	Debug       bool    `yaml:"debug"`
	Description string  `yaml:"description"`
}

// Default returns the built-in configuration
func Default() *Config {
	config := &Config{
		Profiles: map[string]Profile{
			"strict": {
				Threshold:   matcher.DefaultThreshold,
				Description: "Exact match of some alias after normalization",
			},
			"relaxed": {
				Threshold:   0.85,
				Description: "Tolerates small OCR and spelling differences",
			},
		},
	}

	config.Defaults.Format = DefaultFormat
	config.Defaults.Threshold = matcher.DefaultThreshold
	config.Defaults.PreviewChars = DefaultPreviewChars
	config.Normalizer.Particles = slices.Clone(normalizer.DefaultParticles)
	config.Web.Port = DefaultPort
	config.Web.MaxUploadMB = DefaultMaxUploadMB

	return config
}

// LoadConfig loads configuration from the specified file path. An empty path
// returns the built-in defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := Default()

	if configPath == "" {
		return config, nil
	}

	cleanPath := filepath.Clean(configPath)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Profiles from the file are merged over the built-in ones
	builtin := config.Profiles
	config.Profiles = nil

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	for name, profile := range builtin {
		if config.Profiles == nil {
			config.Profiles = make(map[string]Profile)
		}
		if _, ok := config.Profiles[name]; !ok {
			config.Profiles[name] = profile
		}
	}

	applyDefaults(config)

	if err := ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// applyDefaults restores values a partial file left at their zero value
func applyDefaults(config *Config) {
	if config.Defaults.Format == "" {
		config.Defaults.Format = DefaultFormat
	}
	if config.Defaults.Threshold == 0 {
		config.Defaults.Threshold = matcher.DefaultThreshold
	}
	if config.Defaults.PreviewChars == 0 {
		config.Defaults.PreviewChars = DefaultPreviewChars
	}
	if config.Normalizer.Particles == nil {
		config.Normalizer.Particles = slices.Clone(normalizer.DefaultParticles)
	}
	if config.Web.Port == "" {
		config.Web.Port = DefaultPort
	}
	if config.Web.MaxUploadMB == 0 {
		config.Web.MaxUploadMB = DefaultMaxUploadMB
	}
}

// ValidateConfig checks value ranges
func ValidateConfig(config *Config) error {
	if !slices.Contains(ValidFormats, config.Defaults.Format) {
		return fmt.Errorf("invalid format %q (valid: %s)", config.Defaults.Format, strings.Join(ValidFormats, ", "))
	}
	if err := matcher.ValidateThreshold(config.Defaults.Threshold); err != nil {
		return err
	}
	if config.Defaults.PreviewChars < 0 {
		return fmt.Errorf("preview_chars must not be negative, got %d", config.Defaults.PreviewChars)
	}
	if config.Matching.Workers < 0 {
		return fmt.Errorf("matching.workers must not be negative, got %d", config.Matching.Workers)
	}
	if config.Web.MaxUploadMB < 0 {
		return fmt.Errorf("web.max_upload_mb must not be negative, got %d", config.Web.MaxUploadMB)
	}

	for name, profile := range config.Profiles {
		if profile.Format != "" && !slices.Contains(ValidFormats, profile.Format) {
			return fmt.Errorf("profile %q: invalid format %q", name, profile.Format)
		}
		if profile.Threshold != 0 {
			if err := matcher.ValidateThreshold(profile.Threshold); err != nil {
				return fmt.Errorf("profile %q: %w", name, err)
			}
		}
	}

	return nil
}

// FindConfigFile looks for a configuration file in the working directory,
// then in the per-user configuration directory.
func FindConfigFile() string {
	for _, name := range []string{"rollcall.yaml", "rollcall.yml", ".rollcall.yaml"} {
		if fileExists(name) {
			return name
		}
	}

	if configFile := paths.GetConfigFile(); fileExists(configFile) {
		return configFile
	}

	return ""
}

// fileExists checks if a file exists and is not a directory
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// ListProfiles returns the available profile names in sorted order
func (c *Config) ListProfiles() []string {
	profiles := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		profiles = append(profiles, name)
	}
	slices.Sort(profiles)
	return profiles
}

// GetProfile returns a profile by name, or nil if not found
func (c *Config) GetProfile(name string) *Profile {
	if profile, exists := c.Profiles[name]; exists {
		return &profile
	}
	return nil
}

// NewNormalizer builds the normalizer for the configured particle set
func (c *Config) NewNormalizer() *normalizer.Normalizer {
	return normalizer.New(c.Normalizer.Particles)
}

// MaxUploadBytes is the web upload limit in bytes
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.Web.MaxUploadMB) << 20
}

// LoadConfigOrDefault loads configuration from configFile (or searches standard locations
// when configFile is empty). If loading fails, it returns a default configuration
// together with the load error, so callers can warn without stopping.
func LoadConfigOrDefault(configFile string) (*Config, error) {
	configPath := configFile
	if configPath == "" {
		configPath = FindConfigFile()
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		return Default(), err
	}
	return cfg, nil
}
