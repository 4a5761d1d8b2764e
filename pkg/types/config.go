package types

import (
	"errors"
	"time"
)

// Config holds the tool settings decoded from .cratepub.yaml, the
// environment, and flags.
type Config struct {
	TagPrefix    string        `mapstructure:"tag_prefix" yaml:"tag_prefix"`
	PublishDelay time.Duration `mapstructure:"publish_delay" yaml:"publish_delay"`
	Manifest     string        `mapstructure:"manifest" yaml:"manifest"`
	Tools        ToolsConfig   `mapstructure:"tools" yaml:"tools"`
	Journal      JournalConfig `mapstructure:"journal" yaml:"journal"`
}

// ToolsConfig names the external binaries cratepub invokes.
type ToolsConfig struct {
	Git   string `mapstructure:"git" yaml:"git"`
	Cargo string `mapstructure:"cargo" yaml:"cargo"`
}

// JournalConfig controls the optional publish journal.
type JournalConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Dir     string `mapstructure:"dir" yaml:"dir,omitempty"`
}

// Defaults.
const (
	DefaultTagPrefix    = "v"
	DefaultPublishDelay = 16 * time.Second
	DefaultManifest     = "Cargo.toml"
	DefaultGit          = "git"
	DefaultCargo        = "cargo"
)

// Config validation errors.
var (
	ErrManifestNameEmpty = errors.New("manifest file name must not be empty")
	ErrToolEmpty         = errors.New("tool binary must not be empty")
	ErrDelayNegative     = errors.New("publish delay must not be negative")
)

// DefaultConfig returns a Config populated with the built-in defaults.
func DefaultConfig() Config {
	return Config{
		TagPrefix:    DefaultTagPrefix,
		PublishDelay: DefaultPublishDelay,
		Manifest:     DefaultManifest,
		Tools: ToolsConfig{
			Git:   DefaultGit,
			Cargo: DefaultCargo,
		},
	}
}

// Validate checks that the Config is usable. It returns one of the sentinel
// errors above on failure.
func (c Config) Validate() error {
	if c.Manifest == "" {
		return ErrManifestNameEmpty
	}
	if c.Tools.Git == "" || c.Tools.Cargo == "" {
		return ErrToolEmpty
	}
	if c.PublishDelay < 0 {
		return ErrDelayNegative
	}
	return nil
}
