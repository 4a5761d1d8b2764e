package types

import (
	"errors"
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "defaults are valid",
			mutate:  func(*Config) {},
			wantErr: nil,
		},
		{
			name:    "empty manifest returns ErrManifestNameEmpty",
			mutate:  func(c *Config) { c.Manifest = "" },
			wantErr: ErrManifestNameEmpty,
		},
		{
			name:    "empty git returns ErrToolEmpty",
			mutate:  func(c *Config) { c.Tools.Git = "" },
			wantErr: ErrToolEmpty,
		},
		{
			name:    "empty cargo returns ErrToolEmpty",
			mutate:  func(c *Config) { c.Tools.Cargo = "" },
			wantErr: ErrToolEmpty,
		},
		{
			name:    "negative delay returns ErrDelayNegative",
			mutate:  func(c *Config) { c.PublishDelay = -time.Second },
			wantErr: ErrDelayNegative,
		},
		{
			name:    "zero delay is valid",
			mutate:  func(c *Config) { c.PublishDelay = 0 },
			wantErr: nil,
		},
		{
			name:    "empty tag prefix is valid",
			mutate:  func(c *Config) { c.TagPrefix = "" },
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.PublishDelay != 16*time.Second {
		t.Errorf("PublishDelay = %v, want 16s", cfg.PublishDelay)
	}
	if cfg.TagPrefix != "v" {
		t.Errorf("TagPrefix = %q, want %q", cfg.TagPrefix, "v")
	}
	if cfg.Journal.Enabled {
		t.Error("journal should be disabled by default")
	}
}
