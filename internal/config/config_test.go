package config

import (
	"strings"
	"testing"
)

func TestValidateConfig(t *testing.T) {
	t.Run("DefaultsAreValid", func(t *testing.T) {
		if err := validateConfig(GetDefaults()); err != nil {
			t.Fatalf("default configuration should validate: %v", err)
		}
	})

	cases := []struct {
		name    string
		mutate  func(*Config)
		wantMsg string
	}{
		{
			name:    "BadPort",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantMsg: "invalid server port",
		},
		{
			name:    "EmptyModelsDir",
			mutate:  func(c *Config) { c.Models.Dir = "" },
			wantMsg: "models dir",
		},
		{
			name:    "BadDefaultVariant",
			mutate:  func(c *Config) { c.Models.DefaultVariant = "word2vec" },
			wantMsg: "invalid default variant",
		},
		{
			name: "CacheWithoutURL",
			mutate: func(c *Config) {
				c.Cache.Enabled = true
				c.Cache.URL = ""
			},
			wantMsg: "cache url",
		},
		{
			name: "DatabaseWithoutURL",
			mutate: func(c *Config) {
				c.Database.Enabled = true
				c.Database.URL = ""
			},
			wantMsg: "database url",
		},
		{
			name:    "BadLogLevel",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantMsg: "invalid log level",
		},
		{
			name:    "BadLogFormat",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantMsg: "invalid log format",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := GetDefaults()
			tc.mutate(cfg)
			err := validateConfig(cfg)
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Errorf("expected error mentioning %q, got: %v", tc.wantMsg, err)
			}
		})
	}
}

func TestGetDefaults(t *testing.T) {
	cfg := GetDefaults()
	if cfg.Models.DefaultVariant != "fasttext" {
		t.Errorf("expected fasttext as the default variant, got %s", cfg.Models.DefaultVariant)
	}
	if cfg.Cache.Enabled || cfg.Database.Enabled {
		t.Error("external services should be opt-in by default")
	}
	if !cfg.Server.RateLimit.Enabled {
		t.Error("rate limiting should be on by default")
	}
}
