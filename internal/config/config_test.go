package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	// Test loading default config when file doesn't exist
	t.Run("LoadDefaultWhenMissing", func(t *testing.T) {
		t.Setenv("PORT", "8080")
		t.Setenv("HOST", "0.0.0.0")

		config, err := LoadConfig("nonexistent.yaml")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if config == nil {
			t.Fatal("expected default config, got nil")
		}
		if config.Server.Port != "8080" {
			t.Errorf("expected Port 8080, got %s", config.Server.Port)
		}
		if config.Server.PollTimeout != 25*time.Second {
			t.Errorf("expected PollTimeout 25s, got %v", config.Server.PollTimeout)
		}
		if config.Server.RateLimitBurst != 40 {
			t.Errorf("expected RateLimitBurst 40, got %d", config.Server.RateLimitBurst)
		}
		if config.Game.NameMaxLen != 24 {
			t.Errorf("expected NameMaxLen 24, got %d", config.Game.NameMaxLen)
		}
		if config.Game.QuickDrawScoring != "unique" {
			t.Errorf("expected QuickDrawScoring unique, got %s", config.Game.QuickDrawScoring)
		}
	})

	// Test loading from YAML file
	t.Run("LoadFromYAML", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "test-config.yaml")

		yamlContent := `
server:
  port: "9999"
  host: 127.0.0.1
  pollTimeout: 10s
  writeTimeout: 30s

game:
  nameMaxLen: 12
  profanityFilter: strict
  quickDrawScoring: host
  spyEscapePoints: 3
`
		if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Server.Port != "9999" {
			t.Errorf("expected Port 9999, got %s", config.Server.Port)
		}
		if config.Server.PollTimeout != 10*time.Second {
			t.Errorf("expected PollTimeout 10s, got %v", config.Server.PollTimeout)
		}
		if config.Game.NameMaxLen != 12 {
			t.Errorf("expected NameMaxLen 12, got %d", config.Game.NameMaxLen)
		}
		if config.Game.ProfanityFilter != "strict" {
			t.Errorf("expected ProfanityFilter strict, got %s", config.Game.ProfanityFilter)
		}
		if config.Game.SpyEscapePoints != 3 {
			t.Errorf("expected SpyEscapePoints 3, got %d", config.Game.SpyEscapePoints)
		}
		// Unconfigured fields keep their defaults
		if config.Game.TextMaxLen != 120 {
			t.Errorf("expected TextMaxLen 120, got %d", config.Game.TextMaxLen)
		}
	})

	// Env vars win over the config file
	t.Run("EnvOverridesFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "test-config.yaml")

		yamlContent := `
server:
  port: "9999"
  host: 127.0.0.1
`
		if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		t.Setenv("PORT", "7777")
		t.Setenv("PROFANITY_FILTER", "off")

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}
		if config.Server.Port != "7777" {
			t.Errorf("expected env PORT to win, got %s", config.Server.Port)
		}
		if config.Game.ProfanityFilter != "off" {
			t.Errorf("expected env PROFANITY_FILTER to win, got %s", config.Game.ProfanityFilter)
		}
	})

	t.Run("MissingPort", func(t *testing.T) {
		t.Setenv("PORT", "")
		t.Setenv("HOST", "0.0.0.0")

		_, err := LoadConfig("nonexistent.yaml")
		if err == nil {
			t.Fatal("expected error for missing PORT, got nil")
		}
		if !strings.Contains(err.Error(), "PORT environment variable must be set") {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func validConfig() *Config {
	cfg := DefaultConfig()
	cfg.Server.Port = "8080"
	cfg.Server.Host = "0.0.0.0"
	return cfg
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(c *Config)
		errorMsg string // empty means the config should validate
	}{
		{
			name: "ValidConfig",
		},
		{
			name:     "MissingPort",
			mutate:   func(c *Config) { c.Server.Port = "" },
			errorMsg: "PORT environment variable must be set",
		},
		{
			name:     "MissingHost",
			mutate:   func(c *Config) { c.Server.Host = "" },
			errorMsg: "HOST environment variable must be set",
		},
		{
			name:     "PollTimeoutTooLong",
			mutate:   func(c *Config) { c.Server.PollTimeout = c.Server.WriteTimeout },
			errorMsg: "pollTimeout",
		},
		{
			name:     "ZeroRateLimit",
			mutate:   func(c *Config) { c.Server.RateLimit = 0 },
			errorMsg: "rateLimit must be positive",
		},
		{
			name:     "TinyRequestSize",
			mutate:   func(c *Config) { c.Server.MaxRequestSize = 512 },
			errorMsg: "maxRequestSize must be at least 1KB",
		},
		{
			name:     "ZeroNameLength",
			mutate:   func(c *Config) { c.Game.NameMaxLen = 0 },
			errorMsg: "nameMaxLen must be at least 1",
		},
		{
			name:     "BadProfanityFilter",
			mutate:   func(c *Config) { c.Game.ProfanityFilter = "medium" },
			errorMsg: "profanityFilter must be off, mild or strict",
		},
		{
			name:     "BadQuickDrawScoring",
			mutate:   func(c *Config) { c.Game.QuickDrawScoring = "auto" },
			errorMsg: "quickDrawScoring must be unique or host",
		},
		{
			name:     "MafiaTooSmall",
			mutate:   func(c *Config) { c.Game.MafiaMinPlayers = 2 },
			errorMsg: "mafiaMinPlayers must be at least 3",
		},
		{
			name:     "NegativeWolves",
			mutate:   func(c *Config) { c.Game.MafiaWolves = -1 },
			errorMsg: "mafiaWolves cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			if tt.mutate != nil {
				tt.mutate(cfg)
			}
			err := cfg.Validate()
			if tt.errorMsg == "" {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Errorf("expected error containing '%s', got nil", tt.errorMsg)
			} else if !strings.Contains(err.Error(), tt.errorMsg) {
				t.Errorf("expected error containing '%s', got '%s'", tt.errorMsg, err.Error())
			}
		})
	}
}

func TestDefaultGameRules(t *testing.T) {
	rules := DefaultGameRules()
	if err := rules.Validate(); err != nil {
		t.Fatalf("default rules should validate, got %v", err)
	}
	if rules.MafiaMinPlayers != 3 {
		t.Errorf("expected MafiaMinPlayers 3, got %d", rules.MafiaMinPlayers)
	}
	if rules.SpyEscapePoints <= rules.SpyCaughtPoints {
		t.Error("escaping should pay the spy more than catching pays the crowd")
	}
}
