package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "test-key")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.OpenRouter.APIKey != "test-key" {
		t.Errorf("APIKey = %q, want value from env", cfg.OpenRouter.APIKey)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.OpenRouter.Model != "anthropic/claude-3-haiku" {
		t.Errorf("Model = %q", cfg.OpenRouter.Model)
	}
	if cfg.OpenRouter.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.OpenRouter.Timeout)
	}
	if cfg.Prompt.TemplatePath == "" {
		t.Error("TemplatePath should have a default")
	}
	if cfg.Cache.Enabled {
		t.Error("cache should default to disabled")
	}
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:     ServerConfig{Port: 8080},
			OpenRouter: OpenRouterConfig{APIKey: "k"},
			Prompt:     PromptConfig{TemplatePath: "templates/prompt-template.txt"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing api key", func(c *Config) { c.OpenRouter.APIKey = "" }, true},
		{"missing template path", func(c *Config) { c.Prompt.TemplatePath = "" }, true},
		{"zero port", func(c *Config) { c.Server.Port = 0 }, true},
		{"cache enabled without ttl", func(c *Config) {
			c.Cache.Enabled = true
			c.Cache.MaxSize = 100
			c.Cache.CleanupInterval = time.Minute
		}, true},
		{"cache enabled fully configured", func(c *Config) {
			c.Cache.Enabled = true
			c.Cache.MaxSize = 100
			c.Cache.TTL = time.Hour
			c.Cache.CleanupInterval = time.Minute
		}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(cfg)
			err := validateConfig(cfg)
			if (err != nil) != tc.wantErr {
				t.Errorf("validateConfig() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}
