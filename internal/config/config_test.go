package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.API.BaseURL != "http://localhost:3001" {
		t.Errorf("BaseURL = %q, want default", cfg.API.BaseURL)
	}
	if cfg.Realtime.ReconnectAttempts != 3 {
		t.Errorf("ReconnectAttempts = %d, want 3", cfg.Realtime.ReconnectAttempts)
	}
	if cfg.Realtime.ReconnectInterval != 3*time.Second {
		t.Errorf("ReconnectInterval = %v, want 3s", cfg.Realtime.ReconnectInterval)
	}
	if cfg.Realtime.TypingTimeout != 3*time.Second {
		t.Errorf("TypingTimeout = %v, want 3s", cfg.Realtime.TypingTimeout)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("WACTL_API_BASE_URL", "https://api.example.com")
	t.Setenv("WACTL_LOG_LEVEL", "debug")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.API.BaseURL != "https://api.example.com" {
		t.Errorf("BaseURL = %q, want env override", cfg.API.BaseURL)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
}

// Keys whose default is empty must still accept env overrides; they
// need explicit registration for viper to surface them.
func TestEnvOverrideForEmptyDefaults(t *testing.T) {
	t.Setenv("WACTL_REALTIME_WS_URL", "ws://rt.example.com")
	t.Setenv("WACTL_LOG_FILE_PATH", "/tmp/wactl.log")
	t.Setenv("WACTL_LOG_ADD_SOURCE", "true")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Realtime.WSURL != "ws://rt.example.com" {
		t.Errorf("Realtime.WSURL = %q, want env override", cfg.Realtime.WSURL)
	}
	if got := cfg.WebSocketURL(); got != "ws://rt.example.com" {
		t.Errorf("WebSocketURL() = %q, want the overridden base", got)
	}
	if cfg.Log.FilePath != "/tmp/wactl.log" {
		t.Errorf("Log.FilePath = %q, want env override", cfg.Log.FilePath)
	}
	if !cfg.Log.AddSource {
		t.Error("Log.AddSource = false, want env override true")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg, err := Load("")
		if err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad base url", func(c *Config) { c.API.BaseURL = "ftp://nope" }},
		{"empty base url", func(c *Config) { c.API.BaseURL = "" }},
		{"negative attempts", func(c *Config) { c.Realtime.ReconnectAttempts = -1 }},
		{"zero interval", func(c *Config) { c.Realtime.ReconnectInterval = 0 }},
		{"zero typing timeout", func(c *Config) { c.Realtime.TypingTimeout = 0 }},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() expected error")
			}
		})
	}
}

func TestWebSocketURL(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		wsURL   string
		want    string
	}{
		{"derived from http", "http://localhost:3001", "", "ws://localhost:3001"},
		{"derived from https", "https://api.example.com", "", "wss://api.example.com"},
		{"explicit override", "http://localhost:3001", "ws://rt.example.com/", "ws://rt.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				API:      APIConfig{BaseURL: tt.baseURL},
				Realtime: RealtimeConfig{WSURL: tt.wsURL},
			}
			if got := cfg.WebSocketURL(); got != tt.want {
				t.Errorf("WebSocketURL() = %q, want %q", got, tt.want)
			}
		})
	}
}
