package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the client configuration: where the backend lives and how
// the realtime layer behaves. Values come from an optional config
// file, WACTL_* environment variables, or defaults, in that order of
// precedence (env wins).
type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Realtime RealtimeConfig `mapstructure:"realtime"`
	Log      LogConfig      `mapstructure:"log"`
}

// APIConfig locates the REST backend.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// RealtimeConfig tunes the WebSocket transport and the message
// lifecycle timers.
type RealtimeConfig struct {
	// WSURL overrides the WebSocket base; when empty it is derived
	// from the API base URL (http -> ws, https -> wss).
	WSURL string `mapstructure:"ws_url"`
	// ReconnectAttempts bounds automatic reconnection after an
	// unexpected close. Exhausting the budget leaves the transport
	// disconnected until Connect is called again.
	ReconnectAttempts int `mapstructure:"reconnect_attempts"`
	// ReconnectInterval is the fixed delay between attempts. The
	// interval is flat, not exponential, matching the web client.
	ReconnectInterval time.Duration `mapstructure:"reconnect_interval"`
	// TypingTimeout is the quiet period after which a typing
	// indicator clears itself.
	TypingTimeout time.Duration `mapstructure:"typing_timeout"`
	// DeliveredAfter and ReadAfter drive the simulated receipt
	// policy. A genuine read receipt always preempts them.
	DeliveredAfter time.Duration `mapstructure:"delivered_after"`
	ReadAfter      time.Duration `mapstructure:"read_after"`
}

// LogConfig controls structured log output.
type LogConfig struct {
	Level     string `mapstructure:"level"`
	Format    string `mapstructure:"format"`
	Output    string `mapstructure:"output"`
	FilePath  string `mapstructure:"file_path"`
	AddSource bool   `mapstructure:"add_source"`
}

// Defaults matching the web dashboard's behavior.
const (
	defaultBaseURL           = "http://localhost:3001"
	defaultTimeout           = 30 * time.Second
	defaultReconnectAttempts = 3
	defaultReconnectInterval = 3 * time.Second
	defaultTypingTimeout     = 3 * time.Second
	defaultDeliveredAfter    = 1 * time.Second
	defaultReadAfter         = 3 * time.Second
)

// Load reads configuration from the given file (optional), a .env
// file in the working directory (optional), and WACTL_* environment
// variables.
func Load(configPath string) (*Config, error) {
	// Best-effort .env load; absence is not an error.
	_ = godotenv.Load()

	v := viper.New()

	// Every key needs registering, empty-valued ones included: viper
	// only surfaces env overrides for keys it knows about.
	v.SetDefault("api.base_url", defaultBaseURL)
	v.SetDefault("api.timeout", defaultTimeout)
	v.SetDefault("realtime.ws_url", "")
	v.SetDefault("realtime.reconnect_attempts", defaultReconnectAttempts)
	v.SetDefault("realtime.reconnect_interval", defaultReconnectInterval)
	v.SetDefault("realtime.typing_timeout", defaultTypingTimeout)
	v.SetDefault("realtime.delivered_after", defaultDeliveredAfter)
	v.SetDefault("realtime.read_after", defaultReadAfter)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.output", "stderr")
	v.SetDefault("log.file_path", "")
	v.SetDefault("log.add_source", false)

	v.SetEnvPrefix("WACTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks configuration consistency.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("invalid api base URL: %q", c.API.BaseURL)
	}

	if c.Realtime.ReconnectAttempts < 0 {
		return fmt.Errorf("reconnect_attempts must not be negative")
	}
	if c.Realtime.ReconnectInterval <= 0 {
		return fmt.Errorf("reconnect_interval must be positive")
	}
	if c.Realtime.TypingTimeout <= 0 {
		return fmt.Errorf("typing_timeout must be positive")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}
	if c.Log.Format != "json" && c.Log.Format != "text" {
		return fmt.Errorf("invalid log format: %s, must be 'json' or 'text'", c.Log.Format)
	}

	return nil
}

// WebSocketURL returns the base URL for chat WebSocket connections,
// derived from the API base URL unless overridden.
func (c *Config) WebSocketURL() string {
	if c.Realtime.WSURL != "" {
		return strings.TrimRight(c.Realtime.WSURL, "/")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return ""
	}
	scheme := "ws"
	if u.Scheme == "https" {
		scheme = "wss"
	}
	return fmt.Sprintf("%s://%s", scheme, u.Host)
}
