package logger

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/renoribeiro/whatsapp-automation-v0-sub001/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseLevel(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Error("parseLevel() expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseLevel() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("parseLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWithError(t *testing.T) {
	base := slog.New(slog.NewTextHandler(io.Discard, nil))
	if got := WithError(base, nil); got != base {
		t.Error("WithError(nil) should return the logger unchanged")
	}

	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, nil))
	WithError(l, errors.New("boom")).Warn("request failed")
	if !strings.Contains(buf.String(), "error=boom") {
		t.Errorf("log output missing error field: %q", buf.String())
	}
}

func TestSetupRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.LogConfig
	}{
		{"bad level", config.LogConfig{Level: "loud", Format: "text", Output: "stderr"}},
		{"bad output", config.LogConfig{Level: "info", Format: "text", Output: "syslog"}},
		{"bad format", config.LogConfig{Level: "info", Format: "xml", Output: "stderr"}},
		{"file output without path", config.LogConfig{Level: "info", Format: "text", Output: "file"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Setup(tt.cfg); err == nil {
				t.Error("Setup() expected error")
			}
		})
	}
}
