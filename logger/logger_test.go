package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		level string
	}{
		{"debug level", "debug"},
		{"info level", "info"},
		{"warn level", "warn"},
		{"error level", "error"},
		{"invalid level", "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := New(tt.level)
			if log == nil {
				t.Error("New() returned nil")
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{" error ", LevelError},
		{"verbose", LevelInfo},
		{"", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestEnabled(t *testing.T) {
	tests := []struct {
		name        string
		configLevel string
		logLevel    Level
		enabled     bool
	}{
		{"debug logs at debug level", "debug", LevelDebug, true},
		{"info logs at debug level", "debug", LevelInfo, true},
		{"debug doesn't log at info level", "info", LevelDebug, false},
		{"info logs at info level", "info", LevelInfo, true},
		{"warn doesn't log at error level", "error", LevelWarn, false},
		{"error always logs", "debug", LevelError, true},
		{"unknown config level behaves as info", "verbose", LevelDebug, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := New(tt.configLevel).(*implLogger)
			if got := log.enabled(tt.logLevel); got != tt.enabled {
				t.Errorf("enabled() = %v, want %v", got, tt.enabled)
			}
		})
	}
}

func TestWriterOutput(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "WARN")

	log.Info(ctx, "hidden %d", 1)
	log.Warn(ctx, "shown %s", "warning")
	log.Error(ctx, "shown error")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "[WARN] shown warning") {
		t.Errorf("missing warn line: %q", out)
	}
	if !strings.Contains(out, "[ERROR] shown error") {
		t.Errorf("missing error line: %q", out)
	}
}

func TestNop(t *testing.T) {
	l := Nop().(*implLogger)
	if l.enabled(LevelError) {
		t.Error("Nop logger should drop error messages")
	}
	l.Error(context.Background(), "discarded %v", "message")
}
