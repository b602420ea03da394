package logger

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/quantive/marketcore/pkg/config"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"WARN", zerolog.WarnLevel},
		{"unknown", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			if got := parseLogLevel(tt.level); got != tt.want {
				t.Errorf("parseLogLevel(%q) = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestNew(t *testing.T) {
	cfg := &config.Config{
		Env:       "development",
		LogLevel:  "debug",
		LogFormat: "json",
	}

	log := New(cfg)
	if log == nil {
		t.Fatal("New() returned nil")
	}
	if zerolog.GlobalLevel() != zerolog.DebugLevel {
		t.Errorf("global level = %v, want debug", zerolog.GlobalLevel())
	}
}

func TestNew_ConsoleFormat(t *testing.T) {
	cfg := &config.Config{
		Env:       "development",
		LogLevel:  "info",
		LogFormat: "console",
	}

	if log := New(cfg); log == nil {
		t.Fatal("New() returned nil for console format")
	}
}

func TestChaining(t *testing.T) {
	log := NewNop()

	// Derived loggers are independent; none of these may panic or mutate
	// the parent.
	withField := log.WithField("component", "test")
	withFields := log.WithFields(map[string]interface{}{"a": 1, "b": "two"})
	withErr := log.WithError(nil)

	for _, l := range []*Logger{log, withField, withFields, withErr} {
		if l == nil {
			t.Fatal("derived logger is nil")
		}
		l.Debug("debug")
		l.Info("info")
		l.Warn("warn")
		l.Error("error")
		l.Infof("formatted %d", 1)
	}

	if withField == log {
		t.Error("WithField returned the receiver instead of a copy")
	}
}
