package app

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.expected {
			t.Errorf("LogLevel(%d).String() = %q, expected %q", tt.level, got, tt.expected)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"debug", LogLevelDebug},
		{"DEBUG", LogLevelDebug},
		{"Info", LogLevelInfo},
		{"warn", LogLevelWarn},
		{"warning", LogLevelWarn},
		{"ERROR", LogLevelError},
		{"unknown", LogLevelInfo},
		{"", LogLevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLogLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLogLevel(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}

func newBufferLogger(level LogLevel) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := NewLogger(LoggerConfig{Level: level, Output: &buf, Prefix: "test"})
	l.core.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	return l, &buf
}

func TestLogger_LineFormat(t *testing.T) {
	logger, buf := newBufferLogger(LogLevelInfo)

	logger.WithFields(map[string]any{"zeta": 1, "alpha": "a"}).Info("saved %s", "x.txt")

	want := "2024-01-02T03:04:05.000 [INFO] test: saved x.txt {alpha=a, zeta=1}\n"
	if got := buf.String(); got != want {
		t.Errorf("line = %q\nwant   %q", got, want)
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(LogLevelWarn)

	logger.Debug("debug")
	logger.Info("info")
	logger.Warn("warn")
	logger.Error("error")

	output := buf.String()
	for _, dropped := range []string{"[DEBUG]", "[INFO]"} {
		if strings.Contains(output, dropped) {
			t.Errorf("expected %s to be filtered out", dropped)
		}
	}
	for _, kept := range []string{"[WARN]", "[ERROR]"} {
		if !strings.Contains(output, kept) {
			t.Errorf("expected %s in output", kept)
		}
	}
}

func TestLogger_DerivedSharesLevelAndOutput(t *testing.T) {
	logger, buf := newBufferLogger(LogLevelError)
	child := logger.WithComponent("editor")

	child.Info("hidden")
	if buf.Len() != 0 {
		t.Fatal("expected no output at error level")
	}

	logger.SetLevel(LogLevelDebug)
	child.Debug("shown")
	if !strings.Contains(buf.String(), "component=editor") {
		t.Errorf("output = %q", buf.String())
	}

	var other bytes.Buffer
	logger.SetOutput(&other)
	child.Info("moved")
	if !strings.Contains(other.String(), "moved") {
		t.Error("derived logger did not follow SetOutput")
	}
}

func TestLogger_WithFieldDoesNotLeak(t *testing.T) {
	logger, buf := newBufferLogger(LogLevelInfo)
	_ = logger.WithField("key", "value")

	logger.Info("plain")
	if strings.Contains(buf.String(), "key=value") {
		t.Errorf("parent logger picked up a child field: %q", buf.String())
	}
}

func TestLogger_DisableEnable(t *testing.T) {
	logger, buf := newBufferLogger(LogLevelInfo)

	logger.Disable()
	logger.Info("should not appear")
	if buf.Len() != 0 {
		t.Error("expected no output when disabled")
	}

	logger.Enable()
	logger.Info("should appear")
	if buf.Len() == 0 {
		t.Error("expected output when enabled")
	}
}

func TestNullLogger(t *testing.T) {
	NullLogger.Debug("test")
	NullLogger.WithComponent("x").Error("test %d", 1)
}

func TestDefaultLoggerConfig(t *testing.T) {
	cfg := DefaultLoggerConfig()
	if cfg.Level != LogLevelInfo {
		t.Errorf("expected default level INFO, got %v", cfg.Level)
	}
	if cfg.Output == nil {
		t.Error("expected default output to be set")
	}
	if cfg.Prefix != "caret" {
		t.Errorf("expected prefix 'caret', got %q", cfg.Prefix)
	}
}
