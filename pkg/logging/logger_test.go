package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kb9qz/gosstv/pkg/config"
)

func TestParseLogLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"debug":   LevelDebug,
		"info":    LevelInfo,
		"warn":    LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
		"bogus":   LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLogLevel(in); got != want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLoggerWritesToRotatingFile(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "gosstv-logging-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	logPath := filepath.Join(tempDir, "decode.log")
	logger, err := NewLogger(&config.LoggingConfig{
		Level:      "debug",
		File:       logPath,
		MaxSize:    1,
		MaxBackups: 1,
		MaxAge:     1,
	})
	if err != nil {
		t.Fatalf("NewLogger() error: %v", err)
	}
	defer logger.Close()

	logger.Info("decoder", "acquired sync", map[string]interface{}{"line": 3})
	logger.Debug("decoder", "estimated frequency 1500.0 Hz")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "acquired sync") {
		t.Errorf("log file missing Info message, got: %q", content)
	}
	if !strings.Contains(content, "estimated frequency") {
		t.Errorf("log file missing Debug message, got: %q", content)
	}
	if !strings.Contains(content, "line=3") {
		t.Errorf("log file missing structured field, got: %q", content)
	}
}

func TestLoggerRespectsLevel(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "gosstv-logging-level-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	logPath := filepath.Join(tempDir, "warnonly.log")
	logger, err := NewLogger(&config.LoggingConfig{Level: "warn", File: logPath})
	if err != nil {
		t.Fatalf("NewLogger() error: %v", err)
	}
	defer logger.Close()

	logger.Debug("encoder", "this should be suppressed")
	logger.Info("encoder", "this should also be suppressed")
	logger.Warn("encoder", "this should appear")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	content := string(data)
	if strings.Contains(content, "suppressed") {
		t.Errorf("log file contains a message below the configured level: %q", content)
	}
	if !strings.Contains(content, "this should appear") {
		t.Errorf("log file missing the Warn message, got: %q", content)
	}
}

func TestLoggerStructuredFormat(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "gosstv-logging-structured-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	logPath := filepath.Join(tempDir, "structured.log")
	logger, err := NewLogger(&config.LoggingConfig{Level: "info", File: logPath, Structured: true})
	if err != nil {
		t.Fatalf("NewLogger() error: %v", err)
	}
	defer logger.Close()

	logger.Info("vis", "detected mode", map[string]interface{}{"mode": "Martin M1"})

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	content := string(data)
	if !strings.HasPrefix(strings.TrimSpace(content), "{") {
		t.Errorf("expected JSON-like structured line, got: %q", content)
	}
	if !strings.Contains(content, `"component":"vis"`) {
		t.Errorf("structured line missing component field, got: %q", content)
	}
}

func TestWithFieldsCarriesAcrossCalls(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "gosstv-logging-fields-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	logPath := filepath.Join(tempDir, "fields.log")
	logger, err := NewLogger(&config.LoggingConfig{Level: "info", File: logPath})
	if err != nil {
		t.Fatalf("NewLogger() error: %v", err)
	}
	defer logger.Close()

	fl := logger.WithFields(map[string]interface{}{"run": "encode-1"})
	fl.Info("sstvencode", "starting")
	fl.Infof("sstvencode", "processed %d lines", 240)

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	content := string(data)
	if strings.Count(content, "run=encode-1") != 2 {
		t.Errorf("expected the predefined field on both lines, got: %q", content)
	}
	if !strings.Contains(content, "processed 240 lines") {
		t.Errorf("log file missing formatted message, got: %q", content)
	}
}

func TestNewLoggerDefaultsToConsoleWithoutFile(t *testing.T) {
	logger, err := NewLogger(&config.LoggingConfig{Level: "info"})
	if err != nil {
		t.Fatalf("NewLogger() error: %v", err)
	}
	defer logger.Close()

	if logger.consoleLogger == nil {
		t.Error("expected console logging to be enabled when no file path is configured")
	}
	if logger.fileLogger != nil {
		t.Error("expected no file logger when File is empty")
	}
}
