package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "gosstv-config-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	t.Run("Valid Config", func(t *testing.T) {
		configContent := `
encode:
  mode: "MARTIN1"
  sample_rate: 44100

decode:
  sample_rate: 44100
  use_fm_demod: true

logging:
  level: "debug"
  file: "/var/log/gosstv.log"
  console: true
`
		configPath := filepath.Join(tempDir, "valid.yaml")
		if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
			t.Fatalf("Failed to write config file: %v", err)
		}

		cfg, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}

		if cfg.Encode.Mode != "MARTIN1" {
			t.Errorf("Expected mode MARTIN1, got %s", cfg.Encode.Mode)
		}
		if cfg.Encode.SampleRate != 44100 {
			t.Errorf("Expected encode sample rate 44100, got %d", cfg.Encode.SampleRate)
		}
		if !cfg.Decode.UseFMDemod {
			t.Error("Expected use_fm_demod true")
		}
		if cfg.Logging.Level != "debug" {
			t.Errorf("Expected log level debug, got %s", cfg.Logging.Level)
		}
	})

	t.Run("Config With Defaults", func(t *testing.T) {
		configPath := filepath.Join(tempDir, "minimal.yaml")
		if err := os.WriteFile(configPath, []byte("encode:\n  mode: ROBOT36\n"), 0644); err != nil {
			t.Fatalf("Failed to write config file: %v", err)
		}

		cfg, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}

		if cfg.Encode.SampleRate != 48000 {
			t.Errorf("Expected default encode sample rate 48000, got %d", cfg.Encode.SampleRate)
		}
		if cfg.Decode.SampleRate != 48000 {
			t.Errorf("Expected default decode sample rate 48000, got %d", cfg.Decode.SampleRate)
		}
		if cfg.Logging.Level != "info" {
			t.Errorf("Expected default log level info, got %s", cfg.Logging.Level)
		}
		if cfg.Logging.MaxSize != 10 {
			t.Errorf("Expected default log max size 10, got %d", cfg.Logging.MaxSize)
		}
		if cfg.Logging.MaxBackups != 3 {
			t.Errorf("Expected default log max backups 3, got %d", cfg.Logging.MaxBackups)
		}
		if cfg.Logging.MaxAge != 28 {
			t.Errorf("Expected default log max age 28, got %d", cfg.Logging.MaxAge)
		}
	})

	t.Run("File Not Found", func(t *testing.T) {
		_, err := LoadConfig("/nonexistent/path/config.yaml")
		if err == nil {
			t.Error("Expected error for nonexistent file, got nil")
		}
		if !strings.Contains(err.Error(), "failed to read config file") {
			t.Errorf("Expected 'failed to read config file' error, got: %v", err)
		}
	})

	t.Run("Invalid YAML", func(t *testing.T) {
		configPath := filepath.Join(tempDir, "invalid.yaml")
		if err := os.WriteFile(configPath, []byte("encode: [mode\n"), 0644); err != nil {
			t.Fatalf("Failed to write config file: %v", err)
		}

		_, err := LoadConfig(configPath)
		if err == nil {
			t.Error("Expected error for invalid YAML, got nil")
		}
		if !strings.Contains(err.Error(), "failed to parse config file") {
			t.Errorf("Expected 'failed to parse config file' error, got: %v", err)
		}
	})

	t.Run("Empty File", func(t *testing.T) {
		configPath := filepath.Join(tempDir, "empty.yaml")
		if err := os.WriteFile(configPath, []byte(""), 0644); err != nil {
			t.Fatalf("Failed to write empty config file: %v", err)
		}

		cfg, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("Expected no error for empty file, got: %v", err)
		}
		if cfg.Encode.Mode != "ROBOT36" {
			t.Errorf("Expected default mode ROBOT36 for empty file, got %s", cfg.Encode.Mode)
		}
	})
}

func TestValidate(t *testing.T) {
	t.Run("Valid Config", func(t *testing.T) {
		cfg := &Config{
			Encode: EncodeConfig{Mode: "SCOTTIE1", SampleRate: 48000},
			Decode: DecodeConfig{SampleRate: 48000},
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("Expected no error for valid config, got: %v", err)
		}
	})

	t.Run("Unknown Mode", func(t *testing.T) {
		cfg := &Config{
			Encode: EncodeConfig{Mode: "PASOKON7", SampleRate: 48000},
			Decode: DecodeConfig{SampleRate: 48000},
		}
		err := cfg.Validate()
		if err == nil {
			t.Error("Expected error for unknown mode, got nil")
		}
		if !strings.Contains(err.Error(), "encode.mode") {
			t.Errorf("Expected mode error, got: %v", err)
		}
	})

	t.Run("Non-positive Encode Sample Rate", func(t *testing.T) {
		cfg := &Config{
			Encode: EncodeConfig{Mode: "ROBOT36", SampleRate: 0},
			Decode: DecodeConfig{SampleRate: 48000},
		}
		err := cfg.Validate()
		if err == nil {
			t.Error("Expected error for zero encode sample rate, got nil")
		}
		if !strings.Contains(err.Error(), "encode.sample_rate") {
			t.Errorf("Expected sample rate error, got: %v", err)
		}
	})

	t.Run("Non-positive Decode Sample Rate", func(t *testing.T) {
		cfg := &Config{
			Encode: EncodeConfig{Mode: "ROBOT36", SampleRate: 48000},
			Decode: DecodeConfig{SampleRate: -1},
		}
		err := cfg.Validate()
		if err == nil {
			t.Error("Expected error for negative decode sample rate, got nil")
		}
		if !strings.Contains(err.Error(), "decode.sample_rate") {
			t.Errorf("Expected sample rate error, got: %v", err)
		}
	})
}

func TestConfigIntegration(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "gosstv-config-integration")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	configContent := `
encode:
  mode: "SCOTTIE1"
  sample_rate: 48000

decode:
  sample_rate: 48000

logging:
  level: "info"
  console: true
`
	configPath := filepath.Join(tempDir, "integration.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Failed to validate config: %v", err)
	}
	if cfg.Encode.Mode != "SCOTTIE1" {
		t.Errorf("Expected mode SCOTTIE1, got %s", cfg.Encode.Mode)
	}
}
