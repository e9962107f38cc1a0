// Package config loads and validates the codec's YAML configuration file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// EncodeConfig controls cmd/sstvencode's default behaviour.
type EncodeConfig struct {
	Mode       string `yaml:"mode"`
	SampleRate int    `yaml:"sample_rate"`
}

// DecodeConfig controls cmd/sstvdecode's default behaviour.
type DecodeConfig struct {
	SampleRate int  `yaml:"sample_rate"`
	UseFMDemod bool `yaml:"use_fm_demod"`
}

// LoggingConfig mirrors the teacher's logging block: level, destinations,
// structured-vs-plain rendering, and lumberjack rotation parameters.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	Console    bool   `yaml:"console"`
	File       string `yaml:"file"`
	Structured bool   `yaml:"structured"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
	Compress   bool   `yaml:"compress"`
}

// Config is the top-level configuration file shape.
type Config struct {
	Encode  EncodeConfig  `yaml:"encode"`
	Decode  DecodeConfig  `yaml:"decode"`
	Logging LoggingConfig `yaml:"logging"`
}

var validModeNames = map[string]bool{
	"ROBOT36":  true,
	"MARTIN1":  true,
	"SCOTTIE1": true,
}

// LoadConfig loads configuration from a YAML file, filling in defaults for
// anything left unset.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Encode.Mode == "" {
		cfg.Encode.Mode = "ROBOT36"
	}
	if cfg.Encode.SampleRate == 0 {
		cfg.Encode.SampleRate = 48000
	}
	if cfg.Decode.SampleRate == 0 {
		cfg.Decode.SampleRate = 48000
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.MaxSize == 0 {
		cfg.Logging.MaxSize = 10
	}
	if cfg.Logging.MaxBackups == 0 {
		cfg.Logging.MaxBackups = 3
	}
	if cfg.Logging.MaxAge == 0 {
		cfg.Logging.MaxAge = 28
	}

	return &cfg, nil
}

// Validate checks that the configuration describes a runnable codec.
func (c *Config) Validate() error {
	if !validModeNames[c.Encode.Mode] {
		return fmt.Errorf("encode.mode must be one of ROBOT36, MARTIN1, SCOTTIE1, got %q", c.Encode.Mode)
	}
	if c.Encode.SampleRate <= 0 {
		return fmt.Errorf("encode.sample_rate must be positive, got %d", c.Encode.SampleRate)
	}
	if c.Decode.SampleRate <= 0 {
		return fmt.Errorf("decode.sample_rate must be positive, got %d", c.Decode.SampleRate)
	}
	return nil
}
