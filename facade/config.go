// File: facade/config.go
// Package facade
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Application configuration. Fields are immutable per run; durations are
// nanoseconds so the YAML form stays plain integers.

package facade

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds parameters immutable per run.
type Config struct {
	ListenAddr      string `yaml:"listen_addr"`      // TCP address the dispatch server listens on
	SessionTTL      int64  `yaml:"session_ttl"`      // Session lifetime, in nanoseconds
	ReadBufferSize  int    `yaml:"read_buffer_size"` // Websocket upgrader read buffer
	WriteBufferSize int    `yaml:"write_buffer_size"`
	EnableMetrics   bool   `yaml:"enable_metrics"` // Whether to attach the lifecycle metrics collector
	LogLevel        string `yaml:"log_level"`      // debug, info, warn or error
}

// DefaultConfig returns default configuration values.
func DefaultConfig() *Config {
	return &Config{
		ListenAddr:      ":8080",      // Listen on port 8080
		SessionTTL:      30 * 60e9,    // 30-minute sessions
		ReadBufferSize:  4096,         // 4 KiB handshake read buffer
		WriteBufferSize: 4096,         // 4 KiB handshake write buffer
		EnableMetrics:   true,         // Collect lifecycle metrics
		LogLevel:        "info",       // Info-level logging
	}
}

// LoadConfig reads a YAML file over the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
