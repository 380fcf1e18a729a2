// CLASSIFICATION: COMMUNITY
// Filename: config.go v0.1
// Author: Lukas Bower
// Date Modified: 2026-10-18
// License: SPDX-License-Identifier: MIT OR Apache-2.0

// Package config holds the settings shared by every server component. A
// Config is built once at start-up and passed down explicitly.
package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	EnvRoot       = "WW_ENVIRONMENT_STORAGE"
	EnvPort       = "PORT"
	EnvLogLevel   = "WW_LOG_LEVEL"
	EnvLogFormat  = "WW_LOG_FORMAT"
	EnvHealthPort = "WW_HEALTH_PORT"

	DefaultRoot = "/app/base-environment"
	DefaultBind = "0.0.0.0"
	DefaultPort = 5000
)

type Config struct {
	Root   string       `yaml:"root"`
	HTTP   HTTPConfig   `yaml:"http"`
	Health HealthConfig `yaml:"health"`
	Watch  WatchConfig  `yaml:"watch"`
	Log    LogConfig    `yaml:"log"`
}

type HTTPConfig struct {
	Bind string `yaml:"bind"`
	Port int    `yaml:"port"`

	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	ReadTimeout       time.Duration `yaml:"read_timeout"`
	WriteTimeout      time.Duration `yaml:"write_timeout"`
	IdleTimeout       time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`

	// StatusPath mounts the JSON status handler when non-empty.
	StatusPath string `yaml:"status_path"`
	// LogFile receives one access line per request when non-empty.
	LogFile string `yaml:"log_file"`
	// RateLimit is requests per second across all clients; 0 disables it.
	RateLimit float64 `yaml:"rate_limit"`
	RateBurst int     `yaml:"rate_burst"`
}

// HealthConfig controls the gRPC health service. Port 0 disables it.
type HealthConfig struct {
	Bind string `yaml:"bind"`
	Port int    `yaml:"port"`
}

type WatchConfig struct {
	Enabled bool `yaml:"enabled"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Default() *Config {
	return &Config{
		Root: DefaultRoot,
		HTTP: HTTPConfig{
			Bind:              DefaultBind,
			Port:              DefaultPort,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       2 * time.Minute,
			ShutdownTimeout:   10 * time.Second,
			RateBurst:         1,
		},
		Health: HealthConfig{Bind: DefaultBind},
		Watch:  WatchConfig{Enabled: true},
		Log:    LogConfig{Level: "info", Format: "text"},
	}
}

// ApplyEnv overrides fields from the environment. getenv is usually os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := strings.TrimSpace(getenv(EnvRoot)); v != "" {
		c.Root = v
	}
	if v := strings.TrimSpace(getenv(EnvPort)); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvPort, v, err)
		}
		c.HTTP.Port = port
	}
	if v := strings.TrimSpace(getenv(EnvHealthPort)); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvHealthPort, v, err)
		}
		c.Health.Port = port
	}
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		c.Log.Level = v
	}
	if v := strings.TrimSpace(getenv(EnvLogFormat)); v != "" {
		c.Log.Format = v
	}
	return nil
}

func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Root) == "" {
		errs = append(errs, errors.New("root directory required"))
	}
	if !validPort(c.HTTP.Port) {
		errs = append(errs, fmt.Errorf("http port %d out of range", c.HTTP.Port))
	}
	if !validPort(c.Health.Port) {
		errs = append(errs, fmt.Errorf("health port %d out of range", c.Health.Port))
	}
	if p := c.HTTP.StatusPath; p != "" && (!strings.HasPrefix(p, "/") || p == "/") {
		errs = append(errs, fmt.Errorf("status path %q must be an absolute path other than /", p))
	}
	if c.HTTP.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("rate limit %v must not be negative", c.HTTP.RateLimit))
	}
	if c.HTTP.RateLimit > 0 && c.HTTP.RateBurst < 1 {
		errs = append(errs, fmt.Errorf("rate burst %d must be at least 1", c.HTTP.RateBurst))
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		errs = append(errs, fmt.Errorf("log format %q must be text or json", c.Log.Format))
	}
	return errors.Join(errs...)
}

// Addr is the HTTP listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.HTTP.Bind, strconv.Itoa(c.HTTP.Port))
}

// HealthAddr is the gRPC health listen address, empty when disabled.
func (c *Config) HealthAddr() string {
	if c.Health.Port == 0 {
		return ""
	}
	return net.JoinHostPort(c.Health.Bind, strconv.Itoa(c.Health.Port))
}

func validPort(p int) bool {
	return p >= 0 && p <= 65535
}
