// CLASSIFICATION: COMMUNITY
// Filename: config_test.go v0.1
// Author: Lukas Bower
// Date Modified: 2026-10-18
// License: SPDX-License-Identifier: MIT OR Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func envMap(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

func TestDefaults(t *testing.T) {
	c := Default()
	if c.Root != "/app/base-environment" {
		t.Fatalf("unexpected root: %s", c.Root)
	}
	if c.Addr() != "0.0.0.0:5000" {
		t.Fatalf("unexpected addr: %s", c.Addr())
	}
	if c.HealthAddr() != "" {
		t.Fatalf("health should be disabled by default: %s", c.HealthAddr())
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
}

func TestApplyEnv(t *testing.T) {
	c := Default()
	err := c.ApplyEnv(envMap(map[string]string{
		EnvRoot:       "/srv/env",
		EnvPort:       "8081",
		EnvLogLevel:   "debug",
		EnvHealthPort: "9091",
	}))
	if err != nil {
		t.Fatalf("apply env: %v", err)
	}
	if c.Root != "/srv/env" || c.HTTP.Port != 8081 || c.Log.Level != "debug" {
		t.Fatalf("env not applied: %+v", c)
	}
	if c.HealthAddr() != "0.0.0.0:9091" {
		t.Fatalf("unexpected health addr: %s", c.HealthAddr())
	}
}

func TestApplyEnvRejectsBadPort(t *testing.T) {
	c := Default()
	if err := c.ApplyEnv(envMap(map[string]string{EnvPort: "fivethousand"})); err == nil {
		t.Fatalf("expected error for non-numeric port")
	}
}

func TestReadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
root: /data/env
http:
  port: 7000
  status_path: /_status
  rate_limit: 5
  rate_burst: 10
  shutdown_timeout: 3s
log:
  format: json
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	c, err := ReadYAMLFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if c.Root != "/data/env" || c.HTTP.Port != 7000 || c.HTTP.StatusPath != "/_status" {
		t.Fatalf("unexpected values: %+v", c)
	}
	if c.HTTP.RateLimit != 5 || c.HTTP.RateBurst != 10 {
		t.Fatalf("unexpected rate settings: %+v", c.HTTP)
	}
	if c.HTTP.ShutdownTimeout != 3*time.Second {
		t.Fatalf("unexpected shutdown timeout: %v", c.HTTP.ShutdownTimeout)
	}
	if c.HTTP.Bind != DefaultBind || c.Log.Level != "info" || c.Log.Format != "json" {
		t.Fatalf("defaults not preserved: %+v", c)
	}
}

func TestReadYAMLFileRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("http:\n  prot: 1\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := ReadYAMLFile(path); err == nil {
		t.Fatalf("expected unknown key error")
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("root: /from/file\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	c, err := Load(path, envMap(map[string]string{EnvRoot: "/from/env"}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Root != "/from/env" {
		t.Fatalf("env should win over file: %s", c.Root)
	}
}

func TestLoadWithoutFile(t *testing.T) {
	c, err := Load("", envMap(nil))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Root != DefaultRoot || c.HTTP.Port != DefaultPort {
		t.Fatalf("unexpected config: %+v", c)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"empty root", func(c *Config) { c.Root = " " }, "root directory required"},
		{"port range", func(c *Config) { c.HTTP.Port = 70000 }, "http port"},
		{"health range", func(c *Config) { c.Health.Port = -1 }, "health port"},
		{"status root", func(c *Config) { c.HTTP.StatusPath = "/" }, "status path"},
		{"status relative", func(c *Config) { c.HTTP.StatusPath = "status" }, "status path"},
		{"negative rate", func(c *Config) { c.HTTP.RateLimit = -1 }, "rate limit"},
		{"zero burst", func(c *Config) { c.HTTP.RateLimit = 1; c.HTTP.RateBurst = 0 }, "rate burst"},
		{"log level", func(c *Config) { c.Log.Level = "loud" }, "loud"},
		{"log format", func(c *Config) { c.Log.Format = "xml" }, "log format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			err := c.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}
