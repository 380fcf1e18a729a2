// CLASSIFICATION: COMMUNITY
// Filename: reader.go v0.1
// Author: Lukas Bower
// Date Modified: 2026-10-18
// License: SPDX-License-Identifier: MIT OR Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ReadYAMLFile loads a config file on top of Default. Unknown keys are errors.
func ReadYAMLFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file, path=%q: %w", path, err)
	}

	c := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML config file, path=%q: %w", path, err)
	}
	return c, nil
}

// Load reads path when non-empty, otherwise starts from Default, and then
// applies the environment.
func Load(path string, getenv func(string) string) (*Config, error) {
	c := Default()
	if path != "" {
		var err error
		if c, err = ReadYAMLFile(path); err != nil {
			return nil, err
		}
	}
	if err := c.ApplyEnv(getenv); err != nil {
		return nil, err
	}
	return c, nil
}
