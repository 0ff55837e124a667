// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"

	"github.com/telekom/pathprobe/internal/probe"
	"github.com/telekom/pathprobe/internal/resolve"
	"github.com/telekom/pathprobe/pkg/telemetry"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Probe is the configuration of the probe run
	Probe probe.Options `json:"probe" yaml:"probe" mapstructure:"probe"`
	// Resolver is the configuration for resolving the target host
	Resolver resolve.Config `json:"resolver" yaml:"resolver" mapstructure:"resolver"`
	// Telemetry is the configuration for the telemetry
	Telemetry telemetry.Config `json:"telemetry" yaml:"telemetry" mapstructure:"telemetry"`
}

// Default returns the configuration of a standard run
func Default() Config {
	return Config{
		Probe:    probe.DefaultOptions(),
		Resolver: resolve.DefaultConfig(),
	}
}

// HasTelemetry returns true if the config has tracing enabled
func (c *Config) HasTelemetry() bool {
	return c.Telemetry.Enabled
}

// HasMetricsEndpoint returns true if the metrics are served while probing
func (c *Config) HasMetricsEndpoint() bool {
	return c.Telemetry.HasMetricsEndpoint()
}

// YAML renders the configuration the way it is read from a config file
func (c *Config) YAML() ([]byte, error) {
	b, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return b, nil
}
