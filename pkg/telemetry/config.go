// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"context"
	"fmt"
	"net"

	"github.com/telekom/pathprobe/internal/logger"
)

// Config holds the configuration for tracing and the metrics endpoint
type Config struct {
	// Enabled is a flag to enable or disable the OpenTelemetry tracing
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	// Exporter is the otlp exporter used to export the traces
	Exporter Exporter `json:"exporter" yaml:"exporter" mapstructure:"exporter"`
	// Url is the Url of the collector to which the traces are exported
	Url string `json:"url" yaml:"url" mapstructure:"url"`
	// Token is the token used to authenticate with the collector
	Token string `json:"token" yaml:"token" mapstructure:"token"`
	// TLS holds the tls configuration
	TLS TLSConfig `json:"tls" yaml:"tls" mapstructure:"tls"`
	// MetricsAddress is the address the prometheus metrics are served on while probing.
	// The endpoint is disabled if empty.
	MetricsAddress string `json:"metricsAddress" yaml:"metricsAddress" mapstructure:"metricsAddress"`
}

type TLSConfig struct {
	// Enabled is a flag to enable or disable the tls
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	// CertPath is the path to the tls certificate file.
	// This is only required if the otel backend uses custom TLS certificates.
	CertPath string `json:"certPath" yaml:"certPath" mapstructure:"certPath"`
}

// HasMetricsEndpoint returns true if the metrics should be served
func (c *Config) HasMetricsEndpoint() bool {
	return c.MetricsAddress != ""
}

func (c *Config) Validate(ctx context.Context) error {
	log := logger.FromContext(ctx)
	if c.HasMetricsEndpoint() {
		if _, _, err := net.SplitHostPort(c.MetricsAddress); err != nil {
			log.ErrorContext(ctx, "Invalid metrics address", "address", c.MetricsAddress, "error", err)
			return fmt.Errorf("%w: metrics address %q: %w", ErrInvalidConfig, c.MetricsAddress, err)
		}
	}

	if !c.Enabled {
		return nil
	}
	if err := c.Exporter.Validate(); err != nil {
		log.ErrorContext(ctx, "Invalid exporter", "error", err)
		return err
	}

	if c.Exporter.IsExporting() && c.Url == "" {
		log.ErrorContext(ctx, "Url is required for otlp exporter", "exporter", c.Exporter)
		return fmt.Errorf("%w: url is required for otlp exporter %q", ErrInvalidConfig, c.Exporter)
	}
	return nil
}
