// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/telekom/pathprobe/internal/logger"
)

// Validate validates the startup config
func (c *Config) Validate(ctx context.Context) (err error) {
	log := logger.FromContext(ctx)

	if vErr := c.Probe.Validate(); vErr != nil {
		log.ErrorContext(ctx, "The probe configuration is invalid", "error", vErr)
		err = errors.Join(err, fmt.Errorf("%w: %w", ErrInvalidProbeOptions, vErr))
	}

	if vErr := c.Resolver.Validate(); vErr != nil {
		log.ErrorContext(ctx, "The resolver configuration is invalid", "error", vErr)
		err = errors.Join(err, fmt.Errorf("%w: %w", ErrInvalidResolver, vErr))
	}

	if vErr := c.Telemetry.Validate(ctx); vErr != nil {
		log.ErrorContext(ctx, "The telemetry configuration is invalid")
		err = errors.Join(err, fmt.Errorf("%w: %w", ErrInvalidTelemetry, vErr))
	}

	if err != nil {
		return fmt.Errorf("validation of configuration failed: %w", err)
	}
	return nil
}
