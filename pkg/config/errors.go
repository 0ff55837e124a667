// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package config

import "errors"

var (
	// ErrInvalidProbeOptions is returned when the probe options are invalid
	ErrInvalidProbeOptions = errors.New("invalid probe options")
	// ErrInvalidResolver is returned when the resolver configuration is invalid
	ErrInvalidResolver = errors.New("invalid resolver configuration")
	// ErrInvalidTelemetry is returned when the telemetry configuration is invalid
	ErrInvalidTelemetry = errors.New("invalid telemetry configuration")
)
