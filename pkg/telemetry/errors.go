// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package telemetry

import "errors"

var (
	// ErrInvalidConfig is returned when the telemetry configuration is invalid
	ErrInvalidConfig = errors.New("invalid telemetry configuration")
	// ErrUnsupportedExporter is returned when the configured exporter is unknown
	ErrUnsupportedExporter = errors.New("unsupported exporter")
)
