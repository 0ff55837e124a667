// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package resolve

import "errors"

var (
	// ErrNoAddress is returned when a host resolves to no usable address.
	ErrNoAddress = errors.New("host has no address")
	// ErrNotFound is returned when the nameserver reports that the host does not exist.
	ErrNotFound = errors.New("host not found")
	// ErrInvalidConfig is returned when the resolver configuration is inconsistent.
	ErrInvalidConfig = errors.New("invalid resolver configuration")
)
