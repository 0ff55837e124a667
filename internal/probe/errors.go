// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package probe

import (
	"context"
	"errors"
)

var (
	// ErrRawSocketPermission is returned when a raw ICMP socket cannot be opened
	// because the process lacks the NET_RAW capability (or is not running as root).
	ErrRawSocketPermission = errors.New("no NET_RAW capabilities, raw ICMP sockets not available")
	// ErrMalformedReply is returned when an inbound message is too short for its ICMP type.
	ErrMalformedReply = errors.New("malformed ICMP message")
	// ErrInvalidTarget is returned when the probe target is not a usable IP address.
	ErrInvalidTarget = errors.New("invalid probe target")
	// ErrInvalidOptions is returned when the probe options are inconsistent.
	ErrInvalidOptions = errors.New("invalid probe options")
)

// isStopError reports whether err only signals that a unit of the run was asked to stop.
func isStopError(err error) bool {
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
