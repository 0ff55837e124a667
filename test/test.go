// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package test

import (
	"errors"
	"testing"

	"golang.org/x/net/icmp"
	"golang.org/x/sys/unix"
)

// MarkAsLong marks the test as long, so it is skipped if the -short flag is set.
func MarkAsLong(t testing.TB) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping long test")
	}
}

// RequireRawSockets skips the test if the process may not open raw ICMP sockets
// of the given network, e.g. "ip4:icmp" or "ip6:ipv6-icmp".
// Raw sockets need root or the NET_RAW capability.
func RequireRawSockets(t testing.TB, network string) {
	t.Helper()
	address := "0.0.0.0"
	if network == "ip6:ipv6-icmp" {
		address = "::"
	}

	conn, err := icmp.ListenPacket(network, address)
	if err != nil {
		if errors.Is(err, unix.EPERM) || errors.Is(err, unix.EACCES) {
			t.Skipf("raw sockets not permitted: %v", err)
		}
		t.Skipf("raw %s sockets not available: %v", network, err)
	}
	_ = conn.Close()
}
