// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package framework

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/telekom/pathprobe/test"
)

func TestE2E_Loopback(t *testing.T) {
	test.MarkAsLong(t)

	tests := []struct {
		name    string
		network string
		host    string
		ipv4    bool
	}{
		{name: "ipv4", network: "ip4:icmp", host: "127.0.0.1", ipv4: true},
		{name: "ipv6", network: "ip6:ipv6-icmp", host: "::1", ipv4: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			test.RequireRawSockets(t, tt.network)

			e2e := NewE2E(t, tt.host).WithArgs("--max-ttl", "3", "--interval", "10ms", "--poll-interval", "1ms")
			require.NoError(t, e2e.Run(context.Background()))

			e2e.OutputAssertion().Assert(tt.ipv4, tt.host, true)
		})
	}
}

func TestE2E_Metrics(t *testing.T) {
	test.MarkAsLong(t)
	test.RequireRawSockets(t, "ip4:icmp")

	const address = "127.0.0.1:50506"
	e2e := NewE2E(t, "127.0.0.1").
		WithMetrics(address).
		WithArgs("--max-ttl", "40", "--interval", "100ms", "--stop-on-reply=false").
		Start(context.Background())

	e2e.AwaitStartup("http://"+address+"/metrics", 3*time.Second).
		HttpAssertion("http://"+address+"/metrics").
		WithMetrics("pathprobe_run_info", "pathprobe_probes_sent_total", "go_goroutines").
		Assert(http.StatusOK)

	require.NoError(t, e2e.Wait(10*time.Second))
	e2e.OutputAssertion().Assert(true, "127.0.0.1", true)
}
