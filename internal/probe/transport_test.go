// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package probe

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telekom/pathprobe/test"
)

func TestRawTransport_Loopback(t *testing.T) {
	test.MarkAsLong(t)

	tests := []struct {
		family  Family
		network string
		target  string
	}{
		{family: V4, network: "ip4:icmp", target: "127.0.0.1"},
		{family: V6, network: "ip6:ipv6-icmp", target: "::1"},
	}

	for _, tt := range tests {
		t.Run(tt.family.String(), func(t *testing.T) {
			test.RequireRawSockets(t, tt.network)

			tr, err := OpenRaw(tt.family)
			require.NoError(t, err)
			defer func() { assert.NoError(t, tr.Close()) }()

			const id = 0x5eed
			require.NoError(t, tr.SetHopLimit(64))
			require.NoError(t, tr.Send(Build(1, id, tt.family), ipAddr(tt.target)))

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			for {
				pkt, err := tr.Next(ctx)
				require.NoError(t, err, "no echo reply from %s", tt.target)

				reply, err := Classify(pkt.Data, tt.family)
				if err != nil || reply.Kind != KindEchoReply || reply.Echo.ID != id {
					// The looped back request and foreign traffic.
					continue
				}
				assert.Equal(t, 1, reply.Echo.Seq)
				assert.Equal(t, tt.target, addrString(pkt.Source))
				assert.False(t, pkt.ReceivedAt.IsZero())
				return
			}
		})
	}
}

func TestRawTransport_NextHonorsContext(t *testing.T) {
	test.MarkAsLong(t)
	test.RequireRawSockets(t, "ip4:icmp")

	tr, err := OpenRaw(V4)
	require.NoError(t, err)
	defer func() { assert.NoError(t, tr.Close()) }()

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	// Drain whatever ICMP traffic the host sees until the cancellation hits.
	for {
		_, err := tr.Next(ctx)
		if err != nil {
			assert.True(t, errors.Is(err, context.Canceled), "unexpected error: %v", err)
			return
		}
	}
}

func TestOpenRaw_UnsupportedFamily(t *testing.T) {
	_, err := OpenRaw(Family(0))
	assert.Error(t, err)
}
