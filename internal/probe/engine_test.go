// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package probe

import (
	"context"
	"encoding/binary"
	"errors"
	"net"
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// network simulates the path to a target that is hops routers away.
// Every probe with a smaller TTL is answered with a Time Exceeded message,
// all others with an echo reply.
type network struct {
	t       *testing.T
	family  Family
	hops    int
	replies chan Packet
}

func newNetwork(t *testing.T, family Family, hops int) *network {
	return &network{t: t, family: family, hops: hops, replies: make(chan Packet, 64)}
}

func (n *network) transport() *TransportMock {
	ttl := 0
	return &TransportMock{
		SetHopLimitFunc: func(limit int) error {
			ttl = limit
			return nil
		},
		SendFunc: func(b []byte, dst net.Addr) error {
			id := int(binary.BigEndian.Uint16(b[4:6]))
			seq := int(binary.BigEndian.Uint16(b[6:8]))
			switch {
			case n.hops == 0:
			case ttl < n.hops:
				n.replies <- Packet{Data: timeExceeded(n.t, n.family, id, seq), Source: ipAddr("198.51.100.1"), ReceivedAt: time.Now()}
			default:
				n.replies <- Packet{Data: echoReply(n.t, n.family, id, seq), Source: dst, ReceivedAt: time.Now()}
			}
			return nil
		},
		NextFunc: func(ctx context.Context) (Packet, error) {
			select {
			case <-ctx.Done():
				return Packet{}, ctx.Err()
			case p := <-n.replies:
				return p, nil
			}
		},
		CloseFunc: func() error { return nil },
	}
}

func newTestEngine(opts Options, sink Sink, tr Transport, openErr error) (*engine, *[]Family) {
	var opened []Family
	return &engine{
		opts: opts,
		sink: sink,
		open: func(f Family) (Transport, error) {
			opened = append(opened, f)
			if openErr != nil {
				return nil, openErr
			}
			return tr, nil
		},
		newID:   func() uint16 { return testID },
		metrics: newMetrics(),
	}, &opened
}

func fastOptions() Options {
	opts := DefaultOptions()
	opts.Interval = 20 * time.Millisecond
	opts.PollInterval = time.Millisecond
	return opts
}

func TestEngine_Run_ReachesTarget(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantFamily Family
	}{
		{name: "ipv4", target: "192.0.2.1", wantFamily: V4},
		{name: "ipv6", target: "2001:db8::1", wantFamily: V6},
		{name: "ipv4 mapped ipv6", target: "::ffff:192.0.2.1", wantFamily: V4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nw := newNetwork(t, tt.wantFamily, 3)
			tr := nw.transport()
			rec := &recorder{}
			e, opened := newTestEngine(fastOptions(), rec, tr, nil)

			summary, err := e.Run(context.Background(), mustAddr(t, tt.target))
			require.NoError(t, err)

			assert.Equal(t, []Family{tt.wantFamily}, *opened)
			assert.True(t, summary.Reached)
			assert.Equal(t, tt.wantFamily, summary.Family)
			assert.Equal(t, uint16(testID), summary.Identifier)
			assert.Equal(t, 3, summary.Replies)
			assert.GreaterOrEqual(t, summary.Sent, 3)
			assert.Less(t, summary.Sent, DefaultMaxTTL, "sending should stop once the target answered")
			assert.Len(t, tr.CloseCalls(), 1)

			events := rec.Events()
			require.Len(t, events, 3)
			assert.Equal(t, KindTimeExceeded, events[0].Kind)
			assert.Equal(t, KindTimeExceeded, events[1].Kind)
			assert.Equal(t, KindEchoReply, events[2].Kind)
			for _, ev := range events {
				assert.True(t, ev.Correlated)
				assert.GreaterOrEqual(t, ev.RTT, time.Duration(0))
			}

			dst, ok := tr.SendCalls()[0].Dst.(*net.IPAddr)
			require.True(t, ok)
			assert.Equal(t, mustAddr(t, tt.target).Unmap().String(), dst.IP.String())
		})
	}
}

func TestEngine_Run_KeepsSendingWithoutStopOnReply(t *testing.T) {
	opts := fastOptions()
	opts.Interval = time.Millisecond
	opts.MaxTTL = 5
	opts.StopOnReply = false
	nw := newNetwork(t, V4, 1)
	e, _ := newTestEngine(opts, &recorder{}, nw.transport(), nil)

	summary, err := e.Run(context.Background(), mustAddr(t, "192.0.2.1"))
	require.NoError(t, err)

	assert.True(t, summary.Reached)
	assert.Equal(t, 5, summary.Sent)
}

func TestEngine_Run_TargetNotReached(t *testing.T) {
	opts := fastOptions()
	opts.MaxTTL = 4
	opts.Interval = time.Millisecond
	opts.Timeout = 200 * time.Millisecond
	nw := newNetwork(t, V4, 64)
	rec := &recorder{}
	e, _ := newTestEngine(opts, rec, nw.transport(), nil)

	start := time.Now()
	summary, err := e.Run(context.Background(), mustAddr(t, "192.0.2.1"))
	require.NoError(t, err)

	assert.False(t, summary.Reached)
	assert.Equal(t, 4, summary.Sent)
	assert.Equal(t, 4, summary.Replies)
	assert.Len(t, rec.Events(), 4)
	assert.GreaterOrEqual(t, time.Since(start), opts.Timeout)
}

func TestEngine_Run_SilentPath(t *testing.T) {
	opts := fastOptions()
	opts.MaxTTL = 2
	opts.Interval = time.Millisecond
	opts.Timeout = 100 * time.Millisecond
	nw := newNetwork(t, V6, 0)
	rec := &recorder{}
	e, _ := newTestEngine(opts, rec, nw.transport(), nil)

	summary, err := e.Run(context.Background(), mustAddr(t, "2001:db8::1"))
	require.NoError(t, err)

	assert.False(t, summary.Reached)
	assert.Equal(t, 0, summary.Replies)
	assert.Empty(t, rec.Events())
}

func TestEngine_Run_Errors(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name       string
		target     netip.Addr
		opts       func(o *Options)
		openErr    error
		sendErr    error
		wantErr    error
		wantOpened int
	}{
		{
			name:       "invalid target",
			target:     netip.Addr{},
			wantErr:    ErrInvalidTarget,
			wantOpened: 0,
		},
		{
			name:       "invalid options",
			target:     netip.MustParseAddr("192.0.2.1"),
			opts:       func(o *Options) { o.MaxTTL = 0 },
			wantErr:    ErrInvalidOptions,
			wantOpened: 0,
		},
		{
			name:       "raw socket not permitted",
			target:     netip.MustParseAddr("192.0.2.1"),
			openErr:    ErrRawSocketPermission,
			wantErr:    ErrRawSocketPermission,
			wantOpened: 1,
		},
		{
			name:       "send fails",
			target:     netip.MustParseAddr("192.0.2.1"),
			sendErr:    boom,
			wantErr:    boom,
			wantOpened: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := fastOptions()
			if tt.opts != nil {
				tt.opts(&opts)
			}
			tr := newNetwork(t, V4, 1).transport()
			if tt.sendErr != nil {
				tr.SendFunc = func(b []byte, dst net.Addr) error { return tt.sendErr }
			}
			e, opened := newTestEngine(opts, &recorder{}, tr, tt.openErr)

			done := make(chan error, 1)
			go func() {
				_, err := e.Run(context.Background(), tt.target)
				done <- err
			}()

			select {
			case err := <-done:
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			case <-time.After(5 * time.Second):
				t.Fatal("run did not return")
			}
			assert.Len(t, *opened, tt.wantOpened)
		})
	}
}

func TestEngine_Run_ReadFailureIsNotFatal(t *testing.T) {
	opts := fastOptions()
	opts.MaxTTL = 3
	opts.Interval = time.Millisecond
	tr := okTransport()
	tr.NextFunc = func(ctx context.Context) (Packet, error) { return Packet{}, errors.New("socket closed") }
	tr.CloseFunc = func() error { return nil }
	e, _ := newTestEngine(opts, &recorder{}, tr, nil)

	summary, err := e.Run(context.Background(), mustAddr(t, "192.0.2.1"))
	require.NoError(t, err)

	assert.False(t, summary.Reached)
	assert.Equal(t, 3, summary.Sent)
	assert.Len(t, tr.NextCalls(), 1)
}

func TestEngine_Run_Canceled(t *testing.T) {
	nw := newNetwork(t, V4, 0)
	tr := nw.transport()
	opts := fastOptions()
	opts.Interval = time.Hour
	e, _ := newTestEngine(opts, &recorder{}, tr, nil)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	summary, err := e.Run(ctx, mustAddr(t, "192.0.2.1"))
	require.NoError(t, err)
	assert.False(t, summary.Reached)
	assert.Equal(t, 1, summary.Sent)
	assert.Less(t, summary.Elapsed, time.Minute)
}

func TestEngine_Collectors(t *testing.T) {
	e := NewEngine(DefaultOptions(), NewPrinter(nil))
	assert.Len(t, e.Collectors(), 5)
}
