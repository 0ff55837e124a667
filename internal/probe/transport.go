// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package probe

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"golang.org/x/net/icmp"
	"golang.org/x/sys/unix"
)

var _ Transport = (*rawTransport)(nil)

// mtuSize is the size of the receive buffer.
const mtuSize = 1500

// Packet is an inbound ICMP message.
type Packet struct {
	// Data is the ICMP message without the IP header.
	Data []byte
	// Source is the address of the host that sent the message.
	Source net.Addr
	// ReceivedAt is the instant the message was read.
	ReceivedAt time.Time
}

// Sender is the send half of a [Transport].
type Sender interface {
	// SetHopLimit sets the TTL (IPv4) or hop limit (IPv6) of subsequent sends.
	SetHopLimit(n int) error
	// Send writes b to dst.
	Send(b []byte, dst net.Addr) error
}

// Receiver is the receive half of a [Transport].
type Receiver interface {
	// Next blocks until the next ICMP message arrives or ctx is done.
	Next(ctx context.Context) (Packet, error)
}

// Transport is an open raw ICMP socket of one family.
// The sender only uses the [Sender] half and the receiver only the [Receiver] half.
//
//go:generate go tool moq -out transport_moq.go . Transport
type Transport interface {
	Sender
	Receiver
	Close() error
}

// Opener opens a [Transport] for a family.
type Opener func(family Family) (Transport, error)

// rawTransport is a [Transport] over a privileged raw ICMP socket.
type rawTransport struct {
	conn   *icmp.PacketConn
	family Family
	buf    []byte
}

// OpenRaw opens a raw ICMP (IPv4) or ICMPv6 (IPv6) socket.
// It returns an error wrapping [ErrRawSocketPermission] if the process
// is not allowed to open raw sockets.
func OpenRaw(family Family) (Transport, error) {
	if !family.IsValid() {
		return nil, fmt.Errorf("unsupported address family %d", family)
	}
	p := family.protocol()

	conn, err := icmp.ListenPacket(p.network, p.address)
	if err != nil {
		if errors.Is(err, unix.EPERM) || errors.Is(err, unix.EACCES) {
			return nil, fmt.Errorf("%w: %w", ErrRawSocketPermission, err)
		}
		return nil, fmt.Errorf("failed to open %s raw socket: %w", family, err)
	}

	return &rawTransport{conn: conn, family: family, buf: make([]byte, mtuSize)}, nil
}

// SetHopLimit sets the TTL or hop limit of unicast probes.
func (t *rawTransport) SetHopLimit(n int) error {
	if t.family == V6 {
		return t.conn.IPv6PacketConn().SetHopLimit(n)
	}
	return t.conn.IPv4PacketConn().SetTTL(n)
}

// Send writes the probe to dst.
func (t *rawTransport) Send(b []byte, dst net.Addr) error {
	_, err := t.conn.WriteTo(b, dst)
	return err
}

// Next reads the next ICMP message.
//
// The read is bounded by the deadline of ctx and interrupted when ctx is canceled,
// in which case the context error is returned.
func (t *rawTransport) Next(ctx context.Context) (Packet, error) {
	if err := ctx.Err(); err != nil {
		return Packet{}, err
	}

	deadline, _ := ctx.Deadline()
	if err := t.conn.SetReadDeadline(deadline); err != nil {
		return Packet{}, fmt.Errorf("failed to set read deadline: %w", err)
	}
	stop := context.AfterFunc(ctx, func() {
		_ = t.conn.SetReadDeadline(time.Now())
	})
	defer stop()

	n, src, err := t.conn.ReadFrom(t.buf)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Packet{}, ctxErr
		}
		if errors.Is(err, os.ErrDeadlineExceeded) {
			return Packet{}, context.DeadlineExceeded
		}
		return Packet{}, fmt.Errorf("failed to read from ICMP socket: %w", err)
	}

	data := make([]byte, n)
	copy(data, t.buf[:n])
	return Packet{Data: data, Source: src, ReceivedAt: time.Now()}, nil
}

// Close closes the socket.
func (t *rawTransport) Close() error {
	return t.conn.Close()
}
