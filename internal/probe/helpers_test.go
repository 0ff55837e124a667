// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package probe

import (
	"net"
	"net/netip"
	"sync"
	"testing"

	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"
)

func mustAddr(t *testing.T, s string) netip.Addr {
	t.Helper()
	addr, err := netip.ParseAddr(s)
	if err != nil {
		t.Fatalf("invalid address %q: %v", s, err)
	}
	return addr
}

func ipAddr(s string) *net.IPAddr {
	return &net.IPAddr{IP: net.ParseIP(s)}
}

// marshal encodes msg and fails the test on error.
// ICMPv6 checksums are left zero since no pseudo header is given.
func marshal(t *testing.T, msg *icmp.Message) []byte {
	t.Helper()
	b, err := msg.Marshal(nil)
	if err != nil {
		t.Fatalf("failed to marshal %v: %v", msg.Type, err)
	}
	return b
}

func echoReply(t *testing.T, family Family, id, seq int) []byte {
	t.Helper()
	typ := icmp.Type(ipv4.ICMPTypeEchoReply)
	if family == V6 {
		typ = ipv6.ICMPTypeEchoReply
	}
	return marshal(t, &icmp.Message{
		Type: typ,
		Body: &icmp.Echo{ID: id, Seq: seq, Data: []byte{0, 0}},
	})
}

// timeExceeded builds a Time Exceeded message quoting the probe with the given
// identifier and sequence as a router would.
func timeExceeded(t *testing.T, family Family, id, seq int) []byte {
	t.Helper()
	if family == V6 {
		return marshal(t, &icmp.Message{
			Type: ipv6.ICMPTypeTimeExceeded,
			Body: &icmp.TimeExceeded{Data: quotedDatagram(t, family, id, seq)},
		})
	}
	return marshal(t, &icmp.Message{
		Type: ipv4.ICMPTypeTimeExceeded,
		Body: &icmp.TimeExceeded{Data: quotedDatagram(t, family, id, seq)},
	})
}

func destUnreachable(t *testing.T, family Family, id, seq int) []byte {
	t.Helper()
	typ := icmp.Type(ipv4.ICMPTypeDestinationUnreachable)
	if family == V6 {
		typ = ipv6.ICMPTypeDestinationUnreachable
	}
	return marshal(t, &icmp.Message{
		Type: typ,
		Code: 3,
		Body: &icmp.DstUnreach{Data: quotedDatagram(t, family, id, seq)},
	})
}

// quotedDatagram returns the IP header of one of our probes followed by the
// first eight bytes of the probe itself.
func quotedDatagram(t *testing.T, family Family, id, seq int) []byte {
	t.Helper()
	probe := Build(uint16(seq), uint16(id), family)[:echoHeaderLen] // #nosec G115

	if family == V6 {
		h := make([]byte, ipv6.HeaderLen)
		h[0] = 6 << 4
		h[5] = PacketSize
		h[6] = 58
		h[7] = 1
		copy(h[8:24], net.ParseIP("2001:db8::1").To16())
		copy(h[24:40], net.ParseIP("2001:db8::2").To16())
		return append(h, probe...)
	}

	h := &ipv4.Header{
		Version:  ipv4.Version,
		Len:      ipv4.HeaderLen,
		TotalLen: ipv4.HeaderLen + PacketSize,
		TTL:      1,
		Protocol: 1,
		Src:      net.ParseIP("192.0.2.1"),
		Dst:      net.ParseIP("198.51.100.7"),
	}
	hb, err := h.Marshal()
	if err != nil {
		t.Fatalf("failed to marshal ipv4 header: %v", err)
	}
	return append(hb, probe...)
}

// recorder is a [Sink] remembering every event.
type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) Emit(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}
