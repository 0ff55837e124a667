// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package probe

import (
	"fmt"

	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"
)

// Classify identifies the ICMP type of a raw message of the given family and
// extracts the fields specific to that type.
//
// It returns an error wrapping [ErrMalformedReply] if b is shorter than the
// header of its type. Unknown types are classified as [KindOther].
func Classify(b []byte, family Family) (Reply, error) {
	p := family.protocol()
	if len(b) < icmpHeaderLen {
		return Reply{}, fmt.Errorf("%w: %d bytes, need at least %d", ErrMalformedReply, len(b), icmpHeaderLen)
	}

	msg, err := icmp.ParseMessage(p.number, b)
	if err != nil {
		return Reply{}, fmt.Errorf("%w: type %d with %d bytes: %w", ErrMalformedReply, b[0], len(b), err)
	}

	reply := Reply{
		Kind:  KindOther,
		Type:  msg.Type,
		Code:  msg.Code,
		Label: KindOther.String(),
	}
	info, ok := p.types[msg.Type]
	if !ok {
		return reply, nil
	}
	reply.Kind, reply.Label = info.kind, info.label

	switch body := msg.Body.(type) {
	case *icmp.Echo:
		if reply.Kind == KindEchoReply {
			reply.Echo = &EchoFields{ID: body.ID, Seq: body.Seq}
		}
	case *icmp.TimeExceeded:
		reply.Quoted = p.quoted(body.Data)
	case *icmp.DstUnreach:
		reply.Quoted = p.quoted(body.Data)
	}
	return reply, nil
}

// quotedEchoV4 returns the echo request quoted after the IPv4 header
// of an ICMP error message, or nil if the quoted datagram is something else.
func quotedEchoV4(data []byte) *EchoFields {
	h, err := ipv4.ParseHeader(data)
	if err != nil || h.Version != ipv4.Version || h.Len < ipv4.HeaderLen {
		return nil
	}
	if h.Protocol != ipv4.ICMPTypeEcho.Protocol() {
		return nil
	}
	return quotedEcho(ipv4.ICMPTypeEcho.Protocol(), ipv4.ICMPTypeEcho, data[h.Len:])
}

// quotedEchoV6 is the ICMPv6 counterpart of [quotedEchoV4].
// Quoted datagrams carrying extension headers are not inspected.
func quotedEchoV6(data []byte) *EchoFields {
	h, err := ipv6.ParseHeader(data)
	if err != nil || h.Version != ipv6.Version {
		return nil
	}
	if h.NextHeader != ipv6.ICMPTypeEchoRequest.Protocol() {
		return nil
	}
	return quotedEcho(ipv6.ICMPTypeEchoRequest.Protocol(), ipv6.ICMPTypeEchoRequest, data[ipv6.HeaderLen:])
}

func quotedEcho(proto int, want icmp.Type, b []byte) *EchoFields {
	msg, err := icmp.ParseMessage(proto, b)
	if err != nil || msg.Type != want {
		return nil
	}
	echo, ok := msg.Body.(*icmp.Echo)
	if !ok {
		return nil
	}
	return &EchoFields{ID: echo.ID, Seq: echo.Seq}
}
