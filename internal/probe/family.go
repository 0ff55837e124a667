// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package probe

import (
	"net/netip"

	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"
)

// Family is the address family of a probe run.
// It selects the wire format and the type table used for classification.
type Family uint8

// Supported address families.
const (
	V4 Family = 4
	V6 Family = 6
)

// FamilyOf returns the family of the given address.
// IPv4-mapped IPv6 addresses are probed over IPv4.
func FamilyOf(addr netip.Addr) Family {
	if addr.Unmap().Is4() {
		return V4
	}
	return V6
}

func (f Family) String() string {
	switch f {
	case V4:
		return "ipv4"
	case V6:
		return "ipv6"
	default:
		return "unknown"
	}
}

// IsValid reports whether f is one of the supported families.
func (f Family) IsValid() bool {
	return f == V4 || f == V6
}

// typeInfo maps an ICMP type onto a reply kind and the label it is printed with.
type typeInfo struct {
	kind  Kind
	label string
}

// protocol holds everything that differs between ICMP and ICMPv6.
type protocol struct {
	// number is the IANA protocol number used for parsing.
	number int
	// network and address are passed to [icmp.ListenPacket].
	network string
	address string
	// prefix is printed in front of every reply line.
	prefix string
	// echoRequest is the type of outgoing probes.
	echoRequest icmp.Type
	// types is the classification table of this family.
	types map[icmp.Type]typeInfo
	// quoted extracts the echo request quoted in an ICMP error body.
	quoted func(data []byte) *EchoFields
}

var icmpV4 = protocol{
	number:      ipv4.ICMPTypeEcho.Protocol(),
	network:     "ip4:icmp",
	address:     "0.0.0.0",
	prefix:      "ICMP",
	echoRequest: ipv4.ICMPTypeEcho,
	types: map[icmp.Type]typeInfo{
		ipv4.ICMPTypeEchoReply:              {KindEchoReply, "EchoReply"},
		ipv4.ICMPTypeTimeExceeded:           {KindTimeExceeded, "TimeExceeded"},
		ipv4.ICMPTypeDestinationUnreachable: {KindDestinationUnreachable, "DestinationUnreachable"},
		ipv4.ICMPTypeTimestamp:              {KindTimestamp, "Timestamp"},
		ipv4.ICMPTypeTimestampReply:         {KindTimestamp, "Timestamp"},
	},
	quoted: quotedEchoV4,
}

var icmpV6 = protocol{
	number:      ipv6.ICMPTypeEchoRequest.Protocol(),
	network:     "ip6:ipv6-icmp",
	address:     "::",
	prefix:      "ICMPv6",
	echoRequest: ipv6.ICMPTypeEchoRequest,
	types: map[icmp.Type]typeInfo{
		ipv6.ICMPTypeEchoReply:              {KindEchoReply, "EchoReply"},
		ipv6.ICMPTypeTimeExceeded:           {KindTimeExceeded, "TimeExceeded"},
		ipv6.ICMPTypeDestinationUnreachable: {KindDestinationUnreachable, "DestinationUnreachable"},
		ipv6.ICMPTypeNeighborSolicitation:   {KindOther, "NeighborSolicit"},
		ipv6.ICMPTypeNeighborAdvertisement:  {KindOther, "NeighborAdvert"},
		ipv6.ICMPTypeRouterAdvertisement:    {KindOther, "RouterAdvert"},
	},
	quoted: quotedEchoV6,
}

// protocol returns the wire details of the family.
// Anything that is not [V6] is treated as IPv4.
func (f Family) protocol() *protocol {
	if f == V6 {
		return &icmpV6
	}
	return &icmpV4
}
