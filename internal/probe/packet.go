// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package probe

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/net/icmp"
)

const (
	// PacketSize is the size of an echo request probe:
	// type, code, checksum, identifier, sequence and two bytes of zero payload.
	PacketSize = 10
	// echoHeaderLen is the length of the echo request header.
	echoHeaderLen = 8
	// icmpHeaderLen is the length shared by all ICMP messages: type, code, checksum.
	icmpHeaderLen = 4
)

// Build returns a checksummed echo request for the given family.
//
// The checksum is the plain one's complement sum over the message for both
// families. For ICMPv6 the kernel fills in the pseudo-header checksum on
// raw sockets, overwriting ours.
func Build(seq, id uint16, family Family) []byte {
	msg := icmp.Message{
		Type: family.protocol().echoRequest,
		Code: 0,
		Body: &icmp.Echo{
			ID:   int(id),
			Seq:  int(seq),
			Data: make([]byte, PacketSize-echoHeaderLen),
		},
	}

	b, err := msg.Marshal(nil)
	if err != nil {
		// Marshal only fails for types that are neither ipv4 nor ipv6 ICMP types.
		panic(fmt.Sprintf("probe: marshal echo request: %v", err))
	}

	// Without a pseudo header x/net leaves the ICMPv6 checksum zero.
	if family == V6 {
		binary.BigEndian.PutUint16(b[2:4], checksum(b))
	}
	return b
}

// checksum computes the internet checksum (RFC 1071) over b.
func checksum(b []byte) uint16 {
	var sum uint32
	for i := 0; i+1 < len(b); i += 2 {
		sum += uint32(binary.BigEndian.Uint16(b[i : i+2]))
	}
	if len(b)%2 == 1 {
		sum += uint32(b[len(b)-1]) << 8
	}
	for sum>>16 != 0 {
		sum = sum&0xffff + sum>>16
	}
	return ^uint16(sum)
}

// Verify reports whether the checksum of an ICMP message is consistent,
// i.e. the one's complement sum over all 16-bit words including the checksum folds to zero.
func Verify(b []byte) bool {
	return len(b) >= icmpHeaderLen && checksum(b) == 0
}
