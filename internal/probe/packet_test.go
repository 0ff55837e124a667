// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package probe

import (
	"encoding/binary"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"
)

func TestBuild_Checksum(t *testing.T) {
	for _, family := range []Family{V4, V6} {
		t.Run(family.String(), func(t *testing.T) {
			for seq := 0; seq <= 255; seq++ {
				for id := 0; id <= 0xffff; id += 257 {
					b := Build(uint16(seq), uint16(id), family)
					if !Verify(b) {
						t.Fatalf("checksum of seq=%d id=%d does not verify: % x", seq, id, b)
					}
				}
			}
			// The extremes are not hit by the stride above.
			assert.True(t, Verify(Build(255, 0xffff, family)))
			assert.True(t, Verify(Build(0, 0, family)))
		})
	}
}

func TestBuild_Layout(t *testing.T) {
	tests := []struct {
		name     string
		family   Family
		seq      uint16
		id       uint16
		wantType byte
	}{
		{name: "ipv4 first hop", family: V4, seq: 1, id: 0xbeef, wantType: 8},
		{name: "ipv4 last hop", family: V4, seq: 30, id: 0x0001, wantType: 8},
		{name: "ipv6 first hop", family: V6, seq: 1, id: 0xbeef, wantType: 128},
		{name: "ipv6 last hop", family: V6, seq: 30, id: 0xffff, wantType: 128},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Build(tt.seq, tt.id, tt.family)

			require.Len(t, b, PacketSize)
			assert.Equal(t, tt.wantType, b[0], "type")
			assert.Equal(t, byte(0), b[1], "code")
			assert.Equal(t, tt.id, binary.BigEndian.Uint16(b[4:6]), "identifier")
			assert.Equal(t, tt.seq, binary.BigEndian.Uint16(b[6:8]), "sequence")
			assert.Equal(t, []byte{0, 0}, b[8:10], "payload")
			assert.True(t, Verify(b), "checksum")
		})
	}
}

// The probe for the first hop towards 93.184.216.34.
func TestBuild_FirstProbe(t *testing.T) {
	const id = 0x1234
	b := Build(1, id, FamilyOf(mustAddr(t, "93.184.216.34")))

	want := []byte{0x08, 0x00, b[2], b[3], 0x12, 0x34, 0x00, 0x01, 0x00, 0x00}
	assert.Equal(t, want, b)
	// 0x0800 + 0x1234 + 0x0001 = 0x1a35
	assert.Equal(t, []byte{0xe5, 0xca}, b[2:4])
	assert.True(t, Verify(b))
}

func TestBuild_MatchesParser(t *testing.T) {
	tests := []struct {
		family Family
		proto  int
		typ    icmp.Type
	}{
		{V4, 1, ipv4.ICMPTypeEcho},
		{V6, 58, ipv6.ICMPTypeEchoRequest},
	}
	for _, tt := range tests {
		t.Run(tt.family.String(), func(t *testing.T) {
			msg, err := icmp.ParseMessage(tt.proto, Build(7, 4242, tt.family))
			require.NoError(t, err)
			assert.Equal(t, tt.typ, msg.Type)

			echo, ok := msg.Body.(*icmp.Echo)
			require.True(t, ok, "body should be an echo, got %T", msg.Body)
			assert.Equal(t, 4242, echo.ID)
			assert.Equal(t, 7, echo.Seq)
		})
	}
}

func TestChecksum(t *testing.T) {
	tests := []struct {
		name string
		b    []byte
		want uint16
	}{
		{name: "empty", b: nil, want: 0xffff},
		{name: "single word", b: []byte{0x00, 0x01}, want: 0xfffe},
		{name: "odd length is zero padded", b: []byte{0x01}, want: 0xfeff},
		{name: "carry is folded", b: []byte{0xff, 0xff, 0x00, 0x02}, want: 0xfffd},
		// RFC 1071 section 3 example
		{name: "rfc example", b: []byte{0x00, 0x01, 0xf2, 0x03, 0xf4, 0xf5, 0xf6, 0xf7}, want: ^uint16(0xddf2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, checksum(tt.b), fmt.Sprintf("checksum(% x)", tt.b))
		})
	}
}

func TestVerify(t *testing.T) {
	b := Build(5, 99, V4)
	assert.True(t, Verify(b))

	corrupted := append([]byte(nil), b...)
	corrupted[7] ^= 0x01
	assert.False(t, Verify(corrupted))

	assert.False(t, Verify([]byte{0x08, 0x00}), "too short to be an ICMP message")
}
