// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package probe

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net"

	"github.com/telekom/pathprobe/internal/logger"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// randomID returns the identifier used by all probes of a run.
func randomID() uint16 {
	return uint16(rand.UintN(1 << 16)) // #nosec G404 G115 // the identifier is not a secret
}

// ipFromAddr extracts the IP address from a [net.Addr].
func ipFromAddr(addr net.Addr) net.IP {
	switch a := addr.(type) {
	case *net.IPAddr:
		return a.IP
	case *net.UDPAddr:
		return a.IP
	case *net.TCPAddr:
		return a.IP
	}
	return nil
}

// addrString renders an address without a port.
func addrString(addr net.Addr) string {
	if addr == nil {
		return "*"
	}
	if ip := ipFromAddr(addr); ip != nil {
		return ip.String()
	}
	return addr.String()
}

// typeName returns the name x/net uses for an ICMP type,
// or its number if the type is not registered.
func typeName(typ icmp.Type) string {
	if s, ok := typ.(fmt.Stringer); ok && s.String() != "<nil>" {
		return s.String()
	}
	switch t := typ.(type) {
	case ipv4.ICMPType:
		return fmt.Sprintf("type %d", int(t))
	case ipv6.ICMPType:
		return fmt.Sprintf("type %d", int(t))
	default:
		return "unknown"
	}
}

// wrapError wraps an error with a message and logs it.
// It also records the error in the current OpenTelemetry span.
func wrapError(ctx context.Context, err error, msg string, args ...any) error {
	if err == nil {
		return nil
	}
	log := logger.FromContext(ctx)
	span := trace.SpanFromContext(ctx)
	caser := cases.Title(language.English)

	formatted := fmt.Sprintf(msg, args...)
	log.ErrorContext(ctx, caser.String(formatted), "error", err)
	span.SetStatus(codes.Error, formatted)
	span.RecordError(err)
	return fmt.Errorf("%s: %w", formatted, err)
}
