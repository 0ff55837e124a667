// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package resolve

import (
	"context"
	"errors"
	"fmt"
	"net/netip"

	"github.com/miekg/dns"
	"github.com/telekom/pathprobe/internal/helper"
	"github.com/telekom/pathprobe/internal/logger"
)

// newDNSLookup queries the configured nameserver directly.
// A records are asked for before AAAA records unless the network
// restricts the family.
func newDNSLookup(cfg Config) lookupFunc {
	client := &dns.Client{
		Net:     cfg.transport(),
		Timeout: cfg.timeout(),
	}
	// Validated beforehand; an invalid nameserver fails on exchange.
	server, _ := nameserverAddress(cfg.Nameserver)

	var qtypes []uint16
	switch cfg.network() {
	case NetworkIPv4:
		qtypes = []uint16{dns.TypeA}
	case NetworkIPv6:
		qtypes = []uint16{dns.TypeAAAA}
	default:
		qtypes = []uint16{dns.TypeA, dns.TypeAAAA}
	}

	return func(ctx context.Context, host string) ([]netip.Addr, error) {
		var (
			addrs    []netip.Addr
			notFound error
		)
		for _, qtype := range qtypes {
			found, err := exchange(ctx, client, server, host, qtype)
			if errors.Is(err, ErrNotFound) {
				notFound = err
				continue
			}
			if err != nil {
				return nil, err
			}
			addrs = append(addrs, found...)
		}
		if len(addrs) == 0 && notFound != nil {
			return nil, notFound
		}
		return addrs, nil
	}
}

// exchange sends a single question and collects the addresses of the answer.
func exchange(ctx context.Context, client *dns.Client, server, host string, qtype uint16) ([]netip.Addr, error) {
	log := logger.FromContext(ctx)

	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(host), qtype)
	r, rtt, err := client.ExchangeContext(ctx, m, server)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", server, err)
	}
	log.DebugContext(ctx, "DNS answer received", "server", server, "type", dns.TypeToString[qtype], "rcode", dns.RcodeToString[r.Rcode], "rtt", rtt)

	switch r.Rcode {
	case dns.RcodeSuccess:
	case dns.RcodeNameError:
		return nil, helper.Permanent(fmt.Errorf("%w: %s answered %s", ErrNotFound, server, dns.RcodeToString[r.Rcode]))
	default:
		return nil, fmt.Errorf("failed to get a valid answer from %s: %s", server, dns.RcodeToString[r.Rcode])
	}

	var addrs []netip.Addr
	for _, rr := range r.Answer {
		var ip []byte
		switch rec := rr.(type) {
		case *dns.A:
			ip = rec.A
		case *dns.AAAA:
			ip = rec.AAAA
		default:
			continue
		}
		if addr, ok := netip.AddrFromSlice(ip); ok {
			addrs = append(addrs, addr.Unmap())
		}
	}
	return addrs, nil
}
