// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package resolve

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/netip"

	"github.com/telekom/pathprobe/internal/helper"
	"github.com/telekom/pathprobe/internal/logger"
)

// Resolver turns the host given on the command line into the address to probe.
//
//go:generate go tool moq -out resolver_moq.go . Resolver
type Resolver interface {
	// Resolve returns the first address of host.
	// IP literals are returned as they are without a lookup.
	Resolve(ctx context.Context, host string) (netip.Addr, error)
}

// lookupFunc returns all addresses of a host, in preference order.
type lookupFunc func(ctx context.Context, host string) ([]netip.Addr, error)

type resolver struct {
	cfg    Config
	lookup lookupFunc
}

// New returns a [Resolver] that queries the configured nameserver,
// or the system resolver if none is configured.
func New(cfg Config) Resolver {
	r := &resolver{cfg: cfg}
	if cfg.Nameserver != "" {
		r.lookup = newDNSLookup(cfg)
	} else {
		r.lookup = newSystemLookup(cfg)
	}
	return r
}

func (r *resolver) Resolve(ctx context.Context, host string) (netip.Addr, error) {
	log := logger.FromContext(ctx).With("host", host)

	if addr, err := netip.ParseAddr(host); err == nil {
		return addr, nil
	}

	var addrs []netip.Addr
	err := helper.Retry(func(ctx context.Context) error {
		var lErr error
		addrs, lErr = r.lookup(ctx, host)
		return lErr
	}, r.cfg.Retry)(ctx)
	if err != nil {
		log.ErrorContext(ctx, "Failed to resolve host", "error", err)
		return netip.Addr{}, fmt.Errorf("failed to resolve %q: %w", host, err)
	}

	for _, addr := range addrs {
		if addr.IsValid() {
			log.DebugContext(ctx, "Host resolved", "address", addr, "candidates", len(addrs))
			return addr.Unmap(), nil
		}
	}
	log.ErrorContext(ctx, "Host resolved to no address")
	return netip.Addr{}, fmt.Errorf("failed to resolve %q: %w", host, ErrNoAddress)
}

// newSystemLookup resolves through the pure Go resolver,
// which honors /etc/hosts and /etc/resolv.conf.
func newSystemLookup(cfg Config) lookupFunc {
	res := &net.Resolver{PreferGo: true}
	return func(ctx context.Context, host string) ([]netip.Addr, error) {
		ctx, cancel := context.WithTimeout(ctx, cfg.timeout())
		defer cancel()

		addrs, err := res.LookupNetIP(ctx, cfg.network(), host)
		if err != nil {
			var dnsErr *net.DNSError
			if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
				return nil, helper.Permanent(fmt.Errorf("%w: %w", ErrNotFound, err))
			}
			return nil, err
		}
		return addrs, nil
	}
}
