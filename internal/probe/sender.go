// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package probe

import (
	"context"
	"net"
	"time"

	"github.com/telekom/pathprobe/internal/logger"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// sender emits one echo request per TTL, from 1 up to the hop budget.
type sender struct {
	tx      Sender
	dst     net.Addr
	family  Family
	id      uint16
	opts    Options
	sent    *sentTable
	metrics *metrics
}

// run sends the probes and returns how many were sent.
// The sequence number of each probe is its TTL.
//
// A failure to set the hop limit or to send is fatal and returned.
// Cancellation of ctx stops the loop without an error.
func (s *sender) run(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)
	span := trace.SpanFromContext(ctx)
	target := addrString(s.dst)

	count := 0
	for ttl := 1; ttl <= s.opts.MaxTTL; ttl++ {
		seq := uint16(ttl) // #nosec G115 // ttl is bounded by maxHopLimit
		pkt := Build(seq, s.id, s.family)

		if err := s.tx.SetHopLimit(ttl); err != nil {
			return count, wrapError(ctx, err, "failed to set hop limit %d", ttl)
		}

		s.sent.record(int(s.id), int(seq), time.Now())
		if err := s.tx.Send(pkt, s.dst); err != nil {
			return count, wrapError(ctx, err, "failed to send probe with ttl %d", ttl)
		}
		count++
		s.metrics.probeSent(target)

		log.DebugContext(ctx, "Probe sent", "ttl", ttl, "identifier", s.id, "sequence", seq)
		span.AddEvent("Probe sent", trace.WithAttributes(
			attribute.Int("probe.ttl", ttl),
			attribute.Int("probe.identifier", int(s.id)),
		))

		select {
		case <-ctx.Done():
			log.DebugContext(ctx, "Sending stopped", "sent", count, "reason", ctx.Err())
			return count, nil
		case <-time.After(s.opts.Interval):
		}
	}

	log.DebugContext(ctx, "Hop budget spent", "sent", count)
	return count, nil
}
