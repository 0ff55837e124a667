// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package probe

import (
	"context"
	"time"

	"github.com/telekom/pathprobe/internal/logger"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// receiver reads, classifies and emits inbound ICMP messages
// until the destination answers.
type receiver struct {
	rx      Receiver
	family  Family
	id      uint16
	target  string
	opts    Options
	sent    *sentTable
	sink    Sink
	metrics *metrics
}

// receiveResult is what the receive loop reports back to the engine.
type receiveResult struct {
	// reached is set if an echo reply with our identifier arrived.
	reached bool
	// replies is the number of emitted events.
	replies int
	// err is the error that terminated the loop.
	err error
}

// run is the receive loop. It terminates when an echo reply carrying our
// identifier arrives, when reading fails or when ctx is done.
// Malformed messages are logged and skipped.
func (r *receiver) run(ctx context.Context) receiveResult {
	log := logger.FromContext(ctx)
	span := trace.SpanFromContext(ctx)

	var res receiveResult
	for {
		ref := time.Now()
		pkt, err := r.rx.Next(ctx)
		if err != nil {
			if !isStopError(err) {
				log.ErrorContext(ctx, "Failed to read ICMP message", "error", err)
			}
			res.err = err
			return res
		}
		if pkt.ReceivedAt.IsZero() {
			pkt.ReceivedAt = time.Now()
		}

		reply, err := Classify(pkt.Data, r.family)
		if err != nil {
			log.WarnContext(ctx, "Skipping malformed ICMP message", "source", addrString(pkt.Source), "error", err)
			r.metrics.malformedReceived(r.target)
		} else {
			ev := r.event(reply, pkt, ref)
			r.sink.Emit(ev)
			res.replies++
			r.metrics.replyReceived(r.target, ev.Kind, ev.RTT)

			log.DebugContext(ctx, "ICMP message received", "kind", ev.Kind, "source", addrString(ev.Source), "rtt", ev.RTT, "correlated", ev.Correlated)
			span.AddEvent("ICMP message received", trace.WithAttributes(
				attribute.Stringer("probe.reply.kind", ev.Kind),
				attribute.String("probe.reply.source", addrString(ev.Source)),
				attribute.Stringer("probe.reply.rtt", ev.RTT),
			))

			if r.isOwnEchoReply(reply) {
				res.reached = true
				return res
			}
		}

		select {
		case <-ctx.Done():
			res.err = ctx.Err()
			return res
		case <-time.After(r.opts.PollInterval):
		}
	}
}

// event builds the event of a classified message. The RTT is taken from the
// send instant of the probe the message refers to if that probe is ours,
// otherwise from ref.
func (r *receiver) event(reply Reply, pkt Packet, ref time.Time) Event {
	ev := Event{
		Kind:       reply.Kind,
		Family:     r.family,
		Type:       reply.Type,
		Label:      reply.Label,
		Source:     pkt.Source,
		RTT:        pkt.ReceivedAt.Sub(ref),
		Echo:       reply.Echo,
		ReceivedAt: pkt.ReceivedAt,
	}

	key, ok := reply.probeKey()
	if !ok || key.ID != int(r.id) {
		return ev
	}
	if sentAt, found := r.sent.lookup(key); found {
		ev.RTT = pkt.ReceivedAt.Sub(sentAt)
		ev.Correlated = true
	}
	return ev
}

// isOwnEchoReply reports whether reply answers one of our probes.
// Echo replies to other processes pinging on the same host are emitted but do not end the run.
func (r *receiver) isOwnEchoReply(reply Reply) bool {
	return reply.Kind == KindEchoReply && reply.Echo != nil && reply.Echo.ID == int(r.id)
}

// readFailed reports whether the loop ended because the transport failed.
func (res receiveResult) readFailed() bool {
	return res.err != nil && !isStopError(res.err)
}
