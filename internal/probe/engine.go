// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package probe

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/telekom/pathprobe/internal/logger"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var _ Engine = (*engine)(nil)

// Engine probes the path to a target.
//
//go:generate go tool moq -out engine_moq.go . Engine
type Engine interface {
	// Run probes the target until it answers, the hop budget is spent
	// or the run times out. Events are emitted to the engine's sink while running.
	//
	// Not reaching the target is not an error; see [Summary.Reached].
	// Errors are returned for an invalid target, a transport that cannot be opened
	// and a failed send.
	Run(ctx context.Context, target netip.Addr) (Summary, error)
	// Collectors returns the prometheus collectors of the engine.
	Collectors() []prometheus.Collector
}

type engine struct {
	opts    Options
	sink    Sink
	open    Opener
	newID   func() uint16
	metrics *metrics
}

// NewEngine creates an [Engine] that probes over raw sockets
// and emits every classified event to sink.
func NewEngine(opts Options, sink Sink) Engine {
	return &engine{
		opts:    opts,
		sink:    sink,
		open:    OpenRaw,
		newID:   randomID,
		metrics: newMetrics(),
	}
}

// Collectors returns the prometheus collectors of the engine.
func (e *engine) Collectors() []prometheus.Collector {
	return e.metrics.List()
}

// Run starts the sender and the receiver concurrently and waits for both.
//
// A failed send aborts the whole run. A failed read only ends the receiver;
// the sender keeps going until its budget is spent.
// Once our echo reply arrived, sending stops if [Options.StopOnReply] is set.
func (e *engine) Run(ctx context.Context, target netip.Addr) (Summary, error) {
	tracer := trace.SpanFromContext(ctx).TracerProvider().Tracer("probe.engine")
	ctx, span := tracer.Start(ctx, "Run", trace.WithAttributes(
		attribute.Stringer("probe.target", target),
		attribute.Int("probe.options.max_ttl", e.opts.MaxTTL),
		attribute.Stringer("probe.options.interval", e.opts.Interval),
	))
	defer span.End()
	log := logger.FromContext(ctx)

	if !target.IsValid() {
		return Summary{}, wrapError(ctx, ErrInvalidTarget, "cannot probe %q", target)
	}
	if err := e.opts.Validate(); err != nil {
		return Summary{}, wrapError(ctx, err, "cannot probe %s", target)
	}
	target = target.Unmap()
	family := FamilyOf(target)

	tr, err := e.open(family)
	if err != nil {
		return Summary{}, wrapError(ctx, err, "failed to open %s transport", family)
	}
	defer func() {
		if cErr := tr.Close(); cErr != nil {
			log.WarnContext(ctx, "Failed to close transport", "error", cErr)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, e.opts.runTimeout())
	defer cancel()
	sendCtx, stopSending := context.WithCancel(ctx)
	defer stopSending()

	id := e.newID()
	table := newSentTable(e.opts.MaxTTL)
	dst := &net.IPAddr{IP: target.AsSlice(), Zone: target.Zone()}
	s := &sender{
		tx:      tr,
		dst:     dst,
		family:  family,
		id:      id,
		opts:    e.opts,
		sent:    table,
		metrics: e.metrics,
	}
	r := &receiver{
		rx:      tr,
		family:  family,
		id:      id,
		target:  target.String(),
		opts:    e.opts,
		sent:    table,
		sink:    e.sink,
		metrics: e.metrics,
	}

	log.InfoContext(ctx, "Starting probe", "target", target, "family", family, "identifier", id, "timeout", e.opts.runTimeout())
	start := time.Now()

	var (
		wg      sync.WaitGroup
		sent    int
		sendErr error
		res     receiveResult
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		sent, sendErr = s.run(sendCtx)
		if sendErr != nil {
			cancel()
		}
	}()
	go func() {
		defer wg.Done()
		res = r.run(ctx)
		if res.reached && e.opts.StopOnReply {
			stopSending()
		}
	}()
	wg.Wait()

	summary := Summary{
		Target:     target,
		Family:     family,
		Identifier: id,
		Sent:       sent,
		Replies:    res.replies,
		Reached:    res.reached,
		Elapsed:    time.Since(start),
	}
	e.metrics.setReached(target.String(), res.reached)
	span.SetAttributes(
		attribute.Bool("probe.reached", summary.Reached),
		attribute.Int("probe.sent", summary.Sent),
		attribute.Int("probe.replies", summary.Replies),
	)

	if sendErr != nil {
		return summary, fmt.Errorf("probe run aborted: %w", sendErr)
	}
	if res.readFailed() {
		span.SetStatus(codes.Error, "Receive loop failed")
		span.RecordError(res.err)
		log.WarnContext(ctx, "Receive loop terminated early", "error", res.err)
	}

	log.InfoContext(ctx, "Probe finished", "reached", summary.Reached, "sent", summary.Sent, "replies", summary.Replies, "elapsed", summary.Elapsed)
	return summary, nil
}
