// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"sync"
	"syscall"

	"github.com/telekom/pathprobe/internal/logger"
	"github.com/telekom/pathprobe/internal/probe"
	"github.com/telekom/pathprobe/pkg/config"
	"github.com/telekom/pathprobe/pkg/telemetry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// run resolves the host and probes the path to it.
// Replies are written to out as they arrive.
func run(ctx context.Context, out io.Writer, cfg *config.Config, host, version string, deps dependencies) (err error) {
	ctx, cancel := logger.NewContextWithLogger(ctx)
	defer cancel()
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	log := logger.FromContext(ctx)

	if err = cfg.Validate(ctx); err != nil {
		return err
	}

	tel := deps.newTelemetry(cfg.Telemetry, version)
	if cfg.HasTelemetry() {
		if err = tel.InitTracing(ctx); err != nil {
			return fmt.Errorf("failed to initialize tracing: %w", err)
		}
	}
	defer func() {
		// The run context may already be canceled, traces are flushed anyway.
		if sErr := tel.Shutdown(context.WithoutCancel(ctx)); sErr != nil {
			err = errors.Join(err, sErr)
		}
	}()

	ctx, span := otel.Tracer("pathprobe").Start(ctx, "pathprobe")
	span.SetAttributes(attribute.String("pathprobe.host", host))
	defer span.End()

	target, err := deps.newResolver(cfg.Resolver).Resolve(ctx, host)
	if err != nil {
		span.SetStatus(codes.Error, "resolution failed")
		span.RecordError(err)
		return err
	}
	family := probe.FamilyOf(target)
	span.SetAttributes(attribute.Stringer("pathprobe.target", target))

	engine := deps.newEngine(cfg.Probe, probe.NewPrinter(out))
	registry := tel.GetRegistry()
	registry.MustRegister(engine.Collectors()...)
	if rErr := telemetry.RegisterRunInfo(registry, version, map[string]string{
		"host":   host,
		"target": target.String(),
		"family": family.String(),
	}); rErr != nil {
		log.WarnContext(ctx, "Failed to register run info metric", "error", rErr)
	}

	var wg sync.WaitGroup
	if cfg.HasMetricsEndpoint() {
		srvCtx, stopServer := context.WithCancel(ctx)
		defer func() {
			stopServer()
			wg.Wait()
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			if sErr := tel.Serve(srvCtx); sErr != nil {
				log.WarnContext(ctx, "Metrics endpoint stopped", "error", sErr)
			}
		}()
	}

	_, _ = fmt.Fprintf(out, "icmp request(ipv4 %t) to target ip: %s\n", family == probe.V4, target)

	summary, err := engine.Run(ctx, target)
	if err != nil {
		span.SetStatus(codes.Error, "probe failed")
		span.RecordError(err)
		return err
	}

	if !summary.Reached {
		log.InfoContext(ctx, "Target did not answer", "target", target, "sent", summary.Sent, "replies", summary.Replies)
	}
	span.SetAttributes(attribute.Bool("pathprobe.reached", summary.Reached))
	return nil
}
