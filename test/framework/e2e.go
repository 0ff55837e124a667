// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package framework

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/telekom/pathprobe/cmd"
)

var _ Runner = (*E2E)(nil)

// Runner runs an end-to-end test.
type Runner interface {
	// Run executes the command and blocks until it returns.
	Run(ctx context.Context) error
}

// E2E is an end-to-end test running the pathprobe command against a real host.
type E2E struct {
	t    *testing.T
	host string
	args []string

	out syncBuffer

	running int32
	done    chan error
}

// NewE2E creates a new end-to-end test probing the given host.
func NewE2E(t *testing.T, host string) *E2E {
	t.Helper()
	// Keep config files of the machine running the tests out of the way.
	t.Setenv("HOME", t.TempDir())
	return &E2E{t: t, host: host, done: make(chan error, 1)}
}

// WithArgs adds command line flags to the test.
func (e *E2E) WithArgs(args ...string) *E2E {
	e.args = append(e.args, args...)
	return e
}

// WithMetrics serves the prometheus metrics on the given address while probing.
func (e *E2E) WithMetrics(address string) *E2E {
	return e.WithArgs("--metrics-address", address)
}

// Run starts the test and blocks until the command returned.
func (e *E2E) Run(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&e.running, 0, 1) {
		e.t.Fatal("E2E.Run must be called once")
	}

	c := cmd.NewCmdRoot("e2e")
	c.SetOut(&e.out)
	c.SetArgs(append(append([]string{}, e.args...), e.host))
	err := c.ExecuteContext(ctx)
	e.done <- err
	return err
}

// Start runs the test in a goroutine. Use [E2E.Wait] to get its result.
func (e *E2E) Start(ctx context.Context) *E2E {
	go func() { _ = e.Run(ctx) }()
	return e
}

// Wait waits for a test started with [E2E.Start] to finish.
func (e *E2E) Wait(failureTimeout time.Duration) error {
	e.t.Helper()
	select {
	case err := <-e.done:
		return err
	case <-time.After(failureTimeout):
		e.t.Fatalf("pathprobe did not finish within %v", failureTimeout)
		return nil
	}
}

// AwaitStartup waits for the provided URL to be ready.
//
// Must be called after the e2e test started with [E2E.Start].
func (e *E2E) AwaitStartup(u string, failureTimeout time.Duration) *E2E {
	e.t.Helper()
	const backoff = 100 * time.Millisecond

	// Initial delay to allow the server to start.
	<-time.After(backoff)
	if !e.isRunning() {
		e.t.Fatal("E2E.AwaitStartup must be called after E2E.Start")
	}

	deadline := time.Now().Add(failureTimeout)
	for time.Now().Before(deadline) {
		req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, u, http.NoBody)
		if err != nil {
			e.t.Fatalf("Failed to create request: %v", err)
		}

		resp, err := http.DefaultClient.Do(req)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return e
			}
		}

		<-time.After(backoff)
	}

	e.t.Fatalf("%s did not become ready within %v", u, failureTimeout)
	return e
}

// Lines returns the lines printed so far.
func (e *E2E) Lines() []string {
	s := strings.TrimSpace(e.out.String())
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// isRunning returns true if the test is running.
func (e *E2E) isRunning() bool {
	return atomic.LoadInt32(&e.running) == 1
}

// syncBuffer is a [bytes.Buffer] that may be read while the command writes to it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
