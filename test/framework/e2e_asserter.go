// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package framework

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// eventLine matches a single printed reply.
var eventLine = regexp.MustCompile(`^ICMP(v6)? [A-Za-z]+ received from \S+: [a-z0-9 ]+, Time:\S+(, identify: \d+, seq: \d+)?$`)

// e2eOutputAsserter asserts the lines printed by pathprobe.
type e2eOutputAsserter struct {
	e2e *E2E
}

// OutputAssertion creates a new assertion on the printed output.
func (e *E2E) OutputAssertion() *e2eOutputAsserter {
	return &e2eOutputAsserter{e2e: e}
}

// Assert checks the header line and the format of every reply line.
// At least one echo reply from target is expected if reached is set.
func (a *e2eOutputAsserter) Assert(ipv4 bool, target string, reached bool) {
	t := a.e2e.t
	t.Helper()

	lines := a.e2e.Lines()
	require.NotEmpty(t, lines, "pathprobe printed nothing")
	assert.Equal(t, fmt.Sprintf("icmp request(ipv4 %t) to target ip: %s", ipv4, target), lines[0])

	echoReplies := 0
	for _, l := range lines[1:] {
		assert.Regexp(t, eventLine, l)
		if strings.Contains(l, "EchoReply received from "+target+":") {
			echoReplies++
		}
	}
	if reached {
		assert.Positive(t, echoReplies, "no echo reply from %s in %q", target, lines)
	}
}

// e2eHttpAsserter is an HTTP asserter for end-to-end tests.
type e2eHttpAsserter struct {
	e2e     *E2E
	url     string
	metrics []string
}

// HttpAssertion creates a new HTTP assertion for the given URL.
func (e *E2E) HttpAssertion(u string) *e2eHttpAsserter {
	return &e2eHttpAsserter{e2e: e, url: u}
}

// WithMetrics sets the metric families expected in the response body.
func (a *e2eHttpAsserter) WithMetrics(names ...string) *e2eHttpAsserter {
	a.metrics = append(a.metrics, names...)
	return a
}

// Assert asserts the status code and then the exposed metrics.
func (a *e2eHttpAsserter) Assert(status int) {
	a.e2e.t.Helper()
	if !a.e2e.isRunning() {
		a.e2e.t.Fatal("e2eHttpAsserter.Assert must be called after E2E.Start")
	}

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, a.url, http.NoBody)
	if err != nil {
		a.e2e.t.Fatalf("Failed to create request: %v", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		a.e2e.t.Errorf("Failed to get %s: %v", a.url, err)
		return
	}
	defer resp.Body.Close()

	assert.Equal(a.e2e.t, status, resp.StatusCode, "Unexpected status code for %s", a.url)
	a.e2e.t.Logf("Got status code %d for %s", resp.StatusCode, a.url)
	if resp.StatusCode != http.StatusOK {
		return
	}

	body, err := io.ReadAll(resp.Body)
	require.NoError(a.e2e.t, err, "Failed to read response body")
	for _, name := range a.metrics {
		assert.Contains(a.e2e.t, string(body), "# TYPE "+name+" ", "Metric %s is not exposed", name)
	}
}
