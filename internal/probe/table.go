// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package probe

import (
	"sync"
	"time"
)

// sentTable maps the identifier and sequence of every probe of a run
// to the instant it was sent. The sender records, the receiver looks up.
type sentTable struct {
	mu   sync.Mutex
	sent map[EchoFields]time.Time
}

func newSentTable(size int) *sentTable {
	return &sentTable{sent: make(map[EchoFields]time.Time, size)}
}

// record stores the send instant of a probe.
func (t *sentTable) record(id, seq int, at time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sent[EchoFields{ID: id, Seq: seq}] = at
}

// lookup returns the send instant of a probe.
func (t *sentTable) lookup(key EchoFields) (time.Time, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	at, ok := t.sent[key]
	return at, ok
}

// len returns the number of recorded probes.
func (t *sentTable) len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.sent)
}
