// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package probe

import (
	"fmt"
	"io"
	"sync"
)

// Sink consumes classified events.
type Sink interface {
	Emit(ev Event)
}

// SinkFunc adapts a function to a [Sink].
type SinkFunc func(ev Event)

// Emit calls f(ev).
func (f SinkFunc) Emit(ev Event) { f(ev) }

// printer writes one line per event.
type printer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewPrinter returns a [Sink] that writes every event as a line to w.
func NewPrinter(w io.Writer) Sink {
	return &printer{w: w}
}

func (p *printer) Emit(ev Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintln(p.w, ev.String())
}
