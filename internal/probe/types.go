// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package probe

import (
	"errors"
	"fmt"
	"net"
	"net/netip"
	"strings"
	"time"

	"golang.org/x/net/icmp"
)

// Kind is the classification of an inbound ICMP message.
type Kind uint8

// Reply kinds.
const (
	KindOther Kind = iota
	KindEchoReply
	KindTimeExceeded
	KindDestinationUnreachable
	KindTimestamp
)

func (k Kind) String() string {
	switch k {
	case KindEchoReply:
		return "EchoReply"
	case KindTimeExceeded:
		return "TimeExceeded"
	case KindDestinationUnreachable:
		return "DestinationUnreachable"
	case KindTimestamp:
		return "Timestamp"
	default:
		return "Other"
	}
}

// EchoFields are the identifier and sequence number of an echo message.
type EchoFields struct {
	ID  int `json:"id" yaml:"id"`
	Seq int `json:"seq" yaml:"seq"`
}

// Reply is the result of classifying a single ICMP message.
type Reply struct {
	// Kind is the classification of the message.
	Kind Kind
	// Type is the raw ICMP type of the message.
	Type icmp.Type
	// Code is the ICMP code of the message.
	Code int
	// Label names the message in output. It is the kind,
	// or a more specific name for some ICMPv6 informational messages.
	Label string
	// Echo is set for echo replies.
	Echo *EchoFields
	// Quoted is set for error messages quoting one of our echo requests.
	Quoted *EchoFields
}

// probeKey returns the identifier and sequence this reply refers to, if any.
func (r Reply) probeKey() (EchoFields, bool) {
	switch {
	case r.Echo != nil:
		return *r.Echo, true
	case r.Quoted != nil:
		return *r.Quoted, true
	default:
		return EchoFields{}, false
	}
}

// Event is a classified reply as it is handed to a [Sink].
type Event struct {
	Kind   Kind
	Family Family
	Type   icmp.Type
	Label  string
	// Source is the address the message came from.
	Source net.Addr
	// RTT is measured from the send instant of the matching probe
	// if Correlated is set, otherwise from the start of the receive iteration.
	RTT        time.Duration
	Correlated bool
	// Echo is set for echo replies.
	Echo *EchoFields
	// ReceivedAt is the instant the message was read from the socket.
	ReceivedAt time.Time
}

// String renders the event the way it is printed:
//
//	ICMP <Kind> received from <addr>: <type>, Time:<duration>[, identify: <id>, seq: <seq>]
func (e Event) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s received from %s: %s, Time:%s",
		e.Family.protocol().prefix, e.Label, addrString(e.Source), typeName(e.Type), e.RTT)
	if e.Echo != nil {
		fmt.Fprintf(&b, ", identify: %d, seq: %d", e.Echo.ID, e.Echo.Seq)
	}
	return b.String()
}

// Options configures a probe run.
type Options struct {
	// MaxTTL is the last TTL (hop limit) a probe is sent with.
	MaxTTL int `json:"maxTTL" yaml:"maxTTL" mapstructure:"maxTTL"`
	// Interval is the pause after each probe.
	Interval time.Duration `json:"interval" yaml:"interval" mapstructure:"interval"`
	// PollInterval is the pause between two receive iterations.
	PollInterval time.Duration `json:"pollInterval" yaml:"pollInterval" mapstructure:"pollInterval"`
	// Timeout bounds the whole run. Zero derives it from MaxTTL and Interval.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
	// StopOnReply stops sending once the destination answered.
	StopOnReply bool `json:"stopOnReply" yaml:"stopOnReply" mapstructure:"stopOnReply"`
}

const (
	// DefaultMaxTTL is the default hop budget.
	DefaultMaxTTL = 30
	// DefaultInterval is the default pause between two probes.
	DefaultInterval = time.Second
	// DefaultPollInterval is the default pause between two receive iterations.
	DefaultPollInterval = 500 * time.Millisecond
	// timeoutSlack is added to the send budget when deriving the run timeout.
	timeoutSlack = 5 * time.Second
	// maxHopLimit is the largest value the TTL field can hold.
	maxHopLimit = 255
)

// DefaultOptions returns the options of a standard run.
func DefaultOptions() Options {
	return Options{
		MaxTTL:       DefaultMaxTTL,
		Interval:     DefaultInterval,
		PollInterval: DefaultPollInterval,
		StopOnReply:  true,
	}
}

// Validate checks the options for consistency.
func (o *Options) Validate() error {
	var err error
	if o.MaxTTL < 1 || o.MaxTTL > maxHopLimit {
		err = errors.Join(err, fmt.Errorf("%w: maxTTL must be between 1 and %d, got %d", ErrInvalidOptions, maxHopLimit, o.MaxTTL))
	}
	if o.Interval < 0 {
		err = errors.Join(err, fmt.Errorf("%w: interval must not be negative, got %s", ErrInvalidOptions, o.Interval))
	}
	if o.PollInterval < 0 {
		err = errors.Join(err, fmt.Errorf("%w: pollInterval must not be negative, got %s", ErrInvalidOptions, o.PollInterval))
	}
	if o.Timeout < 0 {
		err = errors.Join(err, fmt.Errorf("%w: timeout must not be negative, got %s", ErrInvalidOptions, o.Timeout))
	}
	return err
}

// runTimeout returns the bound for the whole run.
func (o *Options) runTimeout() time.Duration {
	if o.Timeout > 0 {
		return o.Timeout
	}
	return time.Duration(o.MaxTTL)*o.Interval + timeoutSlack
}

// Summary describes a finished probe run.
type Summary struct {
	Target     netip.Addr    `json:"target" yaml:"target"`
	Family     Family        `json:"family" yaml:"family"`
	Identifier uint16        `json:"identifier" yaml:"identifier"`
	Sent       int           `json:"sent" yaml:"sent"`
	Replies    int           `json:"replies" yaml:"replies"`
	Reached    bool          `json:"reached" yaml:"reached"`
	Elapsed    time.Duration `json:"elapsed" yaml:"elapsed"`
}
