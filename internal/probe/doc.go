// Package probe discovers the path to a host and checks its liveness by
// sending ICMP (IPv4) or ICMPv6 (IPv6) echo requests with increasing TTL and
// classifying the ICMP messages that come back.
//
// An [Engine] runs two goroutines over one raw socket [Transport]:
//   - the sender emits one echo request per TTL, from 1 up to
//     [Options.MaxTTL], pausing [Options.Interval] after each probe. The
//     sequence number of a probe is its TTL and all probes of a run share one
//     random identifier.
//   - the receiver reads inbound messages, classifies them with [Classify]
//     and emits an [Event] per message to a [Sink]. It stops at the first
//     echo reply carrying the run's identifier.
//
// The sender records the send instant of every probe keyed by identifier and
// sequence number. Echo replies carry both fields, Time Exceeded and
// Destination Unreachable messages quote the probe that caused them, so the
// receiver can compute the round-trip time from the matching probe. Messages
// that refer to no probe of ours are timed from the start of the receive
// iteration instead.
//
// The whole run is bounded by [Options.Timeout], derived from the hop budget
// when unset.
//
// Typical usage:
//
//	engine := probe.NewEngine(probe.DefaultOptions(), probe.NewPrinter(os.Stdout))
//	summary, err := engine.Run(ctx, netip.MustParseAddr("93.184.216.34"))
//	// summary.Reached reports whether the target answered
package probe
