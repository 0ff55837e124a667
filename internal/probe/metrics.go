// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package probe

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// metrics defines the metric collectors of the probe engine
type metrics struct {
	sent      *prometheus.CounterVec
	replies   *prometheus.CounterVec
	malformed *prometheus.CounterVec
	rtt       *prometheus.HistogramVec
	reached   *prometheus.GaugeVec
}

// newMetrics initializes metric collectors of the probe engine
func newMetrics() *metrics {
	return &metrics{
		sent: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pathprobe_probes_sent_total",
				Help: "Total number of echo request probes sent.",
			},
			[]string{"target"},
		),
		replies: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pathprobe_replies_total",
				Help: "Total number of classified ICMP messages received, by kind.",
			},
			[]string{"target", "kind"},
		),
		malformed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pathprobe_malformed_replies_total",
				Help: "Total number of received ICMP messages that could not be parsed.",
			},
			[]string{"target"},
		),
		rtt: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pathprobe_rtt_seconds",
				Help:    "Round-trip time of classified ICMP messages in seconds.",
				Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
			},
			[]string{"target", "kind"},
		),
		reached: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "pathprobe_target_reached",
				Help: "Specifies if the target answered with an echo reply during the last run.",
			},
			[]string{"target"},
		),
	}
}

// List returns all metric collectors
func (m *metrics) List() []prometheus.Collector {
	return []prometheus.Collector{
		m.sent,
		m.replies,
		m.malformed,
		m.rtt,
		m.reached,
	}
}

func (m *metrics) probeSent(target string) {
	m.sent.WithLabelValues(target).Inc()
}

func (m *metrics) replyReceived(target string, kind Kind, rtt time.Duration) {
	m.replies.WithLabelValues(target, kind.String()).Inc()
	m.rtt.WithLabelValues(target, kind.String()).Observe(rtt.Seconds())
}

func (m *metrics) malformedReceived(target string) {
	m.malformed.WithLabelValues(target).Inc()
}

func (m *metrics) setReached(target string, reached bool) {
	v := 0.0
	if reached {
		v = 1
	}
	m.reached.WithLabelValues(target).Set(v)
}
