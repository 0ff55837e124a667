// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	runInfoMetricName = "pathprobe_run_info"
	runInfoHelp       = "Metadata of the running probe. Emitted once per run so scrapes can be matched to the probed host."
)

// RegisterRunInfo registers the pathprobe_run_info info-style metric on the given registry.
// It sets the gauge to 1 with labels version, host, target and family.
// Empty strings are allowed for labels that are not known.
func RegisterRunInfo(registry *prometheus.Registry, version string, labels map[string]string) error {
	info := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: runInfoMetricName,
			Help: runInfoHelp,
		},
		[]string{"version", "host", "target", "family"},
	)
	info.WithLabelValues(version, labels["host"], labels["target"], labels["family"]).Set(1)
	return registry.Register(info)
}
