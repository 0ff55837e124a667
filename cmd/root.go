// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/telekom/pathprobe/internal/probe"
	"github.com/telekom/pathprobe/internal/resolve"
	"github.com/telekom/pathprobe/pkg/config"
	"github.com/telekom/pathprobe/pkg/telemetry"
)

// NewCmdRoot creates a new root command
func NewCmdRoot(version string) *cobra.Command {
	return newCmdRoot(version, defaultDependencies())
}

func newCmdRoot(version string, deps dependencies) *cobra.Command {
	var (
		cfgFile     string
		printConfig bool
	)
	v := viper.NewWithOptions(viper.ExperimentalBindStruct())

	rootCmd := &cobra.Command{
		Use:   "pathprobe [flags] <host>",
		Short: "Pathprobe, the ICMP path and liveness probe",
		Long: "Pathprobe sends ICMP echo requests with increasing TTL towards a host.\n" +
			"Every reply, from routers on the way and from the host itself, is printed as it arrives.",
		Version:       version,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if printConfig {
				return cobra.MaximumNArgs(1)(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(cmd, v, cfgFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			cfg := config.Default()
			if err := v.Unmarshal(&cfg); err != nil {
				return fmt.Errorf("failed to read configuration: %w", err)
			}
			if printConfig {
				b, err := cfg.YAML()
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(b)
				return err
			}

			return run(cmd.Context(), cmd.OutOrStdout(), &cfg, args[0], version, deps)
		},
	}

	defaults := config.Default()
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgFile, "config", "c", "", "config file (default is $HOME/.pathprobe.yaml)")

	f := rootCmd.Flags()
	f.BoolVar(&printConfig, "print-config", false, "print the effective configuration and exit")
	f.Int("max-ttl", defaults.Probe.MaxTTL, "last TTL a probe is sent with")
	f.Duration("interval", defaults.Probe.Interval, "pause after each probe")
	f.Duration("poll-interval", defaults.Probe.PollInterval, "pause between two reads of the socket")
	f.Duration("timeout", defaults.Probe.Timeout, "bound of the whole run (default max-ttl * interval + 5s)")
	f.Bool("stop-on-reply", defaults.Probe.StopOnReply, "stop sending once the host answered")
	f.String("nameserver", defaults.Resolver.Nameserver, "nameserver to resolve the host with (default is the system resolver)")
	f.String("network", defaults.Resolver.Network, "address family to resolve the host to: ip, ip4 or ip6")
	f.String("metrics-address", defaults.Telemetry.MetricsAddress, "address to serve prometheus metrics on while probing, e.g. :9090")
	f.Bool("tracing", defaults.Telemetry.Enabled, "enable OpenTelemetry tracing")
	f.String("tracing-exporter", string(defaults.Telemetry.Exporter), "trace exporter: http, grpc or stdout")
	f.String("tracing-url", defaults.Telemetry.Url, "url of the trace collector")

	for key, flag := range map[string]string{
		"probe.maxTTL":             "max-ttl",
		"probe.interval":           "interval",
		"probe.pollInterval":       "poll-interval",
		"probe.timeout":            "timeout",
		"probe.stopOnReply":        "stop-on-reply",
		"resolver.nameserver":      "nameserver",
		"resolver.network":         "network",
		"telemetry.metricsAddress": "metrics-address",
		"telemetry.enabled":        "tracing",
		"telemetry.exporter":       "tracing-exporter",
		"telemetry.url":            "tracing-url",
	} {
		cobra.CheckErr(v.BindPFlag(key, f.Lookup(flag)))
	}

	return rootCmd
}

// Execute adds all child commands to the root command
// and executes the cmd tree
func Execute(version string) {
	cmd := BuildCmd(version)

	if err := cmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func BuildCmd(version string) *cobra.Command {
	return NewCmdRoot(version)
}

func initConfig(cmd *cobra.Command, v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		// Use config file from the flag
		v.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to find home directory: %w", err)
		}

		// Search config in home directory with name ".pathprobe" (without an extension)
		v.AddConfigPath(home)
		v.SetConfigType("yaml")
		v.SetConfigName(".pathprobe")
	}

	v.SetEnvPrefix("pathprobe")
	dotreplacer := strings.NewReplacer(".", "_")
	v.SetEnvKeyReplacer(dotreplacer)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && (errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Using config file:", v.ConfigFileUsed())
	return nil
}

// dependencies are the components a run is assembled from
type dependencies struct {
	newResolver  func(cfg resolve.Config) resolve.Resolver
	newEngine    func(opts probe.Options, sink probe.Sink) probe.Engine
	newTelemetry func(cfg telemetry.Config, version string) telemetry.Provider
}

func defaultDependencies() dependencies {
	return dependencies{
		newResolver:  resolve.New,
		newEngine:    probe.NewEngine,
		newTelemetry: telemetry.New,
	}
}
