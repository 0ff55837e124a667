// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package resolve

import (
	"errors"
	"fmt"
	"net"
	"slices"
	"strings"
	"time"

	"github.com/telekom/pathprobe/internal/helper"
)

const (
	// NetworkAny resolves both IPv4 and IPv6 addresses, IPv4 first.
	NetworkAny = "ip"
	// NetworkIPv4 only resolves IPv4 addresses.
	NetworkIPv4 = "ip4"
	// NetworkIPv6 only resolves IPv6 addresses.
	NetworkIPv6 = "ip6"

	defaultTimeout = 2 * time.Second
	dnsPort        = "53"
)

// Config configures how the probe target is resolved.
type Config struct {
	// Nameserver is queried directly if set, as host or host:port.
	// Otherwise the system resolver is used.
	Nameserver string `json:"nameserver" yaml:"nameserver" mapstructure:"nameserver"`
	// Transport is the protocol used to reach the nameserver, "udp" or "tcp".
	Transport string `json:"transport" yaml:"transport" mapstructure:"transport"`
	// Network restricts the address family, one of "ip", "ip4" and "ip6".
	Network string `json:"network" yaml:"network" mapstructure:"network"`
	// Timeout bounds a single query.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
	// Retry configures the retries of failed queries.
	Retry helper.RetryConfig `json:"retry" yaml:"retry" mapstructure:"retry"`
}

// DefaultConfig returns a configuration using the system resolver.
func DefaultConfig() Config {
	return Config{
		Transport: "udp",
		Network:   NetworkAny,
		Timeout:   defaultTimeout,
		Retry: helper.RetryConfig{
			Count: 2,
			Delay: 100 * time.Millisecond,
		},
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	var err error
	if !slices.Contains([]string{"", "udp", "tcp"}, c.Transport) {
		err = errors.Join(err, fmt.Errorf("%w: transport must be udp or tcp, got %q", ErrInvalidConfig, c.Transport))
	}
	if !slices.Contains([]string{"", NetworkAny, NetworkIPv4, NetworkIPv6}, c.Network) {
		err = errors.Join(err, fmt.Errorf("%w: network must be one of ip, ip4 or ip6, got %q", ErrInvalidConfig, c.Network))
	}
	if c.Timeout < 0 {
		err = errors.Join(err, fmt.Errorf("%w: timeout must not be negative, got %s", ErrInvalidConfig, c.Timeout))
	}
	if c.Retry.Count < 0 || c.Retry.Delay < 0 {
		err = errors.Join(err, fmt.Errorf("%w: retry count and delay must not be negative", ErrInvalidConfig))
	}
	if c.Nameserver != "" {
		if _, pErr := nameserverAddress(c.Nameserver); pErr != nil {
			err = errors.Join(err, fmt.Errorf("%w: nameserver %q: %w", ErrInvalidConfig, c.Nameserver, pErr))
		}
	}
	return err
}

// nameserverAddress returns the nameserver as host:port, defaulting to port 53.
func nameserverAddress(ns string) (string, error) {
	if _, _, err := net.SplitHostPort(ns); err == nil {
		return ns, nil
	}
	if strings.HasPrefix(ns, "[") && strings.HasSuffix(ns, "]") {
		ns = ns[1 : len(ns)-1]
	}
	if ns == "" || (strings.ContainsAny(ns, ":[]") && net.ParseIP(ns) == nil) {
		return "", errors.New("not a host or host:port")
	}
	return net.JoinHostPort(ns, dnsPort), nil
}

func (c *Config) network() string {
	if c.Network == "" {
		return NetworkAny
	}
	return c.Network
}

func (c *Config) transport() string {
	if c.Transport == "" {
		return "udp"
	}
	return c.Transport
}

func (c *Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return defaultTimeout
	}
	return c.Timeout
}
