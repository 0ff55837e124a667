// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

// Package pkg contains metadata about pathprobe.
package pkg

// Version is the current version of pathprobe.
// It is set at build time by using -ldflags "-X main.version=x.x.x"
// or "-X github.com/telekom/pathprobe/pkg.Version=x.x.x".
var Version string
