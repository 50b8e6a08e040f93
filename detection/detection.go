// go-aino
// Copyright (c) 2025 The go-aino Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later
//
// This file is part of go-aino.
//
// go-aino is free software; you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public
// License as published by the Free Software Foundation; either
// version 3 of the License, or (at your option) any later version.
//
// go-aino is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with go-aino; if not, write to the Free Software Foundation,
// Inc., 51 Franklin Street, Fifth Floor, Boston, MA  02110-1301, USA.

// Package detection finds the serial port an EDC terminal is attached to.
package detection

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.bug.st/serial/enumerator"
)

// ErrNoPortsFound is returned when no usable serial port is present.
var ErrNoPortsFound = errors.New("no serial ports found")

// DeviceInfo describes one candidate serial port.
type DeviceInfo struct {
	Path         string
	VID          string
	PID          string
	SerialNumber string
	Product      string
	IsUSB        bool
}

// VIDPID returns the USB id as VID:PID, or "" for non-USB ports.
func (d DeviceInfo) VIDPID() string {
	if d.VID == "" || d.PID == "" {
		return ""
	}
	return strings.ToUpper(d.VID + ":" + d.PID)
}

// Options controls which ports DetectPorts returns.
type Options struct {
	// IgnorePaths are never returned
	IgnorePaths []string
	// Blocklist holds VID:PID pairs that are never returned
	Blocklist []string
	// USBOnly drops on-board ports such as /dev/ttyS0 or COM1
	USBOnly bool
	// SkipProbe disables the check that the device node is a usable TTY
	SkipProbe bool
}

// DefaultOptions returns detection options with the default blocklist.
func DefaultOptions() *Options {
	return &Options{Blocklist: DefaultBlocklist()}
}

// DetectPorts lists candidate serial ports, USB ports first.
func DetectPorts(opts *Options) ([]DeviceInfo, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	details, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("enumerate serial ports: %w", err)
	}

	ports := filterPorts(details, opts, probePort)
	if len(ports) == 0 {
		return nil, ErrNoPortsFound
	}
	return ports, nil
}

// filterPorts converts enumerator output, drops excluded ports and orders the rest.
func filterPorts(details []*enumerator.PortDetails, opts *Options, probe func(path string) error) []DeviceInfo {
	ports := make([]DeviceInfo, 0, len(details))
	for _, d := range details {
		if d == nil || d.Name == "" {
			continue
		}

		info := DeviceInfo{
			Path:         d.Name,
			IsUSB:        d.IsUSB,
			VID:          strings.ToUpper(d.VID),
			PID:          strings.ToUpper(d.PID),
			SerialNumber: d.SerialNumber,
			Product:      d.Product,
		}

		switch {
		case opts.USBOnly && !info.IsUSB:
			continue
		case IsPathIgnored(info.Path, opts.IgnorePaths):
			continue
		case info.VIDPID() != "" && IsBlocked(info.VIDPID(), opts.Blocklist):
			continue
		}

		if !opts.SkipProbe && probe != nil {
			if err := probe(info.Path); err != nil {
				continue
			}
		}
		ports = append(ports, info)
	}

	sort.SliceStable(ports, func(i, j int) bool {
		if ports[i].IsUSB != ports[j].IsUSB {
			return ports[i].IsUSB
		}
		return ports[i].Path < ports[j].Path
	})
	return ports
}
