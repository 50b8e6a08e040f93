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

package detection

import (
	"path/filepath"
	"regexp"
	"strings"
)

// DefaultBlocklist returns USB serial devices that are never EDC terminals.
// Entries are VID:PID in hexadecimal; any form ParseVIDPID accepts works too.
func DefaultBlocklist() []string {
	return []string{
		"2341:0043", // Arduino Uno, used by gate controllers next to the terminal
		"2341:0042", // Arduino Mega 2560
	}
}

var (
	pairPattern    = regexp.MustCompile(`^([0-9A-F]{4}):([0-9A-F]{4})$`)
	vendorPattern  = regexp.MustCompile(`\b(?:VID|VENDOR)[:=_]\s*([0-9A-F]{4})\b`)
	productPattern = regexp.MustCompile(`\b(?:PID|PRODUCT)[:=_]\s*([0-9A-F]{4})\b`)
)

// ParseVIDPID normalizes a USB id to upper-case VID:PID. It accepts "1a86:7523",
// "VID:1A86 PID:7523", "vendor=1a86 product=7523" and Windows hardware ids such as
// `USB\VID_1A86&PID_7523`. It returns "" when no id is present.
func ParseVIDPID(descriptor string) string {
	descriptor = strings.ToUpper(strings.TrimSpace(descriptor))

	if m := pairPattern.FindStringSubmatch(descriptor); m != nil {
		return m[1] + ":" + m[2]
	}

	vid := vendorPattern.FindStringSubmatch(descriptor)
	pid := productPattern.FindStringSubmatch(descriptor)
	if vid == nil || pid == nil {
		return ""
	}
	return vid[1] + ":" + pid[1]
}

// IsBlocked reports whether vidpid matches an entry of blocklist.
func IsBlocked(vidpid string, blocklist []string) bool {
	id := ParseVIDPID(vidpid)
	if id == "" {
		return false
	}
	for _, entry := range blocklist {
		if ParseVIDPID(entry) == id {
			return true
		}
	}
	return false
}

// IsPathIgnored reports whether devicePath names the same port as an entry of
// ignorePaths. Comparison is case-insensitive so COM3 and com3 match.
func IsPathIgnored(devicePath string, ignorePaths []string) bool {
	if devicePath == "" {
		return false
	}
	device := portKey(devicePath)
	for _, p := range ignorePaths {
		if p != "" && portKey(p) == device {
			return true
		}
	}
	return false
}

// portKey strips the Win32 device namespace prefix and cleans the path.
func portKey(path string) string {
	path = strings.TrimPrefix(path, `\\.\`)
	return strings.ToLower(filepath.Clean(path))
}
