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

package aino

// DeviceState is the readiness of a Session.
type DeviceState int32

const (
	// StateDisconnected means there is no open transport handle.
	StateDisconnected DeviceState = iota
	// StateReady means the port is open and no exchange is in flight.
	StateReady
	// StateBusy means an exchange is in flight.
	StateBusy
)

func (s DeviceState) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateBusy:
		return "busy"
	default:
		return "disconnected"
	}
}
