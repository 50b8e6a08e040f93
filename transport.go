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

import (
	"time"
)

// Transport defines the interface for the serial link to the terminal.
// The uart package provides the hardware implementation.
type Transport interface {
	// Write sends raw frame bytes
	Write(data []byte) (int, error)

	// ReadLine reads up to and including the next '\n'. If the read timeout expires
	// first it returns whatever arrived, possibly nothing, with a nil error.
	ReadLine() ([]byte, error)

	// Close closes the transport connection
	Close() error

	// SetTimeout sets the read timeout for the transport
	SetTimeout(timeout time.Duration) error

	// IsOpen returns true while the port handle is open
	IsOpen() bool

	// Type returns the transport type
	Type() TransportType
}

// InputResetter is implemented by transports that can discard input that has
// arrived but not been read, such as a reply to an exchange that already timed out.
type InputResetter interface {
	ResetInput() error
}

// TransportType represents the type of transport
type TransportType string

const (
	// TransportUART represents UART/serial transport.
	TransportUART TransportType = "uart"
	// TransportMock represents a mock transport for testing
	TransportMock TransportType = "mock"
)

// PortConfig describes how to open the serial port.
type PortConfig struct {
	Name        string
	BaudRate    int
	ReadTimeout time.Duration
}

// TransportFactory opens a transport. Every call must return a freshly opened handle.
type TransportFactory func(cfg PortConfig) (Transport, error)
