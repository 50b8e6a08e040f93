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

// Package uart provides the serial Transport for EDC terminals.
package uart

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.bug.st/serial"

	"github.com/edcbridge/go-aino"
)

// Serial line defaults used by the terminals.
const (
	DefaultBaudRate    = 115200
	DefaultReadTimeout = 3 * time.Second
	readBufferSize     = 256
)

// port is the part of serial.Port the transport uses.
type port interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Close() error
	SetReadTimeout(t time.Duration) error
	ResetInputBuffer() error
}

// Transport is a line-oriented serial transport. ReadLine behaves like a serial
// readline with a timeout: it returns at the first '\n' or when the timeout passes,
// whichever comes first.
type Transport struct {
	port     port
	portName string
	pending  []byte
	buf      []byte
	timeout  time.Duration
	mu       sync.Mutex
	readMu   sync.Mutex
}

// New opens portName at baud with 8N1 framing.
func New(portName string, baud int, readTimeout time.Duration) (*Transport, error) {
	if baud <= 0 {
		baud = DefaultBaudRate
	}
	if readTimeout <= 0 {
		readTimeout = DefaultReadTimeout
	}

	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	p, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", portName, err)
	}
	if err := p.SetReadTimeout(readTimeout); err != nil {
		_ = p.Close()
		return nil, fmt.Errorf("failed to set read timeout on %s: %w", portName, err)
	}
	// Discard anything the terminal sent before we were listening
	_ = p.ResetInputBuffer()

	return newTransport(p, portName, readTimeout), nil
}

// Factory opens a Transport from a port configuration.
func Factory(cfg aino.PortConfig) (aino.Transport, error) {
	return New(cfg.Name, cfg.BaudRate, cfg.ReadTimeout)
}

func newTransport(p port, portName string, timeout time.Duration) *Transport {
	return &Transport{
		port:     p,
		portName: portName,
		timeout:  timeout,
		buf:      make([]byte, readBufferSize),
	}
}

// Write implements aino.Transport
func (t *Transport) Write(data []byte) (int, error) {
	p := t.handle()
	if p == nil {
		return 0, aino.ErrTransportClosed
	}

	written := 0
	for written < len(data) {
		n, err := p.Write(data[written:])
		written += n
		if err != nil {
			return written, fmt.Errorf("write %s: %w", t.portName, err)
		}
		if n == 0 {
			return written, fmt.Errorf("write %s: %w", t.portName, aino.ErrTransportWrite)
		}
	}
	return written, nil
}

// ReadLine implements aino.Transport
func (t *Transport) ReadLine() ([]byte, error) {
	t.readMu.Lock()
	defer t.readMu.Unlock()

	deadline := time.Now().Add(t.readTimeout())
	for {
		if i := bytes.IndexByte(t.pending, '\n'); i >= 0 {
			line := bytes.Clone(t.pending[:i+1])
			t.pending = t.pending[i+1:]
			return line, nil
		}
		if !time.Now().Before(deadline) {
			return t.flush(), nil
		}

		p := t.handle()
		if p == nil {
			return nil, aino.ErrTransportClosed
		}

		n, err := p.Read(t.buf)
		if n > 0 {
			t.pending = append(t.pending, t.buf[:n]...)
			continue
		}
		if err != nil {
			var portErr *serial.PortError
			if errors.As(err, &portErr) && portErr.Code() == serial.PortClosed {
				return nil, aino.ErrTransportClosed
			}
			return nil, fmt.Errorf("read %s: %w", t.portName, err)
		}
		// Read timed out with nothing new
		return t.flush(), nil
	}
}

// flush hands back a partial line. readMu must be held.
func (t *Transport) flush() []byte {
	line := t.pending
	t.pending = nil
	return line
}

// ResetInput implements aino.InputResetter. It drops the OS input buffer and any
// buffered partial line. While a ReadLine is running its buffer is left alone.
func (t *Transport) ResetInput() error {
	p := t.handle()
	if p == nil {
		return aino.ErrTransportClosed
	}
	if err := p.ResetInputBuffer(); err != nil {
		return fmt.Errorf("reset input %s: %w", t.portName, err)
	}
	if t.readMu.TryLock() {
		t.pending = nil
		t.readMu.Unlock()
	}
	return nil
}

// SetTimeout implements aino.Transport
func (t *Transport) SetTimeout(timeout time.Duration) error {
	if timeout <= 0 {
		return fmt.Errorf("%w: read timeout %v", aino.ErrInvalidParameter, timeout)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.timeout = timeout
	if t.port != nil {
		if err := t.port.SetReadTimeout(timeout); err != nil {
			return fmt.Errorf("set read timeout on %s: %w", t.portName, err)
		}
	}
	return nil
}

// Close implements aino.Transport. A ReadLine in progress returns ErrTransportClosed.
func (t *Transport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.port == nil {
		return nil
	}
	err := t.port.Close()
	t.port = nil
	if err != nil {
		return fmt.Errorf("close %s: %w", t.portName, err)
	}
	return nil
}

// IsOpen implements aino.Transport
func (t *Transport) IsOpen() bool {
	return t.handle() != nil
}

// Type implements aino.Transport
func (*Transport) Type() aino.TransportType {
	return aino.TransportUART
}

// PortName returns the device path
func (t *Transport) PortName() string {
	return t.portName
}

func (t *Transport) handle() port {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.port
}

func (t *Transport) readTimeout() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.timeout
}
