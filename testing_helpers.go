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
	"bytes"
	"sync"
	"time"
)

// MockTransport is an in-memory Transport. Lines written by Responder, or queued
// with QueueLines, are returned by ReadLine one per call. ReadLine returns an empty
// line when nothing is queued, like a serial read that hit its timeout.
type MockTransport struct {
	// Responder, if set, produces the lines the terminal sends back for a written frame
	Responder  func(frame []byte) [][]byte
	WriteErr   error
	ReadErr    error
	lines      [][]byte
	writes     [][]byte
	timeout    time.Duration
	mu         sync.Mutex
	closed     bool
	closeCount int
	resets     int
}

// NewMockTransport creates an open mock transport
func NewMockTransport() *MockTransport {
	return &MockTransport{timeout: 3 * time.Second}
}

// NewMockTransportWithResponder creates an open mock transport answering with fn
func NewMockTransportWithResponder(fn func(frame []byte) [][]byte) *MockTransport {
	m := NewMockTransport()
	m.Responder = fn
	return m
}

// Write implements Transport
func (m *MockTransport) Write(data []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return 0, ErrTransportClosed
	}
	if m.WriteErr != nil {
		return 0, m.WriteErr
	}

	m.writes = append(m.writes, bytes.Clone(data))
	if m.Responder != nil {
		m.lines = append(m.lines, m.Responder(bytes.Clone(data))...)
	}
	return len(data), nil
}

// ReadLine implements Transport
func (m *MockTransport) ReadLine() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrTransportClosed
	}
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	if len(m.lines) == 0 {
		return nil, nil
	}

	line := m.lines[0]
	m.lines = m.lines[1:]
	return line, nil
}

// ResetInput implements InputResetter by dropping queued lines
func (m *MockTransport) ResetInput() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrTransportClosed
	}
	m.lines = nil
	m.resets++
	return nil
}

// Resets returns how many times ResetInput was called
func (m *MockTransport) Resets() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resets
}

// QueueLines appends lines to be returned by ReadLine
func (m *MockTransport) QueueLines(lines ...[]byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines = append(m.lines, lines...)
}

// Writes returns copies of every frame written so far
func (m *MockTransport) Writes() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]byte, len(m.writes))
	copy(out, m.writes)
	return out
}

// Close implements Transport
func (m *MockTransport) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.closeCount++
	return nil
}

// CloseCount returns how many times Close was called
func (m *MockTransport) CloseCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closeCount
}

// SetTimeout implements Transport
func (m *MockTransport) SetTimeout(timeout time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timeout = timeout
	return nil
}

// IsOpen implements Transport
func (m *MockTransport) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.closed
}

// Type returns TransportMock
func (*MockTransport) Type() TransportType {
	return TransportMock
}

// MockFactory is a TransportFactory handing out a new MockTransport on every open.
type MockFactory struct {
	// Responder is copied into each transport
	Responder func(frame []byte) [][]byte
	// Err, if set, makes every open fail
	Err        error
	transports []*MockTransport
	configs    []PortConfig
	mu         sync.Mutex
}

// Open implements TransportFactory
func (f *MockFactory) Open(cfg PortConfig) (Transport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.configs = append(f.configs, cfg)
	if f.Err != nil {
		return nil, f.Err
	}

	t := NewMockTransportWithResponder(f.Responder)
	t.timeout = cfg.ReadTimeout
	f.transports = append(f.transports, t)
	return t, nil
}

// Opened returns every transport opened so far, oldest first
func (f *MockFactory) Opened() []*MockTransport {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*MockTransport, len(f.transports))
	copy(out, f.transports)
	return out
}

// Last returns the most recently opened transport, or nil
func (f *MockFactory) Last() *MockTransport {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.transports) == 0 {
		return nil
	}
	return f.transports[len(f.transports)-1]
}

// Configs returns the port configurations passed to Open
func (f *MockFactory) Configs() []PortConfig {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]PortConfig, len(f.configs))
	copy(out, f.configs)
	return out
}

// SetErr changes the error returned by later opens
func (f *MockFactory) SetErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Err = err
}

// BlockingMockTransport is a mock transport whose ReadLine blocks until released.
// This is used for testing serialization and context cancellation.
type BlockingMockTransport struct {
	release  chan struct{}
	done     chan struct{}
	Response []byte
	timeout  time.Duration
	writes   int
	mu       sync.Mutex
	closed   bool
}

// NewBlockingMockTransport creates a new blocking mock transport
func NewBlockingMockTransport() *BlockingMockTransport {
	return &BlockingMockTransport{
		release: make(chan struct{}, 16),
		done:    make(chan struct{}),
		timeout: 5 * time.Second,
	}
}

// NewBlockingMockTransportWithResponse creates a blocking mock with a predefined line
func NewBlockingMockTransportWithResponse(response []byte) *BlockingMockTransport {
	mock := NewBlockingMockTransport()
	mock.Response = response
	return mock
}

// Write implements Transport
func (m *BlockingMockTransport) Write(data []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return 0, ErrTransportClosed
	}
	m.writes++
	return len(data), nil
}

// WriteCount returns how many frames were written
func (m *BlockingMockTransport) WriteCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// ReadLine blocks until Unblock is called, the timeout expires, or the transport is
// closed. An expired timeout returns an empty line.
func (m *BlockingMockTransport) ReadLine() ([]byte, error) {
	m.mu.Lock()
	timeout := m.timeout
	m.mu.Unlock()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-m.done:
		return nil, ErrTransportClosed
	case <-timer.C:
		return nil, nil
	case <-m.release:
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrTransportClosed
	}
	return bytes.Clone(m.Response), nil
}

// Unblock releases one ReadLine, now or the next time one is called
func (m *BlockingMockTransport) Unblock() {
	select {
	case m.release <- struct{}{}:
	default:
	}
}

// Close unblocks all operations and marks transport as closed
func (m *BlockingMockTransport) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.closed {
		m.closed = true
		close(m.done)
	}
	return nil
}

// SetTimeout configures the timeout for blocking reads
func (m *BlockingMockTransport) SetTimeout(timeout time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timeout = timeout
	return nil
}

// IsOpen implements Transport
func (m *BlockingMockTransport) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.closed
}

// Type returns TransportMock
func (*BlockingMockTransport) Type() TransportType {
	return TransportMock
}

// StaticFactory returns a TransportFactory that always hands out t.
func StaticFactory(t Transport) TransportFactory {
	return func(PortConfig) (Transport, error) {
		return t, nil
	}
}
