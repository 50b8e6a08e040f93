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
	"context"
	"fmt"
	"sync"
)

// TransportContext is a Transport whose reads can be abandoned through a context.
type TransportContext interface {
	Transport

	// ReadLineContext reads a line, returning early when ctx is done
	ReadLineContext(ctx context.Context) ([]byte, error)
}

type readResult struct {
	err  error
	data []byte
}

// transportContextAdapter runs blocking reads in a goroutine. A read abandoned by a
// cancelled context stays in flight; the next call collects its result instead of
// starting a second concurrent read on the port.
type transportContextAdapter struct {
	Transport
	pending chan readResult
	mu      sync.Mutex
}

// ReadLineContext implements TransportContext
func (t *transportContextAdapter) ReadLineContext(ctx context.Context) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("context cancelled before reading: %w", ctx.Err())
	default:
	}

	t.mu.Lock()
	pending := t.pending
	if pending == nil {
		pending = make(chan readResult, 1)
		t.pending = pending
		go func() {
			data, err := t.ReadLine()
			pending <- readResult{err: err, data: data}
		}()
	}
	t.mu.Unlock()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("context cancelled while waiting for response: %w", ctx.Err())
	case res := <-pending:
		t.mu.Lock()
		t.pending = nil
		t.mu.Unlock()
		return res.data, res.err
	}
}

// ResetInput drops the result of an abandoned read that has already completed and
// forwards to the wrapped transport when it supports InputResetter. A read still
// in flight stays pending.
func (t *transportContextAdapter) ResetInput() error {
	t.mu.Lock()
	if t.pending != nil {
		select {
		case <-t.pending:
			t.pending = nil
		default:
		}
	}
	t.mu.Unlock()

	if r, ok := t.Transport.(InputResetter); ok {
		return r.ResetInput()
	}
	return nil
}

// AsTransportContext converts a Transport to TransportContext
func AsTransportContext(t Transport) TransportContext {
	if tc, ok := t.(TransportContext); ok {
		return tc
	}
	return &transportContextAdapter{Transport: t}
}
