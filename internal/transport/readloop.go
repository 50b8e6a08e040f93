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

// Package transport provides internal transport utilities
package transport

import (
	"context"
	"errors"
	"time"
)

// ErrDeadline is returned by ReadUntil when its timeout passes before a chunk matches.
var ErrDeadline = errors.New("read deadline exceeded")

// ReadOperation reads one chunk (a line) from a transport. An empty chunk with a nil
// error means the transport's own read timeout expired without data.
type ReadOperation func() ([]byte, error)

// ReadConfig configures ReadUntil.
type ReadConfig struct {
	// Match reports whether a chunk ends the loop. Required.
	Match func(chunk []byte) bool
	// OnChunk, if set, sees every non-empty chunk, matched or not.
	OnChunk func(chunk []byte)
	// Timeout bounds the whole loop. Zero means no bound beyond ctx.
	Timeout time.Duration
	// IdleDelay is slept after an empty read so a transport that returns
	// immediately does not spin.
	IdleDelay time.Duration
}

// ReadUntil calls read until config.Match accepts a chunk and returns that chunk.
// Non-matching chunks are discarded. Read errors stop the loop immediately.
func ReadUntil(ctx context.Context, config ReadConfig, read ReadOperation) ([]byte, error) {
	var deadline time.Time
	if config.Timeout > 0 {
		deadline = time.Now().Add(config.Timeout)
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !deadline.IsZero() && !time.Now().Before(deadline) {
			return nil, ErrDeadline
		}

		chunk, err := read()
		if err != nil {
			return nil, err
		}

		if len(chunk) == 0 {
			if err := sleepContext(ctx, config.IdleDelay); err != nil {
				return nil, err
			}
			continue
		}

		if config.OnChunk != nil {
			config.OnChunk(chunk)
		}
		if config.Match(chunk) {
			return chunk, nil
		}
	}
}

// sleepContext sleeps for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
