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

package transport

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var etx = []byte{0x10, 0x03}

func endsWithETX(chunk []byte) bool {
	return bytes.HasSuffix(chunk, etx)
}

// scripted returns a ReadOperation that yields the given chunks, then empty reads.
func scripted(chunks ...[]byte) (ReadOperation, *int) {
	calls := 0
	return func() ([]byte, error) {
		calls++
		if len(chunks) == 0 {
			return nil, nil
		}
		c := chunks[0]
		chunks = chunks[1:]
		return c, nil
	}, &calls
}

func TestReadUntil_ReturnsMatchingChunk(t *testing.T) {
	t.Parallel()

	read, calls := scripted(
		[]byte("noise\n"),
		nil,
		[]byte{0x10, 0x02, 0x01, 0x00, 0x10, 0x03},
		[]byte("never read"),
	)

	var seen [][]byte
	got, err := ReadUntil(context.Background(), ReadConfig{
		Match:   endsWithETX,
		OnChunk: func(c []byte) { seen = append(seen, c) },
	}, read)

	require.NoError(t, err)
	assert.Equal(t, []byte{0x10, 0x02, 0x01, 0x00, 0x10, 0x03}, got)
	assert.Equal(t, 3, *calls)
	assert.Len(t, seen, 2)
}

func TestReadUntil_TimeoutOnEmptyReads(t *testing.T) {
	t.Parallel()

	read, _ := scripted()
	start := time.Now()
	_, err := ReadUntil(context.Background(), ReadConfig{
		Match:     endsWithETX,
		Timeout:   50 * time.Millisecond,
		IdleDelay: time.Millisecond,
	}, read)

	require.ErrorIs(t, err, ErrDeadline)
	assert.Less(t, time.Since(start), time.Second)
}

func TestReadUntil_ContextCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	read, _ := scripted()
	_, err := ReadUntil(ctx, ReadConfig{Match: endsWithETX, IdleDelay: 5 * time.Millisecond}, read)

	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestReadUntil_ReadErrorStops(t *testing.T) {
	t.Parallel()

	boom := errors.New("port gone")
	_, err := ReadUntil(context.Background(), ReadConfig{Match: endsWithETX}, func() ([]byte, error) {
		return nil, boom
	})

	require.ErrorIs(t, err, boom)
}
