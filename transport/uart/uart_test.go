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

package uart

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edcbridge/go-aino"
)

// fakePort hands out one queued chunk per Read; an empty queue acts as a read timeout.
type fakePort struct {
	readErr  error
	chunks   [][]byte
	written  []byte
	timeout  time.Duration
	mu       sync.Mutex
	closed   bool
	maxWrite int
	resets   int
}

func (f *fakePort) Read(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.readErr != nil {
		return 0, f.readErr
	}
	if len(f.chunks) == 0 {
		return 0, nil
	}
	n := copy(p, f.chunks[0])
	if n < len(f.chunks[0]) {
		f.chunks[0] = f.chunks[0][n:]
	} else {
		f.chunks = f.chunks[1:]
	}
	return n, nil
}

func (f *fakePort) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := len(p)
	if f.maxWrite > 0 && n > f.maxWrite {
		n = f.maxWrite
	}
	f.written = append(f.written, p[:n]...)
	return n, nil
}

func (f *fakePort) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakePort) SetReadTimeout(t time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.timeout = t
	return nil
}

func (f *fakePort) ResetInputBuffer() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.chunks = nil
	f.resets++
	return nil
}

func TestTransportCreation(t *testing.T) {
	t.Parallel()

	tr := newTransport(&fakePort{}, "/dev/ttyUSB0", time.Second)

	assert.Equal(t, "/dev/ttyUSB0", tr.PortName())
	assert.Equal(t, aino.TransportUART, tr.Type())
	assert.True(t, tr.IsOpen())

	require.NoError(t, tr.Close())
	assert.False(t, tr.IsOpen())
	require.NoError(t, tr.Close(), "closing twice is harmless")
}

func TestReadLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		chunks [][]byte
		want   [][]byte
	}{
		{
			name:   "single line",
			chunks: [][]byte{[]byte("hello\n")},
			want:   [][]byte{[]byte("hello\n")},
		},
		{
			name:   "line split across reads",
			chunks: [][]byte{[]byte("hel"), []byte("lo\nwor"), []byte("ld\n")},
			want:   [][]byte{[]byte("hello\n"), []byte("world\n")},
		},
		{
			name:   "frame without newline is returned on timeout",
			chunks: [][]byte{{0x10, 0x02, 0x04, 0x00}, {0x10, 0x03}},
			want:   [][]byte{{0x10, 0x02, 0x04, 0x00, 0x10, 0x03}},
		},
		{
			name:   "nothing arrives",
			chunks: nil,
			want:   [][]byte{nil},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fp := &fakePort{chunks: tt.chunks}
			tr := newTransport(fp, "/dev/ttyUSB0", time.Second)

			for _, want := range tt.want {
				got, err := tr.ReadLine()
				require.NoError(t, err)
				assert.Equal(t, want, got)
			}
		})
	}
}

func TestReadLineErrors(t *testing.T) {
	t.Parallel()

	fp := &fakePort{readErr: errors.New("input/output error")}
	tr := newTransport(fp, "/dev/ttyUSB0", time.Second)

	_, err := tr.ReadLine()
	require.ErrorContains(t, err, "input/output error")

	require.NoError(t, tr.Close())
	_, err = tr.ReadLine()
	require.ErrorIs(t, err, aino.ErrTransportClosed)
}

func TestWriteLoopsOnShortWrites(t *testing.T) {
	t.Parallel()

	fp := &fakePort{maxWrite: 4}
	tr := newTransport(fp, "/dev/ttyUSB0", time.Second)

	frm := aino.EncodeLastTransaction("2")
	n, err := tr.Write(frm)
	require.NoError(t, err)
	assert.Equal(t, len(frm), n)
	assert.Equal(t, frm, fp.written)

	require.NoError(t, tr.Close())
	_, err = tr.Write(frm)
	require.ErrorIs(t, err, aino.ErrTransportClosed)
}

func TestResetInputDropsBufferedData(t *testing.T) {
	t.Parallel()

	fp := &fakePort{chunks: [][]byte{[]byte("late\nrest"), []byte("queued\n")}}
	tr := newTransport(fp, "/dev/ttyUSB0", time.Second)

	line, err := tr.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, []byte("late\n"), line)

	require.NoError(t, tr.ResetInput())
	assert.Equal(t, 1, fp.resets)

	line, err = tr.ReadLine()
	require.NoError(t, err)
	assert.Empty(t, line, "partial line and queued input are gone")

	require.NoError(t, tr.Close())
	require.ErrorIs(t, tr.ResetInput(), aino.ErrTransportClosed)
}

var _ aino.InputResetter = (*Transport)(nil)

func TestSetTimeout(t *testing.T) {
	t.Parallel()

	fp := &fakePort{}
	tr := newTransport(fp, "/dev/ttyUSB0", time.Second)

	require.NoError(t, tr.SetTimeout(250*time.Millisecond))
	assert.Equal(t, 250*time.Millisecond, fp.timeout)
	require.ErrorIs(t, tr.SetTimeout(0), aino.ErrInvalidParameter)
}

func TestNewFailsForMissingPort(t *testing.T) {
	t.Parallel()

	_, err := Factory(aino.PortConfig{Name: "/dev/aino-does-not-exist", BaudRate: 115200})
	require.Error(t, err)
}
