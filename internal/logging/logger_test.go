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

package logging

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	cfgpkg "github.com/edcbridge/go-aino/internal/config"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want zapcore.Level
	}{
		{name: "debug", want: zapcore.DebugLevel},
		{name: "INFO", want: zapcore.InfoLevel},
		{name: "warning", want: zapcore.WarnLevel},
		{name: "error", want: zapcore.ErrorLevel},
		{name: "verbose", want: zapcore.InfoLevel},
		{name: "", want: zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ParseLevel(tt.name))
		})
	}
}

func TestNewJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(cfgpkg.LoggingConfig{Level: "info", Format: "json"}, &buf)

	logger.Debug("hidden")
	logger.Info("port opened", zap.String("port", "COM3"))
	require.NoError(t, logger.Sync())

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "port opened", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "COM3", entry["port"])
}

func TestNewConsole(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(cfgpkg.LoggingConfig{Level: "debug", Format: "console"}, &buf)
	logger.Debug("frame sent")

	assert.Contains(t, buf.String(), "frame sent")
	assert.Contains(t, buf.String(), "debug")
}

func TestInitLoggerWithFile(t *testing.T) {
	t.Parallel()

	logger, err := InitLogger(cfgpkg.LoggingConfig{
		Level:  "info",
		Format: "json",
		File:   cfgpkg.LumberjackConfig{Filename: filepath.Join(t.TempDir(), "ainod.log"), MaxSizeMB: 1},
	})
	require.NoError(t, err)
	require.NotNil(t, logger)
	logger.Info("started")
}
