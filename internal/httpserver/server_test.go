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

package httpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cfgpkg "github.com/edcbridge/go-aino/internal/config"
	appmetrics "github.com/edcbridge/go-aino/internal/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() cfgpkg.HTTPConfig {
	return cfgpkg.HTTPConfig{Addr: "127.0.0.1:0", ReadTimeout: time.Second, WriteTimeout: time.Second}
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func TestHealthzReadyzMetrics(t *testing.T) {
	t.Parallel()

	reg := appmetrics.NewRegistry()
	appmetrics.NewTerminalMetrics(reg)
	srv := New(testConfig(), "/metrics", appmetrics.Handler(reg), func() bool { return true })

	assert.Equal(t, http.StatusOK, get(srv.Handler(), "/healthz").Code)
	assert.Equal(t, http.StatusOK, get(srv.Handler(), "/readyz").Code)

	rr := get(srv.Handler(), "/metrics")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "aino_device_state")
}

func TestReadyzNotReady(t *testing.T) {
	t.Parallel()

	srv := New(testConfig(), "", nil, func() bool { return false })

	rr := get(srv.Handler(), "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Equal(t, "not-ready", rr.Body.String())
	assert.Equal(t, http.StatusNotFound, get(srv.Handler(), "/metrics").Code)
}

func TestEngineRoutesAndMiddleware(t *testing.T) {
	t.Parallel()

	var seen []string
	srv := New(testConfig(), "", nil, nil, func(c *gin.Context) {
		seen = append(seen, c.Request.URL.Path)
		c.Next()
	})
	srv.Engine().GET("/balance", func(c *gin.Context) {
		c.String(http.StatusOK, "42")
	})

	rr := get(srv.Handler(), "/balance")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "42", rr.Body.String())
	assert.Equal(t, []string{"/balance"}, seen)
}

func TestStartShutdown(t *testing.T) {
	t.Parallel()

	srv := New(testConfig(), "", nil, nil)
	done := make(chan error, 1)
	go func() { done <- srv.Start() }()

	time.Sleep(50 * time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after Shutdown")
	}
}
