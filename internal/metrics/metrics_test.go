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

package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edcbridge/go-aino"
)

func TestTerminalMetricsObserveOperation(t *testing.T) {
	t.Parallel()

	m := NewTerminalMetrics(prometheus.NewRegistry())

	m.ObserveOperation(aino.CmdDebit, aino.OutcomeSuccess, 2*time.Second)
	m.ObserveOperation(aino.CmdDebit, aino.OutcomeSuccess, time.Second)
	m.ObserveOperation(aino.CmdDebit, aino.OutcomeRejected, time.Second)

	assert.InDelta(t, 2, testutil.ToFloat64(m.OperationsTotal.WithLabelValues("debit", "success")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.OperationsTotal.WithLabelValues("debit", "rejected")), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(m.OperationDuration))
}

func TestTerminalMetricsObserveState(t *testing.T) {
	t.Parallel()

	m := NewTerminalMetrics(prometheus.NewRegistry())
	assert.InDelta(t, 1, testutil.ToFloat64(m.DeviceState.WithLabelValues("disconnected")), 0)

	m.ObserveState(aino.StateBusy)
	assert.InDelta(t, 0, testutil.ToFloat64(m.DeviceState.WithLabelValues("disconnected")), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(m.DeviceState.WithLabelValues("ready")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.DeviceState.WithLabelValues("busy")), 0)
}

func TestHandlerServesRegistry(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	m := NewTerminalMetrics(reg)
	m.ObserveOperation(aino.CmdBalanceInquiry, aino.OutcomeSuccess, time.Second)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `aino_operations_total{command="balance_inquiry",outcome="success"} 1`)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestTerminalMetricsObserveRequest(t *testing.T) {
	t.Parallel()

	m := NewTerminalMetrics(prometheus.NewRegistry())
	m.ObserveRequest("/balance", http.StatusOK)
	m.ObserveRequest("/balance", http.StatusOK)
	m.ObserveRequest("/debittransaction", http.StatusUnprocessableEntity)

	assert.InDelta(t, 2, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("/balance", "200")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("/debittransaction", "422")), 0)
}
