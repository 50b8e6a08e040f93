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

// Package metrics exports terminal metrics to Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/edcbridge/go-aino"
)

// NewRegistry creates a registry with the Go and process collectors registered
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// Handler returns the HTTP handler serving reg
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

// TerminalMetrics records terminal operations and device state. It implements
// aino.Observer.
type TerminalMetrics struct {
	OperationsTotal   *prometheus.CounterVec   // labels: command, outcome
	OperationDuration *prometheus.HistogramVec // labels: command
	DeviceState       *prometheus.GaugeVec     // labels: state; 1 for the current state
	HTTPRequestsTotal *prometheus.CounterVec   // labels: route, code
}

var deviceStates = []aino.DeviceState{aino.StateDisconnected, aino.StateReady, aino.StateBusy}

// NewTerminalMetrics registers and returns the terminal metrics
func NewTerminalMetrics(reg prometheus.Registerer) *TerminalMetrics {
	m := &TerminalMetrics{
		OperationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "aino_operations_total",
			Help: "Terminal operations by command and outcome.",
		}, []string{"command", "outcome"}),
		OperationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "aino_operation_duration_seconds",
			Help:    "Time from request to decoded response, including waiting for the card.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30, 60, 90},
		}, []string{"command"}),
		DeviceState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "aino_device_state",
			Help: "Current device state, 1 for the active state.",
		}, []string{"state"}),
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "aino_http_requests_total",
			Help: "API requests by route and status code.",
		}, []string{"route", "code"}),
	}
	reg.MustRegister(m.OperationsTotal, m.OperationDuration, m.DeviceState, m.HTTPRequestsTotal)
	m.ObserveState(aino.StateDisconnected)
	return m
}

// ObserveOperation implements aino.Observer
func (m *TerminalMetrics) ObserveOperation(cmd aino.Command, outcome aino.Outcome, elapsed time.Duration) {
	m.OperationsTotal.WithLabelValues(cmd.String(), string(outcome)).Inc()
	m.OperationDuration.WithLabelValues(cmd.String()).Observe(elapsed.Seconds())
}

// ObserveState implements aino.Observer
func (m *TerminalMetrics) ObserveState(state aino.DeviceState) {
	for _, s := range deviceStates {
		v := 0.0
		if s == state {
			v = 1
		}
		m.DeviceState.WithLabelValues(s.String()).Set(v)
	}
}

// ObserveRequest counts one finished HTTP request.
func (m *TerminalMetrics) ObserveRequest(route string, code int) {
	m.HTTPRequestsTotal.WithLabelValues(route, strconv.Itoa(code)).Inc()
}
