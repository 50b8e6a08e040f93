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
	"errors"
	"time"
)

// Outcome labels the result of one terminal operation.
type Outcome string

// Operation outcomes
const (
	OutcomeSuccess   Outcome = "success"
	OutcomeRejected  Outcome = "rejected"
	OutcomeMalformed Outcome = "malformed"
	OutcomeTimeout   Outcome = "timeout"
	OutcomeNotReady  Outcome = "not_ready"
	OutcomeError     Outcome = "error"
)

// Observer receives operation and state events, e.g. to export metrics.
// Implementations must be safe for concurrent use.
type Observer interface {
	ObserveOperation(cmd Command, outcome Outcome, elapsed time.Duration)
	ObserveState(state DeviceState)
}

type nopObserver struct{}

func (nopObserver) ObserveOperation(Command, Outcome, time.Duration) {}
func (nopObserver) ObserveState(DeviceState)                         {}

// OutcomeOf classifies an operation error.
func OutcomeOf(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, ErrDeviceRejected):
		return OutcomeRejected
	case errors.Is(err, ErrMalformedResponse):
		return OutcomeMalformed
	case errors.Is(err, ErrResponseTimeout):
		return OutcomeTimeout
	case errors.Is(err, ErrNotReady), errors.Is(err, ErrTransportUnavailable):
		return OutcomeNotReady
	default:
		return OutcomeError
	}
}
