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
	"fmt"
)

// Transport and exchange errors
var (
	ErrTransportUnavailable = errors.New("transport unavailable")
	ErrTransportClosed      = errors.New("transport closed")
	ErrTransportRead        = errors.New("transport read failed")
	ErrTransportWrite       = errors.New("transport write failed")
	ErrResponseTimeout      = errors.New("no terminated response before deadline")
	ErrNotReady             = errors.New("device is not ready")
	ErrInvalidParameter     = errors.New("invalid parameter")
)

// Domain errors. Typed errors below match these with errors.Is.
var (
	ErrDeviceRejected    = errors.New("device rejected request")
	ErrMalformedResponse = errors.New("malformed response")
)

// ErrorType classifies errors for callers deciding whether to try again later.
type ErrorType int

const (
	// ErrorTypePermanent will not go away by itself.
	ErrorTypePermanent ErrorType = iota
	// ErrorTypeTransient may succeed on a later attempt.
	ErrorTypeTransient
	// ErrorTypeTimeout is a deadline that passed without a response.
	ErrorTypeTimeout
)

func (t ErrorType) String() string {
	switch t {
	case ErrorTypeTransient:
		return "transient"
	case ErrorTypeTimeout:
		return "timeout"
	default:
		return "permanent"
	}
}

// TransportError wraps a failure of the serial transport with the operation and port.
type TransportError struct {
	Err       error
	Op        string
	Port      string
	Type      ErrorType
	Retryable bool
}

func (e *TransportError) Error() string {
	if e.Port == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Port, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError creates a TransportError; transient and timeout errors are retryable.
func NewTransportError(op, port string, err error, errType ErrorType) *TransportError {
	return &TransportError{
		Op:        op,
		Port:      port,
		Err:       err,
		Type:      errType,
		Retryable: errType != ErrorTypePermanent,
	}
}

// NewTransportUnavailableError reports a port that could not be opened or is not open.
func NewTransportUnavailableError(op, port string, cause error) *TransportError {
	err := ErrTransportUnavailable
	if cause != nil {
		err = fmt.Errorf("%w: %w", ErrTransportUnavailable, cause)
	}
	return NewTransportError(op, port, err, ErrorTypeTransient)
}

// NewTimeoutError reports an exchange that never saw its terminator.
func NewTimeoutError(op, port string) *TransportError {
	return NewTransportError(op, port, ErrResponseTimeout, ErrorTypeTimeout)
}

// RejectedError is returned when the terminal answers with a non-zero status.
type RejectedError struct {
	Status      string
	ResponseHex string
	Code        StatusCode
	Amount      int
	Command     Command
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%s rejected by terminal: %s (%s)", e.Command, e.Status, e.Code)
}

// Is lets errors.Is(err, ErrDeviceRejected) match.
func (*RejectedError) Is(target error) bool {
	return target == ErrDeviceRejected
}

// MalformedResponseError is returned when a response cannot satisfy the fixed offsets
// or carries non-numeric data where a number or date is expected.
type MalformedResponseError struct {
	Err     error
	Field   string
	Command Command
	Offset  int
	Length  int
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed %s response: field %s at offset %d: %v", e.Command, e.Field, e.Offset, e.Err)
	}
	return fmt.Sprintf("malformed %s response: %d bytes is too short for field %s at offset %d",
		e.Command, e.Length, e.Field, e.Offset)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrMalformedResponse) match.
func (*MalformedResponseError) Is(target error) bool {
	return target == ErrMalformedResponse
}

// IsRetryable reports whether a later attempt could succeed. Rejections and malformed
// responses are never retryable.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var te *TransportError
	if errors.As(err, &te) {
		return te.Retryable
	}

	switch {
	case errors.Is(err, ErrNotReady),
		errors.Is(err, ErrTransportUnavailable),
		errors.Is(err, ErrResponseTimeout):
		return true
	default:
		return false
	}
}

// GetErrorType returns the classification of err.
func GetErrorType(err error) ErrorType {
	if err == nil {
		return ErrorTypePermanent
	}

	var te *TransportError
	if errors.As(err, &te) {
		return te.Type
	}

	switch {
	case errors.Is(err, ErrResponseTimeout):
		return ErrorTypeTimeout
	case errors.Is(err, ErrNotReady),
		errors.Is(err, ErrTransportUnavailable),
		errors.Is(err, ErrTransportRead),
		errors.Is(err, ErrTransportWrite):
		return ErrorTypeTransient
	default:
		return ErrorTypePermanent
	}
}
