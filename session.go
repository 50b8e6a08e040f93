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
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/edcbridge/go-aino/detection"
	"github.com/edcbridge/go-aino/internal/frame"
	"github.com/edcbridge/go-aino/internal/transport"
)

// AutoDetectPort as the port name makes Open pick the first usable USB serial port.
const AutoDetectPort = "auto"

// SessionConfig contains configuration options for the Session
type SessionConfig struct {
	// Port is the serial device path, or AutoDetectPort
	Port string
	// IgnorePaths are skipped during auto-detection
	IgnorePaths []string
	// Blocklist holds VID:PID pairs skipped during auto-detection
	Blocklist []string
	// BaudRate of the serial line
	BaudRate int
	// ReadTimeout is the per-read timeout handed to the transport
	ReadTimeout time.Duration
	// ResponseTimeout bounds one exchange. Zero waits until ctx is done.
	ResponseTimeout time.Duration
	// ReopenDelay is the pause between closing and reopening an open port
	ReopenDelay time.Duration
	// IdleDelay is slept after a read that returned nothing
	IdleDelay time.Duration
}

// DefaultSessionConfig returns default session configuration
func DefaultSessionConfig() *SessionConfig {
	return &SessionConfig{
		Port:            "COM3",
		BaudRate:        115200,
		ReadTimeout:     3 * time.Second,
		ResponseTimeout: 90 * time.Second,
		ReopenDelay:     1 * time.Second,
		IdleDelay:       10 * time.Millisecond,
		Blocklist:       detection.DefaultBlocklist(),
	}
}

// Session owns the serial link to one terminal and allows one exchange at a time.
//
// Session is safe for concurrent use. Exchanges are serialized by a single slot;
// State never blocks.
type Session struct {
	factory     TransportFactory
	transport   TransportContext
	config      *SessionConfig
	logger      *zap.Logger
	observer    Observer
	resolvePort func(ctx context.Context) (string, error)
	slot        chan struct{}
	port        string
	mu          sync.Mutex
	state       atomic.Int32
}

// NewSession creates a disconnected session. Call Open before exchanging frames.
func NewSession(factory TransportFactory, opts ...Option) (*Session, error) {
	if factory == nil {
		return nil, fmt.Errorf("%w: nil transport factory", ErrInvalidParameter)
	}

	s := &Session{
		factory:  factory,
		config:   DefaultSessionConfig(),
		logger:   zap.NewNop(),
		observer: nopObserver{},
		slot:     make(chan struct{}, 1),
	}
	s.resolvePort = s.detectPort

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	s.state.Store(int32(StateDisconnected))
	return s, nil
}

// Config returns a copy of the session configuration
func (s *Session) Config() SessionConfig {
	return *s.config
}

// State returns the current device state
func (s *Session) State() DeviceState {
	return DeviceState(s.state.Load())
}

// Ready reports whether an exchange could start right now
func (s *Session) Ready() bool {
	return s.State() == StateReady
}

// Port returns the port of the open handle, or the configured port
func (s *Session) Port() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.port != "" {
		return s.port
	}
	return s.config.Port
}

// Open opens the port unless a handle is already open. On failure the session stays
// Disconnected and a TransportError wrapping ErrTransportUnavailable is returned.
func (s *Session) Open(ctx context.Context) (DeviceState, error) {
	if err := s.acquire(ctx); err != nil {
		return s.State(), err
	}
	defer s.release()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.transport != nil && s.transport.IsOpen() {
		return s.State(), nil
	}
	return s.openLocked(ctx)
}

// Reopen ends with exactly one freshly opened handle: an open handle is closed and
// reopened after ReopenDelay, a closed or missing one is opened directly.
func (s *Session) Reopen(ctx context.Context) (DeviceState, error) {
	if err := s.acquire(ctx); err != nil {
		return s.State(), err
	}
	defer s.release()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.transport != nil {
		wasOpen := s.transport.IsOpen()
		if err := s.transport.Close(); err != nil {
			s.logger.Warn("closing port before reopen", zap.String("port", s.port), zap.Error(err))
		}
		s.transport = nil
		s.setState(StateDisconnected)

		if wasOpen {
			if err := sleepCtx(ctx, s.config.ReopenDelay); err != nil {
				return s.State(), err
			}
		}
	}
	return s.openLocked(ctx)
}

// Close closes the handle. It does not wait for an in-flight exchange; that exchange
// fails with a transport error.
func (s *Session) Close() (DeviceState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.transport == nil {
		return s.setState(StateDisconnected), nil
	}

	err := s.transport.Close()
	s.transport = nil
	state := s.setState(StateDisconnected)
	s.logger.Info("port closed", zap.String("port", s.port))
	if err != nil {
		return state, NewTransportError("close", s.port, err, ErrorTypePermanent)
	}
	return state, nil
}

// Exchange writes frm and returns the first terminated line whose command byte
// matches frm. Replies to other commands, such as a late answer to an exchange that
// timed out, are skipped. It waits for an in-flight exchange to finish first.
func (s *Session) Exchange(ctx context.Context, frm []byte) ([]byte, error) {
	return s.ExchangeFunc(ctx, func() []byte { return frm })
}

// ExchangeFunc is Exchange with the frame built once the slot is held, so time-derived
// fields reflect when the frame is actually sent.
func (s *Session) ExchangeFunc(ctx context.Context, build func() []byte) ([]byte, error) {
	if s.State() == StateDisconnected {
		return nil, NewTransportUnavailableError("exchange", s.Port(), nil)
	}
	if err := s.acquire(ctx); err != nil {
		return nil, err
	}
	defer s.release()

	return s.run(ctx, build)
}

// TryExchange is Exchange that fails with ErrNotReady instead of waiting.
func (s *Session) TryExchange(ctx context.Context, frm []byte) ([]byte, error) {
	return s.TryExchangeFunc(ctx, func() []byte { return frm })
}

// TryExchangeFunc is ExchangeFunc that fails with ErrNotReady instead of waiting.
func (s *Session) TryExchangeFunc(ctx context.Context, build func() []byte) ([]byte, error) {
	switch s.State() {
	case StateDisconnected:
		return nil, fmt.Errorf("%w: %w", ErrNotReady, ErrTransportUnavailable)
	case StateBusy:
		return nil, fmt.Errorf("%w: exchange in progress", ErrNotReady)
	case StateReady:
	}

	select {
	case s.slot <- struct{}{}:
	default:
		return nil, fmt.Errorf("%w: exchange in progress", ErrNotReady)
	}
	defer s.release()

	return s.run(ctx, build)
}

// run performs one exchange while holding the slot.
func (s *Session) run(ctx context.Context, build func() []byte) ([]byte, error) {
	s.mu.Lock()
	t, port := s.transport, s.port
	s.mu.Unlock()

	if t == nil || !t.IsOpen() {
		s.setState(StateDisconnected)
		return nil, NewTransportUnavailableError("exchange", port, nil)
	}
	if !s.transition(StateReady, StateBusy) {
		return nil, NewTransportUnavailableError("exchange", port, nil)
	}
	defer s.transition(StateBusy, StateReady)

	frm := build()
	cmd := commandOf(frm)
	s.logger.Debug("frame sent",
		zap.String("port", port),
		zap.Stringer("command", cmd),
		zap.String("hex", hex.EncodeToString(frm)))

	if r, ok := t.(InputResetter); ok {
		if err := r.ResetInput(); err != nil {
			s.logger.Warn("discarding stale input", zap.String("port", port), zap.Error(err))
		}
	}

	if _, err := t.Write(frm); err != nil {
		return nil, s.ioFailure(t, "write", port, ErrTransportWrite, err)
	}

	readCtx := ctx
	if s.config.ResponseTimeout > 0 {
		var cancel context.CancelFunc
		readCtx, cancel = context.WithTimeout(ctx, s.config.ResponseTimeout)
		defer cancel()
	}

	resp, err := transport.ReadUntil(readCtx, transport.ReadConfig{
		Match: func(line []byte) bool {
			return answers(cmd, line)
		},
		Timeout:   s.config.ResponseTimeout,
		IdleDelay: s.config.IdleDelay,
		OnChunk: func(chunk []byte) {
			if isTerminated(chunk) && !answers(cmd, chunk) {
				s.logger.Warn("skipping reply to another command",
					zap.String("port", port),
					zap.Stringer("command", cmd),
					zap.Stringer("reply_command", commandOf(chunk)),
					zap.String("hex", hex.EncodeToString(chunk)))
				return
			}
			s.logger.Debug("line received",
				zap.String("port", port),
				zap.Stringer("command", cmd),
				zap.String("hex", hex.EncodeToString(chunk)))
		},
	}, func() ([]byte, error) {
		return t.ReadLineContext(readCtx)
	})

	switch {
	case err == nil:
		return resp, nil
	case ctx.Err() != nil:
		return nil, fmt.Errorf("%s exchange aborted: %w", cmd, ctx.Err())
	case errors.Is(err, transport.ErrDeadline), errors.Is(err, context.DeadlineExceeded):
		s.logger.Warn("no terminated response",
			zap.String("port", port),
			zap.Stringer("command", cmd),
			zap.Duration("timeout", s.config.ResponseTimeout))
		return nil, NewTimeoutError("exchange", port)
	default:
		return nil, s.ioFailure(t, "read", port, ErrTransportRead, err)
	}
}

// ioFailure wraps a transport error and drops to Disconnected if the handle closed.
func (s *Session) ioFailure(t Transport, op, port string, sentinel, err error) error {
	s.logger.Error("transport failure", zap.String("op", op), zap.String("port", port), zap.Error(err))
	if !t.IsOpen() {
		s.setState(StateDisconnected)
	}
	return NewTransportError(op, port, fmt.Errorf("%w: %w", sentinel, err), ErrorTypeTransient)
}

// openLocked opens a new handle. s.mu must be held.
func (s *Session) openLocked(ctx context.Context) (DeviceState, error) {
	if err := ctx.Err(); err != nil {
		return s.State(), err
	}

	port := s.config.Port
	if port == AutoDetectPort || port == "" {
		detected, err := s.resolvePort(ctx)
		if err != nil {
			s.setState(StateDisconnected)
			return StateDisconnected, NewTransportUnavailableError("open", port, err)
		}
		port = detected
	}

	t, err := s.factory(PortConfig{
		Name:        port,
		BaudRate:    s.config.BaudRate,
		ReadTimeout: s.config.ReadTimeout,
	})
	if err != nil {
		s.transport = nil
		s.logger.Error("opening port", zap.String("port", port), zap.Error(err))
		return s.setState(StateDisconnected), NewTransportUnavailableError("open", port, err)
	}

	s.transport = AsTransportContext(t)
	s.port = port
	s.logger.Info("port opened", zap.String("port", port), zap.Int("baud", s.config.BaudRate))
	return s.setState(StateReady), nil
}

func (s *Session) detectPort(_ context.Context) (string, error) {
	ports, err := detection.DetectPorts(&detection.Options{
		IgnorePaths: s.config.IgnorePaths,
		Blocklist:   s.config.Blocklist,
	})
	if err != nil {
		return "", err
	}
	s.logger.Info("port detected", zap.String("port", ports[0].Path), zap.String("vidpid", ports[0].VIDPID()))
	return ports[0].Path, nil
}

func (s *Session) acquire(ctx context.Context) error {
	select {
	case s.slot <- struct{}{}:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for device: %w", ctx.Err())
	}
}

func (s *Session) release() {
	<-s.slot
}

// setState stores state unconditionally and returns it.
func (s *Session) setState(state DeviceState) DeviceState {
	if DeviceState(s.state.Swap(int32(state))) != state {
		s.observer.ObserveState(state)
	}
	return state
}

// transition moves from one state to another only if the session is still in from.
func (s *Session) transition(from, to DeviceState) bool {
	if !s.state.CompareAndSwap(int32(from), int32(to)) {
		return false
	}
	s.observer.ObserveState(to)
	return true
}

func isTerminated(line []byte) bool {
	return bytes.HasSuffix(line, frame.ETX)
}

// answers reports whether line is a complete reply to cmd. Replies carry the
// command byte of their request at offset 2.
func answers(cmd Command, line []byte) bool {
	return isTerminated(line) && commandOf(line) == cmd
}

func sleepCtx(ctx context.Context, d time.Duration) error {
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
