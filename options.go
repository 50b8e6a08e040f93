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
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Option is a functional option for configuring a Session
type Option func(*Session) error

// WithPort sets the serial port name
func WithPort(port string) Option {
	return func(s *Session) error {
		s.config.Port = port
		return nil
	}
}

// WithBaudRate sets the serial baud rate
func WithBaudRate(baud int) Option {
	return func(s *Session) error {
		if baud <= 0 {
			return fmt.Errorf("%w: baud rate %d", ErrInvalidParameter, baud)
		}
		s.config.BaudRate = baud
		return nil
	}
}

// WithReadTimeout sets the per-read timeout of the transport
func WithReadTimeout(timeout time.Duration) Option {
	return func(s *Session) error {
		if timeout <= 0 {
			return fmt.Errorf("%w: read timeout %v", ErrInvalidParameter, timeout)
		}
		s.config.ReadTimeout = timeout
		return nil
	}
}

// WithResponseTimeout bounds how long an exchange waits for a terminated line.
// Zero disables the bound.
func WithResponseTimeout(timeout time.Duration) Option {
	return func(s *Session) error {
		if timeout < 0 {
			return fmt.Errorf("%w: response timeout %v", ErrInvalidParameter, timeout)
		}
		s.config.ResponseTimeout = timeout
		return nil
	}
}

// WithReopenDelay sets the pause between closing and reopening an open port
func WithReopenDelay(delay time.Duration) Option {
	return func(s *Session) error {
		s.config.ReopenDelay = delay
		return nil
	}
}

// WithSessionConfig replaces the whole session configuration
func WithSessionConfig(config *SessionConfig) Option {
	return func(s *Session) error {
		if config == nil {
			return fmt.Errorf("%w: nil session config", ErrInvalidParameter)
		}
		cfg := *config
		s.config = &cfg
		return nil
	}
}

// WithLogger sets the logger used for frame and lifecycle logging
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) error {
		if logger != nil {
			s.logger = logger
		}
		return nil
	}
}

// WithObserver registers an observer for state changes
func WithObserver(observer Observer) Option {
	return func(s *Session) error {
		if observer != nil {
			s.observer = observer
		}
		return nil
	}
}

// TerminalOption is a functional option for configuring a Terminal
type TerminalOption func(*Terminal) error

// WithPOSID sets the POS identifier written into debit and last-transaction frames
func WithPOSID(posID string) TerminalOption {
	return func(t *Terminal) error {
		t.posID = posID
		return nil
	}
}

// WithBankTable sets the bank to TID/MID table
func WithBankTable(banks *BankTable) TerminalOption {
	return func(t *Terminal) error {
		if banks == nil {
			return fmt.Errorf("%w: nil bank table", ErrInvalidParameter)
		}
		t.banks = banks
		return nil
	}
}

// WithResultStore sets where the last successful debit is kept
func WithResultStore(store ResultStore) TerminalOption {
	return func(t *Terminal) error {
		if store == nil {
			return fmt.Errorf("%w: nil result store", ErrInvalidParameter)
		}
		t.store = store
		return nil
	}
}

// WithClock overrides the time source used for transaction ids and dates
func WithClock(now func() time.Time) TerminalOption {
	return func(t *Terminal) error {
		if now == nil {
			return fmt.Errorf("%w: nil clock", ErrInvalidParameter)
		}
		t.now = now
		return nil
	}
}

// WithTerminalLogger sets the logger used for operation logging
func WithTerminalLogger(logger *zap.Logger) TerminalOption {
	return func(t *Terminal) error {
		if logger != nil {
			t.logger = logger
		}
		return nil
	}
}

// WithTerminalObserver registers an observer for operation outcomes
func WithTerminalObserver(observer Observer) TerminalOption {
	return func(t *Terminal) error {
		if observer != nil {
			t.observer = observer
		}
		return nil
	}
}
