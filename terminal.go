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
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// DefaultPOSID is the POS identifier used when none is configured.
const DefaultPOSID = "2"

// Terminal runs payment operations against an EDC terminal over a Session.
type Terminal struct {
	session  *Session
	banks    *BankTable
	store    ResultStore
	logger   *zap.Logger
	observer Observer
	now      func() time.Time
	posID    string
}

// NewTerminal creates a Terminal on top of session
func NewTerminal(session *Session, opts ...TerminalOption) (*Terminal, error) {
	if session == nil {
		return nil, fmt.Errorf("%w: nil session", ErrInvalidParameter)
	}

	t := &Terminal{
		session:  session,
		banks:    DefaultBankTable(),
		store:    NewMemoryStore(),
		logger:   zap.NewNop(),
		observer: nopObserver{},
		now:      time.Now,
		posID:    DefaultPOSID,
	}

	for _, opt := range opts {
		if err := opt(t); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Session returns the underlying session
func (t *Terminal) Session() *Session {
	return t.session
}

// Debit charges amount to the card on the terminal. Amounts wider than 8 digits and
// codes longer than the id field are truncated on the wire.
//
// Debit waits behind an in-flight request. A successful result is kept as the last
// debit; failing to keep it is logged and does not fail the debit.
func (t *Terminal) Debit(ctx context.Context, amount int, code string) (*TransactionResult, error) {
	start := time.Now()

	resp, err := t.session.ExchangeFunc(ctx, func() []byte {
		return EncodeDebit(t.posID, amount, code, t.now())
	})
	if err != nil {
		return nil, t.finish(CmdDebit, start, err)
	}

	result, err := DecodeTransaction(CmdDebit, resp, amount, t.banks)
	if err != nil {
		return nil, t.finish(CmdDebit, start, err)
	}

	if err := t.store.SaveLastDebit(ctx, result); err != nil {
		t.logger.Error("storing last debit", zap.String("transaction_id", result.TransactionID), zap.Error(err))
	}
	t.logger.Info("debit approved",
		zap.String("transaction_id", result.TransactionID),
		zap.Int("amount", result.Amount),
		zap.String("bank", result.Bank),
		zap.Int("ending_balance", result.EndingBalance))

	return result, t.finish(CmdDebit, start, nil)
}

// BalanceCheck reads the balance of the card on the terminal. It fails with
// ErrNotReady instead of waiting when another request is in flight.
func (t *Terminal) BalanceCheck(ctx context.Context) (*Balance, error) {
	start := time.Now()

	resp, err := t.session.TryExchange(ctx, EncodeBalanceInquiry())
	if err != nil {
		return nil, t.finish(CmdBalanceInquiry, start, err)
	}

	balance, err := DecodeBalance(resp)
	if err != nil {
		return nil, t.finish(CmdBalanceInquiry, start, err)
	}
	return balance, t.finish(CmdBalanceInquiry, start, nil)
}

// LastTransaction asks the terminal for the last transaction it processed.
func (t *Terminal) LastTransaction(ctx context.Context) (*TransactionResult, error) {
	start := time.Now()

	resp, err := t.session.Exchange(ctx, EncodeLastTransaction(t.posID))
	if err != nil {
		return nil, t.finish(CmdLastTransaction, start, err)
	}

	result, err := DecodeTransaction(CmdLastTransaction, resp, 0, t.banks)
	if err != nil {
		return nil, t.finish(CmdLastTransaction, start, err)
	}
	return result, t.finish(CmdLastTransaction, start, nil)
}

// MemberCSN reads the serial number of the card on the terminal. Like BalanceCheck
// it does not wait for an in-flight request.
func (t *Terminal) MemberCSN(ctx context.Context) (*MemberCard, error) {
	start := time.Now()

	resp, err := t.session.TryExchange(ctx, EncodeMemberCSN())
	if err != nil {
		return nil, t.finish(CmdMemberCSN, start, err)
	}

	card, err := DecodeMemberCSN(resp)
	if err != nil {
		return nil, t.finish(CmdMemberCSN, start, err)
	}
	return card, t.finish(CmdMemberCSN, start, nil)
}

// LastDebit returns the last successful debit, or nil if there has been none.
func (t *Terminal) LastDebit(ctx context.Context) (*TransactionResult, error) {
	result, err := t.store.LastDebit(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading last debit: %w", err)
	}
	return result, nil
}

// finish reports the outcome and logs failures.
func (t *Terminal) finish(cmd Command, start time.Time, err error) error {
	outcome := OutcomeOf(err)
	t.observer.ObserveOperation(cmd, outcome, time.Since(start))

	var rejected *RejectedError
	switch {
	case err == nil:
	case errors.As(err, &rejected):
		t.logger.Warn("terminal rejected request",
			zap.Stringer("command", cmd),
			zap.String("status", rejected.Status),
			zap.Stringer("code", rejected.Code),
			zap.Int("amount", rejected.Amount),
			zap.String("response_hex", rejected.ResponseHex))
	default:
		t.logger.Error("terminal request failed",
			zap.Stringer("command", cmd),
			zap.String("outcome", string(outcome)),
			zap.Error(err))
	}
	return err
}
