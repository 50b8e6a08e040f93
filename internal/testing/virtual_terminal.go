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

package testing

import (
	"bytes"
	"strconv"
	"sync"
	"time"

	"github.com/edcbridge/go-aino/internal/frame"
)

// Request command bytes understood by VirtualTerminal
const (
	cmdDebit           = 0x01
	cmdLastTransaction = 0x03
	cmdBalanceInquiry  = 0x04
	cmdMemberCSN       = 0x05
)

// Status minors used by VirtualTerminal
const (
	minorFailed           = 0x01
	minorNotEnoughBalance = 0x03
	minorChecksumError    = 0x98
	minorUndefined        = 0x99
)

// VirtualTerminal simulates an EDC terminal with one card inserted.
// Use Respond as a mock transport responder.
type VirtualTerminal struct {
	Now       func() time.Time
	Card      string
	Bank      string
	CSN       string
	Noise     [][]byte
	last      []byte
	requests  [][]byte
	Balance   int
	mu        sync.Mutex
	RejectAll byte
}

// NewVirtualTerminal creates a terminal holding a card of bank with balance
func NewVirtualTerminal(bank string, balance int) *VirtualTerminal {
	return &VirtualTerminal{
		Now:     time.Now,
		Card:    "6032984012345678",
		Bank:    bank,
		CSN:     "04A1B2C3D4E5F601",
		Balance: balance,
	}
}

// Respond returns the lines the terminal sends back for request. Any Noise lines
// come first.
func (v *VirtualTerminal) Respond(request []byte) [][]byte {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.requests = append(v.requests, bytes.Clone(request))

	lines := make([][]byte, 0, len(v.Noise)+1)
	lines = append(lines, v.Noise...)
	return append(lines, v.answer(request))
}

// Requests returns every request seen so far
func (v *VirtualTerminal) Requests() [][]byte {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([][]byte, len(v.requests))
	copy(out, v.requests)
	return out
}

// CurrentBalance returns the balance left on the card
func (v *VirtualTerminal) CurrentBalance() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.Balance
}

func (v *VirtualTerminal) answer(request []byte) []byte {
	if len(request) < frame.HeaderLen || !bytes.HasPrefix(request, frame.STX) || !bytes.HasSuffix(request, frame.ETX) {
		return BuildStatusResponse(0x00, minorUndefined)
	}

	cmd := request[2]
	if v.RejectAll != 0 {
		return BuildStatusResponse(cmd, v.RejectAll)
	}

	switch cmd {
	case cmdDebit:
		return v.debit(request)
	case cmdLastTransaction:
		if v.last == nil {
			return BuildStatusResponse(cmdLastTransaction, minorFailed)
		}
		last := bytes.Clone(v.last)
		last[frame.RespStatusMajor] = cmdLastTransaction
		return seal(last)
	case cmdBalanceInquiry:
		return BuildBalanceResponse(v.Balance)
	case cmdMemberCSN:
		return BuildMemberCSNResponse(v.CSN)
	default:
		return BuildStatusResponse(cmd, minorUndefined)
	}
}

func (v *VirtualTerminal) debit(request []byte) []byte {
	if len(request) != frame.DebitFrameLen {
		return BuildStatusResponse(cmdDebit, minorUndefined)
	}
	if frame.FrameChecksum(request) != request[frame.DebitLRCOffset] {
		return BuildStatusResponse(cmdDebit, minorChecksumError)
	}

	amount, err := strconv.Atoi(string(request[frame.DebitAmountOffset:frame.DebitDateOffset]))
	if err != nil {
		return BuildStatusResponse(cmdDebit, minorUndefined)
	}
	if amount > v.Balance {
		return BuildStatusResponse(cmdDebit, minorNotEnoughBalance)
	}

	begin := v.Balance
	v.Balance -= amount

	resp := TransactionResponse{
		Command:          cmdDebit,
		TransactionID:    string(request[frame.DebitTxIDOffset:frame.DebitAmountOffset]),
		Amount:           amount,
		Date:             v.Now(),
		Card:             v.Card,
		BeginningBalance: begin,
		EndingBalance:    v.Balance,
		Bank:             v.Bank,
	}.Bytes()
	v.last = resp
	return resp
}
