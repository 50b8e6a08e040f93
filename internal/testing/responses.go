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
	"time"

	"github.com/edcbridge/go-aino/internal/frame"
)

// Response field layout shared by debit and last-transaction answers
const (
	transactionResponseLen = frame.MinTxFrameLen + frame.TrailerLen
	balanceResponseLen     = frame.MinBalanceFrameLen + frame.TrailerLen
	csnResponseLen         = frame.RespCSNEnd + frame.TrailerLen
	cardWidth              = frame.RespCardEnd - frame.RespCardStart
	bankWidth              = frame.RespBankEnd - frame.RespBankStart
)

// TransactionResponse describes a successful debit or last-transaction answer.
type TransactionResponse struct {
	Date             time.Time
	TransactionID    string
	Card             string
	Bank             string
	Amount           int
	BeginningBalance int
	EndingBalance    int
	Command          byte
}

// Bytes encodes the response the way the terminal sends it
func (r TransactionResponse) Bytes() []byte {
	resp := newResponse(transactionResponseLen, r.Command, 0x00)

	copy(resp[frame.RespTxIDStart:frame.RespTxIDEnd], frame.FixedWidth(r.TransactionID, frame.TxIDWidth))
	copy(resp[frame.RespAmountStart:frame.RespAmountEnd], frame.FixedWidthInt(r.Amount, frame.AmountWidth))
	copy(resp[frame.RespDateStart:frame.RespDateEnd], r.Date.Format(frame.DateLayout))
	copy(resp[frame.RespCardStart:frame.RespCardEnd], frame.FixedWidth(r.Card, cardWidth))
	copy(resp[frame.RespBeginBalStart:frame.RespBeginBalEnd], frame.FixedWidthInt(r.BeginningBalance, frame.AmountWidth))
	copy(resp[frame.RespEndBalStart:frame.RespEndBalEnd], frame.FixedWidthInt(r.EndingBalance, frame.AmountWidth))
	copy(resp[frame.RespBankStart:frame.RespBankEnd], frame.FixedWidth(r.Bank, bankWidth))

	return seal(resp)
}

// BuildBalanceResponse creates a successful balance inquiry answer
func BuildBalanceResponse(amount int) []byte {
	resp := newResponse(balanceResponseLen, 0x04, 0x00)
	copy(resp[frame.RespAmountStart:frame.RespAmountEnd], frame.FixedWidthInt(amount, frame.AmountWidth))
	return seal(resp)
}

// BuildMemberCSNResponse creates a successful member CSN answer
func BuildMemberCSNResponse(csn string) []byte {
	resp := newResponse(csnResponseLen, 0x05, 0x00)
	copy(resp[frame.RespCSNStart:frame.RespCSNEnd], frame.FixedWidth(csn, frame.RespCSNEnd-frame.RespCSNStart))
	return seal(resp)
}

// BuildStatusResponse creates the short answer a terminal sends for a failed request
func BuildStatusResponse(major, minor byte) []byte {
	return seal(newResponse(frame.MinStatusFrameLen+frame.TrailerLen, major, minor))
}

// BuildNoiseLine creates a line that does not end with the frame terminator
func BuildNoiseLine(text string) []byte {
	return append([]byte(text), '\r', '\n')
}

// newResponse allocates a response with header and terminator in place and the
// filler bytes set to ASCII zero.
func newResponse(length int, major, minor byte) []byte {
	resp := make([]byte, length)
	for i := range resp {
		resp[i] = '0'
	}
	copy(resp[0:2], frame.STX)
	resp[frame.RespStatusMajor] = major
	resp[frame.RespStatusMinor] = minor
	copy(resp[length-len(frame.ETX):], frame.ETX)
	return resp
}

func seal(resp []byte) []byte {
	resp[len(resp)-frame.TrailerLen] = frame.FrameChecksum(resp)
	return resp
}
