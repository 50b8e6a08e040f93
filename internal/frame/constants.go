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

// Package frame provides frame layout constants and the low-level field, checksum and
// transaction-id primitives for the EDC terminal protocol.
package frame

// Frame markers
var (
	STX = []byte{0x10, 0x02} // Start of frame
	ETX = []byte{0x10, 0x03} // End of frame, also the response line terminator
)

// ShiftCode is the literal shift code carried by every request frame.
var ShiftCode = []byte{0x32, 0x30, 0x32, 0x31, 0x30, 0x31, 0x32, 0x31}

// Header and trailer sizes. The checksum span is everything in between.
const (
	HeaderLen  = 3 // STX + CMD
	TrailerLen = 3 // LRC + ETX
)

// Debit request layout
const (
	DebitFrameLen     = 63
	DebitPosIDWidth   = 8 // Field is formatted to 8 characters but only 5 fit before the shift code
	DebitPosIDOffset  = 3
	DebitPosIDEnd     = 8
	ShiftCodeOffset   = 8
	LengthOffset      = 16
	DebitTxIDOffset   = 18
	DebitAmountOffset = 38
	DebitDateOffset   = 46
	DebitLRCOffset    = 60
	DebitETXOffset    = 61
)

// Debit payload length field (0x002A = 42 = TxID + Amount + Date)
var DebitDataLength = []byte{0x00, 0x2A}

// Last transaction request layout
const (
	LastTxFrameLen   = 21
	LastTxPosIDWidth = 5
	LastTxLRCOffset  = 18
	LastTxETXOffset  = 19
)

// Last transaction payload length field
var LastTxDataLength = []byte{0x00, 0x00}

// Field widths
const (
	TxIDWidth   = 20
	AmountWidth = 8
	DateWidth   = 14
)

// DateLayout is the ddMMyyyyHHmmss layout used on the wire.
const DateLayout = "02012006150405"

// BalanceInquiryFrame is sent verbatim; it carries no generated fields.
var BalanceInquiryFrame = []byte{0x10, 0x02, 0x04, 0x30, 0x30, 0x30, 0x30, 0x31, 0x31, 0x00, 0x00, 0x00, 0x10, 0x03}

// MemberCSNFrame asks the terminal for the serial number of the presented card.
var MemberCSNFrame = []byte{0x10, 0x02, 0x05, 0x10, 0x03}

// Response field offsets shared by debit and last-transaction responses.
const (
	RespStatusMajor    = 2
	RespStatusMinor    = 3
	RespTxIDStart      = 19
	RespTxIDEnd        = 39
	RespAmountStart    = 39
	RespAmountEnd      = 47
	RespDateStart      = 47
	RespDateEnd        = 61
	RespCardStart      = 61
	RespCardEnd        = 77
	RespBeginBalStart  = 77
	RespBeginBalEnd    = 85
	RespEndBalStart    = 85
	RespEndBalEnd      = 93
	RespBankStart      = 93
	RespBankEnd        = 96
	RespCSNStart       = 4
	RespCSNEnd         = 20
	MinStatusFrameLen  = 4
	MinBalanceFrameLen = RespAmountEnd
	MinTxFrameLen      = RespBankEnd
)
