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
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/edcbridge/go-aino/internal/frame"
)

// displayDateLayout is the DD-MM-YYYY HH:MM:SS form returned to callers.
const displayDateLayout = "02-01-2006 15:04:05"

// EncodeDebit builds the 63-byte debit request.
//
// The POS id is formatted to 8 characters but only the first 5 land in the frame:
// the shift code starts at offset 8. This matches what terminals in the field expect.
func EncodeDebit(posID string, amount int, code string, now time.Time) []byte {
	frm := make([]byte, frame.DebitFrameLen)

	copy(frm[0:2], frame.STX)
	frm[2] = byte(CmdDebit)
	copy(frm[frame.DebitPosIDOffset:frame.DebitPosIDEnd], frame.FixedWidth(posID, frame.DebitPosIDWidth))
	copy(frm[frame.ShiftCodeOffset:frame.LengthOffset], frame.ShiftCode)
	copy(frm[frame.LengthOffset:frame.DebitTxIDOffset], frame.DebitDataLength)
	copy(frm[frame.DebitTxIDOffset:frame.DebitAmountOffset], frame.TransactionID(code, now))
	copy(frm[frame.DebitAmountOffset:frame.DebitDateOffset], frame.FixedWidthInt(amount, frame.AmountWidth))
	copy(frm[frame.DebitDateOffset:frame.DebitLRCOffset], now.Format(frame.DateLayout))
	frm[frame.DebitLRCOffset] = frame.FrameChecksum(frm)
	copy(frm[frame.DebitETXOffset:], frame.ETX)

	return frm
}

// EncodeLastTransaction builds the 21-byte last-transaction query.
func EncodeLastTransaction(posID string) []byte {
	frm := make([]byte, frame.LastTxFrameLen)

	copy(frm[0:2], frame.STX)
	frm[2] = byte(CmdLastTransaction)
	copy(frm[3:8], frame.FixedWidth(posID, frame.LastTxPosIDWidth))
	copy(frm[frame.ShiftCodeOffset:frame.LengthOffset], frame.ShiftCode)
	copy(frm[frame.LengthOffset:frame.LastTxLRCOffset], frame.LastTxDataLength)
	frm[frame.LastTxLRCOffset] = frame.FrameChecksum(frm)
	copy(frm[frame.LastTxETXOffset:], frame.ETX)

	return frm
}

// EncodeBalanceInquiry returns a copy of the fixed balance inquiry frame.
func EncodeBalanceInquiry() []byte {
	return bytes.Clone(frame.BalanceInquiryFrame)
}

// EncodeMemberCSN returns a copy of the fixed member CSN query frame.
func EncodeMemberCSN() []byte {
	return bytes.Clone(frame.MemberCSNFrame)
}

// DecodeStatus reads the status pair of a response.
func DecodeStatus(cmd Command, resp []byte) (StatusCode, error) {
	if len(resp) < frame.MinStatusFrameLen {
		return StatusCode{}, &MalformedResponseError{
			Command: cmd,
			Field:   "status",
			Offset:  frame.RespStatusMajor,
			Length:  len(resp),
		}
	}
	return StatusCode{Major: resp[frame.RespStatusMajor], Minor: resp[frame.RespStatusMinor]}, nil
}

// DecodeTransaction decodes a debit or last-transaction response. A non-zero status
// yields a *RejectedError carrying requestedAmount.
func DecodeTransaction(cmd Command, resp []byte, requestedAmount int, banks *BankTable) (*TransactionResult, error) {
	code, err := decodeOutcome(cmd, resp, requestedAmount)
	if err != nil {
		return nil, err
	}

	d := fieldDecoder{cmd: cmd, resp: resp}
	if err := d.require("bank", frame.RespBankStart, frame.MinTxFrameLen); err != nil {
		return nil, err
	}

	result := &TransactionResult{
		Status:           code.Description(),
		TransactionID:    d.text(frame.RespTxIDStart, frame.RespTxIDEnd),
		Amount:           d.integer("amount", frame.RespAmountStart, frame.RespAmountEnd),
		TransactionDate:  d.date("transaction_date", frame.RespDateStart, frame.RespDateEnd),
		CardNumber:       d.text(frame.RespCardStart, frame.RespCardEnd),
		BeginningBalance: d.integer("beginning_balance", frame.RespBeginBalStart, frame.RespBeginBalEnd),
		EndingBalance:    d.integer("ending_balance", frame.RespEndBalStart, frame.RespEndBalEnd),
		Bank:             d.text(frame.RespBankStart, frame.RespBankEnd),
		ResponseHex:      hex.EncodeToString(resp),
	}
	if d.err != nil {
		return nil, d.err
	}
	result.TID, result.MID = banks.Lookup(result.Bank)

	return result, nil
}

// DecodeBalance decodes a balance inquiry response.
func DecodeBalance(resp []byte) (*Balance, error) {
	code, err := decodeOutcome(CmdBalanceInquiry, resp, 0)
	if err != nil {
		return nil, err
	}

	d := fieldDecoder{cmd: CmdBalanceInquiry, resp: resp}
	if err := d.require("amount", frame.RespAmountStart, frame.MinBalanceFrameLen); err != nil {
		return nil, err
	}

	balance := &Balance{
		Status:      code.Description(),
		Amount:      d.integer("amount", frame.RespAmountStart, frame.RespAmountEnd),
		ResponseHex: hex.EncodeToString(resp),
	}
	if d.err != nil {
		return nil, d.err
	}
	return balance, nil
}

// DecodeMemberCSN decodes a member CSN response.
func DecodeMemberCSN(resp []byte) (*MemberCard, error) {
	code, err := decodeOutcome(CmdMemberCSN, resp, 0)
	if err != nil {
		return nil, err
	}

	d := fieldDecoder{cmd: CmdMemberCSN, resp: resp}
	if err := d.require("csn_number", frame.RespCSNStart, frame.RespCSNEnd); err != nil {
		return nil, err
	}

	return &MemberCard{
		Status:      code.Description(),
		CSN:         d.text(frame.RespCSNStart, frame.RespCSNEnd),
		ResponseHex: hex.EncodeToString(resp),
	}, nil
}

// decodeOutcome reads the status pair and turns a non-zero minor byte into a rejection.
func decodeOutcome(cmd Command, resp []byte, amount int) (StatusCode, error) {
	code, err := DecodeStatus(cmd, resp)
	if err != nil {
		return code, err
	}
	if !code.Success() {
		return code, &RejectedError{
			Command:     cmd,
			Code:        code,
			Status:      code.Description(),
			ResponseHex: hex.EncodeToString(resp),
			Amount:      amount,
		}
	}
	return code, nil
}

// fieldDecoder slices fixed-offset fields and keeps the first error.
type fieldDecoder struct {
	err  error
	resp []byte
	cmd  Command
}

func (d *fieldDecoder) require(field string, offset, minLen int) error {
	if len(d.resp) < minLen {
		return &MalformedResponseError{Command: d.cmd, Field: field, Offset: offset, Length: len(d.resp)}
	}
	return nil
}

// text drops bytes that are not valid UTF-8.
func (d *fieldDecoder) text(start, end int) string {
	return strings.ToValidUTF8(string(d.resp[start:end]), "")
}

func (d *fieldDecoder) integer(field string, start, end int) int {
	if d.err != nil {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(d.resp[start:end])))
	if err != nil {
		d.err = &MalformedResponseError{Command: d.cmd, Field: field, Offset: start, Err: err}
		return 0
	}
	return n
}

func (d *fieldDecoder) date(field string, start, end int) string {
	if d.err != nil {
		return ""
	}
	t, err := time.Parse(frame.DateLayout, string(d.resp[start:end]))
	if err != nil {
		d.err = &MalformedResponseError{Command: d.cmd, Field: field, Offset: start, Err: err}
		return ""
	}
	return t.Format(displayDateLayout)
}
