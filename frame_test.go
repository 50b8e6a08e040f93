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
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edcbridge/go-aino/internal/frame"
	testutil "github.com/edcbridge/go-aino/internal/testing"
)

var testNow = time.Date(2025, time.March, 7, 14, 5, 9, 0, time.UTC)

func xorRange(data []byte, from, to int) byte {
	var lrc byte
	for _, b := range data[from:to] {
		lrc ^= b
	}
	return lrc
}

func TestEncodeDebitLayout(t *testing.T) {
	t.Parallel()

	frm := EncodeDebit("2", 10000, "TX", testNow)

	require.Len(t, frm, 63)
	assert.Equal(t, []byte{0x10, 0x02, 0x01}, frm[0:3])
	assert.Equal(t, "00000", string(frm[3:8]), "only the first 5 characters of the POS id fit")
	assert.Equal(t, "20210121", string(frm[8:16]))
	assert.Equal(t, []byte{0x00, 0x2A}, frm[16:18])
	assert.Equal(t, "00000000TX2503071405", string(frm[18:38]))
	assert.Equal(t, "00010000", string(frm[38:46]))
	assert.Equal(t, "07032025140509", string(frm[46:60]))
	assert.Equal(t, xorRange(frm, 3, 60), frm[60])
	assert.Equal(t, []byte{0x10, 0x03}, frm[61:63])
}

func TestEncodeDebitSilentTruncation(t *testing.T) {
	t.Parallel()

	frm := EncodeDebit("123456789", 123456789, "ABCDEFGHIJKLMNOPQRSTUVWXYZ", testNow)

	require.Len(t, frm, 63)
	assert.Equal(t, "12345", string(frm[3:8]))
	assert.Equal(t, "ABCDEFGHIJKLMNOPQRST", string(frm[18:38]))
	assert.Equal(t, "12345678", string(frm[38:46]))
	assert.Equal(t, xorRange(frm, 3, 60), frm[60])
}

func TestEncodeLastTransaction(t *testing.T) {
	t.Parallel()

	frm := EncodeLastTransaction("2")

	require.Len(t, frm, 21)
	assert.Equal(t, []byte{0x10, 0x02, 0x03}, frm[0:3])
	assert.Equal(t, "00002", string(frm[3:8]))
	assert.Equal(t, "20210121", string(frm[8:16]))
	assert.Equal(t, []byte{0x00, 0x00}, frm[16:18])
	assert.Equal(t, xorRange(frm, 3, 18), frm[18])
	assert.Equal(t, []byte{0x10, 0x03}, frm[19:21])
}

func TestEncodeFixedFrames(t *testing.T) {
	t.Parallel()

	balance := EncodeBalanceInquiry()
	assert.Equal(t, "1002043030303031310000001003", hex.EncodeToString(balance))

	// Callers must not be able to corrupt the shared frame
	balance[2] = 0xFF
	assert.Equal(t, byte(0x04), EncodeBalanceInquiry()[2])

	assert.Equal(t, []byte{0x10, 0x02, 0x05, 0x10, 0x03}, EncodeMemberCSN())
}

func TestDecodeTransactionSuccess(t *testing.T) {
	t.Parallel()

	resp := testutil.TransactionResponse{
		Command:          0x01,
		TransactionID:    "00000000TX2503071405",
		Amount:           10000,
		Date:             testNow,
		Card:             "6032984012345678",
		BeginningBalance: 50000,
		EndingBalance:    40000,
		Bank:             "BRI",
	}.Bytes()

	result, err := DecodeTransaction(CmdDebit, resp, 10000, DefaultBankTable())
	require.NoError(t, err)

	assert.Equal(t, "Transaction Success", result.Status)
	assert.Equal(t, "00000000TX2503071405", result.TransactionID)
	assert.Equal(t, 10000, result.Amount)
	assert.Equal(t, "07-03-2025 14:05:09", result.TransactionDate)
	assert.Equal(t, "6032984012345678", result.CardNumber)
	assert.Equal(t, 50000, result.BeginningBalance)
	assert.Equal(t, 40000, result.EndingBalance)
	assert.Equal(t, "BRI", result.Bank)
	assert.Equal(t, "55550000", result.TID)
	assert.Equal(t, "123456789012345", result.MID)
	assert.Equal(t, hex.EncodeToString(resp), result.ResponseHex)
}

func TestDecodeTransactionUnknownBank(t *testing.T) {
	t.Parallel()

	resp := testutil.TransactionResponse{Command: 0x03, Date: testNow, Bank: "ZZZ"}.Bytes()

	result, err := DecodeTransaction(CmdLastTransaction, resp, 0, DefaultBankTable())
	require.NoError(t, err)
	assert.Equal(t, "Get Last Transaction Success", result.Status)
	assert.Equal(t, UnknownTID, result.TID)
	assert.Equal(t, UnknownMID, result.MID)
}

func TestDecodeTransactionRejected(t *testing.T) {
	t.Parallel()

	resp := testutil.BuildStatusResponse(0x01, 0x03)

	result, err := DecodeTransaction(CmdDebit, resp, 10000, DefaultBankTable())
	require.Nil(t, result)
	require.ErrorIs(t, err, ErrDeviceRejected)

	var rejected *RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, "Not enough balance", rejected.Status)
	assert.Equal(t, 10000, rejected.Amount)
	assert.Equal(t, hex.EncodeToString(resp), rejected.ResponseHex)
	assert.Equal(t, StatusCode{Major: 0x01, Minor: 0x03}, rejected.Code)
}

func TestDecodeTransactionMalformed(t *testing.T) {
	t.Parallel()

	good := testutil.TransactionResponse{Command: 0x01, Amount: 10, Date: testNow, Bank: "BRI"}.Bytes()

	badAmount := append([]byte(nil), good...)
	copy(badAmount[frame.RespAmountStart:], "12AB5678")

	badDate := append([]byte(nil), good...)
	copy(badDate[frame.RespDateStart:], "99999999999999")

	tests := []struct {
		name  string
		field string
		resp  []byte
	}{
		{name: "too short for status", resp: []byte{0x10, 0x02, 0x01}, field: "status"},
		{name: "success but truncated", resp: good[:60], field: "bank"},
		{name: "non numeric amount", resp: badAmount, field: "amount"},
		{name: "invalid date", resp: badDate, field: "transaction_date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result, err := DecodeTransaction(CmdDebit, tt.resp, 10, DefaultBankTable())
			require.Nil(t, result)
			require.ErrorIs(t, err, ErrMalformedResponse)

			var malformed *MalformedResponseError
			require.ErrorAs(t, err, &malformed)
			assert.Equal(t, tt.field, malformed.Field)
		})
	}
}

func TestDecodeBalance(t *testing.T) {
	t.Parallel()

	balance, err := DecodeBalance(testutil.BuildBalanceResponse(75500))
	require.NoError(t, err)
	assert.Equal(t, 75500, balance.Amount)
	assert.Equal(t, "Check Balance Success", balance.Status)

	_, err = DecodeBalance(testutil.BuildStatusResponse(0x04, 0x01))
	require.ErrorIs(t, err, ErrDeviceRejected)

	_, err = DecodeBalance(testutil.BuildBalanceResponse(1)[:30])
	require.ErrorIs(t, err, ErrMalformedResponse)
}

func TestDecodeMemberCSN(t *testing.T) {
	t.Parallel()

	card, err := DecodeMemberCSN(testutil.BuildMemberCSNResponse("04A1B2C3D4E5F601"))
	require.NoError(t, err)
	assert.Equal(t, "04A1B2C3D4E5F601", card.CSN)
	assert.Equal(t, "Member with CSN Success", card.Status)

	_, err = DecodeMemberCSN(testutil.BuildStatusResponse(0x05, 0x01))
	require.ErrorIs(t, err, ErrDeviceRejected)
}

// Encoding a debit and decoding the simulated terminal echo reproduces the amount
// and the generated transaction id.
func TestDebitRoundTrip(t *testing.T) {
	t.Parallel()

	amounts := []int{0, 1, 500, 10000, 99999999, 123456789}
	codes := []string{"", "TX", "POS01", "ABCDEFGHIJKLMNOPQRSTUV"}

	for _, amount := range amounts {
		for _, code := range codes {
			t.Run(fmt.Sprintf("%d_%s", amount, code), func(t *testing.T) {
				t.Parallel()

				vt := testutil.NewVirtualTerminal("BNI", 200000000)
				vt.Now = func() time.Time { return testNow }

				req := EncodeDebit("2", amount, code, testNow)
				lines := vt.Respond(req)
				require.Len(t, lines, 1)

				result, err := DecodeTransaction(CmdDebit, lines[0], amount, DefaultBankTable())
				require.NoError(t, err)

				wantAmount := string(frame.FixedWidthInt(amount, 8))
				assert.Equal(t, wantAmount, fmt.Sprintf("%08d", result.Amount))
				assert.Equal(t, string(frame.TransactionID(code, testNow)), result.TransactionID)
				assert.Len(t, result.TransactionID, 20)
			})
		}
	}
}
