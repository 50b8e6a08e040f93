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

// TransactionResult is a decoded successful debit or last-transaction response.
// It is not modified after decoding.
type TransactionResult struct {
	Status           string `json:"status"`
	TransactionID    string `json:"transaction_id"`
	TransactionDate  string `json:"transaction_date"`
	CardNumber       string `json:"card_number"`
	Bank             string `json:"bank"`
	TID              string `json:"tid"`
	MID              string `json:"mid"`
	ResponseHex      string `json:"response_as_hex"`
	Amount           int    `json:"amount"`
	BeginningBalance int    `json:"beginning_balance"`
	EndingBalance    int    `json:"ending_balance"`
}

// Balance is a decoded successful balance inquiry.
type Balance struct {
	Status      string `json:"status"`
	ResponseHex string `json:"response_as_hex"`
	Amount      int    `json:"amount"`
}

// MemberCard is a decoded successful member CSN query.
type MemberCard struct {
	Status      string `json:"status"`
	CSN         string `json:"csn_number"`
	ResponseHex string `json:"response_as_hex"`
}
