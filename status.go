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

import "fmt"

// UnknownStatus is returned for status pairs missing from the table.
const UnknownStatus = "Unknown Status"

// StatusCode is the (major, minor) pair at offsets 2 and 3 of a response.
// Minor 0x00 means success.
type StatusCode struct {
	Major byte
	Minor byte
}

// Success reports whether the terminal accepted the request.
func (c StatusCode) Success() bool {
	return c.Minor == 0x00
}

// Description resolves c against the status table.
func (c StatusCode) Description() string {
	return ResolveStatus(c.Major, c.Minor)
}

func (c StatusCode) String() string {
	return fmt.Sprintf("%02X%02X", c.Major, c.Minor)
}

// statusTable is read-only after init.
var statusTable = map[StatusCode]string{
	// Debit
	{0x01, 0x00}: "Transaction Success",
	{0x01, 0x01}: "Transaction Failed",
	{0x01, 0x02}: "Lost Contact",
	{0x01, 0x03}: "Not enough balance",
	{0x01, 0x04}: "Request Timeout",
	{0x01, 0x05}: "Expired",
	{0x01, 0x06}: "Not Active",
	{0x01, 0x07}: "Same ID Transaction",
	{0x01, 0x08}: "Mandiri Transaction < 10s",
	{0x01, 0x09}: "BNI Expired Card",
	{0x01, 0x98}: "Checksum Error",
	{0x01, 0x99}: "Undefined",

	// Echo
	{0x02, 0x00}: "Echo Success",

	// Last transaction
	{0x03, 0x00}: "Get Last Transaction Success",
	{0x03, 0x01}: "Get Last Transaction Failed",

	// Balance
	{0x04, 0x00}: "Check Balance Success",
	{0x04, 0x01}: "Check Balance Failed",
	{0x04, 0x04}: "Request Timeout",

	// Member / CSN
	{0x05, 0x00}: "Member with CSN Success",
	{0x05, 0x01}: "Member with CSN Failed",

	// Cancel debit
	{0x06, 0x00}: "Cancel Debit Success",
	{0x06, 0x01}: "Cancel Debit Failed",

	// LinkAja e-wallet payment
	{0x07, 0x00}: "LinkAja Payment Success",
	{0x07, 0x01}: "LinkAja Payment Failed",
	{0x07, 0x04}: "LinkAja Payment Time Out",
	{0x07, 0x07}: "LinkAja Order ID Existed",

	// Reversal / refund
	{0x08, 0x00}: "Reversal Refund Success",
	{0x08, 0x01}: "Reversal Refund LinkAja Failed Id Transaction not found",
	{0x08, 0x02}: "Reversal Refund LinkAja Server Error",
	{0x08, 0x04}: "Reversal Refund LinkAja TimeOut Server",

	// LinkAja payment status
	{0x09, 0x00}: "Check Status LinkAja Payment Paid",
	{0x09, 0x01}: "Check Status LinkAja Payment Unpaid",
	{0x09, 0x02}: "Check Status LinkAja Payment ID Transaction Not Exist",
	{0x09, 0x03}: "Check Status LinkAja Payment Server Error",
	{0x09, 0x04}: "Check Status LinkAja Payment Server Timeout",
	{0x09, 0x05}: "Check Status LinkAja Payment Expired",

	// CIMB bank-switch payment status
	{0x10, 0x00}: "Check Status CIMB Payment Paid",
	{0x10, 0x02}: "Check Status CIMB Payment ID Transaction Not Exist",
	{0x10, 0x03}: "Check Status CIMB Payment Server Error",
	{0x10, 0x04}: "Check Status CIMB Payment Server Timeout",
	{0x10, 0x05}: "Check Status CIMB Payment Expired",
}

// ResolveStatus returns the human-readable description of a status pair,
// or UnknownStatus.
func ResolveStatus(major, minor byte) string {
	if desc, ok := statusTable[StatusCode{Major: major, Minor: minor}]; ok {
		return desc
	}
	return UnknownStatus
}
