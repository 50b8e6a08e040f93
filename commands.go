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

// Command is the command byte at offset 2 of every frame.
type Command byte

// Terminal command codes. Each status family in the status table shares its major
// byte with the command that produced it.
const (
	CmdDebit           Command = 0x01
	CmdEcho            Command = 0x02
	CmdLastTransaction Command = 0x03
	CmdBalanceInquiry  Command = 0x04
	CmdMemberCSN       Command = 0x05
	CmdCancelDebit     Command = 0x06
	CmdLinkAjaPayment  Command = 0x07
	CmdReversalRefund  Command = 0x08
	CmdLinkAjaStatus   Command = 0x09
	CmdCIMBStatus      Command = 0x10
)

// String returns a stable lowercase name, used in logs and metric labels.
func (c Command) String() string {
	switch c {
	case CmdDebit:
		return "debit"
	case CmdEcho:
		return "echo"
	case CmdLastTransaction:
		return "last_transaction"
	case CmdBalanceInquiry:
		return "balance_inquiry"
	case CmdMemberCSN:
		return "member_csn"
	case CmdCancelDebit:
		return "cancel_debit"
	case CmdLinkAjaPayment:
		return "linkaja_payment"
	case CmdReversalRefund:
		return "reversal_refund"
	case CmdLinkAjaStatus:
		return "linkaja_status"
	case CmdCIMBStatus:
		return "cimb_status"
	default:
		return fmt.Sprintf("cmd_%02x", byte(c))
	}
}

// commandOf returns the command byte of a request frame.
func commandOf(frm []byte) Command {
	if len(frm) < 3 {
		return 0
	}
	return Command(frm[2])
}
