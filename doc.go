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

/*
Package aino drives Aino EDC payment terminals over a serial line.

The terminal speaks a framed ASCII protocol: every request and response is
wrapped in DLE STX / DLE ETX and sealed with an XOR checksum. Numbers travel
as zero-padded fixed-width decimal fields. The package encodes requests,
decodes responses and serializes access to the one terminal on the port.

Features:
  - Debit, balance inquiry, last transaction and member CSN commands
  - Status table covering every documented (major, minor) response code
  - Per-bank TID/MID table, overridable from YAML
  - One exchange at a time with a bounded response timeout
  - USB serial auto-detection with a VID:PID blocklist
  - Observer hook for metrics and state changes

Basic Usage:

	import (
	    "github.com/edcbridge/go-aino"
	    "github.com/edcbridge/go-aino/transport/uart"
	)

	session, err := aino.NewSession(uart.Factory,
	    aino.WithPort("/dev/ttyUSB0"),
	    aino.WithResponseTimeout(90*time.Second),
	)
	if err != nil {
	    log.Fatal(err)
	}
	if _, err := session.Open(ctx); err != nil {
	    log.Fatal(err)
	}
	defer session.Close()

	terminal, err := aino.NewTerminal(session, aino.WithPOSID("2"))
	if err != nil {
	    log.Fatal(err)
	}

	result, err := terminal.Debit(ctx, 10000, "INV001")
	if err != nil {
	    var rejected *aino.RejectedError
	    if errors.As(err, &rejected) {
	        fmt.Println("rejected:", rejected.Status)
	    }
	    return
	}
	fmt.Printf("%s %d -> %d\n", result.Bank, result.BeginningBalance, result.EndingBalance)

Session States:

A Session is Disconnected until Open succeeds, Ready between exchanges and
Busy while a frame is on the wire. Balance and CSN queries refuse to wait
for a busy terminal; Debit and LastTransaction queue behind it.

Error Handling:

Errors can be inspected with errors.Is:

	switch {
	case errors.Is(err, aino.ErrDeviceRejected):
	    // terminal answered with a failure status
	case errors.Is(err, aino.ErrResponseTimeout):
	    // no complete frame within the response timeout
	case errors.Is(err, aino.ErrTransportUnavailable):
	    // port closed or could not be opened
	}

Thread Safety:

Session and Terminal are safe for concurrent use.
*/
package aino
