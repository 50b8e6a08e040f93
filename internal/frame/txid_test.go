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

package frame

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTransactionID(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.March, 7, 14, 5, 9, 0, time.UTC)

	tests := []struct {
		name string
		code string
		want string
	}{
		{name: "short code is padded", code: "TX", want: "00000000TX2503071405"},
		{name: "empty code", code: "", want: "00000000002503071405"},
		{name: "long code truncates the time", code: "INVOICE-000123", want: "INVOICE-000123250307"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := TransactionID(tt.code, now)
			assert.Len(t, got, TxIDWidth)
			assert.Equal(t, tt.want, string(got))
		})
	}
}
