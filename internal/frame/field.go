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

import "strconv"

// FixedWidth formats value into exactly width ASCII bytes. Short values are left-padded
// with '0'; long values keep their first width characters. Overflow is silent.
func FixedWidth(value string, width int) []byte {
	if width <= 0 {
		return []byte{}
	}
	switch {
	case len(value) < width:
		out := make([]byte, width)
		pad := width - len(value)
		for i := 0; i < pad; i++ {
			out[i] = '0'
		}
		copy(out[pad:], value)
		return out
	case len(value) > width:
		return []byte(value[:width])
	default:
		return []byte(value)
	}
}

// FixedWidthInt is FixedWidth over the decimal representation of value.
// An amount of 123456789 in a width-8 field becomes "12345678".
func FixedWidthInt(value, width int) []byte {
	return FixedWidth(strconv.Itoa(value), width)
}
