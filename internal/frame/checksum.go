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

// Checksum returns the LRC of data: every byte XORed together.
//
// XOR detects any single-bit error but not an even number of flips in the same bit
// position, so it is a framing check rather than an integrity guarantee.
func Checksum(data []byte) byte {
	var lrc byte
	for _, b := range data {
		lrc ^= b
	}
	return lrc
}

// FrameChecksum computes the LRC over a full frame, skipping the header and trailer.
// Frames shorter than header+trailer have an empty span and a zero checksum.
func FrameChecksum(frm []byte) byte {
	if len(frm) <= HeaderLen+TrailerLen {
		return 0
	}
	return Checksum(frm[HeaderLen : len(frm)-TrailerLen])
}
