// seehuhn.de/go/png - a decoder for PNG images
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package inflate

import (
	"seehuhn.de/go/png/pngerr"
)

// bitReader reads a DEFLATE bit stream.  Bits are taken from each byte
// starting with the least significant bit.
type bitReader struct {
	data  []byte
	pos   int    // next byte to load into current
	cur   uint64 // buffered bits, next bit in the least significant position
	nbits uint   // number of valid bits in cur

	// used counts the bits consumed so far.
	used int64
}

// offset returns the position of the byte holding the next unread bit.
func (br *bitReader) offset() int64 {
	return int64(br.pos) - int64(br.nbits/8) - boolToInt64(br.nbits%8 != 0)
}

func boolToInt64(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// fill tries to make at least n bits available.  It returns false if the
// input ends first; in this case all remaining bits are buffered.
func (br *bitReader) fill(n uint) bool {
	for br.nbits < n {
		if br.pos >= len(br.data) {
			return false
		}
		br.cur |= uint64(br.data[br.pos]) << br.nbits
		br.pos++
		br.nbits += 8
	}
	return true
}

func (br *bitReader) consume(n uint) {
	br.cur >>= n
	br.nbits -= n
	br.used += int64(n)
}

// readBits reads an n-bit integer, 0 <= n <= 32.
func (br *bitReader) readBits(n uint) (uint32, error) {
	if n == 0 {
		return 0, nil
	}
	if !br.fill(n) {
		return 0, pngerr.At(pngerr.TruncatedInput, int64(len(br.data)), "compressed data ends mid-block")
	}
	x := uint32(br.cur & (1<<n - 1))
	br.consume(n)
	return x, nil
}

// alignByte discards the bits up to the next byte boundary.
func (br *bitReader) alignByte() {
	br.consume(br.nbits % 8)
}

// readBytes reads n bytes from a byte-aligned position.
// The returned slice refers to the input data.
func (br *bitReader) readBytes(n int) ([]byte, error) {
	if br.nbits%8 != 0 {
		panic("inflate: unaligned byte read")
	}
	// give back buffered whole bytes
	br.pos -= int(br.nbits / 8)
	br.cur = 0
	br.nbits = 0

	if n > len(br.data)-br.pos {
		return nil, pngerr.At(pngerr.TruncatedInput, int64(len(br.data)),
			"stored block extends past the end of the data")
	}
	res := br.data[br.pos : br.pos+n]
	br.pos += n
	br.used += 8 * int64(n)
	return res, nil
}
