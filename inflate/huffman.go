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
	"errors"
	"math/bits"

	"seehuhn.de/go/png/pngerr"
)

const (
	fastBits = 9
	fastMask = 1<<fastBits - 1
)

var (
	errOverSubscribed = errors.New("over-subscribed Huffman code")
	errIncomplete     = errors.New("incomplete Huffman code")
)

// huffman is a canonical Huffman code.
//
// Codes are assigned shortest first, codes of equal length in order of
// increasing symbol value.  Codes of up to fastBits bits are found by a
// single table lookup, longer codes are decoded one bit at a time.
type huffman struct {
	count  [maxCodeLen + 1]uint16 // number of codes of each length
	symbol []uint16               // symbols, ordered by code
	maxLen uint

	// fast is indexed by the next fastBits bits of the input, in the
	// order they are read.  An entry holds sym<<4 | length, or 0 if the
	// code is longer than fastBits bits.
	fast [1 << fastBits]uint16
}

// build constructs the canonical code for the given code lengths, where
// lengths[sym] == 0 means that sym does not occur.  The code must be
// complete, except that an empty code and a code consisting of a single
// one-bit code are allowed if allowSingle is set.
func (h *huffman) build(lengths []uint8, allowSingle bool) error {
	*h = huffman{symbol: h.symbol[:0]}

	for _, l := range lengths {
		h.count[l]++
	}
	h.count[0] = 0

	left := 1
	for l := 1; l <= maxCodeLen; l++ {
		left <<= 1
		left -= int(h.count[l])
		if left < 0 {
			return errOverSubscribed
		}
		if h.count[l] > 0 {
			h.maxLen = uint(l)
		}
	}
	if left > 0 {
		single := h.maxLen == 1 && h.count[1] == 1
		empty := h.maxLen == 0
		if !allowSingle || !(single || empty) {
			return errIncomplete
		}
	}

	// offs[l] is the index in symbol of the first code of length l
	var offs [maxCodeLen + 2]uint16
	for l := 1; l <= maxCodeLen; l++ {
		offs[l+1] = offs[l] + h.count[l]
	}
	n := int(offs[maxCodeLen+1])
	if cap(h.symbol) < n {
		h.symbol = make([]uint16, n)
	} else {
		h.symbol = h.symbol[:n]
	}

	// next[l] is the next unused code of length l
	var next [maxCodeLen + 1]uint32
	code := uint32(0)
	for l := 1; l <= maxCodeLen; l++ {
		code = (code + uint32(h.count[l-1])) << 1
		next[l] = code
	}

	for sym, l := range lengths {
		if l == 0 {
			continue
		}
		h.symbol[offs[l]] = uint16(sym)
		offs[l]++

		c := next[l]
		next[l]++
		if uint(l) > fastBits {
			continue
		}
		// the first bit of the code is read first, so it goes into
		// the least significant position of the table index
		rev := bits.Reverse16(uint16(c)) >> (16 - l)
		entry := uint16(sym)<<4 | uint16(l)
		for i := uint(rev); i < 1<<fastBits; i += 1 << l {
			h.fast[i] = entry
		}
	}
	return nil
}

// decode reads one symbol from br.
func (h *huffman) decode(br *bitReader) (int, error) {
	if h.maxLen == 0 {
		return 0, pngerr.At(pngerr.CorruptStream, br.offset(), "use of empty Huffman code")
	}

	if br.fill(fastBits) || br.nbits > 0 {
		e := h.fast[br.cur&fastMask]
		if n := uint(e & 15); n > 0 && n <= br.nbits {
			br.consume(n)
			return int(e >> 4), nil
		}
	}

	start := br.offset()
	var code, first, index int
	for l := uint(1); l <= h.maxLen; l++ {
		b, err := br.readBits(1)
		if err != nil {
			return 0, err
		}
		code |= int(b)
		count := int(h.count[l])
		if code-first < count {
			return int(h.symbol[index+code-first]), nil
		}
		index += count
		first = (first + count) << 1
		code <<= 1
	}
	return 0, pngerr.At(pngerr.CorruptStream, start, "invalid Huffman code")
}
