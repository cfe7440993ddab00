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
	"encoding/binary"
	"hash/adler32"
)

// bitWriter assembles DEFLATE bit streams by hand, for testing the
// handling of streams which an encoder would never produce.
type bitWriter struct {
	buf   []byte
	cur   uint32
	nbits uint
}

// bits writes the n least significant bits of x, least significant bit
// first.  This is the order used for header fields and extra bits.
func (w *bitWriter) bits(x uint32, n uint) *bitWriter {
	for i := range n {
		w.cur |= (x >> i & 1) << w.nbits
		w.nbits++
		if w.nbits == 8 {
			w.buf = append(w.buf, byte(w.cur))
			w.cur = 0
			w.nbits = 0
		}
	}
	return w
}

// code writes an n-bit Huffman code, most significant bit first.
func (w *bitWriter) code(c uint32, n uint) *bitWriter {
	for i := n; i > 0; i-- {
		w.bits(c>>(i-1)&1, 1)
	}
	return w
}

// fixed writes sym using the fixed literal/length code.
func (w *bitWriter) fixed(sym int) *bitWriter {
	switch {
	case sym < 144:
		return w.code(uint32(0x30+sym), 8)
	case sym < 256:
		return w.code(uint32(0x190+sym-144), 9)
	case sym < 280:
		return w.code(uint32(sym-256), 7)
	default:
		return w.code(uint32(0xC0+sym-280), 8)
	}
}

// dist writes a distance symbol using the fixed distance code.
func (w *bitWriter) dist(sym int) *bitWriter {
	return w.code(uint32(sym), 5)
}

func (w *bitWriter) align() *bitWriter {
	if w.nbits > 0 {
		w.bits(0, 8-w.nbits)
	}
	return w
}

func (w *bitWriter) bytes(b ...byte) *bitWriter {
	w.align()
	w.buf = append(w.buf, b...)
	return w
}

// raw returns the raw DEFLATE data written so far.
func (w *bitWriter) raw() []byte {
	w.align()
	return w.buf
}

// zlib wraps the data written so far into a zlib stream, with an Adler-32
// checksum computed over the given decompressed data.
func (w *bitWriter) zlib(decompressed []byte) []byte {
	res := append([]byte{0x78, 0x01}, w.raw()...)
	return binary.BigEndian.AppendUint32(res, adler32.Checksum(decompressed))
}
