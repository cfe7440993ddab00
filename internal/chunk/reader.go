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

package chunk

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"

	"seehuhn.de/go/png/pngerr"
)

// Signature is the fixed 8-byte sequence at the start of every PNG file.
var Signature = [8]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}

// CheckSignature verifies that data starts with the PNG signature.
// The returned error identifies the offset of the first mismatching byte.
func CheckSignature(data []byte) error {
	for i, want := range Signature {
		if i >= len(data) {
			return pngerr.At(pngerr.TruncatedInput, int64(i), "signature")
		}
		if data[i] != want {
			return pngerr.At(pngerr.InvalidSignature, int64(i),
				fmt.Sprintf("byte %d is 0x%02X, expected 0x%02X", i, data[i], want))
		}
	}
	return nil
}

// Reader returns the chunks of a PNG file held in memory.
type Reader struct {
	data []byte
	pos  int
	last int // payload offset of the chunk most recently returned

	// VerifyCRC enables checking the CRC-32 trailer of every chunk.
	// By default the trailer is read but not checked.
	VerifyCRC bool
}

// NewReader checks the PNG signature at the start of data and returns a
// Reader positioned at the first chunk.
func NewReader(data []byte) (*Reader, error) {
	err := CheckSignature(data)
	if err != nil {
		return nil, err
	}
	return &Reader{data: data, pos: len(Signature)}, nil
}

// Pos returns the offset of the next unread byte in the input.
func (r *Reader) Pos() int64 {
	return int64(r.pos)
}

// Next returns the next chunk.  At the end of the input, [io.EOF] is
// returned.  All other errors are of type [*pngerr.Error].
//
// Chunk type codes must consist of four ASCII letters; a type containing
// any other byte, for example "tE1t", is an [pngerr.InvalidChunkType]
// error even if the ancillary bit is set.  Unknown chunk types are
// returned as [Ancillary] chunks if the ancillary bit is set, and are an
// [pngerr.InvalidChunkType] error otherwise.
func (r *Reader) Next() (Chunk, error) {
	if r.pos >= len(r.data) {
		return nil, io.EOF
	}
	start := r.pos
	rest := r.data[start:]

	if len(rest) < 8 {
		return nil, pngerr.At(pngerr.TruncatedInput, int64(start), "chunk header")
	}
	length := binary.BigEndian.Uint32(rest[0:4])
	var tp Type
	copy(tp[:], rest[4:8])

	if !tp.isValid() {
		return nil, pngerr.At(pngerr.InvalidChunkType, int64(start+4),
			fmt.Sprintf("%q", tp[:]))
	}

	if uint64(length) > uint64(len(rest)-8) {
		return nil, pngerr.At(pngerr.TruncatedInput, int64(start+8),
			fmt.Sprintf("%s data: need %d bytes, have %d", tp, length, len(rest)-8))
	}
	dataEnd := 8 + int(length)
	if len(rest)-dataEnd < 4 {
		return nil, pngerr.At(pngerr.TruncatedInput, int64(start+dataEnd),
			tp.String()+" CRC")
	}
	data := rest[8:dataEnd:dataEnd]

	if r.VerifyCRC {
		stored := binary.BigEndian.Uint32(rest[dataEnd : dataEnd+4])
		computed := crc32.ChecksumIEEE(rest[4:dataEnd])
		if stored != computed {
			return nil, pngerr.At(pngerr.ChecksumMismatch, int64(start+dataEnd),
				fmt.Sprintf("%s CRC is 0x%08X, computed 0x%08X", tp, stored, computed))
		}
	}
	r.pos = start + dataEnd + 4
	r.last = start + 8

	switch tp {
	case TypeIHDR:
		return IHDR{Data: data}, nil
	case TypePLTE:
		return PLTE{Data: data}, nil
	case TypeIDAT:
		return IDAT{Data: data}, nil
	case TypeIEND:
		return IEND{}, nil
	}
	if !tp.IsAncillary() {
		return nil, pngerr.At(pngerr.InvalidChunkType, int64(start+4),
			"unknown critical chunk "+tp.String())
	}
	return Ancillary{Name: tp, Data: data}, nil
}

// DataPos returns the input offset of the payload of the
// chunk most recently returned by Next.
func (r *Reader) DataPos() int64 {
	return int64(r.last)
}
