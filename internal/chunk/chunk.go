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

// Package chunk splits a PNG file into its chunks.
//
// A PNG file consists of an 8-byte signature, followed by a sequence of
// chunks.  Each chunk has the layout
//
//	[u32 length] [4-byte type] [length bytes of data] [u32 CRC]
//
// where all integers are big-endian.  The [Reader] in this package checks
// the signature and then returns the chunks one by one, as values of the
// sealed [Chunk] interface.  Chunk payloads are sub-slices of the input
// buffer; they are only valid as long as the caller does not modify the
// input.
package chunk

import (
	"golang.org/x/exp/slices"
)

// Type is a four-letter PNG chunk type code.
type Type [4]byte

// The chunk types with special meaning to the decoder.
var (
	TypeIHDR = Type{'I', 'H', 'D', 'R'}
	TypePLTE = Type{'P', 'L', 'T', 'E'}
	TypeIDAT = Type{'I', 'D', 'A', 'T'}
	TypeIEND = Type{'I', 'E', 'N', 'D'}
)

var known = []Type{TypeIHDR, TypePLTE, TypeIDAT, TypeIEND}

func (t Type) String() string {
	return string(t[:])
}

// IsAncillary reports whether the chunk type is marked as ancillary,
// i.e. whether bit 5 of the first byte is set.  Decoders may safely
// ignore ancillary chunks they do not understand.
func (t Type) IsAncillary() bool {
	return t[0]&0x20 != 0
}

// IsKnown reports whether t is one of the chunk types the decoder
// interprets: IHDR, PLTE, IDAT or IEND.
func (t Type) IsKnown() bool {
	return slices.Contains(known, t)
}

func (t Type) isValid() bool {
	for _, c := range t {
		if !(c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z') {
			return false
		}
	}
	return true
}

// Chunk is one record of a PNG file.
// The concrete types are [IHDR], [PLTE], [IDAT], [IEND] and [Ancillary].
type Chunk interface {
	Type() Type
	isChunk()
}

// IHDR is the image header chunk.  The payload is decoded by the caller.
type IHDR struct {
	Data []byte
}

// PLTE is the palette chunk.
type PLTE struct {
	Data []byte
}

// IDAT holds a piece of the compressed image data.
type IDAT struct {
	Data []byte
}

// IEND marks the end of the PNG file.
type IEND struct{}

// Ancillary is a chunk which the decoder does not interpret.
type Ancillary struct {
	Name Type
	Data []byte
}

func (IHDR) Type() Type        { return TypeIHDR }
func (PLTE) Type() Type        { return TypePLTE }
func (IDAT) Type() Type        { return TypeIDAT }
func (IEND) Type() Type        { return TypeIEND }
func (c Ancillary) Type() Type { return c.Name }

func (IHDR) isChunk()      {}
func (PLTE) isChunk()      {}
func (IDAT) isChunk()      {}
func (IEND) isChunk()      {}
func (Ancillary) isChunk() {}
