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

// Package pngtest builds PNG files for use in tests.
//
// The functions in this package give tests full control over the
// structure of the generated files: chunk order, the filter type used for
// every scanline, how the compressed data is split into IDAT chunks, and
// how the zlib stream is constructed.
package pngtest

import (
	"bytes"
	"encoding/binary"
	"hash/adler32"
	"hash/crc32"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zlib"

	"seehuhn.de/go/png/internal/filter/predict"
)

// Signature is the PNG file signature.
var Signature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}

// Chunk encodes a single chunk, including the length prefix and a valid
// CRC-32 trailer.
func Chunk(tp string, data []byte) []byte {
	if len(tp) != 4 {
		panic("chunk type must have 4 bytes")
	}
	buf := make([]byte, 0, 12+len(data))
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(data)))
	buf = append(buf, tp...)
	buf = append(buf, data...)
	crc := crc32.ChecksumIEEE(buf[4:])
	return binary.BigEndian.AppendUint32(buf, crc)
}

// File concatenates the signature and the given chunks.
func File(chunks ...[]byte) []byte {
	res := bytes.Clone(Signature)
	for _, c := range chunks {
		res = append(res, c...)
	}
	return res
}

// Header describes the contents of an IHDR chunk.
type Header struct {
	Width, Height     uint32
	BitDepth          byte
	ColorType         byte
	CompressionMethod byte
	FilterMethod      byte
	InterlaceMethod   byte
}

// RGB returns the header of an 8-bit truecolor image without interlacing.
func RGB(width, height uint32) Header {
	return Header{Width: width, Height: height, BitDepth: 8, ColorType: 2}
}

// IHDR encodes h as an IHDR chunk.
func (h Header) IHDR() []byte {
	data := make([]byte, 13)
	binary.BigEndian.PutUint32(data[0:], h.Width)
	binary.BigEndian.PutUint32(data[4:], h.Height)
	data[8] = h.BitDepth
	data[9] = h.ColorType
	data[10] = h.CompressionMethod
	data[11] = h.FilterMethod
	data[12] = h.InterlaceMethod
	return Chunk("IHDR", data)
}

// IEND returns an IEND chunk.
func IEND() []byte {
	return Chunk("IEND", nil)
}

// IDAT splits the compressed stream z into IDAT chunks of at most size
// bytes each.  If size is not positive, a single chunk is used.
func IDAT(z []byte, size int) []byte {
	if size <= 0 {
		size = max(len(z), 1)
	}
	var res []byte
	for {
		n := min(size, len(z))
		res = append(res, Chunk("IDAT", z[:n])...)
		z = z[n:]
		if len(z) == 0 {
			break
		}
	}
	return res
}

// Zlib compresses data into a zlib stream, using the given compression
// level.  Use flate.HuffmanOnly to get a stream without back-references,
// flate.NoCompression for stored blocks only.
func Zlib(data []byte, level int) []byte {
	buf := &bytes.Buffer{}
	w, err := zlib.NewWriterLevel(buf, level)
	if err != nil {
		panic(err)
	}
	_, err = w.Write(data)
	if err != nil {
		panic(err)
	}
	err = w.Close()
	if err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// Stored builds a zlib stream which holds data in uncompressed blocks of at
// most blockSize bytes each.
func Stored(data []byte, blockSize int) []byte {
	orig := data
	blockSize = min(max(blockSize, 1), 0xFFFF)
	res := []byte{0x78, 0x01}
	for {
		n := min(blockSize, len(data))
		var final byte
		if n == len(data) {
			final = 1
		}
		res = append(res, final)
		res = binary.LittleEndian.AppendUint16(res, uint16(n))
		res = binary.LittleEndian.AppendUint16(res, ^uint16(n))
		res = append(res, data[:n]...)
		data = data[n:]
		if final == 1 {
			break
		}
	}
	return WithAdler(res, orig)
}

// WithAdler appends the Adler-32 checksum of data to the raw zlib stream
// prefix z.
func WithAdler(z, data []byte) []byte {
	return binary.BigEndian.AppendUint32(z, adler32.Checksum(data))
}

// Options control how [Encode] builds a PNG file.
type Options struct {
	// Filters gives the filter type for every row, cycling through the
	// list.  The default is to choose a filter type for every row.
	Filters []predict.Type

	// Level is the compression level passed to the zlib writer.
	// The value 0 means no compression, i.e. stored blocks only.
	Level int

	// IDATSize is the maximal size of an IDAT chunk.
	// If it is not positive, a single IDAT chunk is used.
	IDATSize int
}

// Encode builds a complete PNG file for an 8-bit RGB image.
func Encode(width, height int, pix []byte, opt *Options) []byte {
	if opt == nil {
		opt = &Options{Level: flate.DefaultCompression}
	}
	raw := Filter(pix, width, height, 3, opt.Filters...)
	z := Zlib(raw, opt.Level)
	return File(
		RGB(uint32(width), uint32(height)).IHDR(),
		IDAT(z, opt.IDATSize),
		IEND(),
	)
}

// Pattern returns deterministic pixel data for an RGB image of the given
// size, mixing smooth gradients with some noise.
func Pattern(width, height int) []byte {
	pix := make([]byte, width*height*3)
	seed := uint32(1)
	for y := range height {
		for x := range width {
			seed = seed*1664525 + 1013904223
			i := (y*width + x) * 3
			pix[i] = byte(x * 7)
			pix[i+1] = byte(y*5 + x)
			if x%5 == 0 {
				pix[i+2] = byte(seed >> 24)
			} else {
				pix[i+2] = byte(x ^ y)
			}
		}
	}
	return pix
}
