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

package png

import (
	"encoding/binary"
	"fmt"
	"math"

	"seehuhn.de/go/png/pngerr"
)

// Header holds the contents of the IHDR chunk of a PNG file.
type Header struct {
	Width             uint32
	Height            uint32
	BitDepth          uint8
	ColorType         uint8
	CompressionMethod uint8
	FilterMethod      uint8
	InterlaceMethod   uint8
}

// ColorTypeRGB is the only PNG color type supported by the decoder:
// truecolor without alpha, 3 samples per pixel.
const ColorTypeRGB = 2

const headerSize = 13

// parseHeader decodes the payload of an IHDR chunk, located at byte
// offset pos in the file.
func parseHeader(data []byte, pos int64) (*Header, error) {
	if len(data) != headerSize {
		return nil, pngerr.At(pngerr.CorruptStream, pos,
			fmt.Sprintf("IHDR has %d bytes, expected %d", len(data), headerSize))
	}
	h := &Header{
		Width:             binary.BigEndian.Uint32(data[0:4]),
		Height:            binary.BigEndian.Uint32(data[4:8]),
		BitDepth:          data[8],
		ColorType:         data[9],
		CompressionMethod: data[10],
		FilterMethod:      data[11],
		InterlaceMethod:   data[12],
	}
	return h, nil
}

// checkSupported verifies that the header describes an image which the
// decoder can handle.  The argument pos is the file offset of the IHDR
// payload and is used for error reporting.
func (h *Header) checkSupported(pos int64) error {
	fields := []struct {
		name string
		off  int64
		ok   bool
	}{
		{"width", 0, h.Width >= 1 && h.Width <= math.MaxInt32},
		{"height", 4, h.Height >= 1 && h.Height <= math.MaxInt32},
		{"bit_depth", 8, h.BitDepth == 8},
		{"color_type", 9, h.ColorType == ColorTypeRGB},
		{"compression_method", 10, h.CompressionMethod == 0},
		{"filter_method", 11, h.FilterMethod == 0},
		{"interlace_method", 12, h.InterlaceMethod == 0},
	}
	for _, f := range fields {
		if !f.ok {
			return pngerr.At(pngerr.UnsupportedFormat, pos+f.off, f.name)
		}
	}
	return nil
}

// Pixels returns the number of pixels in the image.
func (h *Header) Pixels() int64 {
	return int64(h.Width) * int64(h.Height)
}
