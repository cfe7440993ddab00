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

// Package predict reverses PNG scanline filters.
//
// PNG image data is a sequence of scanlines.  Each scanline consists of a
// filter type byte followed by the filtered bytes of one image row.  The
// filters predict every byte from its already decoded neighbours: a (the
// corresponding byte of the pixel to the left), b (the byte above) and
// c (the byte above and to the left).  Only the differences to the
// predictions are stored.
package predict

import (
	"errors"
	"math"
	"strconv"
)

// Type is a PNG filter type.
type Type byte

// The filter types defined for PNG filter method 0.
const (
	None    Type = 0
	Sub     Type = 1
	Up      Type = 2
	Average Type = 3
	Paeth   Type = 4
)

func (t Type) String() string {
	switch t {
	case None:
		return "None"
	case Sub:
		return "Sub"
	case Up:
		return "Up"
	case Average:
		return "Average"
	case Paeth:
		return "Paeth"
	default:
		return "Type(" + strconv.Itoa(int(t)) + ")"
	}
}

// Params describes the layout of the image data.
type Params struct {
	// Width is the number of pixels per row.
	Width int

	// Height is the number of rows.
	Height int

	// BytesPerPixel is the number of bytes used for each pixel.
	// This is the distance between a byte and its left neighbour.
	BytesPerPixel int
}

var errParams = errors.New("invalid image dimensions")

// Validate checks that the parameters describe an image whose filtered
// data fits in memory.
func (p *Params) Validate() error {
	if p.Width < 1 || p.Height < 1 || p.BytesPerPixel < 1 || p.BytesPerPixel > 8 {
		return errParams
	}
	if p.Width > (math.MaxInt32-1)/p.BytesPerPixel {
		return errParams
	}
	if p.Height > math.MaxInt/(p.RowBytes()+1) {
		return errParams
	}
	return nil
}

// RowBytes returns the number of bytes of pixel data in one row.
func (p *Params) RowBytes() int {
	return p.Width * p.BytesPerPixel
}

// FilteredSize returns the size of the filtered image data, including one
// filter type byte per row.
func (p *Params) FilteredSize() int {
	return p.Height * (p.RowBytes() + 1)
}
