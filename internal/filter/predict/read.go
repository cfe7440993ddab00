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

package predict

import (
	"fmt"

	"seehuhn.de/go/png/pngerr"
)

// Reverse undoes the scanline filters on the decompressed image data and
// returns the raw pixel bytes, without the filter type bytes.
//
// The length of data must be exactly p.FilteredSize(), otherwise a
// [pngerr.SizeMismatch] error is returned.  An unknown filter type leads
// to a [pngerr.CorruptStream] error.
func Reverse(data []byte, p *Params) ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, pngerr.New(pngerr.SizeMismatch, err.Error())
	}
	if len(data) != p.FilteredSize() {
		return nil, pngerr.New(pngerr.SizeMismatch,
			fmt.Sprintf("image data has %d bytes, expected %d", len(data), p.FilteredSize()))
	}

	stride := p.RowBytes()
	bpp := p.BytesPerPixel
	out := make([]byte, p.Height*stride)

	var prev []byte
	for y := range p.Height {
		line := data[y*(stride+1) : (y+1)*(stride+1)]
		cur := out[y*stride : (y+1)*stride]
		err := reverseRow(Type(line[0]), line[1:], cur, prev, bpp)
		if err != nil {
			return nil, pngerr.New(pngerr.CorruptStream,
				fmt.Sprintf("row %d: %v", y, err))
		}
		prev = cur
	}
	return out, nil
}

// reverseRow reconstructs one row into cur.  The previous row prev is nil
// for the first row of the image, which is treated as all zeros.
func reverseRow(ft Type, src, cur, prev []byte, bpp int) error {
	switch ft {
	case None:
		copy(cur, src)

	case Sub:
		copy(cur[:bpp], src[:bpp])
		for i := bpp; i < len(src); i++ {
			cur[i] = src[i] + cur[i-bpp]
		}

	case Up:
		if prev == nil {
			copy(cur, src)
			break
		}
		for i, x := range src {
			cur[i] = x + prev[i]
		}

	case Average:
		if prev == nil {
			copy(cur[:bpp], src[:bpp])
			for i := bpp; i < len(src); i++ {
				cur[i] = src[i] + cur[i-bpp]/2
			}
			break
		}
		for i := range bpp {
			cur[i] = src[i] + prev[i]/2
		}
		for i := bpp; i < len(src); i++ {
			cur[i] = src[i] + byte((int(cur[i-bpp])+int(prev[i]))/2)
		}

	case Paeth:
		if prev == nil {
			// with b = c = 0 the Paeth predictor always selects a
			copy(cur[:bpp], src[:bpp])
			for i := bpp; i < len(src); i++ {
				cur[i] = src[i] + cur[i-bpp]
			}
			break
		}
		for i := range bpp {
			cur[i] = src[i] + prev[i]
		}
		for i := bpp; i < len(src); i++ {
			cur[i] = src[i] + paethPredictor(cur[i-bpp], prev[i], prev[i-bpp])
		}

	default:
		return fmt.Errorf("invalid filter type %d", byte(ft))
	}
	return nil
}

// paethPredictor implements the Paeth prediction algorithm
func paethPredictor(a, b, c byte) byte {
	// a = left, b = above, c = upper left
	p := int(a) + int(b) - int(c)
	pa := abs(p - int(a))
	pb := abs(p - int(b))
	pc := abs(p - int(c))

	if pa <= pb && pa <= pc {
		return a
	}
	if pb <= pc {
		return b
	}
	return c
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
