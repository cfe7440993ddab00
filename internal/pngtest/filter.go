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

package pngtest

import (
	"seehuhn.de/go/png/internal/filter/predict"
)

// Optimum is not a filter type which can appear in a PNG file.
// When passed to [Filter], a filter type is chosen separately for every
// row, using the minimum sum of absolute differences heuristic.
const Optimum predict.Type = 255

// Filter applies PNG scanline filters to the raw image data pix and
// returns the filtered scanlines, each preceded by its filter type byte.
// Row y uses filters[y % len(filters)]; if filters is empty, [Optimum] is
// used for all rows.
func Filter(pix []byte, width, height, bpp int, filters ...predict.Type) []byte {
	p := &predict.Params{Width: width, Height: height, BytesPerPixel: bpp}
	if err := p.Validate(); err != nil {
		panic(err)
	}
	stride := p.RowBytes()
	if len(pix) != height*stride {
		panic("pngtest: wrong amount of pixel data")
	}
	if len(filters) == 0 {
		filters = []predict.Type{Optimum}
	}

	out := make([]byte, p.FilteredSize())
	var prev []byte
	for y := range height {
		row := pix[y*stride : (y+1)*stride]
		line := out[y*(stride+1) : (y+1)*(stride+1)]

		ft := filters[y%len(filters)]
		if ft == Optimum {
			ft = chooseFilter(row, prev, bpp, line[1:])
		}
		line[0] = byte(ft)
		filterRow(ft, row, prev, bpp, line[1:])
		prev = row
	}
	return out
}

// filterRow filters a single row into dst.
func filterRow(ft predict.Type, row, prev []byte, bpp int, dst []byte) {
	for i, x := range row {
		var a, b, c byte
		if i >= bpp {
			a = row[i-bpp]
		}
		if prev != nil {
			b = prev[i]
			if i >= bpp {
				c = prev[i-bpp]
			}
		}

		var predictor byte
		switch ft {
		case predict.None:
			predictor = 0
		case predict.Sub:
			predictor = a
		case predict.Up:
			predictor = b
		case predict.Average:
			predictor = byte((int(a) + int(b)) / 2)
		case predict.Paeth:
			predictor = paeth(a, b, c)
		default:
			panic("pngtest: invalid filter type " + ft.String())
		}
		dst[i] = x - predictor
	}
}

// chooseFilter selects the filter type for which the filtered bytes,
// interpreted as signed values, have the smallest sum of absolute values.
// The buffer tmp is used as scratch space.
func chooseFilter(row, prev []byte, bpp int, tmp []byte) predict.Type {
	best := predict.None
	bestSum := -1
	for ft := predict.None; ft <= predict.Paeth; ft++ {
		filterRow(ft, row, prev, bpp, tmp)
		sum := 0
		for _, x := range tmp {
			sum += abs(int(int8(x)))
		}
		if bestSum < 0 || sum < bestSum {
			best = ft
			bestSum = sum
		}
	}
	return best
}

func paeth(a, b, c byte) byte {
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
