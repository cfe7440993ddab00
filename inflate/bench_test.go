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
	"bytes"
	"io"
	"testing"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zlib"

	"seehuhn.de/go/png/internal/pngtest"
)

func benchmarkInput() []byte {
	pix := pngtest.Pattern(512, 512)
	return pngtest.Zlib(pix, flate.DefaultCompression)
}

func BenchmarkDecompress(b *testing.B) {
	z := benchmarkInput()
	b.SetBytes(512 * 512 * 3)
	for b.Loop() {
		_, err := Decompress(z, nil)
		if err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkReference measures the streaming zlib reader on the same input,
// for comparison.
func BenchmarkReference(b *testing.B) {
	z := benchmarkInput()
	b.SetBytes(512 * 512 * 3)
	for b.Loop() {
		r, err := zlib.NewReader(bytes.NewReader(z))
		if err != nil {
			b.Fatal(err)
		}
		_, err = io.Copy(io.Discard, r)
		if err != nil {
			b.Fatal(err)
		}
	}
}
