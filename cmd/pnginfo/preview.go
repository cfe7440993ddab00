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

package main

import (
	"bufio"
	"fmt"
	"image"
	"image/draw"
	"io"

	xdraw "golang.org/x/image/draw"
)

// maxPreviewCols limits the width of the preview, even on wide terminals.
const maxPreviewCols = 120

// writePreview renders img using at most cols character cells per line.
// Every character cell shows two pixels, using the upper half block
// character with different foreground and background colours.
func writePreview(w io.Writer, img image.Image, cols int) error {
	b := img.Bounds()
	if b.Empty() {
		return nil
	}
	cols = min(cols, maxPreviewCols, b.Dx())

	// Character cells are about twice as high as wide, so that every
	// cell holds two square pixels.
	rows := max(b.Dy()*cols/b.Dx(), 1)
	rows += rows % 2

	small := image.NewRGBA(image.Rect(0, 0, cols, rows))
	xdraw.ApproxBiLinear.Scale(small, small.Bounds(), img, b, draw.Src, nil)

	out := bufio.NewWriter(w)
	for y := 0; y < rows; y += 2 {
		for x := range cols {
			top := small.RGBAAt(x, y)
			bot := small.RGBAAt(x, y+1)
			fmt.Fprintf(out, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀",
				top.R, top.G, top.B, bot.R, bot.G, bot.B)
		}
		out.WriteString("\x1b[0m\n")
	}
	return out.Flush()
}
