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
	"image"
	"image/color"
)

// Image is a decoded 8-bit RGB image.
//
// Image implements the [image.Image] interface, so that it can be used
// with the standard library image packages.
type Image struct {
	Width  int
	Height int

	// Pix holds the pixel data in row-major order, top to bottom,
	// with 3 bytes (red, green, blue) per pixel.
	Pix []byte
}

// newImage assembles the decoder output into an Image.
func newImage(h *Header, pix []byte) *Image {
	return &Image{
		Width:  int(h.Width),
		Height: int(h.Height),
		Pix:    pix,
	}
}

// Stride returns the number of bytes per row.
func (img *Image) Stride() int {
	return img.Width * bytesPerPixel
}

// Row returns the pixel data of row y.
// The returned slice shares memory with img.Pix.
func (img *Image) Row(y int) []byte {
	stride := img.Stride()
	return img.Pix[y*stride : (y+1)*stride : (y+1)*stride]
}

// ColorModel implements the [image.Image] interface.
func (img *Image) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds implements the [image.Image] interface.
func (img *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, img.Width, img.Height)
}

// At implements the [image.Image] interface.
func (img *Image) At(x, y int) color.Color {
	return img.RGBAAt(x, y)
}

// RGBAAt returns the color of the pixel at (x, y).
// Outside the image bounds, the zero color is returned.
func (img *Image) RGBAAt(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= img.Width || y >= img.Height {
		return color.RGBA{}
	}
	i := y*img.Stride() + x*bytesPerPixel
	return color.RGBA{R: img.Pix[i], G: img.Pix[i+1], B: img.Pix[i+2], A: 0xFF}
}

// Opaque reports whether the image is fully opaque.  This is always the
// case, since the supported format has no alpha channel.
func (img *Image) Opaque() bool {
	return true
}
