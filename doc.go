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

// Package png decodes PNG images.
//
// The decoder handles non-interlaced truecolor images with 8 bits per
// sample (PNG color type 2).  It is self-contained: the DEFLATE
// decompressor lives in the [seehuhn.de/go/png/inflate] package, so that
// neither compress/flate nor image/png is used.
//
// A file is decoded from memory in one call:
//
//	data, err := os.ReadFile("in.png")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	img, err := png.Decode(data, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	... use img.Pix, or img as an image.Image ...
//
// Errors returned by the decoder are of type [*pngerr.Error].  The
// kind of failure can be tested using [errors.Is] with the sentinel
// values from the pngerr package:
//
//	if errors.Is(err, pngerr.ErrUnsupportedFormat) {
//	    ...
//	}
//
// Ancillary chunks are skipped.  Chunk CRCs and the Adler-32 checksum of
// the image data are not verified unless [Options.VerifyChecksums] is
// set.
package png
