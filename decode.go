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
	"io"

	"github.com/rs/zerolog"

	"seehuhn.de/go/png/inflate"
	"seehuhn.de/go/png/internal/chunk"
	"seehuhn.de/go/png/internal/filter/predict"
	"seehuhn.de/go/png/pngerr"
)

// DefaultMaxPixels is the default limit on the number of pixels of an
// image, see [Options.MaxPixels].
const DefaultMaxPixels = 1 << 28

// Options control the behaviour of the decoder.
// A nil *Options is equivalent to the zero value.
type Options struct {
	// VerifyChecksums enables checking the CRC-32 of every chunk and the
	// Adler-32 checksum of the compressed image data.  By default these
	// checksums are read but not verified.
	VerifyChecksums bool

	// MaxPixels limits the size of images which are decoded.  Larger
	// images are rejected with a [pngerr.UnsupportedFormat] error before
	// any memory is allocated for the pixel data.  If the value is zero,
	// [DefaultMaxPixels] is used.
	MaxPixels int64

	// Logger, if set, receives debug messages about the structure of the
	// file: the chunks found and the compressed blocks.
	Logger *zerolog.Logger
}

var nopLogger = zerolog.Nop()

func (opt *Options) logger() *zerolog.Logger {
	if opt == nil || opt.Logger == nil {
		return &nopLogger
	}
	return opt.Logger
}

func (opt *Options) maxPixels() int64 {
	if opt == nil || opt.MaxPixels <= 0 {
		return DefaultMaxPixels
	}
	return opt.MaxPixels
}

func (opt *Options) verify() bool {
	return opt != nil && opt.VerifyChecksums
}

// bytesPerPixel is the number of bytes per pixel of an 8-bit RGB image.
const bytesPerPixel = 3

const maxExpansion = 1032

// Decode decodes a PNG image held in memory.
//
// Only non-interlaced 8-bit truecolor images (color type 2) are
// supported.  On failure, the returned error is a [*pngerr.Error] and no
// image is returned.
func Decode(data []byte, opt *Options) (*Image, error) {
	if opt == nil {
		opt = &Options{}
	}

	d, err := readChunks(data, opt)
	if err != nil {
		return nil, err
	}

	p := &predict.Params{
		Width:         int(d.header.Width),
		Height:        int(d.header.Height),
		BytesPerPixel: bytesPerPixel,
	}
	if err := p.Validate(); err != nil {
		return nil, pngerr.New(pngerr.UnsupportedFormat, "dimensions: "+err.Error())
	}
	size := p.FilteredSize()

	// DEFLATE cannot expand data by more than a factor of about 1032,
	// so a short stream never needs the full buffer.
	hint := min(size, maxExpansion*len(d.compressed)+1024)

	filtered, err := inflate.Decompress(d.compressed, &inflate.Options{
		MaxOutput:      size,
		SizeHint:       hint,
		VerifyChecksum: opt.verify(),
		Logger:         opt.Logger,
	})
	if err != nil {
		return nil, d.mapError(err)
	}

	pix, err := predict.Reverse(filtered, p)
	if err != nil {
		return nil, err
	}

	return newImage(d.header, pix), nil
}

// DecodeHeader reads the signature and the IHDR chunk of a PNG file.
// The header is returned even if it describes an image which [Decode]
// does not support.
func DecodeHeader(data []byte) (*Header, error) {
	r, err := chunk.NewReader(data)
	if err != nil {
		return nil, err
	}
	c, err := r.Next()
	if err == io.EOF {
		return nil, pngerr.At(pngerr.TruncatedInput, r.Pos(), "missing IHDR chunk")
	} else if err != nil {
		return nil, err
	}
	ihdr, ok := c.(chunk.IHDR)
	if !ok {
		return nil, pngerr.At(pngerr.CorruptStream, r.DataPos()-8, "first chunk is not IHDR")
	}
	return parseHeader(ihdr.Data, r.DataPos())
}
