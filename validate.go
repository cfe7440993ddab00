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
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"seehuhn.de/go/png/internal/chunk"
	"seehuhn.de/go/png/pngerr"
)

// imageData is the result of reading the chunk structure of a PNG file.
type imageData struct {
	header *Header

	// compressed is the concatenation of all IDAT payloads.
	compressed []byte

	// segments records where each IDAT payload starts, both in the
	// compressed stream and in the file.
	segments []segment
}

type segment struct {
	streamPos int64
	filePos   int64
}

// readChunks checks the chunk sequence of a PNG file and collects the
// header and the compressed image data.
func readChunks(data []byte, opt *Options) (*imageData, error) {
	log := opt.logger()

	r, err := chunk.NewReader(data)
	if err != nil {
		return nil, err
	}
	r.VerifyCRC = opt.VerifyChecksums

	first, err := r.Next()
	if err == io.EOF {
		return nil, pngerr.At(pngerr.TruncatedInput, r.Pos(), "missing IHDR chunk")
	} else if err != nil {
		return nil, err
	}
	hdrChunk, ok := first.(chunk.IHDR)
	if !ok {
		return nil, pngerr.At(pngerr.CorruptStream, r.DataPos()-8,
			fmt.Sprintf("first chunk is %s, not IHDR", first.Type()))
	}
	hdrPos := r.DataPos()
	header, err := parseHeader(hdrChunk.Data, hdrPos)
	if err != nil {
		return nil, err
	}
	log.Debug().
		Uint32("width", header.Width).
		Uint32("height", header.Height).
		Uint8("bit_depth", header.BitDepth).
		Uint8("color_type", header.ColorType).
		Msg("IHDR")
	err = header.checkSupported(hdrPos)
	if err != nil {
		return nil, err
	}
	if n := header.Pixels(); n > opt.maxPixels() {
		return nil, pngerr.At(pngerr.UnsupportedFormat, hdrPos,
			fmt.Sprintf("dimensions: %d pixels exceed the limit of %d", n, opt.maxPixels()))
	}

	res := &imageData{header: header}
	for {
		c, err := r.Next()
		if err == io.EOF {
			log.Debug().Msg("end of input without IEND chunk")
			break
		} else if err != nil {
			return nil, err
		}
		pos := r.DataPos()
		logChunk(log, c, pos)

		switch c := c.(type) {
		case chunk.IHDR:
			return nil, pngerr.At(pngerr.DuplicateHeader, pos-8, "")
		case chunk.PLTE:
			return nil, pngerr.At(pngerr.UnsupportedFeature, pos-8, "palette")
		case chunk.IDAT:
			res.segments = append(res.segments, segment{
				streamPos: int64(len(res.compressed)),
				filePos:   pos,
			})
			res.compressed = append(res.compressed, c.Data...)
		case chunk.IEND:
			if rest := len(data) - int(r.Pos()); rest > 0 {
				log.Debug().Int("bytes", rest).Msg("ignoring data after IEND")
			}
			return res.finish(r.Pos())
		}
	}
	return res.finish(r.Pos())
}

func (d *imageData) finish(pos int64) (*imageData, error) {
	if len(d.segments) == 0 {
		return nil, pngerr.At(pngerr.TruncatedInput, pos, "no IDAT chunk")
	}
	return d, nil
}

func logChunk(log *zerolog.Logger, c chunk.Chunk, pos int64) {
	ev := log.Debug().Stringer("type", c.Type()).Int64("pos", pos)
	if a, ok := c.(chunk.Ancillary); ok {
		ev = ev.Int("length", len(a.Data)).Bool("ignored", true)
	} else if d, ok := c.(chunk.IDAT); ok {
		ev = ev.Int("length", len(d.Data))
	}
	ev.Msg("chunk")
}

// mapError translates the position of an error found in the compressed
// stream into a position in the PNG file.
func (d *imageData) mapError(err error) error {
	var e *pngerr.Error
	if !errors.As(err, &e) || e.Pos < 0 {
		return err
	}
	seg := d.segments[0]
	for _, s := range d.segments[1:] {
		if s.streamPos > e.Pos {
			break
		}
		seg = s
	}
	return e.WithOffset(seg.filePos - seg.streamPos)
}
