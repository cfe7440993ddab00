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

// Package inflate decompresses zlib (RFC 1950) and raw DEFLATE (RFC 1951)
// data held in memory.
//
// The decoder is written for untrusted input: every length, distance and
// code is checked before use, the output can be limited in size, and all
// failures are reported as [*pngerr.Error] values of a specific kind.
// Errors carry the byte offset within the compressed data at which the
// problem was detected.
package inflate

import (
	"encoding/binary"
	"fmt"
	"hash/adler32"
	"sync"

	"github.com/rs/zerolog"

	"seehuhn.de/go/png/pngerr"
)

// Options control the decompression.  The zero value is valid.
type Options struct {
	// MaxOutput, if positive, is the maximal number of bytes of
	// decompressed data.  Longer data leads to a [pngerr.SizeMismatch]
	// error.
	MaxOutput int

	// SizeHint, if positive, is the expected size of the decompressed
	// data.  It is used to pre-allocate the output buffer.
	SizeHint int

	// VerifyChecksum enables checking the zlib header check bits and the
	// Adler-32 checksum at the end of a zlib stream.  By default the
	// checksum is read, if present, but not verified.
	VerifyChecksum bool

	// Logger, if not nil, receives debug messages about the block
	// structure of the stream.
	Logger *zerolog.Logger
}

var nopLogger = zerolog.Nop()

var (
	fixedOnce sync.Once
	fixedLit  huffman
	fixedDist huffman
)

func initFixed() {
	mustBuild(&fixedLit, fixedLitLenLengths())
	mustBuild(&fixedDist, fixedDistLengths())
}

// mustBuild builds a Huffman code from code lengths which are known to be
// valid.  A failure indicates a bug in the table construction.
func mustBuild(h *huffman, lengths []uint8) {
	err := h.build(lengths, false)
	if err != nil {
		panic("inflate: cannot build fixed Huffman code: " + err.Error())
	}
}

// Decompress decodes a zlib stream and returns the decompressed data.
// Data following the Adler-32 trailer is ignored.
func Decompress(data []byte, opt *Options) ([]byte, error) {
	if opt == nil {
		opt = &Options{}
	}
	if len(data) < 2 {
		return nil, pngerr.At(pngerr.TruncatedInput, int64(len(data)), "zlib header")
	}
	cmf, flg := data[0], data[1]
	if cm := cmf & 0x0F; cm != 8 {
		return nil, pngerr.At(pngerr.UnsupportedCompression, 0,
			fmt.Sprintf("compression method %d", cm))
	}
	if flg&0x20 != 0 {
		return nil, pngerr.At(pngerr.UnsupportedCompression, 1, "preset dictionary")
	}
	if opt.VerifyChecksum && (uint16(cmf)<<8|uint16(flg))%31 != 0 {
		return nil, pngerr.At(pngerr.ChecksumMismatch, 1, "zlib header check bits")
	}

	d := newDecompressor(data, 2, opt)
	err := d.run()
	if err != nil {
		return nil, err
	}

	d.br.alignByte()
	trailer, err := d.br.readBytes(4)
	if err != nil {
		if opt.VerifyChecksum {
			return nil, pngerr.At(pngerr.TruncatedInput, int64(len(data)), "Adler-32 checksum")
		}
		return d.out, nil
	}
	if opt.VerifyChecksum {
		stored := binary.BigEndian.Uint32(trailer)
		if computed := adler32.Checksum(d.out); stored != computed {
			return nil, pngerr.At(pngerr.ChecksumMismatch, d.br.offset()-4,
				fmt.Sprintf("Adler-32 is 0x%08X, computed 0x%08X", stored, computed))
		}
	}
	return d.out, nil
}

// Inflate decodes raw DEFLATE data.  It returns the decompressed data and
// the number of input bytes used, counting a partially used last byte.
func Inflate(data []byte, opt *Options) ([]byte, int, error) {
	if opt == nil {
		opt = &Options{}
	}
	d := newDecompressor(data, 0, opt)
	err := d.run()
	if err != nil {
		return nil, 0, err
	}
	used := d.br.pos - int(d.br.nbits/8)
	return d.out, used, nil
}

type decompressor struct {
	br  bitReader
	out []byte
	max int
	log *zerolog.Logger

	// codes for the current dynamic block
	lit, dist, codeLen huffman
	lengths            [maxLitLen + maxDist]uint8
}

func newDecompressor(data []byte, start int, opt *Options) *decompressor {
	d := &decompressor{
		br:  bitReader{data: data, pos: start},
		max: opt.MaxOutput,
		log: opt.Logger,
	}
	if d.log == nil {
		d.log = &nopLogger
	}
	size := opt.SizeHint
	if d.max > 0 {
		size = min(size, d.max)
	}
	if size > 0 {
		d.out = make([]byte, 0, size)
	}
	return d
}

// run decodes blocks until the final block has been read.
func (d *decompressor) run() error {
	for block := 0; ; block++ {
		start := d.br.offset()
		hdr, err := d.br.readBits(3)
		if err != nil {
			return err
		}
		final := hdr&1 != 0
		btype := hdr >> 1

		d.log.Debug().
			Int("block", block).
			Bool("final", final).
			Uint32("type", btype).
			Int64("bit", d.br.used-3).
			Int("out", len(d.out)).
			Msg("deflate block")

		switch btype {
		case 0:
			err = d.storedBlock()
		case 1:
			fixedOnce.Do(initFixed)
			err = d.huffmanBlock(&fixedLit, &fixedDist)
		case 2:
			err = d.readDynamicCodes()
			if err == nil {
				err = d.huffmanBlock(&d.lit, &d.dist)
			}
		default:
			err = pngerr.At(pngerr.CorruptStream, start, "reserved block type 3")
		}
		if err != nil {
			return err
		}

		if final {
			d.log.Debug().
				Int64("bits", d.br.used).
				Int("out", len(d.out)).
				Msg("deflate stream complete")
			return nil
		}
	}
}

func (d *decompressor) storedBlock() error {
	d.br.alignByte()
	start := d.br.offset()
	hdr, err := d.br.readBytes(4)
	if err != nil {
		return err
	}
	length := binary.LittleEndian.Uint16(hdr[0:2])
	nlength := binary.LittleEndian.Uint16(hdr[2:4])
	if nlength != ^length {
		return pngerr.At(pngerr.ChecksumMismatch, start+2,
			fmt.Sprintf("stored block LEN=0x%04X, NLEN=0x%04X", length, nlength))
	}

	d.log.Debug().Uint16("len", length).Msg("stored block")

	if err := d.checkGrow(int(length)); err != nil {
		return err
	}
	body, err := d.br.readBytes(int(length))
	if err != nil {
		return err
	}
	d.out = append(d.out, body...)
	return nil
}

// readDynamicCodes reads the code definitions at the start of a dynamic
// Huffman block into d.lit and d.dist.
func (d *decompressor) readDynamicCodes() error {
	start := d.br.offset()
	x, err := d.br.readBits(14)
	if err != nil {
		return err
	}
	nlit := int(x&0x1F) + 257
	ndist := int(x>>5&0x1F) + 1
	nclen := int(x>>10) + 4
	if nlit > maxLitLen {
		return pngerr.At(pngerr.CorruptStream, start,
			fmt.Sprintf("HLIT=%d exceeds %d", nlit, maxLitLen))
	}
	if ndist > maxDist {
		return pngerr.At(pngerr.CorruptStream, start,
			fmt.Sprintf("HDIST=%d exceeds %d", ndist, maxDist))
	}

	var clens [numCodeLen]uint8
	for _, sym := range codeLenOrder[:nclen] {
		l, err := d.br.readBits(3)
		if err != nil {
			return err
		}
		clens[sym] = uint8(l)
	}
	if err := d.codeLen.build(clens[:], false); err != nil {
		return pngerr.At(pngerr.CorruptStream, start, "code length code: "+err.Error())
	}

	lengths := d.lengths[:nlit+ndist]
	for i := 0; i < len(lengths); {
		pos := d.br.offset()
		sym, err := d.codeLen.decode(&d.br)
		if err != nil {
			return err
		}
		if sym < 16 {
			lengths[i] = uint8(sym)
			i++
			continue
		}

		var rep uint32
		var val uint8
		switch sym {
		case 16:
			if i == 0 {
				return pngerr.At(pngerr.CorruptStream, pos, "repeat code without previous length")
			}
			val = lengths[i-1]
			rep, err = d.br.readBits(2)
			rep += 3
		case 17:
			rep, err = d.br.readBits(3)
			rep += 3
		default: // 18
			rep, err = d.br.readBits(7)
			rep += 11
		}
		if err != nil {
			return err
		}
		if int(rep) > len(lengths)-i {
			return pngerr.At(pngerr.CorruptStream, pos, "code lengths exceed HLIT+HDIST")
		}
		for range rep {
			lengths[i] = val
			i++
		}
	}

	if lengths[endOfBlock] == 0 {
		return pngerr.At(pngerr.CorruptStream, start, "no code for end-of-block")
	}
	if err := d.lit.build(lengths[:nlit], true); err != nil {
		return pngerr.At(pngerr.CorruptStream, start, "literal/length code: "+err.Error())
	}
	if err := d.dist.build(lengths[nlit:], true); err != nil {
		return pngerr.At(pngerr.CorruptStream, start, "distance code: "+err.Error())
	}

	d.log.Debug().
		Int("hlit", nlit).
		Int("hdist", ndist).
		Int("hclen", nclen).
		Msg("dynamic Huffman codes")
	return nil
}

// huffmanBlock decodes the compressed data of a block until the
// end-of-block symbol is found.
func (d *decompressor) huffmanBlock(lit, dist *huffman) error {
	for {
		pos := d.br.offset()
		sym, err := lit.decode(&d.br)
		if err != nil {
			return err
		}
		switch {
		case sym < endOfBlock:
			if err := d.checkGrow(1); err != nil {
				return err
			}
			d.out = append(d.out, byte(sym))
			continue
		case sym == endOfBlock:
			return nil
		case sym >= firstLength+len(lengthBase):
			return pngerr.At(pngerr.CorruptStream, pos,
				fmt.Sprintf("invalid length symbol %d", sym))
		}

		sym -= firstLength
		extra, err := d.br.readBits(uint(lengthExtra[sym]))
		if err != nil {
			return err
		}
		length := int(lengthBase[sym]) + int(extra)

		pos = d.br.offset()
		dsym, err := dist.decode(&d.br)
		if err != nil {
			return err
		}
		if dsym >= maxDist {
			return pngerr.At(pngerr.CorruptStream, pos,
				fmt.Sprintf("invalid distance symbol %d", dsym))
		}
		extra, err = d.br.readBits(uint(distExtra[dsym]))
		if err != nil {
			return err
		}
		distance := int(distBase[dsym]) + int(extra)

		if distance > len(d.out) || distance > maxDistance {
			return pngerr.At(pngerr.InvalidBackReference, pos,
				fmt.Sprintf("distance %d, only %d bytes available", distance, min(len(d.out), maxDistance)))
		}
		if err := d.checkGrow(length); err != nil {
			return err
		}

		// The source and destination may overlap; copying forward one
		// byte at a time repeats the last distance bytes as required.
		from := len(d.out) - distance
		for i := range length {
			d.out = append(d.out, d.out[from+i])
		}
	}
}

// checkGrow verifies that n more bytes of output fit within the limit.
func (d *decompressor) checkGrow(n int) error {
	if d.max > 0 && n > d.max-len(d.out) {
		return pngerr.At(pngerr.SizeMismatch, d.br.offset(),
			fmt.Sprintf("decompressed data exceeds %d bytes", d.max))
	}
	return nil
}
