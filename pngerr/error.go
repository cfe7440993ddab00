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

// Package pngerr defines the errors reported by the PNG decoder.
//
// Every failure of the decoder is reported as an [*Error].  The Kind field
// classifies the failure, Detail names the offending field, feature or the
// reason, and Pos gives the byte offset in the input where this is known.
// Errors can be matched by kind using [errors.Is] and the sentinel values
// defined in this package:
//
//	if errors.Is(err, pngerr.ErrTruncatedInput) {
//	    ...
//	}
package pngerr

import (
	"errors"
	"strconv"
)

// Kind classifies decoder errors.
type Kind int

// These are the possible error kinds.
const (
	InvalidSignature Kind = iota + 1
	TruncatedInput
	InvalidChunkType
	DuplicateHeader
	UnsupportedFormat
	UnsupportedFeature
	UnsupportedCompression
	ChecksumMismatch
	CorruptStream
	InvalidBackReference
	SizeMismatch
)

func (k Kind) String() string {
	switch k {
	case InvalidSignature:
		return "invalid signature"
	case TruncatedInput:
		return "truncated input"
	case InvalidChunkType:
		return "invalid chunk type"
	case DuplicateHeader:
		return "duplicate IHDR chunk"
	case UnsupportedFormat:
		return "unsupported format"
	case UnsupportedFeature:
		return "unsupported feature"
	case UnsupportedCompression:
		return "unsupported compression"
	case ChecksumMismatch:
		return "checksum mismatch"
	case CorruptStream:
		return "corrupt stream"
	case InvalidBackReference:
		return "invalid back-reference"
	case SizeMismatch:
		return "size mismatch"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Error describes a failure to decode a PNG image.
type Error struct {
	Kind Kind

	// Detail names the offending field or feature, or gives a short reason.
	// It may be empty.
	Detail string

	// Pos is the byte offset in the input at which the problem was
	// detected, or -1 if the position is not known.
	Pos int64
}

// New returns an error of the given kind, without position information.
func New(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail, Pos: -1}
}

// At returns an error of the given kind which was detected at byte offset pos.
func At(kind Kind, pos int64, detail string) *Error {
	return &Error{Kind: kind, Detail: detail, Pos: pos}
}

func (err *Error) Error() string {
	msg := "png: " + err.Kind.String()
	if err.Detail != "" {
		msg += ": " + err.Detail
	}
	if err.Pos >= 0 {
		msg += " (at byte " + strconv.FormatInt(err.Pos, 10) + ")"
	}
	return msg
}

// Is reports whether target is an [*Error] of the same kind.
// This allows to use the sentinel values in this package with [errors.Is].
func (err *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == err.Kind
}

// WithOffset returns a copy of err where Pos has been shifted by delta.
// Positions which are not known are left unchanged.  This is used when an
// error is detected inside a sub-stream, for example inside the
// concatenated IDAT data.
func (err *Error) WithOffset(delta int64) *Error {
	res := *err
	if res.Pos >= 0 {
		res.Pos += delta
	}
	return &res
}

// KindOf returns the kind of err, or 0 if err is not (and does not wrap)
// an [*Error].
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// Sentinel values for use with [errors.Is].
var (
	ErrInvalidSignature       = &Error{Kind: InvalidSignature, Pos: -1}
	ErrTruncatedInput         = &Error{Kind: TruncatedInput, Pos: -1}
	ErrInvalidChunkType       = &Error{Kind: InvalidChunkType, Pos: -1}
	ErrDuplicateHeader        = &Error{Kind: DuplicateHeader, Pos: -1}
	ErrUnsupportedFormat      = &Error{Kind: UnsupportedFormat, Pos: -1}
	ErrUnsupportedFeature     = &Error{Kind: UnsupportedFeature, Pos: -1}
	ErrUnsupportedCompression = &Error{Kind: UnsupportedCompression, Pos: -1}
	ErrChecksumMismatch       = &Error{Kind: ChecksumMismatch, Pos: -1}
	ErrCorruptStream          = &Error{Kind: CorruptStream, Pos: -1}
	ErrInvalidBackReference   = &Error{Kind: InvalidBackReference, Pos: -1}
	ErrSizeMismatch           = &Error{Kind: SizeMismatch, Pos: -1}
)
