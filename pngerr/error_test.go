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

package pngerr

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	testCases := []struct {
		err  *Error
		want string
	}{
		{New(TruncatedInput, ""), "png: truncated input"},
		{New(UnsupportedFormat, "bit_depth"), "png: unsupported format: bit_depth"},
		{At(InvalidSignature, 3, "byte 3"), "png: invalid signature: byte 3 (at byte 3)"},
		{At(CorruptStream, 0, "BTYPE 3"), "png: corrupt stream: BTYPE 3 (at byte 0)"},
		{&Error{Kind: 99, Pos: -1}, "png: Kind(99)"},
	}
	for _, tc := range testCases {
		if got := tc.err.Error(); got != tc.want {
			t.Errorf("got %q, want %q", got, tc.want)
		}
	}
}

func TestIs(t *testing.T) {
	err := At(InvalidBackReference, 17, "distance 5 > 3")
	wrapped := fmt.Errorf("loading icon: %w", err)

	if !errors.Is(wrapped, ErrInvalidBackReference) {
		t.Error("errors.Is failed to match by kind")
	}
	if errors.Is(wrapped, ErrTruncatedInput) {
		t.Error("errors.Is matched the wrong kind")
	}
	if errors.Is(wrapped, errors.New("png: invalid back-reference")) {
		t.Error("errors.Is matched a foreign error")
	}
	if k := KindOf(wrapped); k != InvalidBackReference {
		t.Errorf("KindOf: got %v", k)
	}
	if k := KindOf(errors.New("other")); k != 0 {
		t.Errorf("KindOf(other): got %v", k)
	}
}

func TestWithOffset(t *testing.T) {
	err := At(TruncatedInput, 4, "")
	moved := err.WithOffset(100)
	if moved.Pos != 104 || err.Pos != 4 {
		t.Errorf("got %d/%d, want 104/4", moved.Pos, err.Pos)
	}

	unknown := New(SizeMismatch, "").WithOffset(100)
	if unknown.Pos != -1 {
		t.Errorf("unknown position changed to %d", unknown.Pos)
	}
}

func TestSentinels(t *testing.T) {
	sentinels := []struct {
		err  *Error
		kind Kind
	}{
		{ErrInvalidSignature, InvalidSignature},
		{ErrTruncatedInput, TruncatedInput},
		{ErrInvalidChunkType, InvalidChunkType},
		{ErrDuplicateHeader, DuplicateHeader},
		{ErrUnsupportedFormat, UnsupportedFormat},
		{ErrUnsupportedFeature, UnsupportedFeature},
		{ErrUnsupportedCompression, UnsupportedCompression},
		{ErrChecksumMismatch, ChecksumMismatch},
		{ErrCorruptStream, CorruptStream},
		{ErrInvalidBackReference, InvalidBackReference},
		{ErrSizeMismatch, SizeMismatch},
	}
	for _, s := range sentinels {
		if s.err.Kind != s.kind {
			t.Errorf("sentinel for %v has kind %v", s.kind, s.err.Kind)
		}
		if !errors.Is(At(s.kind, 10, "x"), s.err) {
			t.Errorf("%v: errors.Is does not match its sentinel", s.kind)
		}
	}
}
