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
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestCanonicalCodes uses the example from section 3.2.2 of RFC 1951.
func TestCanonicalCodes(t *testing.T) {
	// symbols A, ..., H
	lengths := []uint8{3, 3, 3, 3, 3, 2, 4, 4}
	codes := []struct {
		code uint32
		n    uint
	}{
		{0b010, 3}, {0b011, 3}, {0b100, 3}, {0b101, 3},
		{0b110, 3}, {0b00, 2}, {0b1110, 4}, {0b1111, 4},
	}

	h := &huffman{}
	err := h.build(lengths, false)
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]uint16{5, 0, 1, 2, 3, 4, 6, 7}, h.symbol); diff != "" {
		t.Errorf("wrong symbol order (-want +got):\n%s", diff)
	}

	seq := []int{7, 0, 5, 5, 3, 6, 1, 2, 4}
	w := &bitWriter{}
	for _, sym := range seq {
		w.code(codes[sym].code, codes[sym].n)
	}
	br := &bitReader{data: w.raw()}
	for i, want := range seq {
		got, err := h.decode(br)
		if err != nil {
			t.Fatalf("symbol %d: %v", i, err)
		}
		if got != want {
			t.Errorf("symbol %d: got %d, want %d", i, got, want)
		}
	}
}

// TestLongCodes checks codes which are too long for the lookup table.
func TestLongCodes(t *testing.T) {
	// lengths 1, 2, ..., 14, 15, 15 form a complete code
	lengths := make([]uint8, 16)
	for i := range 15 {
		lengths[i] = uint8(i + 1)
	}
	lengths[15] = 15

	h := &huffman{}
	if err := h.build(lengths, false); err != nil {
		t.Fatal(err)
	}

	// symbol i < 15 has the code 1...10 (i ones followed by a zero)
	w := &bitWriter{}
	for _, sym := range []int{14, 0, 15, 9, 1} {
		var code uint32
		n := uint(sym + 1)
		if sym == 15 {
			n = 15
		}
		for range sym {
			code = code<<1 | 1
		}
		if sym < 15 {
			code <<= 1
		} else {
			code = 1<<15 - 1
		}
		w.code(code, n)
	}
	br := &bitReader{data: w.raw()}
	for _, want := range []int{14, 0, 15, 9, 1} {
		got, err := h.decode(br)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("got %d, want %d", got, want)
		}
	}
}

func TestBuildErrors(t *testing.T) {
	testCases := []struct {
		name        string
		lengths     []uint8
		allowSingle bool
		want        error
	}{
		{"over-subscribed", []uint8{1, 1, 1}, true, errOverSubscribed},
		{"over-subscribed long", []uint8{2, 2, 2, 2, 3}, true, errOverSubscribed},
		{"incomplete", []uint8{1, 2}, true, errIncomplete},
		{"single", []uint8{0, 1, 0}, false, errIncomplete},
		{"single allowed", []uint8{0, 1, 0}, true, nil},
		{"empty", []uint8{0, 0}, false, errIncomplete},
		{"empty allowed", []uint8{0, 0}, true, nil},
		{"single two bits", []uint8{2}, true, errIncomplete},
		{"complete", []uint8{1, 2, 2}, false, nil},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := (&huffman{}).build(tc.lengths, tc.allowSingle)
			if !errors.Is(err, tc.want) {
				t.Errorf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestFixedCodes(t *testing.T) {
	fixedOnce.Do(initFixed)

	w := &bitWriter{}
	syms := []int{0, 143, 144, 255, 256, 279, 280, 287}
	for _, sym := range syms {
		w.fixed(sym)
	}
	br := &bitReader{data: w.raw()}
	for _, want := range syms {
		got, err := fixedLit.decode(br)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("got %d, want %d", got, want)
		}
	}
}

func TestSingleCodeInvalidBit(t *testing.T) {
	h := &huffman{}
	if err := h.build([]uint8{0, 0, 1}, true); err != nil {
		t.Fatal(err)
	}
	br := &bitReader{data: []byte{0b10}}
	if sym, err := h.decode(br); err != nil || sym != 2 {
		t.Fatalf("got %d, %v", sym, err)
	}
	_, err := h.decode(br)
	if err == nil {
		t.Error("unused code accepted")
	}
}
