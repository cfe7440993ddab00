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

const (
	maxCodeLen  = 15    // longest Huffman code allowed in DEFLATE
	maxDistance = 32768 // size of the sliding window

	numLitLen   = 288 // literal/length alphabet, including the unused symbols 286 and 287
	maxLitLen   = 286 // number of literal/length codes which may be used
	numDist     = 32  // distance alphabet, including the unused symbols 30 and 31
	maxDist     = 30  // number of distance codes which may be used
	numCodeLen  = 19  // code length alphabet
	endOfBlock  = 256
	firstLength = 257
)

// codeLenOrder is the order in which the code lengths of the code length
// alphabet are stored in a dynamic block header.
var codeLenOrder = [numCodeLen]uint8{
	16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15,
}

// lengthBase and lengthExtra give the base value and the number of extra
// bits for the length symbols 257, ..., 285.
var lengthBase = [29]uint16{
	3, 4, 5, 6, 7, 8, 9, 10, 11, 13, 15, 17, 19, 23, 27, 31,
	35, 43, 51, 59, 67, 83, 99, 115, 131, 163, 195, 227, 258,
}

var lengthExtra = [29]uint8{
	0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 2, 2,
	3, 3, 3, 3, 4, 4, 4, 4, 5, 5, 5, 5, 0,
}

// distBase and distExtra give the base value and the number of extra bits
// for the distance symbols 0, ..., 29.
var distBase = [maxDist]uint16{
	1, 2, 3, 4, 5, 7, 9, 13, 17, 25, 33, 49, 65, 97, 129, 193,
	257, 385, 513, 769, 1025, 1537, 2049, 3073, 4097, 6145,
	8193, 12289, 16385, 24577,
}

var distExtra = [maxDist]uint8{
	0, 0, 0, 0, 1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6,
	7, 7, 8, 8, 9, 9, 10, 10, 11, 11, 12, 12, 13, 13,
}

// fixedLitLenLengths returns the code lengths of the fixed literal/length
// code from section 3.2.6 of RFC 1951.
func fixedLitLenLengths() []uint8 {
	lengths := make([]uint8, numLitLen)
	for i := range lengths {
		switch {
		case i < 144:
			lengths[i] = 8
		case i < 256:
			lengths[i] = 9
		case i < 280:
			lengths[i] = 7
		default:
			lengths[i] = 8
		}
	}
	return lengths
}

// fixedDistLengths returns the code lengths of the fixed distance code.
// All 32 symbols get 5-bit codes; 30 and 31 never occur in valid data.
func fixedDistLengths() []uint8 {
	lengths := make([]uint8, numDist)
	for i := range lengths {
		lengths[i] = 5
	}
	return lengths
}
