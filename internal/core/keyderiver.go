package core

import (
	"strconv"
	"strings"

	"github.com/comalice/adis/internal/primitives"
)

// DeriveKey serializes the grid into keystream bytes, each in [0, 99].
//
// The pipeline is fixed for compatibility with persisted grids:
//  1. Cells are scanned row-major; each channel (R, G, B) is emitted as an
//     8-bit MSB-first binary string, concatenated into one bit string of
//     length 24 * resolution^2.
//  2. The bit string is run-length encoded as <bit char><decimal count>,
//     with no separators.
//  3. The encoded string is split into consecutive 2-character chunks (the
//     final chunk may be a single character) and each chunk is parsed as a
//     base-10 integer.
//
// A run length of 10 or more produces a multi-digit count that shifts every
// later chunk boundary. That ambiguity is part of the key format; a
// delimited or fixed-width encoding would derive different keys for every
// existing grid.
//
// DeriveKey is a pure function of the grid contents.
func DeriveKey(grid *primitives.Grid) []byte {
	compressed := runLength(bitstream(grid))

	key := make([]byte, 0, (len(compressed)+1)/2)
	for i := 0; i < len(compressed); i += 2 {
		end := min(i+2, len(compressed))
		// Chunks contain only decimal digits: run counts are decimal
		// and the bit markers are '0'/'1'.
		n, _ := strconv.Atoi(compressed[i:end])
		key = append(key, byte(n))
	}
	return key
}

// bitstream renders the grid as one MSB-first binary string.
func bitstream(grid *primitives.Grid) string {
	resolution := grid.Resolution()
	var b strings.Builder
	b.Grow(24 * resolution * resolution)

	for x := 0; x < resolution; x++ {
		for y := 0; y < resolution; y++ {
			c := grid.At(x, y)
			for _, channel := range c {
				for bit := 7; bit >= 0; bit-- {
					b.WriteByte('0' + (channel>>bit)&1)
				}
			}
		}
	}
	return b.String()
}

// runLength encodes runs as <bit char><decimal count>, no separators.
func runLength(bits string) string {
	var b strings.Builder
	current := bits[0]
	count := 1

	for i := 1; i < len(bits); i++ {
		if bits[i] == current {
			count++
			continue
		}
		b.WriteByte(current)
		b.WriteString(strconv.Itoa(count))
		current = bits[i]
		count = 1
	}
	b.WriteByte(current)
	b.WriteString(strconv.Itoa(count))
	return b.String()
}
