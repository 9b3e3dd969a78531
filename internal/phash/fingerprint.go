// Package phash computes compact perceptual fingerprints of card images.
//
// A fingerprint summarizes the coarse visual structure of an image in 64
// bits. Small perturbations (compression noise, minor rotation residue,
// lighting) flip only a few bits, so nearby fingerprints indicate visually
// similar images. It is a similarity measure, not a cryptographic digest.
package phash

import (
	"fmt"
	"math/bits"
	"strconv"
)

// HexLength is the width of the serialized fingerprint string.
const HexLength = 16

// Fingerprint is a 64-bit perceptual hash.
type Fingerprint uint64

// String returns the fixed-width hexadecimal form of the fingerprint.
func (f Fingerprint) String() string {
	return fmt.Sprintf("%016x", uint64(f))
}

// Parse converts a serialized fingerprint back to its bit form. Anything
// other than exactly HexLength hexadecimal characters is rejected, so two
// fingerprints of differing length can never be compared.
func Parse(s string) (Fingerprint, error) {
	if len(s) != HexLength {
		return 0, fmt.Errorf("fingerprint must be %d hex characters, got %d", HexLength, len(s))
	}
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid fingerprint %q: %w", s, err)
	}
	return Fingerprint(v), nil
}

// Distance returns the Hamming distance to another fingerprint: the number
// of bit positions at which the two differ.
func (f Fingerprint) Distance(other Fingerprint) int {
	return bits.OnesCount64(uint64(f) ^ uint64(other))
}

// DigitDistance returns the sum, over corresponding hexadecimal digit
// positions, of the absolute difference between the digits' values (0-15).
// It is a finer-grained secondary metric used to break Hamming-distance
// ties.
func (f Fingerprint) DigitDistance(other Fingerprint) int {
	var total int
	for shift := 0; shift < 64; shift += 4 {
		a := int(uint64(f) >> shift & 0xf)
		b := int(uint64(other) >> shift & 0xf)
		if a > b {
			total += a - b
		} else {
			total += b - a
		}
	}
	return total
}
