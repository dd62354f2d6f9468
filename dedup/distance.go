package dedup

import (
	"math"

	"dupfinder/imageprocessor"

	"github.com/corona10/goimagehash"
)

// MaxDistance is the distance reported for hashes that cannot be parsed.
// It is larger than any threshold, so such pairs never match.
const MaxDistance = math.MaxInt

// Thresholds are the inclusive Hamming distance limits under which two
// images count as duplicates. Either hash matching is enough.
type Thresholds struct {
	DHash int
	PHash int
}

// DefaultThresholds returns the standard limits: 8 bits for the difference
// hash and 12 bits for the perceptual hash
func DefaultThresholds() Thresholds {
	return Thresholds{DHash: 8, PHash: 12}
}

// hashDistance returns the Hamming distance between two hex encoded hashes
// of the same kind
func hashDistance(a, b string, kind goimagehash.Kind) (int, error) {
	va, err := imageprocessor.ParseHash(a)
	if err != nil {
		return MaxDistance, err
	}
	vb, err := imageprocessor.ParseHash(b)
	if err != nil {
		return MaxDistance, err
	}
	d, err := goimagehash.NewImageHash(va, kind).Distance(goimagehash.NewImageHash(vb, kind))
	if err != nil {
		return MaxDistance, err
	}
	return d, nil
}

// HashDistance returns the Hamming distance between two hex encoded hashes,
// or MaxDistance when either is malformed
func HashDistance(a, b string) int {
	d, _ := hashDistance(a, b, goimagehash.Unknown)
	return d
}
