package imageprocessor

import (
	"fmt"
	"image"
	"strconv"

	"github.com/corona10/goimagehash"
)

// HashHexLength is the number of hex digits in a rendered 64-bit hash
const HashHexLength = 16

// ComputeDifferenceHash computes the 64-bit difference hash of img.
// Always returns a hexadecimal string representation
func ComputeDifferenceHash(img image.Image) (string, error) {
	hash, err := goimagehash.DifferenceHash(img)
	if err != nil {
		return "", fmt.Errorf("cannot compute difference hash: %w", err)
	}
	return hashToHex(hash), nil
}

// ComputePerceptualHash computes the 64-bit DCT-based perceptual hash of img.
// Always returns a hexadecimal string representation
func ComputePerceptualHash(img image.Image) (string, error) {
	hash, err := goimagehash.PerceptionHash(img)
	if err != nil {
		return "", fmt.Errorf("cannot compute perceptual hash: %w", err)
	}
	return hashToHex(hash), nil
}

func hashToHex(hash *goimagehash.ImageHash) string {
	return fmt.Sprintf("%0*x", HashHexLength, hash.GetHash())
}

// ParseHash decodes a hash string produced by ComputeDifferenceHash or
// ComputePerceptualHash back into its bits
func ParseHash(s string) (uint64, error) {
	if len(s) != HashHexLength {
		return 0, fmt.Errorf("hash %q has %d hex digits, want %d", s, len(s), HashHexLength)
	}
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("hash %q is not hexadecimal: %w", s, err)
	}
	return v, nil
}
