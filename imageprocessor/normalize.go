package imageprocessor

import (
	"image"

	"github.com/disintegration/imaging"
)

// IsNormalized reports whether img is already grayscale or opaque full colour
func IsNormalized(img image.Image) bool {
	switch img := img.(type) {
	case *image.Gray, *image.Gray16, *image.YCbCr:
		return true
	case *image.RGBA:
		return img.Opaque()
	case *image.RGBA64:
		return img.Opaque()
	default:
		return false
	}
}

// NormalizeColor converts images in any other colour model (paletted, CMYK,
// alpha-carrying) to opaque full colour. Alpha is dropped and colour values
// are kept as they are.
func NormalizeColor(img image.Image) image.Image {
	if IsNormalized(img) {
		return img
	}

	dst := imaging.Clone(img)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xff
	}
	return dst
}
