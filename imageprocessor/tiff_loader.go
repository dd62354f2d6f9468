package imageprocessor

import (
	"image"
	"os"

	"golang.org/x/image/tiff"
)

// TiffImageLoader handles TIFF image format
type TiffImageLoader struct {
	BaseImageLoader
}

// NewTiffImageLoader creates a new loader for TIFF files
func NewTiffImageLoader() *TiffImageLoader {
	return &TiffImageLoader{
		BaseImageLoader: BaseImageLoader{
			SupportedFormats: []FormatType{FormatTIFF},
		},
	}
}

// LoadImage loads a TIFF image
func (l *TiffImageLoader) LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newImageLoadError("failed to open TIFF image", path, err)
	}
	defer f.Close()

	img, err := tiff.Decode(f)
	if err != nil {
		return nil, newImageLoadError("failed to decode TIFF image", path, err)
	}
	return img, nil
}
