// Package cvloader decodes the image formats only OpenCV understands.
package cvloader

import (
	"fmt"
	"image"

	"dupfinder/imageprocessor"

	"gocv.io/x/gocv"
)

// Loader reads images through gocv.IMRead
type Loader struct {
	imageprocessor.BaseImageLoader
}

// New creates a loader for the OpenCV-only formats
func New() *Loader {
	return &Loader{
		BaseImageLoader: imageprocessor.BaseImageLoader{
			SupportedFormats: []imageprocessor.FormatType{imageprocessor.FormatOpenCV},
		},
	}
}

// LoadImage decodes path as 8-bit BGR and converts it to an image.Image
func (l *Loader) LoadImage(path string) (image.Image, error) {
	mat := gocv.IMRead(path, gocv.IMReadColor)
	defer mat.Close()

	if mat.Empty() {
		return nil, fmt.Errorf("failed to load image with OpenCV: %s", path)
	}

	img, err := mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("failed to convert OpenCV image %s: %w", path, err)
	}
	return img, nil
}

// Register adds the loader to registry for every OpenCV-only extension
func Register(registry *imageprocessor.ImageLoaderRegistry) {
	loader := New()
	for _, ext := range imageprocessor.ExtensionsFor(imageprocessor.FormatOpenCV) {
		registry.RegisterLoader(ext, loader)
	}
}
