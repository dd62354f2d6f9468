package imageprocessor

import (
	"path/filepath"
	"sort"
	"strings"
)

// FormatType represents a known image format type
type FormatType string

// Known image format constants
const (
	FormatUnknown FormatType = "unknown"
	FormatJPEG    FormatType = "jpeg"
	FormatPNG     FormatType = "png"
	FormatGIF     FormatType = "gif"
	FormatTIFF    FormatType = "tiff"
	FormatBMP     FormatType = "bmp"
	FormatWEBP    FormatType = "webp"
	// FormatOpenCV covers formats only OpenCV can decode (JPEG 2000, netpbm, sun raster, HDR)
	FormatOpenCV FormatType = "opencv"
)

// Map of extensions to format types
var formatExtensions = map[string]FormatType{
	".jpg":  FormatJPEG,
	".jpeg": FormatJPEG,
	".png":  FormatPNG,
	".gif":  FormatGIF,
	".tif":  FormatTIFF,
	".tiff": FormatTIFF,
	".bmp":  FormatBMP,
	".webp": FormatWEBP,

	".jp2": FormatOpenCV,
	".pbm": FormatOpenCV,
	".pgm": FormatOpenCV,
	".ppm": FormatOpenCV,
	".pnm": FormatOpenCV,
	".sr":  FormatOpenCV,
	".ras": FormatOpenCV,
	".hdr": FormatOpenCV,
	".pic": FormatOpenCV,
	".exr": FormatOpenCV,
}

// GetFileFormat returns the format type based on file extension
func GetFileFormat(path string) FormatType {
	ext := strings.ToLower(filepath.Ext(path))
	format, exists := formatExtensions[ext]
	if !exists {
		return FormatUnknown
	}
	return format
}

// IsTiffFormat checks if a file is in TIFF format
func IsTiffFormat(path string) bool {
	return GetFileFormat(path) == FormatTIFF
}

// ExtensionsFor returns the sorted extensions mapped to the given formats
func ExtensionsFor(formats ...FormatType) []string {
	var extensions []string
	for ext, format := range formatExtensions {
		for _, f := range formats {
			if format == f {
				extensions = append(extensions, ext)
				break
			}
		}
	}
	sort.Strings(extensions)
	return extensions
}

// GetSupportedExtensions returns all supported image file extensions, sorted
func GetSupportedExtensions() []string {
	extensions := make([]string, 0, len(formatExtensions))
	for ext := range formatExtensions {
		extensions = append(extensions, ext)
	}
	sort.Strings(extensions)
	return extensions
}
