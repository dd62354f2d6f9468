package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// AllowedUploadExtensions are the image extensions accepted from uploads
var AllowedUploadExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// AllowedFile reports whether filename has an allowed upload extension
func AllowedFile(filename string) bool {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return false
	}
	return AllowedUploadExtensions[strings.ToLower(filename[idx+1:])]
}

// SanitizeFilename reduces filename to a safe ASCII base name that cannot
// escape the directory it is joined to. It may return "".
func SanitizeFilename(filename string) string {
	var b strings.Builder
	for _, r := range norm.NFKD.String(filename) {
		if r < unicode.MaxASCII {
			b.WriteRune(r)
		}
	}
	name := b.String()

	name = strings.NewReplacer("/", " ", "\\", " ").Replace(name)
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeFilenameChars.ReplaceAllString(name, "")
	return strings.Trim(name, "._")
}

// GetDefaultDatabasePath returns the default path for the run history database
func GetDefaultDatabasePath() string {
	exePath, err := os.Executable()
	if err != nil {
		return "dupfinder.db"
	}
	return filepath.Join(filepath.Dir(exePath), "dupfinder.db")
}

// ParseThreshold parses and validates a Hamming distance threshold
func ParseThreshold(thresholdStr string) (int, error) {
	v, err := strconv.Atoi(thresholdStr)
	if err != nil || v < 0 || v > 64 {
		return 0, fmt.Errorf("invalid threshold value '%s', must be an integer within 0-64", thresholdStr)
	}
	return v, nil
}
