// Package scanner collects image files from a folder for a detection batch.
package scanner

import (
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"dupfinder/imageprocessor"

	"github.com/sirupsen/logrus"
)

// CollectImagePaths walks options.FolderPath and returns, in lexical order,
// every file a registered loader can handle.
func CollectImagePaths(registry *imageprocessor.ImageLoaderRegistry, options ScanOptions, log logrus.FieldLogger) ([]string, FileStats, error) {
	var stats FileStats

	if err := checkFolder(options.FolderPath); err != nil {
		return nil, stats, err
	}

	var paths []string
	err := filepath.WalkDir(options.FolderPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.WithField("path", path).WithError(err).Warn("skipping inaccessible path")
			return nil
		}
		if d.IsDir() {
			if path != options.FolderPath && !options.Recursive {
				return filepath.SkipDir
			}
			return nil
		}

		if !registry.CanLoadFile(path) {
			stats.Skipped++
			log.WithField("path", path).Debug("skipping unsupported file")
			return nil
		}

		stats.TotalFiles++
		if imageprocessor.IsTiffFormat(path) {
			stats.TifFiles++
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, stats, fmt.Errorf("error walking %s: %w", options.FolderPath, err)
	}

	return paths, stats, nil
}

// PrintStartupInfo displays information about the scan before detection starts
func PrintStartupInfo(w io.Writer, stats FileStats, options ScanOptions) {
	fmt.Fprintf(w, "Scanning %s for duplicates...\n", options.FolderPath)
	fmt.Fprintf(w, "Total image files to process: %d (including %d TIF files)\n", stats.TotalFiles, stats.TifFiles)
	if stats.Skipped > 0 {
		fmt.Fprintf(w, "Skipped %d unsupported files\n", stats.Skipped)
	}
}
