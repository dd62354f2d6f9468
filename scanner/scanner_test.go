package scanner

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"dupfinder/imageprocessor"
	"dupfinder/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestCollectImagePaths(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "b.png"))
	touch(t, filepath.Join(dir, "a.JPG"))
	touch(t, filepath.Join(dir, "notes.txt"))
	touch(t, filepath.Join(dir, "scan.tiff"))
	touch(t, filepath.Join(dir, "sub", "c.gif"))

	registry := imageprocessor.NewImageLoaderRegistry()

	paths, stats, err := CollectImagePaths(registry, ScanOptions{FolderPath: dir}, logging.Discard())
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.JPG"),
		filepath.Join(dir, "b.png"),
		filepath.Join(dir, "scan.tiff"),
	}, paths)
	assert.Equal(t, FileStats{TotalFiles: 3, TifFiles: 1, Skipped: 1}, stats)

	paths, stats, err = CollectImagePaths(registry, ScanOptions{FolderPath: dir, Recursive: true}, logging.Discard())
	require.NoError(t, err)
	assert.Len(t, paths, 4)
	assert.Equal(t, filepath.Join(dir, "sub", "c.gif"), paths[3])
	assert.Equal(t, 4, stats.TotalFiles)
}

func TestCollectImagePathsBadFolder(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f.png")
	touch(t, file)

	_, _, err := CollectImagePaths(imageprocessor.NewImageLoaderRegistry(), ScanOptions{FolderPath: filepath.Join(dir, "nope")}, logging.Discard())
	assert.ErrorContains(t, err, "does not exist")

	_, _, err = CollectImagePaths(imageprocessor.NewImageLoaderRegistry(), ScanOptions{FolderPath: file}, logging.Discard())
	assert.ErrorContains(t, err, "not a directory")
}

func TestPrintStartupInfo(t *testing.T) {
	var buf bytes.Buffer
	PrintStartupInfo(&buf, FileStats{TotalFiles: 2, TifFiles: 1, Skipped: 3}, ScanOptions{FolderPath: "/pics"})
	assert.Contains(t, buf.String(), "/pics")
	assert.Contains(t, buf.String(), "2 (including 1 TIF files)")
	assert.Contains(t, buf.String(), "Skipped 3")
}
