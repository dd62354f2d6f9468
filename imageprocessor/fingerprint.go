package imageprocessor

import (
	"errors"
	"fmt"
	"os"

	"dupfinder/logging"
	"dupfinder/types"

	"github.com/sirupsen/logrus"
)

// ErrNoValidInput is returned when no image in a batch could be fingerprinted
var ErrNoValidInput = errors.New("no valid images could be processed")

// UnreadableImageError reports an image that could not be opened or decoded
type UnreadableImageError struct {
	Path string
	Err  error
}

func (e *UnreadableImageError) Error() string {
	return fmt.Sprintf("unreadable image %s: %v", e.Path, e.Err)
}

func (e *UnreadableImageError) Unwrap() error { return e.Err }

// FingerprintTable maps image identifiers to their fingerprints, keeping
// insertion order. Iteration order decides which image anchors a group.
type FingerprintTable struct {
	order   []string
	records map[string]types.ImageRecord
}

// NewFingerprintTable returns an empty table
func NewFingerprintTable() *FingerprintTable {
	return &FingerprintTable{records: make(map[string]types.ImageRecord)}
}

// Add inserts rec. Re-adding an existing identifier replaces the record but
// keeps its original position.
func (t *FingerprintTable) Add(rec types.ImageRecord) {
	if _, ok := t.records[rec.Path]; !ok {
		t.order = append(t.order, rec.Path)
	}
	t.records[rec.Path] = rec
}

// Len returns the number of fingerprinted images
func (t *FingerprintTable) Len() int {
	return len(t.order)
}

// Records returns the records in insertion order
func (t *FingerprintTable) Records() []types.ImageRecord {
	out := make([]types.ImageRecord, 0, len(t.order))
	for _, p := range t.order {
		out = append(out, t.records[p])
	}
	return out
}

// Extractor computes fingerprints for batches of image files
type Extractor struct {
	registry *ImageLoaderRegistry
	log      logrus.FieldLogger
}

// NewExtractor creates an extractor. A nil registry gets the default
// loaders, a nil logger discards output.
func NewExtractor(registry *ImageLoaderRegistry, log logrus.FieldLogger) *Extractor {
	if registry == nil {
		registry = NewImageLoaderRegistry()
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Extractor{registry: registry, log: log}
}

// Fingerprint loads the image at path and computes its hashes
func (e *Extractor) Fingerprint(path string) (types.ImageRecord, error) {
	img, err := e.registry.LoadImage(path)
	if err != nil {
		return types.ImageRecord{}, &UnreadableImageError{Path: path, Err: err}
	}
	img = NormalizeColor(img)

	dhash, err := ComputeDifferenceHash(img)
	if err != nil {
		return types.ImageRecord{}, &UnreadableImageError{Path: path, Err: err}
	}
	phash, err := ComputePerceptualHash(img)
	if err != nil {
		return types.ImageRecord{}, &UnreadableImageError{Path: path, Err: err}
	}

	return types.ImageRecord{Path: path, DHash: dhash, PHash: phash}, nil
}

// Extract fingerprints every readable path. Missing or undecodable files are
// logged and skipped. ErrNoValidInput is returned when nothing survives.
func (e *Extractor) Extract(paths []string) (*FingerprintTable, error) {
	table := NewFingerprintTable()

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			e.log.WithField("path", path).Warn("file not found")
			continue
		}

		rec, err := e.Fingerprint(path)
		logging.LogImageProcessed(e.log, path, err)
		if err != nil {
			continue
		}
		table.Add(rec)
	}

	if table.Len() == 0 {
		return nil, ErrNoValidInput
	}
	return table, nil
}
