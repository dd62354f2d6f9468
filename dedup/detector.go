// Package dedup groups images into visually-duplicate clusters.
package dedup

import (
	"errors"

	"dupfinder/imageprocessor"
	"dupfinder/logging"
	"dupfinder/types"

	"github.com/sirupsen/logrus"
)

var (
	// ErrEmptyBatch is returned when detection is called with no paths
	ErrEmptyBatch = errors.New("no images provided")

	// ErrNoValidInput is returned when none of the paths could be fingerprinted
	ErrNoValidInput = imageprocessor.ErrNoValidInput
)

// Detector runs fingerprinting and grouping over a batch of image paths.
// It holds no per-batch state and may be shared.
type Detector struct {
	extractor *imageprocessor.Extractor
	grouper   *Grouper
	log       logrus.FieldLogger
}

// NewDetector creates a detector. A nil registry gets the default loaders
// and a nil logger discards output.
func NewDetector(registry *imageprocessor.ImageLoaderRegistry, thresholds Thresholds, log logrus.FieldLogger) *Detector {
	if log == nil {
		log = logging.Discard()
	}
	return &Detector{
		extractor: imageprocessor.NewExtractor(registry, log),
		grouper:   NewGrouper(thresholds, log),
		log:       log,
	}
}

// DetectDuplicates fingerprints paths and groups the results.
// TotalProcessed in the result is len(paths), including unreadable files.
func (d *Detector) DetectDuplicates(paths []string) (*types.Result, error) {
	if len(paths) == 0 {
		return nil, ErrEmptyBatch
	}

	d.log.Debugf("Processing %d images", len(paths))

	table, err := d.extractor.Extract(paths)
	if err != nil {
		return nil, err
	}

	result := Summarize(d.grouper.Group(table), len(paths))

	d.log.WithFields(logrus.Fields{
		"unique":     len(result.UniqueImages),
		"duplicates": result.TotalDuplicates,
		"groups":     len(result.DuplicateGroups),
	}).Debug("duplicate detection finished")

	return result, nil
}
