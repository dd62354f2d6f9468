package dedup

import (
	"path/filepath"

	"dupfinder/imageprocessor"
	"dupfinder/types"

	"github.com/corona10/goimagehash"
	"github.com/sirupsen/logrus"
)

// Grouper partitions a fingerprint table into duplicate groups
type Grouper struct {
	thresholds Thresholds
	log        logrus.FieldLogger
}

// NewGrouper creates a grouper using the given thresholds
func NewGrouper(thresholds Thresholds, log logrus.FieldLogger) *Grouper {
	return &Grouper{thresholds: thresholds, log: log}
}

// Group walks the table in insertion order. Each image not yet assigned
// anchors a new group, and every later unassigned image within threshold of
// the anchor joins it. Membership is decided against the anchor only, so
// the relation is not transitive and the result depends on table order.
func (g *Grouper) Group(table *imageprocessor.FingerprintTable) []types.DuplicateGroup {
	records := table.Records()
	processed := make(map[string]bool, len(records))
	var groups []types.DuplicateGroup

	for _, anchor := range records {
		if processed[anchor.Path] {
			continue
		}
		processed[anchor.Path] = true
		group := types.DuplicateGroup{Original: anchor.Path, Duplicates: []string{}}

		for _, other := range records {
			if processed[other.Path] {
				continue
			}
			if g.isDuplicate(anchor, other) {
				processed[other.Path] = true
				group.Duplicates = append(group.Duplicates, other.Path)
			}
		}

		groups = append(groups, group)
	}

	return groups
}

func (g *Grouper) isDuplicate(a, b types.ImageRecord) bool {
	dd := g.distance(a, b, a.DHash, b.DHash, goimagehash.DHash)
	pd := g.distance(a, b, a.PHash, b.PHash, goimagehash.PHash)
	g.log.WithFields(logrus.Fields{"a": a.Path, "b": b.Path, "dhash": dd, "phash": pd}).Debug("hash distance")
	return dd <= g.thresholds.DHash || pd <= g.thresholds.PHash
}

func (g *Grouper) distance(a, b types.ImageRecord, ha, hb string, kind goimagehash.Kind) int {
	d, err := hashDistance(ha, hb, kind)
	if err != nil {
		g.log.WithFields(logrus.Fields{"a": a.Path, "b": b.Path}).WithError(err).Error("error calculating hash distance")
	}
	return d
}

// Summarize turns groups into a Result. Identifiers are reduced to base
// names and only groups with duplicates are listed in DuplicateGroups.
func Summarize(groups []types.DuplicateGroup, totalProcessed int) *types.Result {
	result := &types.Result{
		UniqueImages:    []string{},
		DuplicateGroups: []types.DuplicateGroup{},
		TotalProcessed:  totalProcessed,
	}

	for _, group := range groups {
		result.UniqueImages = append(result.UniqueImages, filepath.Base(group.Original))
		if len(group.Duplicates) == 0 {
			continue
		}

		dups := make([]string, 0, len(group.Duplicates))
		for _, d := range group.Duplicates {
			dups = append(dups, filepath.Base(d))
		}
		result.DuplicateGroups = append(result.DuplicateGroups, types.DuplicateGroup{
			Original:   filepath.Base(group.Original),
			Duplicates: dups,
		})
		result.TotalDuplicates += len(dups)
	}

	return result
}
