package dedup

import (
	"testing"

	"dupfinder/imageprocessor"
	"dupfinder/logging"
	"dupfinder/types"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	bits8  = uint64(0xff)
	bits16 = uint64(0xffff)
	half   = uint64(0x00000000ffffffff)
	ones   = ^uint64(0)
)

func tableOf(recs ...types.ImageRecord) *imageprocessor.FingerprintTable {
	table := imageprocessor.NewFingerprintTable()
	for _, r := range recs {
		table.Add(r)
	}
	return table
}

func rec(path string, dhash, phash uint64) types.ImageRecord {
	return types.ImageRecord{Path: path, DHash: hex64(dhash), PHash: hex64(phash)}
}

func newTestGrouper() *Grouper {
	return NewGrouper(DefaultThresholds(), logging.Discard())
}

func TestGroupDHashMatchIsEnough(t *testing.T) {
	// dhash 3 bits apart, phash 20 bits apart
	groups := newTestGrouper().Group(tableOf(
		rec("/tmp/a.png", 0, 0),
		rec("/tmp/b.png", 0b111, 0xfffff),
	))

	require.Len(t, groups, 1)
	assert.Equal(t, "/tmp/a.png", groups[0].Original)
	assert.Equal(t, []string{"/tmp/b.png"}, groups[0].Duplicates)
}

func TestGroupPHashMatchIsEnough(t *testing.T) {
	groups := newTestGrouper().Group(tableOf(
		rec("a", 0, 0),
		rec("b", ones, 0xfff),
	))

	require.Len(t, groups, 1)
	assert.Equal(t, []string{"b"}, groups[0].Duplicates)
}

func TestGroupThresholdsAreInclusive(t *testing.T) {
	groups := newTestGrouper().Group(tableOf(
		rec("a", 0, 0),
		rec("b", bits8, ones),
		rec("c", ones, 0xfff),
		rec("d", 0x1ff, 0x1fff),
	))

	require.Len(t, groups, 2)
	assert.Equal(t, []string{"b", "c"}, groups[0].Duplicates)
	assert.Equal(t, "d", groups[1].Original)
}

func TestGroupNoneWithinThreshold(t *testing.T) {
	groups := newTestGrouper().Group(tableOf(
		rec("a", 0, 0),
		rec("b", ones, ones),
		rec("c", half, half),
	))

	require.Len(t, groups, 3)
	result := Summarize(groups, 3)
	assert.Equal(t, 0, result.TotalDuplicates)
	assert.Equal(t, []string{"a", "b", "c"}, result.UniqueImages)
	assert.Empty(t, result.DuplicateGroups)
}

func TestGroupAnchorOnlyNotTransitive(t *testing.T) {
	// a~b (8 bits) and b~c (8 bits) but a and c are 16 bits apart
	a := rec("a", 0, 0)
	b := rec("b", bits8, ones)
	c := rec("c", bits16, half)

	groups := newTestGrouper().Group(tableOf(a, b, c))
	require.Len(t, groups, 2)
	assert.Equal(t, []string{"b"}, groups[0].Duplicates)
	assert.Equal(t, "c", groups[1].Original)
	assert.Empty(t, groups[1].Duplicates)

	// anchoring on b pulls in both
	groups = newTestGrouper().Group(tableOf(b, a, c))
	require.Len(t, groups, 1)
	assert.Equal(t, "b", groups[0].Original)
	assert.Equal(t, []string{"a", "c"}, groups[0].Duplicates)
}

func TestGroupIdenticalHashes(t *testing.T) {
	groups := newTestGrouper().Group(tableOf(
		rec("x", 0x1234, 0x5678),
		rec("y", ones, ones),
		rec("z", 0x1234, 0x5678),
	))

	require.Len(t, groups, 2)
	assert.Equal(t, []string{"z"}, groups[0].Duplicates)
	assert.Equal(t, "y", groups[1].Original)
}

func TestGroupMalformedHashNeverMatches(t *testing.T) {
	log, hook := test.NewNullLogger()
	g := NewGrouper(DefaultThresholds(), log)

	groups := g.Group(tableOf(
		types.ImageRecord{Path: "a", DHash: "bogus", PHash: "bogus"},
		types.ImageRecord{Path: "b", DHash: "bogus", PHash: "bogus"},
	))

	assert.Len(t, groups, 2)
	assert.NotEmpty(t, hook.AllEntries())
}

func TestGroupEveryImageOnce(t *testing.T) {
	table := tableOf(
		rec("1", 0, 0),
		rec("2", 0b1, ones),
		rec("3", ones, ones),
		rec("4", half, 0),
		rec("5", ones^0b11, half),
		rec("6", half, half),
	)
	groups := newTestGrouper().Group(table)

	seen := map[string]int{}
	for _, g := range groups {
		seen[g.Original]++
		for _, d := range g.Duplicates {
			seen[d]++
		}
	}
	assert.Len(t, seen, table.Len())
	for id, n := range seen {
		assert.Equal(t, 1, n, id)
	}

	result := Summarize(groups, 10)
	sum := 0
	for _, g := range result.DuplicateGroups {
		sum += len(g.Duplicates)
	}
	assert.Equal(t, sum, result.TotalDuplicates)
	assert.Equal(t, len(groups), len(result.UniqueImages))
	assert.Equal(t, 10, result.TotalProcessed)
}

func TestSummarizeUsesBaseNames(t *testing.T) {
	groups := []types.DuplicateGroup{
		{Original: "/up/a.png", Duplicates: []string{"/up/b.png", "/up/c.png"}},
		{Original: "/up/d.png", Duplicates: []string{}},
	}

	result := Summarize(groups, 5)
	assert.Equal(t, []string{"a.png", "d.png"}, result.UniqueImages)
	require.Len(t, result.DuplicateGroups, 1)
	assert.Equal(t, types.DuplicateGroup{Original: "a.png", Duplicates: []string{"b.png", "c.png"}}, result.DuplicateGroups[0])
	assert.Equal(t, 2, result.TotalDuplicates)
	assert.Equal(t, 5, result.TotalProcessed)
}
