package database

import (
	"database/sql"
	"path/filepath"
	"testing"

	"dupfinder/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := InitDatabase(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestStoreAndGetRun(t *testing.T) {
	db := openTestDB(t)

	result := &types.Result{
		UniqueImages: []string{"a.png", "d.png"},
		DuplicateGroups: []types.DuplicateGroup{
			{Original: "a.png", Duplicates: []string{"b.png", "c.png"}},
		},
		TotalDuplicates: 2,
		TotalProcessed:  5,
	}

	run, err := StoreRun(db, "/photos", result)
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)

	got, err := GetRun(db, run.ID)
	require.NoError(t, err)
	assert.Equal(t, "/photos", got.Source)
	assert.Equal(t, 5, got.TotalProcessed)
	assert.Equal(t, 2, got.TotalDuplicates)
	assert.Equal(t, 2, got.UniqueCount)
	assert.Equal(t, result.DuplicateGroups, got.DuplicateGroups)
}

func TestListRunsNewestFirst(t *testing.T) {
	db := openTestDB(t)

	first, err := StoreRun(db, "one", &types.Result{UniqueImages: []string{"x"}, TotalProcessed: 1})
	require.NoError(t, err)
	second, err := StoreRun(db, "two", &types.Result{UniqueImages: []string{"y"}, TotalProcessed: 1})
	require.NoError(t, err)

	runs, err := ListRuns(db, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second.ID, runs[0].ID)
	assert.Equal(t, first.ID, runs[1].ID)

	runs, err = ListRuns(db, 1)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestGetRunMissing(t *testing.T) {
	_, err := GetRun(openTestDB(t), "nope")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
