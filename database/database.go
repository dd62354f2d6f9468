// Package database keeps a sqlite history of detection runs. Only results
// are stored; fingerprints never leave the batch that computed them.
package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"dupfinder/types"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// InitDatabase opens dbPath and creates the schema if needed
func InitDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		source TEXT,
		total_processed INTEGER,
		total_duplicates INTEGER,
		unique_count INTEGER
	);
	CREATE TABLE IF NOT EXISTS duplicate_groups (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		original TEXT NOT NULL,
		duplicates TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
	CREATE INDEX IF NOT EXISTS idx_groups_run_id ON duplicate_groups(run_id);`

	if _, err = db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("error creating schema: %w", err)
	}

	return db, nil
}

// timestampFormat sorts lexically, unlike time.RFC3339Nano
const timestampFormat = "2006-01-02T15:04:05.000000000Z07:00"

// StoreRun records result under a new run id and returns the stored summary
func StoreRun(db *sql.DB, source string, result *types.Result) (*types.RunSummary, error) {
	run := &types.RunSummary{
		ID:              uuid.NewString(),
		CreatedAt:       time.Now().UTC().Format(timestampFormat),
		Source:          source,
		TotalProcessed:  result.TotalProcessed,
		TotalDuplicates: result.TotalDuplicates,
		UniqueCount:     len(result.UniqueImages),
		DuplicateGroups: result.DuplicateGroups,
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO runs (id, created_at, source, total_processed, total_duplicates, unique_count)
		VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.CreatedAt, run.Source, run.TotalProcessed, run.TotalDuplicates, run.UniqueCount)
	if err != nil {
		return nil, fmt.Errorf("cannot insert run %s: %w", run.ID, err)
	}

	stmt, err := tx.Prepare(`INSERT INTO duplicate_groups (run_id, position, original, duplicates) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("cannot prepare statement for run %s: %w", run.ID, err)
	}
	defer stmt.Close()

	for i, group := range result.DuplicateGroups {
		dups, err := json.Marshal(group.Duplicates)
		if err != nil {
			return nil, err
		}
		if _, err := stmt.Exec(run.ID, i, group.Original, string(dups)); err != nil {
			return nil, fmt.Errorf("cannot insert group for run %s: %w", run.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return run, nil
}

// ListRuns returns the most recent runs, newest first, without their groups
func ListRuns(db *sql.DB, limit int) ([]types.RunSummary, error) {
	rows, err := db.Query(`SELECT id, created_at, source, total_processed, total_duplicates, unique_count
		FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []types.RunSummary
	for rows.Next() {
		var r types.RunSummary
		if err := rows.Scan(&r.ID, &r.CreatedAt, &r.Source, &r.TotalProcessed, &r.TotalDuplicates, &r.UniqueCount); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRun loads one run including its duplicate groups
func GetRun(db *sql.DB, id string) (*types.RunSummary, error) {
	var r types.RunSummary
	err := db.QueryRow(`SELECT id, created_at, source, total_processed, total_duplicates, unique_count
		FROM runs WHERE id = ?`, id).
		Scan(&r.ID, &r.CreatedAt, &r.Source, &r.TotalProcessed, &r.TotalDuplicates, &r.UniqueCount)
	if err != nil {
		return nil, fmt.Errorf("cannot load run %s: %w", id, err)
	}

	rows, err := db.Query(`SELECT original, duplicates FROM duplicate_groups WHERE run_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("cannot load groups for run %s: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var original, dups string
		if err := rows.Scan(&original, &dups); err != nil {
			return nil, err
		}
		group := types.DuplicateGroup{Original: original}
		if err := json.Unmarshal([]byte(dups), &group.Duplicates); err != nil {
			return nil, fmt.Errorf("corrupt group for run %s: %w", id, err)
		}
		r.DuplicateGroups = append(r.DuplicateGroups, group)
	}
	return &r, rows.Err()
}
