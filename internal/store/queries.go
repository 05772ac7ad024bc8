package store

import (
	"database/sql"
	"fmt"
	"time"
)

// InsertRun records a run and returns its id.
func (s *Store) InsertRun(run *Run) (int64, error) {
	query := `
		INSERT INTO runs
		(ran_at, command, total_packages, default_packages, manual_packages, auto_dependencies, lock_path, lock_checksum)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	ranAt := run.RanAt
	if ranAt.IsZero() {
		ranAt = time.Now()
	}

	res, err := s.db.Exec(query,
		ranAt.Format(time.RFC3339),
		run.Command,
		run.TotalPackages,
		run.DefaultPackages,
		run.ManualPackages,
		run.AutoDeps,
		run.LockPath,
		run.LockChecksum,
	)
	if err != nil {
		return 0, wrapQueryErr("failed to insert run", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}
	return id, nil
}

// ListRuns returns the most recent runs, newest first, up to limit.
func (s *Store) ListRuns(limit int) ([]*Run, error) {
	query := `
		SELECT id, ran_at, command, total_packages, default_packages, manual_packages, auto_dependencies, lock_path, lock_checksum
		FROM runs
		ORDER BY ran_at DESC, id DESC
		LIMIT ?
	`

	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, wrapQueryErr("failed to list runs", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}
	return runs, nil
}

// LastRun returns the most recent run of the given command, or nil when
// none exists.
func (s *Store) LastRun(command string) (*Run, error) {
	query := `
		SELECT id, ran_at, command, total_packages, default_packages, manual_packages, auto_dependencies, lock_path, lock_checksum
		FROM runs
		WHERE command = ?
		ORDER BY ran_at DESC, id DESC
		LIMIT 1
	`

	row := s.db.QueryRow(query, command)
	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, wrapQueryErr(fmt.Sprintf("failed to get last %s run", command), err)
	}
	return run, nil
}

// scanner abstracts sql.Row and sql.Rows for scanRun.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(r rowScanner) (*Run, error) {
	var run Run
	var ranAt string

	err := r.Scan(
		&run.ID,
		&ranAt,
		&run.Command,
		&run.TotalPackages,
		&run.DefaultPackages,
		&run.ManualPackages,
		&run.AutoDeps,
		&run.LockPath,
		&run.LockChecksum,
	)
	if err != nil {
		return nil, err
	}

	run.RanAt, err = time.Parse(time.RFC3339, ranAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ran_at: %w", err)
	}
	return &run, nil
}
