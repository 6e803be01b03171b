package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ericfisherdev/reviewbot/internal/domain/model"
	"github.com/ericfisherdev/reviewbot/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.ReviewStateStore = (*StateRepo)(nil)

// StateRepo is the SQLite implementation of the ReviewStateStore port.
type StateRepo struct {
	db *DB
}

// NewStateRepo creates a StateRepo backed by the given DB.
func NewStateRepo(db *DB) *StateRepo {
	return &StateRepo{db: db}
}

// Lookup returns the record for (repo, number), or nil when the pull
// request has never been reviewed.
func (r *StateRepo) Lookup(ctx context.Context, repoFullName string, number int) (*model.PRRecord, error) {
	const query = `
		SELECT repo_full_name, pr_number, head_sha, reviewed_at, touches_target, success, error
		FROM reviewed_prs
		WHERE repo_full_name = ? AND pr_number = ?
	`

	rec, err := scanRecord(r.db.Reader.QueryRowContext(ctx, query, repoFullName, number))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup %s#%d: %w", repoFullName, number, err)
	}

	return rec, nil
}

// RecordReviewed upserts the record for its (repo, number) key. A second
// call for the same key replaces the prior row.
func (r *StateRepo) RecordReviewed(ctx context.Context, rec model.PRRecord) error {
	const query = `
		INSERT INTO reviewed_prs (repo_full_name, pr_number, head_sha, reviewed_at, touches_target, success, error)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(repo_full_name, pr_number) DO UPDATE SET
			head_sha = excluded.head_sha,
			reviewed_at = excluded.reviewed_at,
			touches_target = excluded.touches_target,
			success = excluded.success,
			error = excluded.error
	`

	touches := 0
	if rec.TouchesTarget {
		touches = 1
	}
	success := 0
	if rec.Success {
		success = 1
	}

	_, err := r.db.Writer.ExecContext(ctx, query,
		rec.RepoFullName, rec.Number, rec.HeadSHA,
		rec.ReviewedAt.UTC().Format(time.RFC3339), touches, success, rec.Error,
	)
	if err != nil {
		return fmt.Errorf("record reviewed %s#%d: %w", rec.RepoFullName, rec.Number, err)
	}

	return nil
}

// ListAll returns every record ordered by (repo, number), for diagnostics.
func (r *StateRepo) ListAll(ctx context.Context) ([]model.PRRecord, error) {
	const query = `
		SELECT repo_full_name, pr_number, head_sha, reviewed_at, touches_target, success, error
		FROM reviewed_prs
		ORDER BY repo_full_name, pr_number
	`

	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query reviewed PRs: %w", err)
	}
	defer rows.Close()

	var records []model.PRRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reviewed PR: %w", err)
		}
		records = append(records, *rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviewed PRs: %w", err)
	}

	return records, nil
}

// Clear removes records for one repository, or all records when
// repoFullName is empty.
func (r *StateRepo) Clear(ctx context.Context, repoFullName string) error {
	var err error
	if repoFullName == "" {
		_, err = r.db.Writer.ExecContext(ctx, `DELETE FROM reviewed_prs`)
	} else {
		_, err = r.db.Writer.ExecContext(ctx, `DELETE FROM reviewed_prs WHERE repo_full_name = ?`, repoFullName)
	}
	if err != nil {
		return fmt.Errorf("clear review state: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*model.PRRecord, error) {
	var rec model.PRRecord
	var reviewedAt string
	var touches, success int

	err := s.Scan(
		&rec.RepoFullName, &rec.Number, &rec.HeadSHA,
		&reviewedAt, &touches, &success, &rec.Error,
	)
	if err != nil {
		return nil, err
	}

	rec.TouchesTarget = touches != 0
	rec.Success = success != 0

	rec.ReviewedAt, err = time.Parse(time.RFC3339, reviewedAt)
	if err != nil {
		return nil, fmt.Errorf("parse reviewed_at: %w", err)
	}

	return &rec, nil
}
