package resumes

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new resume record.
func (r *PGRepo) Create(ctx context.Context, rec Record) error {
	const query = `
INSERT INTO resume_records (id, file_name, storage_key, resume_text, created_at)
VALUES ($1, $2, $3, $4, $5)`

	var storageKey sql.NullString
	if rec.StorageKey != "" {
		storageKey = sql.NullString{String: rec.StorageKey, Valid: true}
	}

	_, err := r.DB.ExecContext(ctx, query, rec.ID, rec.FileName, storageKey, rec.Text, rec.CreatedAt)
	return err
}

// Get fetches a resume record by ID.
func (r *PGRepo) Get(ctx context.Context, id string) (Record, error) {
	const query = `
SELECT id, file_name, storage_key, resume_text, created_at
FROM resume_records
WHERE id = $1`

	var rec Record
	var storageKey sql.NullString
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&rec.ID,
		&rec.FileName,
		&storageKey,
		&rec.Text,
		&rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	if storageKey.Valid {
		rec.StorageKey = storageKey.String
	}
	return rec, nil
}

// Delete removes a resume record by ID.
func (r *PGRepo) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM resume_records WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteOlderThan removes all records created before cutoff and returns the count.
func (r *PGRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	const query = `DELETE FROM resume_records WHERE created_at < $1`
	res, err := r.DB.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, err
	}
	affected, _ := res.RowsAffected()
	return int(affected), nil
}

var _ Repo = (*PGRepo)(nil)
