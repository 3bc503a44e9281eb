package interviews

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"careercraft-backend/internal/coach"
)

// PGRepo implements Repo using Postgres. Questions and history live in JSONB
// columns; the answer append and the index advance happen in one guarded
// UPDATE so concurrent submissions cannot both succeed.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new interview session.
func (r *PGRepo) Create(ctx context.Context, sess Session) error {
	const query = `
INSERT INTO interview_sessions (id, resume_id, questions, history, current_index, started_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	questions, err := json.Marshal(sess.Questions)
	if err != nil {
		return fmt.Errorf("marshal questions: %w", err)
	}
	history := sess.History
	if history == nil {
		history = []coach.QA{}
	}
	historyJSON, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}

	_, err = r.DB.ExecContext(ctx, query,
		sess.ID, sess.ResumeID, questions, historyJSON, sess.CurrentIndex, sess.StartedAt)
	return err
}

// Get fetches an interview session by ID.
func (r *PGRepo) Get(ctx context.Context, id string) (Session, error) {
	const query = `
SELECT id, resume_id, questions, history, current_index, started_at
FROM interview_sessions
WHERE id = $1`

	var sess Session
	var questions, history []byte
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&sess.ID,
		&sess.ResumeID,
		&questions,
		&history,
		&sess.CurrentIndex,
		&sess.StartedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Session{}, ErrNotFound
		}
		return Session{}, err
	}

	if err := json.Unmarshal(questions, &sess.Questions); err != nil {
		return Session{}, fmt.Errorf("unmarshal questions: %w", err)
	}
	if err := json.Unmarshal(history, &sess.History); err != nil {
		return Session{}, fmt.Errorf("unmarshal history: %w", err)
	}
	return sess, nil
}

// Delete removes an interview session by ID.
func (r *PGRepo) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM interview_sessions WHERE id = $1`
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

// AppendAnswer records an answer and advances the index, guarded by the
// expected index. A zero-row update means either the session vanished or the
// index moved; a follow-up existence check tells the two apart.
func (r *PGRepo) AppendAnswer(ctx context.Context, id string, expectedIndex int, qa coach.QA) error {
	const query = `
UPDATE interview_sessions
SET history = history || $3::jsonb, current_index = current_index + 1
WHERE id = $1 AND current_index = $2`

	entry, err := json.Marshal(qa)
	if err != nil {
		return fmt.Errorf("marshal answer: %w", err)
	}

	res, err := r.DB.ExecContext(ctx, query, id, expectedIndex, entry)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected > 0 {
		return nil
	}

	const existsQuery = `SELECT 1 FROM interview_sessions WHERE id = $1`
	var one int
	if err := r.DB.QueryRowContext(ctx, existsQuery, id).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return ErrConflict
}

// DeleteOlderThan removes all sessions started before cutoff and returns the count.
func (r *PGRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	const query = `DELETE FROM interview_sessions WHERE started_at < $1`
	res, err := r.DB.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, err
	}
	affected, _ := res.RowsAffected()
	return int(affected), nil
}

var _ Repo = (*PGRepo)(nil)
