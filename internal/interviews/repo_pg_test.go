package interviews

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"careercraft-backend/internal/coach"
)

func newMockRepo(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

func TestPGRepoCreate(t *testing.T) {
	repo, mock := newMockRepo(t)
	sess := Session{
		ID:        "session-1",
		ResumeID:  "resume-1",
		Questions: []string{"q1", "q2"},
		StartedAt: time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO interview_sessions").
		WithArgs(
			sess.ID,
			sess.ResumeID,
			[]byte(`["q1","q2"]`),
			[]byte(`[]`),
			0,
			sess.StartedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), sess); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetDecodesJSONColumns(t *testing.T) {
	repo, mock := newMockRepo(t)
	started := time.Now().UTC()

	rows := sqlmock.NewRows([]string{"id", "resume_id", "questions", "history", "current_index", "started_at"}).
		AddRow("session-1", "resume-1",
			[]byte(`["q1","q2"]`),
			[]byte(`[{"question":"q1","answer":"a1"}]`),
			1, started)

	mock.ExpectQuery("SELECT id, resume_id, questions, history, current_index, started_at").
		WithArgs("session-1").
		WillReturnRows(rows)

	sess, err := repo.Get(context.Background(), "session-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(sess.Questions) != 2 || sess.Questions[0] != "q1" {
		t.Errorf("questions = %v", sess.Questions)
	}
	if len(sess.History) != 1 || sess.History[0].Answer != "a1" {
		t.Errorf("history = %v", sess.History)
	}
	if sess.CurrentIndex != 1 {
		t.Errorf("current_index = %d, want 1", sess.CurrentIndex)
	}
}

func TestPGRepoGetNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT id, resume_id, questions, history, current_index, started_at").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	if _, err := repo.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoAppendAnswerGuardsIndex(t *testing.T) {
	repo, mock := newMockRepo(t)
	qa := coach.QA{Question: "q1", Answer: "a1"}

	mock.ExpectExec("UPDATE interview_sessions").
		WithArgs("session-1", 0, []byte(`{"question":"q1","answer":"a1"}`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.AppendAnswer(context.Background(), "session-1", 0, qa); err != nil {
		t.Fatalf("AppendAnswer: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoAppendAnswerConflict(t *testing.T) {
	repo, mock := newMockRepo(t)
	qa := coach.QA{Question: "q1", Answer: "a1"}

	mock.ExpectExec("UPDATE interview_sessions").
		WithArgs("session-1", 0, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT 1 FROM interview_sessions").
		WithArgs("session-1").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	if err := repo.AppendAnswer(context.Background(), "session-1", 0, qa); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestPGRepoAppendAnswerMissingSession(t *testing.T) {
	repo, mock := newMockRepo(t)
	qa := coach.QA{Question: "q1", Answer: "a1"}

	mock.ExpectExec("UPDATE interview_sessions").
		WithArgs("missing", 0, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT 1 FROM interview_sessions").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	if err := repo.AppendAnswer(context.Background(), "missing", 0, qa); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoDeleteOlderThan(t *testing.T) {
	repo, mock := newMockRepo(t)
	cutoff := time.Now().UTC().Add(-4 * time.Hour)

	mock.ExpectExec("DELETE FROM interview_sessions WHERE started_at").
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.DeleteOlderThan(context.Background(), cutoff)
	if err != nil {
		t.Fatalf("DeleteOlderThan: %v", err)
	}
	if n != 3 {
		t.Errorf("deleted = %d, want 3", n)
	}
}
