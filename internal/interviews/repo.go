package interviews

import (
	"context"
	"time"

	"careercraft-backend/internal/coach"
)

// Repo defines persistence operations for interview sessions.
//
// AppendAnswer is a compare-and-swap: it records the answer and advances the
// index only when the stored index still equals expectedIndex, returning
// ErrConflict when another submission won the race.
type Repo interface {
	Create(ctx context.Context, sess Session) error
	Get(ctx context.Context, id string) (Session, error)
	Delete(ctx context.Context, id string) error
	AppendAnswer(ctx context.Context, id string, expectedIndex int, qa coach.QA) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}
