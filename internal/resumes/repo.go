package resumes

import (
	"context"
	"time"
)

// Repo defines persistence operations for resume records.
type Repo interface {
	Create(ctx context.Context, rec Record) error
	Get(ctx context.Context, id string) (Record, error)
	Delete(ctx context.Context, id string) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}
