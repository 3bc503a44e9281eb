package interviews

import (
	"context"
	"sync"
	"time"

	"careercraft-backend/internal/coach"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Session
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Session)}
}

// Create stores an interview session.
func (r *MemoryRepo) Create(ctx context.Context, sess Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if sess.History == nil {
		sess.History = []coach.QA{}
	}
	r.data[sess.ID] = sess
	return nil
}

// Get fetches an interview session by ID.
func (r *MemoryRepo) Get(ctx context.Context, id string) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	sess, ok := r.data[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	return copySession(sess), nil
}

// Delete removes an interview session by ID.
func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return ErrNotFound
	}
	delete(r.data, id)
	return nil
}

// AppendAnswer records an answer and advances the index under the lock,
// failing with ErrConflict when the stored index no longer matches.
func (r *MemoryRepo) AppendAnswer(ctx context.Context, id string, expectedIndex int, qa coach.QA) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, ok := r.data[id]
	if !ok {
		return ErrNotFound
	}
	if sess.CurrentIndex != expectedIndex {
		return ErrConflict
	}
	sess.History = append(append([]coach.QA{}, sess.History...), qa)
	sess.CurrentIndex++
	r.data[id] = sess
	return nil
}

// DeleteOlderThan removes all sessions started before cutoff and returns the count.
func (r *MemoryRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for id, sess := range r.data {
		if sess.StartedAt.Before(cutoff) {
			delete(r.data, id)
			count++
		}
	}
	return count, nil
}

func copySession(sess Session) Session {
	out := sess
	out.Questions = append([]string{}, sess.Questions...)
	out.History = append([]coach.QA{}, sess.History...)
	return out
}

var _ Repo = (*MemoryRepo)(nil)
