package interviews

import (
	"time"

	"careercraft-backend/internal/coach"
)

// Session is one mock-interview run against an uploaded resume. Questions are
// fixed at creation; History grows by one entry per accepted answer, so
// len(History) always equals CurrentIndex.
type Session struct {
	ID           string
	ResumeID     string
	Questions    []string
	History      []coach.QA
	CurrentIndex int
	StartedAt    time.Time
}

// Done reports whether every question has been answered.
func (s Session) Done() bool {
	return s.CurrentIndex >= len(s.Questions)
}
