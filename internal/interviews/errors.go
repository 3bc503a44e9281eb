package interviews

import "errors"

var (
	// ErrNotFound indicates the session does not exist or has expired.
	ErrNotFound = errors.New("interview session not found")
	// ErrEmptyAnswer indicates a blank answer submission.
	ErrEmptyAnswer = errors.New("answer cannot be empty")
	// ErrNoQuestions indicates the model produced an empty question list.
	ErrNoQuestions = errors.New("no interview questions were generated")
	// ErrConflict indicates a concurrent submission already advanced the session.
	ErrConflict = errors.New("session was modified concurrently")
)

// ReportFailedError indicates the interview itself concluded but the closing
// performance review could not be produced. Err carries the AI failure.
type ReportFailedError struct {
	Err error
}

func (e *ReportFailedError) Error() string {
	if e.Err == nil {
		return "interview report failed"
	}
	return "interview report failed: " + e.Err.Error()
}

func (e *ReportFailedError) Unwrap() error { return e.Err }
