package interviews

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"careercraft-backend/internal/coach"
	"careercraft-backend/internal/resumes"
	"careercraft-backend/internal/shared/expiry"
	"careercraft-backend/internal/shared/metrics"
	"careercraft-backend/internal/shared/telemetry"
)

// Service drives the mock-interview flow: start, one answer at a time, and a
// closing performance review. A session that outlives its TTL is treated as
// never having existed, whether found by a read or by the sweeper.
type Service struct {
	Repo    Repo
	Resumes *resumes.Service
	Coach   *coach.Service
	TTL     time.Duration

	now func() time.Time
}

// NewService constructs an interview Service.
func NewService(repo Repo, resumeSvc *resumes.Service, coachSvc *coach.Service, ttl time.Duration) *Service {
	return &Service{
		Repo:    repo,
		Resumes: resumeSvc,
		Coach:   coachSvc,
		TTL:     ttl,
		now:     time.Now,
	}
}

// Turn is the question the candidate must answer next. Number is 1-based.
type Turn struct {
	Question string `json:"question"`
	Number   int    `json:"questionNumber"`
	Total    int    `json:"totalQuestions"`
}

// Start generates a question list for the resume and opens a session on it.
// The session is only created once the model produced at least one question.
func (s *Service) Start(ctx context.Context, resumeID, jobDescription string) (Session, Turn, error) {
	text, err := s.Resumes.Text(ctx, resumeID)
	if err != nil {
		return Session{}, Turn{}, err
	}

	set, err := s.Coach.GenerateQuestions(ctx, text, jobDescription)
	if err != nil {
		return Session{}, Turn{}, err
	}
	questions := set.Flatten()
	if len(questions) == 0 {
		return Session{}, Turn{}, ErrNoQuestions
	}

	sess := Session{
		ID:        uuid.NewString(),
		ResumeID:  resumeID,
		Questions: questions,
		History:   []coach.QA{},
		StartedAt: s.now().UTC(),
	}
	if err := s.Repo.Create(ctx, sess); err != nil {
		return Session{}, Turn{}, fmt.Errorf("create interview session: %w", err)
	}

	metrics.IncInterviewStarted()
	telemetry.Info("interview.started", map[string]any{
		"interview_id": sess.ID,
		"resume_id":    resumeID,
		"questions":    len(questions),
	})
	return sess, Turn{Question: questions[0], Number: 1, Total: len(questions)}, nil
}

// SubmitAnswer records one answer. It returns the next turn while questions
// remain, and the closing report after the final answer. The final answer
// always consumes the session, even when the review itself fails.
func (s *Service) SubmitAnswer(ctx context.Context, id, answer string) (*Turn, *coach.Report, error) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return nil, nil, ErrEmptyAnswer
	}

	sess, err := s.get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if sess.Done() {
		return nil, nil, ErrConflict
	}

	qa := coach.QA{Question: sess.Questions[sess.CurrentIndex], Answer: answer}
	if err := s.Repo.AppendAnswer(ctx, id, sess.CurrentIndex, qa); err != nil {
		return nil, nil, err
	}

	next := sess.CurrentIndex + 1
	if next < len(sess.Questions) {
		return &Turn{
			Question: sess.Questions[next],
			Number:   next + 1,
			Total:    len(sess.Questions),
		}, nil, nil
	}

	report, err := s.finish(ctx, id, append(sess.History, qa))
	if err != nil {
		return nil, nil, err
	}
	return nil, &report, nil
}

// End closes a session early and returns the review over whatever was
// answered. A missing or expired session yields a placeholder report rather
// than an error, so clients can always render a closing screen.
func (s *Service) End(ctx context.Context, id string) (coach.Report, error) {
	sess, err := s.get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return coach.Report{
				Strengths:  []string{},
				Weaknesses: []string{},
				Tips:       []string{"Interview session timed out or was not found."},
			}, nil
		}
		return coach.Report{}, err
	}
	return s.finish(ctx, id, sess.History)
}

// finish produces the closing review and deletes the session. Deletion
// happens regardless of the review outcome so a finished session can never
// accept further answers.
func (s *Service) finish(ctx context.Context, id string, history []coach.QA) (coach.Report, error) {
	report, reviewErr := s.Coach.ReviewTranscript(ctx, history)

	if err := s.Repo.Delete(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
		telemetry.Error("interview.delete_failed", map[string]any{
			"interview_id": id,
			"error":        err.Error(),
		})
	}
	metrics.IncInterviewCompleted()

	if reviewErr != nil {
		return coach.Report{}, &ReportFailedError{Err: reviewErr}
	}
	telemetry.Info("interview.completed", map[string]any{
		"interview_id": id,
		"answers":      len(history),
	})
	return report, nil
}

// get returns a live session, deleting it first if it has outlived the TTL.
func (s *Service) get(ctx context.Context, id string) (Session, error) {
	if strings.TrimSpace(id) == "" {
		return Session{}, ErrNotFound
	}
	sess, err := s.Repo.Get(ctx, id)
	if err != nil {
		return Session{}, err
	}
	if expiry.Expired(sess.StartedAt, s.now().UTC(), s.TTL) {
		telemetry.Warn("interview.expired_on_read", map[string]any{"interview_id": id})
		if err := s.Repo.Delete(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
			return Session{}, err
		}
		return Session{}, ErrNotFound
	}
	return sess, nil
}

// DeleteExpired removes every session older than the TTL, using the same
// threshold arithmetic as the read-time check.
func (s *Service) DeleteExpired(ctx context.Context) (int, error) {
	return s.Repo.DeleteOlderThan(ctx, expiry.Cutoff(s.now().UTC(), s.TTL))
}
