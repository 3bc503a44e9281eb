package interviews

import (
	"context"
	"errors"
	"testing"
	"time"

	"careercraft-backend/internal/coach"
	"careercraft-backend/internal/resumes"
)

type scriptedLLM struct {
	replies []string
	errs    []error
	calls   int
}

func (f *scriptedLLM) Generate(_ context.Context, _ string) (string, error) {
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return "", f.errs[i]
	}
	if i < len(f.replies) {
		return f.replies[i], nil
	}
	return "", errors.New("unexpected model call")
}

const questionsReply = `{"General": ["Tell me about yourself."], "Technical": ["Explain goroutines."], "Behavioral": []}`
const reviewReply = `{"strengths": ["concise"], "weaknesses": ["few examples"], "tips": ["use STAR"]}`

func newTestService(t *testing.T, llmClient *scriptedLLM) (*Service, *MemoryRepo, string) {
	t.Helper()

	resumeRepo := resumes.NewMemoryRepo()
	rec := resumes.Record{
		ID:        "resume-1",
		FileName:  "cv.pdf",
		Text:      "ten years of Go",
		CreatedAt: time.Now().UTC(),
	}
	if err := resumeRepo.Create(context.Background(), rec); err != nil {
		t.Fatalf("seed resume: %v", err)
	}
	resumeSvc := resumes.NewService(resumeRepo, nil, 24*time.Hour)

	repo := NewMemoryRepo()
	svc := NewService(repo, resumeSvc, &coach.Service{LLM: llmClient}, 4*time.Hour)
	return svc, repo, rec.ID
}

func TestFullInterviewFlow(t *testing.T) {
	llmClient := &scriptedLLM{replies: []string{questionsReply, reviewReply}}
	svc, repo, resumeID := newTestService(t, llmClient)
	ctx := context.Background()

	sess, turn, err := svc.Start(ctx, resumeID, "backend role")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if turn.Number != 1 || turn.Total != 2 {
		t.Fatalf("first turn = %+v, want number 1 of 2", turn)
	}
	if turn.Question != "Tell me about yourself." {
		t.Errorf("first question = %q", turn.Question)
	}

	next, report, err := svc.SubmitAnswer(ctx, sess.ID, "I write services.")
	if err != nil {
		t.Fatalf("SubmitAnswer 1: %v", err)
	}
	if report != nil {
		t.Fatal("report should not appear before the final answer")
	}
	if next == nil || next.Number != 2 || next.Question != "Explain goroutines." {
		t.Fatalf("second turn = %+v", next)
	}

	next, report, err = svc.SubmitAnswer(ctx, sess.ID, "Lightweight threads.")
	if err != nil {
		t.Fatalf("SubmitAnswer 2: %v", err)
	}
	if next != nil {
		t.Fatal("no further turn expected after the final answer")
	}
	if report == nil || len(report.Tips) != 1 || report.Tips[0] != "use STAR" {
		t.Fatalf("unexpected report: %+v", report)
	}

	if _, err := repo.Get(ctx, sess.ID); !errors.Is(err, ErrNotFound) {
		t.Error("session must be deleted after the final answer")
	}
}

func TestSubmitAnswerRejectsBlank(t *testing.T) {
	llmClient := &scriptedLLM{replies: []string{questionsReply}}
	svc, repo, resumeID := newTestService(t, llmClient)
	ctx := context.Background()

	sess, _, err := svc.Start(ctx, resumeID, "")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	if _, _, err := svc.SubmitAnswer(ctx, sess.ID, "   \n\t "); !errors.Is(err, ErrEmptyAnswer) {
		t.Fatalf("expected ErrEmptyAnswer, got %v", err)
	}

	stored, err := repo.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.CurrentIndex != 0 || len(stored.History) != 0 {
		t.Errorf("rejected answer must not advance the session: %+v", stored)
	}
}

func TestStartFailsOnEmptyQuestionList(t *testing.T) {
	llmClient := &scriptedLLM{replies: []string{`{"General": [], "Technical": [], "Behavioral": []}`}}
	svc, repo, resumeID := newTestService(t, llmClient)
	ctx := context.Background()

	_, _, err := svc.Start(ctx, resumeID, "")
	if !errors.Is(err, ErrNoQuestions) {
		t.Fatalf("expected ErrNoQuestions, got %v", err)
	}

	if n, _ := repo.DeleteOlderThan(ctx, time.Now().Add(time.Hour)); n != 0 {
		t.Error("no session may be created when question generation fails")
	}
}

func TestStartUnknownResume(t *testing.T) {
	svc, _, _ := newTestService(t, &scriptedLLM{})

	_, _, err := svc.Start(context.Background(), "missing-id", "")
	if !errors.Is(err, resumes.ErrNotFound) {
		t.Fatalf("expected resumes.ErrNotFound, got %v", err)
	}
}

func TestSubmitAnswerOnExpiredSession(t *testing.T) {
	llmClient := &scriptedLLM{replies: []string{questionsReply}}
	svc, repo, resumeID := newTestService(t, llmClient)
	ctx := context.Background()

	sess, _, err := svc.Start(ctx, resumeID, "")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	svc.now = func() time.Time { return time.Now().Add(5 * time.Hour) }

	if _, _, err := svc.SubmitAnswer(ctx, sess.ID, "late answer"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for expired session, got %v", err)
	}
	if _, err := repo.Get(ctx, sess.ID); !errors.Is(err, ErrNotFound) {
		t.Error("expired session must be deleted on read")
	}
}

func TestEndMissingSessionReturnsPlaceholderReport(t *testing.T) {
	svc, _, _ := newTestService(t, &scriptedLLM{})

	report, err := svc.End(context.Background(), "never-existed")
	if err != nil {
		t.Fatalf("End: %v", err)
	}
	if len(report.Tips) != 1 || report.Tips[0] != "Interview session timed out or was not found." {
		t.Errorf("unexpected placeholder report: %+v", report)
	}
}

func TestEndWithNoAnswersSkipsModel(t *testing.T) {
	llmClient := &scriptedLLM{replies: []string{questionsReply}}
	svc, repo, resumeID := newTestService(t, llmClient)
	ctx := context.Background()

	sess, _, err := svc.Start(ctx, resumeID, "")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	report, err := svc.End(ctx, sess.ID)
	if err != nil {
		t.Fatalf("End: %v", err)
	}
	if llmClient.calls != 1 {
		t.Errorf("review over empty history must not call the model, calls = %d", llmClient.calls)
	}
	if len(report.Tips) != 1 || report.Tips[0] != "No answers were provided to analyze." {
		t.Errorf("unexpected report: %+v", report)
	}
	if _, err := repo.Get(ctx, sess.ID); !errors.Is(err, ErrNotFound) {
		t.Error("ended session must be deleted")
	}
}

func TestFinalAnswerConsumesSessionEvenWhenReviewFails(t *testing.T) {
	llmClient := &scriptedLLM{
		replies: []string{`{"General": ["Only question?"], "Technical": [], "Behavioral": []}`, "not json"},
	}
	svc, repo, resumeID := newTestService(t, llmClient)
	ctx := context.Background()

	sess, _, err := svc.Start(ctx, resumeID, "")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	_, _, err = svc.SubmitAnswer(ctx, sess.ID, "an answer")

	var reportFailed *ReportFailedError
	if !errors.As(err, &reportFailed) {
		t.Fatalf("expected ReportFailedError, got %v", err)
	}
	var malformed *coach.MalformedError
	if !errors.As(reportFailed.Err, &malformed) {
		t.Errorf("expected wrapped MalformedError, got %v", reportFailed.Err)
	}
	if _, err := repo.Get(ctx, sess.ID); !errors.Is(err, ErrNotFound) {
		t.Error("session must be deleted even when the review fails")
	}
}

func TestMemoryRepoAppendAnswerConflict(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	sess := Session{
		ID:        "s1",
		ResumeID:  "r1",
		Questions: []string{"q1", "q2"},
		StartedAt: time.Now().UTC(),
	}
	if err := repo.Create(ctx, sess); err != nil {
		t.Fatalf("Create: %v", err)
	}

	qa := coach.QA{Question: "q1", Answer: "a1"}
	if err := repo.AppendAnswer(ctx, "s1", 0, qa); err != nil {
		t.Fatalf("first append: %v", err)
	}
	if err := repo.AppendAnswer(ctx, "s1", 0, qa); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on stale index, got %v", err)
	}

	stored, err := repo.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.CurrentIndex != 1 || len(stored.History) != 1 {
		t.Errorf("conflicting append must not mutate the session: %+v", stored)
	}
}
