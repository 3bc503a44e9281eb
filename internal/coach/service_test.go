package coach

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"careercraft-backend/internal/llm"
)

type fakeLLM struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeLLM) Generate(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func TestServiceEnabled(t *testing.T) {
	if (&Service{LLM: llm.Disabled{}}).Enabled() {
		t.Error("disabled client should report not enabled")
	}
	if (&Service{}).Enabled() {
		t.Error("nil client should report not enabled")
	}
	if !(&Service{LLM: &fakeLLM{}}).Enabled() {
		t.Error("real client should report enabled")
	}
}

func TestInvokeWhenDisabled(t *testing.T) {
	svc := &Service{LLM: llm.Disabled{}}
	_, err := svc.Invoke(context.Background(), TaskReview, Params{ResumeText: "x"})
	if !errors.Is(err, llm.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestInvokeSuccess(t *testing.T) {
	fake := &fakeLLM{reply: "```json\n{\"subject\": \"S\", \"email_body\": \"B\", \"tips\": []}\n```"}
	svc := &Service{LLM: fake}

	doc, err := svc.Invoke(context.Background(), TaskEmail, Params{ResumeText: "cv", EmailType: "follow-up"})
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if doc["subject"] != "S" || doc["email_body"] != "B" {
		t.Errorf("unexpected document: %v", doc)
	}
	if len(fake.prompts) != 1 {
		t.Fatalf("expected exactly one model call, got %d", len(fake.prompts))
	}
}

func TestInvokeRefused(t *testing.T) {
	svc := &Service{LLM: &fakeLLM{err: llm.ErrRefused}}
	_, err := svc.Invoke(context.Background(), TaskReview, Params{ResumeText: "x"})
	if !errors.Is(err, llm.ErrRefused) {
		t.Fatalf("expected ErrRefused, got %v", err)
	}
}

func TestInvokeUpstreamFault(t *testing.T) {
	cause := errors.New("connection reset")
	fake := &fakeLLM{err: cause}
	svc := &Service{LLM: fake}

	_, err := svc.Invoke(context.Background(), TaskReview, Params{ResumeText: "x"})

	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Error("UpstreamError should wrap the cause")
	}
	if len(fake.prompts) != 1 {
		t.Errorf("expected no retry, got %d calls", len(fake.prompts))
	}
}

func TestInvokeMalformedReply(t *testing.T) {
	svc := &Service{LLM: &fakeLLM{reply: "I'm sorry, here is some advice instead."}}

	_, err := svc.Invoke(context.Background(), TaskReview, Params{ResumeText: "x"})

	var malformed *MalformedError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedError, got %v", err)
	}
	if malformed.Raw == "" {
		t.Error("MalformedError should carry the raw reply")
	}
}

func TestGenerateQuestions(t *testing.T) {
	fake := &fakeLLM{reply: `{"General": ["g1", "g2"], "Technical": ["t1"], "Behavioral": ["b1"]}`}
	svc := &Service{LLM: fake}

	set, err := svc.GenerateQuestions(context.Background(), "cv text", "jd text")
	if err != nil {
		t.Fatalf("GenerateQuestions: %v", err)
	}

	want := []string{"g1", "g2", "t1", "b1"}
	if got := set.Flatten(); !reflect.DeepEqual(got, want) {
		t.Errorf("Flatten = %v, want %v", got, want)
	}
}

func TestGenerateQuestionsMissingCategories(t *testing.T) {
	svc := &Service{LLM: &fakeLLM{reply: `{"Technical": ["t1"]}`}}

	set, err := svc.GenerateQuestions(context.Background(), "cv", "")
	if err != nil {
		t.Fatalf("GenerateQuestions: %v", err)
	}
	if got := set.Flatten(); !reflect.DeepEqual(got, []string{"t1"}) {
		t.Errorf("Flatten = %v, want [t1]", got)
	}
}

func TestReviewTranscriptEmptyHistory(t *testing.T) {
	fake := &fakeLLM{reply: `{"strengths": [], "weaknesses": [], "tips": []}`}
	svc := &Service{LLM: fake}

	report, err := svc.ReviewTranscript(context.Background(), nil)
	if err != nil {
		t.Fatalf("ReviewTranscript: %v", err)
	}
	if len(fake.prompts) != 0 {
		t.Error("empty history must not reach the model")
	}
	if len(report.Tips) != 1 || report.Tips[0] != "No answers were provided to analyze." {
		t.Errorf("unexpected degenerate report: %+v", report)
	}
	if report.Strengths == nil || report.Weaknesses == nil {
		t.Error("degenerate report lists must be empty, not nil")
	}
}

func TestReviewTranscript(t *testing.T) {
	fake := &fakeLLM{reply: `{"strengths": ["clear"], "weaknesses": ["short"], "tips": ["expand"]}`}
	svc := &Service{LLM: fake}

	report, err := svc.ReviewTranscript(context.Background(), []QA{{Question: "Q1", Answer: "A1"}})
	if err != nil {
		t.Fatalf("ReviewTranscript: %v", err)
	}
	if !reflect.DeepEqual(report.Strengths, []string{"clear"}) {
		t.Errorf("Strengths = %v", report.Strengths)
	}
	if len(fake.prompts) != 1 {
		t.Fatalf("expected one model call, got %d", len(fake.prompts))
	}
}
