package coach

import (
	"context"
	"errors"
	"time"

	"careercraft-backend/internal/llm"
	"careercraft-backend/internal/shared/metrics"
	"careercraft-backend/internal/shared/telemetry"
)

// Service mediates every call to the generative model: it builds the
// task-specific prompt, performs exactly one model call, and normalizes the
// reply into a validated structured result or a classified failure.
type Service struct {
	LLM llm.Client
}

// Enabled reports whether a real model provider is configured.
func (s *Service) Enabled() bool {
	if s == nil || s.LLM == nil {
		return false
	}
	_, disabled := s.LLM.(llm.Disabled)
	return !disabled
}

// Invoke runs one AI task. Failure classification:
// llm.ErrUnavailable (no provider), llm.ErrRefused (model declined),
// *UpstreamError (transport/provider fault), *MalformedError (reply failed
// structural validation, raw text attached). No automatic retry.
func (s *Service) Invoke(ctx context.Context, task Task, params Params) (map[string]any, error) {
	if !s.Enabled() {
		return nil, llm.ErrUnavailable
	}

	prompt, err := BuildPrompt(task, params)
	if err != nil {
		return nil, err
	}

	metrics.IncAIInvocation()
	start := time.Now()
	raw, err := s.LLM.Generate(ctx, prompt)
	metrics.ObserveAICallDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)

	if err != nil {
		metrics.IncAIFailure()
		if errors.Is(err, llm.ErrUnavailable) || errors.Is(err, llm.ErrRefused) {
			return nil, err
		}
		telemetry.Error("ai.call_failed", map[string]any{
			"task":  string(task),
			"error": err.Error(),
		})
		return nil, &UpstreamError{Err: err}
	}

	doc, err := Normalize(raw, task)
	if err != nil {
		metrics.IncAIFailure()
		telemetry.Error("ai.malformed_response", map[string]any{
			"task":    string(task),
			"raw_len": len(raw),
			"error":   err.Error(),
		})
		return nil, err
	}
	return doc, nil
}

// QuestionSet is the categorized output of the question-generation task.
type QuestionSet struct {
	General    []string
	Technical  []string
	Behavioral []string
}

// Flatten joins the categories in fixed order: general, technical, behavioral.
func (q QuestionSet) Flatten() []string {
	out := make([]string, 0, len(q.General)+len(q.Technical)+len(q.Behavioral))
	out = append(out, q.General...)
	out = append(out, q.Technical...)
	out = append(out, q.Behavioral...)
	return out
}

// GenerateQuestions runs the question-set task for a resume and job description.
func (s *Service) GenerateQuestions(ctx context.Context, resumeText, jobDescription string) (QuestionSet, error) {
	doc, err := s.Invoke(ctx, TaskQuestions, Params{ResumeText: resumeText, JobDescription: jobDescription})
	if err != nil {
		return QuestionSet{}, err
	}
	return QuestionSet{
		General:    toStringList(doc["General"]),
		Technical:  toStringList(doc["Technical"]),
		Behavioral: toStringList(doc["Behavioral"]),
	}, nil
}

// Report is the structured outcome of an interview performance review.
type Report struct {
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
	Tips       []string `json:"tips"`
}

// ReviewTranscript runs the performance review over answered questions.
// An empty history short-circuits without a model call.
func (s *Service) ReviewTranscript(ctx context.Context, history []QA) (Report, error) {
	if len(history) == 0 {
		return Report{
			Strengths:  []string{},
			Weaknesses: []string{},
			Tips:       []string{"No answers were provided to analyze."},
		}, nil
	}

	doc, err := s.Invoke(ctx, TaskInterviewReview, Params{Transcript: FormatTranscript(history)})
	if err != nil {
		return Report{}, err
	}
	return Report{
		Strengths:  toStringList(doc["strengths"]),
		Weaknesses: toStringList(doc["weaknesses"]),
		Tips:       toStringList(doc["tips"]),
	}, nil
}

func toStringList(val any) []string {
	items, ok := val.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
