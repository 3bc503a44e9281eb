package sweeper

import (
	"context"
	"time"

	"careercraft-backend/internal/interviews"
	"careercraft-backend/internal/resumes"
	"careercraft-backend/internal/shared/metrics"
	"careercraft-backend/internal/shared/telemetry"
)

// Sweeper periodically removes resumes and interview sessions that outlived
// their TTLs. It deletes by the same cutoff arithmetic the read path uses, so
// a record the sweeper would remove is already invisible to readers.
type Sweeper struct {
	Resumes    *resumes.Service
	Interviews *interviews.Service
	Interval   time.Duration
}

// New constructs a Sweeper.
func New(resumeSvc *resumes.Service, interviewSvc *interviews.Service, interval time.Duration) *Sweeper {
	return &Sweeper{
		Resumes:    resumeSvc,
		Interviews: interviewSvc,
		Interval:   interval,
	}
}

// Sweep runs one cleanup pass and returns the per-store deletion counts. A
// failure in one store does not stop the other from being swept.
func (s *Sweeper) Sweep(ctx context.Context) (sweptResumes, sweptInterviews int, err error) {
	sweptResumes, rErr := s.Resumes.DeleteExpired(ctx)
	if rErr != nil {
		telemetry.Error("sweep.resumes_failed", map[string]any{"error": rErr.Error()})
		err = rErr
	}
	if sweptResumes > 0 {
		metrics.AddSweptResumes(sweptResumes)
	}

	sweptInterviews, iErr := s.Interviews.DeleteExpired(ctx)
	if iErr != nil {
		telemetry.Error("sweep.interviews_failed", map[string]any{"error": iErr.Error()})
		if err == nil {
			err = iErr
		}
	}
	if sweptInterviews > 0 {
		metrics.AddSweptInterviews(sweptInterviews)
	}

	if sweptResumes > 0 || sweptInterviews > 0 {
		telemetry.Info("sweep.completed", map[string]any{
			"resumes":    sweptResumes,
			"interviews": sweptInterviews,
		})
	}
	return sweptResumes, sweptInterviews, err
}

// Run sweeps once immediately, then on every tick until the context ends.
func (s *Sweeper) Run(ctx context.Context) error {
	telemetry.Info("sweeper.started", map[string]any{"interval": s.Interval.String()})

	if _, _, err := s.Sweep(ctx); err != nil && ctx.Err() != nil {
		return ctx.Err()
	}

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			telemetry.Info("sweeper.stopped", nil)
			return ctx.Err()
		case <-ticker.C:
			_, _, _ = s.Sweep(ctx)
		}
	}
}
