package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	aiInvocationsTotal       atomic.Uint64
	aiFailuresTotal          atomic.Uint64
	interviewsStartedTotal   atomic.Uint64
	interviewsCompletedTotal atomic.Uint64
	sweptResumesTotal        atomic.Uint64
	sweptInterviewsTotal     atomic.Uint64

	aiCallDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
)

// IncAIInvocation increments the AI invocation counter.
func IncAIInvocation() {
	aiInvocationsTotal.Add(1)
}

// IncAIFailure increments the AI failure counter.
func IncAIFailure() {
	aiFailuresTotal.Add(1)
}

// IncInterviewStarted increments the interviews-started counter.
func IncInterviewStarted() {
	interviewsStartedTotal.Add(1)
}

// IncInterviewCompleted increments the interviews-completed counter.
func IncInterviewCompleted() {
	interviewsCompletedTotal.Add(1)
}

// AddSweptResumes records resumes deleted by the sweeper.
func AddSweptResumes(n int) {
	if n > 0 {
		sweptResumesTotal.Add(uint64(n))
	}
}

// AddSweptInterviews records interview sessions deleted by the sweeper.
func AddSweptInterviews(n int) {
	if n > 0 {
		sweptInterviewsTotal.Add(uint64(n))
	}
}

// ObserveAICallDurationMs records an AI call duration in milliseconds.
func ObserveAICallDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	aiCallDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "ai_invocations_total", "Total AI model invocations", aiInvocationsTotal.Load())
	writeCounter(&buf, "ai_failures_total", "Total failed AI model invocations", aiFailuresTotal.Load())
	writeCounter(&buf, "interviews_started_total", "Total mock interviews started", interviewsStartedTotal.Load())
	writeCounter(&buf, "interviews_completed_total", "Total mock interviews completed", interviewsCompletedTotal.Load())
	writeCounter(&buf, "swept_resumes_total", "Total resume records deleted by the sweeper", sweptResumesTotal.Load())
	writeCounter(&buf, "swept_interviews_total", "Total interview sessions deleted by the sweeper", sweptInterviewsTotal.Load())
	writeHistogram(&buf, "ai_call_duration_ms", "AI call duration in milliseconds", aiCallDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	for i, bound := range snap.buckets {
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), snap.counts[i])
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
