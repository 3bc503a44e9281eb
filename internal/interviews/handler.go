package interviews

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"careercraft-backend/internal/coach"
	"careercraft-backend/internal/resumes"
	"careercraft-backend/internal/shared/server/respond"
)

// Handler exposes the mock-interview endpoints.
type Handler struct {
	Svc *Service
}

// NewHandler constructs an interview Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes registers interview routes on the group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/interviews", h.start)
	rg.POST("/interviews/:id/answers", h.submitAnswer)
	rg.POST("/interviews/:id/end", h.end)
}

type startRequest struct {
	ResumeID       string `json:"resumeId"`
	JobDescription string `json:"jobDescription"`
}

func (h *Handler) start(c *gin.Context) {
	var req startRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "invalid request body", nil)
		return
	}
	c.Set("resumeId", req.ResumeID)

	sess, turn, err := h.Svc.Start(c.Request.Context(), req.ResumeID, req.JobDescription)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.Set("interviewId", sess.ID)
	respond.JSON(c, http.StatusCreated, gin.H{
		"interviewId":    sess.ID,
		"question":       turn.Question,
		"questionNumber": turn.Number,
		"totalQuestions": turn.Total,
	})
}

type answerRequest struct {
	Answer string `json:"answer"`
}

func (h *Handler) submitAnswer(c *gin.Context) {
	id := c.Param("id")
	c.Set("interviewId", id)

	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "invalid request body", nil)
		return
	}

	turn, report, err := h.Svc.SubmitAnswer(c.Request.Context(), id, req.Answer)
	if err != nil {
		h.writeError(c, err)
		return
	}

	if turn != nil {
		respond.OK(c, gin.H{
			"question":       turn.Question,
			"questionNumber": turn.Number,
			"totalQuestions": turn.Total,
		})
		return
	}
	respond.OK(c, gin.H{"report": report})
}

func (h *Handler) end(c *gin.Context) {
	id := c.Param("id")
	c.Set("interviewId", id)

	report, err := h.Svc.End(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	respond.OK(c, gin.H{"report": report})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var reportFailed *ReportFailedError

	switch {
	case errors.Is(err, resumes.ErrNotFound):
		respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "resume not found, upload it first", nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "interview session not found or expired", nil)
	case errors.Is(err, ErrEmptyAnswer):
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "answer cannot be empty", nil)
	case errors.Is(err, ErrConflict):
		respond.Error(c, http.StatusConflict, respond.CodeConflict, "this question was already answered", nil)
	case errors.Is(err, ErrNoQuestions):
		respond.Error(c, http.StatusBadGateway, respond.CodeUpstreamError, "the model could not generate interview questions", nil)
	case errors.As(err, &reportFailed):
		coach.WriteAIError(c, reportFailed.Err)
	default:
		coach.WriteAIError(c, err)
	}
}
