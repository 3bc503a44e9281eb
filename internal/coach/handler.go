package coach

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"careercraft-backend/internal/llm"
	"careercraft-backend/internal/resumes"
	"careercraft-backend/internal/shared/server/respond"
)

// Handler exposes the stateless AI coaching endpoints. Every endpoint
// resolves the resume by id first, so expired records fail the same way as
// unknown ids.
type Handler struct {
	Coach   *Service
	Resumes *resumes.Service
}

// NewHandler constructs a coach Handler.
func NewHandler(coach *Service, resumeSvc *resumes.Service) *Handler {
	return &Handler{Coach: coach, Resumes: resumeSvc}
}

// RegisterRoutes registers coach routes on the group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/coach/analyze", h.analyze)
	rg.POST("/coach/email", h.email)
	rg.POST("/coach/questions", h.questions)
	rg.POST("/coach/answer-template", h.answerTemplate)
	rg.POST("/coach/career-paths", h.careerPaths)
	rg.POST("/coach/projects", h.projects)
	rg.POST("/coach/mini-course", h.miniCourse)
}

// analysisTasks maps the client-facing analysis type to a task kind. An
// unrecognized value falls back to the general review.
var analysisTasks = map[string]Task{
	"review":    TaskReview,
	"ats":       TaskATS,
	"job_match": TaskJobMatch,
	"rewrite":   TaskRewrite,
}

type analyzeRequest struct {
	ResumeID       string `json:"resumeId"`
	AnalysisType   string `json:"analysisType"`
	JobDescription string `json:"jobDescription"`
}

func (h *Handler) analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "invalid request body", nil)
		return
	}
	if strings.TrimSpace(req.AnalysisType) == "" {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "analysisType is required", nil)
		return
	}

	task, ok := analysisTasks[req.AnalysisType]
	if !ok {
		task = TaskReview
	}

	text, err := h.resumeText(c, req.ResumeID)
	if err != nil {
		return
	}

	h.invoke(c, task, Params{ResumeText: text, JobDescription: req.JobDescription})
}

type emailRequest struct {
	ResumeID  string `json:"resumeId"`
	EmailType string `json:"emailType"`
	Context   string `json:"context"`
}

func (h *Handler) email(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "invalid request body", nil)
		return
	}
	if strings.TrimSpace(req.EmailType) == "" {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "emailType is required", nil)
		return
	}

	text, err := h.resumeText(c, req.ResumeID)
	if err != nil {
		return
	}

	h.invoke(c, TaskEmail, Params{ResumeText: text, EmailType: req.EmailType, Context: req.Context})
}

type questionsRequest struct {
	ResumeID       string `json:"resumeId"`
	JobDescription string `json:"jobDescription"`
}

func (h *Handler) questions(c *gin.Context) {
	var req questionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "invalid request body", nil)
		return
	}

	text, err := h.resumeText(c, req.ResumeID)
	if err != nil {
		return
	}

	h.invoke(c, TaskQuestions, Params{ResumeText: text, JobDescription: req.JobDescription})
}

type answerTemplateRequest struct {
	ResumeID string `json:"resumeId"`
	Question string `json:"question"`
}

func (h *Handler) answerTemplate(c *gin.Context) {
	var req answerTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "invalid request body", nil)
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "question is required", nil)
		return
	}

	text, err := h.resumeText(c, req.ResumeID)
	if err != nil {
		return
	}

	h.invoke(c, TaskAnswerTemplate, Params{ResumeText: text, Question: req.Question})
}

type resumeOnlyRequest struct {
	ResumeID string `json:"resumeId"`
}

func (h *Handler) careerPaths(c *gin.Context) {
	h.resumeOnly(c, TaskCareerPaths)
}

func (h *Handler) projects(c *gin.Context) {
	h.resumeOnly(c, TaskProjects)
}

func (h *Handler) miniCourse(c *gin.Context) {
	h.resumeOnly(c, TaskMiniCourse)
}

func (h *Handler) resumeOnly(c *gin.Context, task Task) {
	var req resumeOnlyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "invalid request body", nil)
		return
	}

	text, err := h.resumeText(c, req.ResumeID)
	if err != nil {
		return
	}

	h.invoke(c, task, Params{ResumeText: text})
}

// resumeText resolves the resume text and writes the error response itself
// when resolution fails, returning a non-nil error to stop the handler.
func (h *Handler) resumeText(c *gin.Context, resumeID string) (string, error) {
	c.Set("resumeId", resumeID)
	text, err := h.Resumes.Text(c.Request.Context(), resumeID)
	if err != nil {
		if errors.Is(err, resumes.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "resume not found, upload it first", nil)
		} else {
			respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to load resume", nil)
		}
		return "", err
	}
	return text, nil
}

func (h *Handler) invoke(c *gin.Context, task Task, params Params) {
	c.Set("taskKind", string(task))

	doc, err := h.Coach.Invoke(c.Request.Context(), task, params)
	if err != nil {
		WriteAIError(c, err)
		return
	}
	respond.OK(c, doc)
}

// WriteAIError maps an orchestrator failure onto the HTTP error envelope.
func WriteAIError(c *gin.Context, err error) {
	var malformed *MalformedError
	var upstream *UpstreamError

	switch {
	case errors.Is(err, llm.ErrUnavailable):
		respond.Error(c, http.StatusServiceUnavailable, respond.CodeServiceUnavailable, "ai features are unavailable", nil)
	case errors.Is(err, llm.ErrRefused):
		respond.Error(c, http.StatusBadGateway, respond.CodeUpstreamRefusal, "the model declined to answer", nil)
	case errors.As(err, &malformed):
		respond.Error(c, http.StatusBadGateway, respond.CodeMalformedResponse, "the model returned an unusable response", map[string]any{
			"raw": truncate(malformed.Raw, 2048),
		})
	case errors.As(err, &upstream):
		respond.Error(c, http.StatusBadGateway, respond.CodeUpstreamError, "ai provider request failed", nil)
	case errors.Is(err, ErrUnknownTask):
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "unknown task kind", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "unexpected error", nil)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
