package resumes

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"careercraft-backend/internal/render"
	"careercraft-backend/internal/shared/server/respond"
)

const maxUploadBytes = 16 << 20

// Handler exposes resume endpoints.
type Handler struct {
	Svc       *Service
	AIEnabled func() bool
}

// NewHandler constructs a resume Handler.
func NewHandler(svc *Service, aiEnabled func() bool) *Handler {
	return &Handler{Svc: svc, AIEnabled: aiEnabled}
}

// RegisterRoutes registers resume routes on the group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes", h.upload)
	rg.GET("/resumes/:id/status", h.status)
	rg.POST("/resumes/download", h.download)
}

func (h *Handler) upload(c *gin.Context) {
	fileHeader, err := c.FormFile("cv_file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "cv_file is required", nil)
		return
	}
	if fileHeader.Size > maxUploadBytes {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "file exceeds the 16 MiB limit", nil)
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "could not read uploaded file", nil)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "could not read uploaded file", nil)
		return
	}
	if int64(len(data)) > maxUploadBytes {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "file exceeds the 16 MiB limit", nil)
		return
	}

	rec, err := h.Svc.Upload(c.Request.Context(), fileHeader.Filename, data)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "invalid or unsupported file", nil)
		case errors.Is(err, ErrNoText):
			respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "could not extract text from the uploaded file", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to save resume", nil)
		}
		return
	}

	c.Set("resumeId", rec.ID)
	respond.JSON(c, http.StatusCreated, gin.H{"resumeId": rec.ID})
}

func (h *Handler) status(c *gin.Context) {
	id := c.Param("id")
	c.Set("resumeId", id)

	uploaded := false
	if _, err := h.Svc.Get(c.Request.Context(), id); err == nil {
		uploaded = true
	}

	aiEnabled := h.AIEnabled != nil && h.AIEnabled()
	respond.OK(c, gin.H{"resumeUploaded": uploaded, "aiEnabled": aiEnabled})
}

type downloadRequest struct {
	Content string `json:"content"`
}

func (h *Handler) download(c *gin.Context) {
	var req downloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "invalid request body", nil)
		return
	}

	out, err := render.PDF(req.Content)
	if err != nil {
		if errors.Is(err, render.ErrEmptyContent) {
			respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "content is required", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "pdf generation failed", nil)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="generated_document.pdf"`)
	c.Data(http.StatusOK, "application/pdf", out)
}
