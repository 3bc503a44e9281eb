package respond

import (
	"github.com/gin-gonic/gin"

	"careercraft-backend/internal/shared/telemetry"
)

// Error codes shared across handlers.
const (
	CodeNotFound           = "not_found"
	CodeValidation         = "validation_error"
	CodeServiceUnavailable = "service_unavailable"
	CodeUpstreamRefusal    = "upstream_refusal"
	CodeUpstreamError      = "upstream_error"
	CodeMalformedResponse  = "malformed_response"
	CodeConflict           = "conflict"
	CodeInternal           = "internal_error"
)

// ErrorBody defines the standardized error object.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorResponse wraps the error body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Error sends a standardized error response.
func Error(c *gin.Context, status int, code, message string, details interface{}) {
	fields := map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if resumeID := c.GetString("resumeId"); resumeID != "" {
		fields["resume_id"] = resumeID
	}
	if interviewID := c.GetString("interviewId"); interviewID != "" {
		fields["interview_id"] = interviewID
	}
	telemetry.Error("http.error", fields)

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}
