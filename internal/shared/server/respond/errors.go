package respond

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"job-recommender/internal/shared/telemetry"
)

// Error codes shared by the API and middleware.
const (
	CodeValidation         = "validation_error"
	CodePayloadTooLarge    = "payload_too_large"
	CodeUnreadableDocument = "unreadable_document"
	CodeRateLimited        = "rate_limited"
	CodeInternal           = "internal"
)

// ErrorBody is the error object inside the envelope.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorResponse wraps the error body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Error logs the failure and aborts the chain. API routes and non-browser clients get
// the JSON envelope; browser page requests get the message as plain text.
func Error(c *gin.Context, status int, code, message string, details any) {
	fields := map[string]any{
		"status":     status,
		"code":       code,
		"route":      c.FullPath(),
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if status >= http.StatusInternalServerError {
		telemetry.Error("http.error", fields)
	} else {
		fields["message"] = message
		telemetry.Warn("http.error", fields)
	}

	c.Abort()
	if wantsPage(c) {
		c.Header("Cache-Control", "no-store")
		c.String(status, message)
		return
	}
	JSON(c, status, ErrorResponse{
		Error: ErrorBody{Code: code, Message: message, Details: details},
	})
}

func wantsPage(c *gin.Context) bool {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		return false
	}
	return c.NegotiateFormat(gin.MIMEJSON, gin.MIMEHTML) == gin.MIMEHTML
}
