// internal/common/errors/handler.go
package errors

import (
	"github.com/gin-gonic/gin"
)

// ErrorHandler writes API errors with standardized bodies and logging
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// HandleRequestError handles any error returned while serving an API call
func (h *ErrorHandler) HandleRequestError(c *gin.Context, err error) {
	stdErr := AsStandardError(err)
	status := HTTPStatus(stdErr.Code)

	h.logError(c, stdErr, status)

	c.AbortWithStatusJSON(status, stdErr.ToResponse())
}

func (h *ErrorHandler) logError(c *gin.Context, stdErr *StandardError, status int) {
	fields := map[string]interface{}{
		"path":          c.FullPath(),
		"status":        status,
		"errorCode":     string(stdErr.Code),
		"message":       stdErr.Message,
		"details":       stdErr.Details,
		"retryable":     stdErr.Retryable,
		"errorCategory": GetErrorCategory(stdErr.Code),
	}
	if requestID, ok := c.Get("requestId"); ok {
		fields["requestId"] = requestID
	}
	for k, v := range stdErr.Metadata {
		fields[k] = v
	}

	// user-correctable errors are not operator noise
	if status < 500 && stdErr.Code != ErrCodeQuotaExceeded {
		h.logger.Warn("Request failed", fields)
		return
	}
	h.logger.Error("Request failed", fields)
}
