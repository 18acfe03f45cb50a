package authaudit

import (
	"net/http"

	"sales-briefing/internal/common/errors"
	"sales-briefing/internal/common/logger"

	"github.com/gin-gonic/gin"
)

const Route = "/api/auth/events"

type Handler struct {
	service      AuditService
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(service AuditService, log logger.Logger) *Handler {
	return &Handler{
		service:      service,
		errorHandler: errors.NewErrorHandler(log),
		logger:       log,
	}
}

// Handle serves POST {eventType, email, success, userId?, errorMessage?} and
// replies 202 before the event is stored.
func (h *Handler) Handle(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		h.errorHandler.HandleRequestError(c, errors.NewValidationError(err.Error()))
		return
	}

	input, err := ParseInput(raw)
	if err != nil {
		h.errorHandler.HandleRequestError(c, err)
		return
	}

	output, err := h.service.Execute(c.Request.Context(), input, RequestMeta{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		h.errorHandler.HandleRequestError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, output)
}

func (h *Handler) Register(r gin.IRouter) {
	r.POST(Route, h.Handle)
}
