package composelinks

import (
	"net/http"

	"sales-briefing/internal/common/errors"
	"sales-briefing/internal/common/logger"

	"github.com/gin-gonic/gin"
)

const Route = "/api/contact/links"

type Handler struct {
	service      LinkService
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(service LinkService, log logger.Logger) *Handler {
	return &Handler{
		service:      service,
		errorHandler: errors.NewErrorHandler(log),
		logger:       log,
	}
}

// Handle serves POST {contact, client, crmData?}.
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

	output, err := h.service.Execute(c.Request.Context(), input)
	if err != nil {
		h.errorHandler.HandleRequestError(c, err)
		return
	}

	c.JSON(http.StatusOK, output)
}

func (h *Handler) Register(r gin.IRouter) {
	r.POST(Route, h.Handle)
}
