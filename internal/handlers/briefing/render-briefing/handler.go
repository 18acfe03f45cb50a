package renderbriefing

import (
	"net/http"

	"sales-briefing/internal/common/errors"
	"sales-briefing/internal/common/logger"
	"sales-briefing/internal/display"

	"github.com/gin-gonic/gin"
)

const Route = "/api/briefings/render"

type Handler struct {
	service      RenderService
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(service RenderService, log logger.Logger) *Handler {
	return &Handler{
		service:      service,
		errorHandler: errors.NewErrorHandler(log),
		logger:       log,
	}
}

// Handle serves POST ?format=text|markdown|html with body {briefing}.
func (h *Handler) Handle(c *gin.Context) {
	format, err := display.ParseFormat(c.Query("format"))
	if err != nil {
		h.errorHandler.HandleRequestError(c, errors.NewValidationError(err.Error()))
		return
	}

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
	input.Format = format

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
