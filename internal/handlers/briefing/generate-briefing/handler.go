package generatebriefing

import (
	"net/http"

	"sales-briefing/internal/common/errors"
	"sales-briefing/internal/common/logger"

	"github.com/gin-gonic/gin"
)

const Route = "/api/generate-briefing"

// LegacyRoute is the path the web front end used before the API prefix existed.
const LegacyRoute = "/functions/v1/generate-briefing"

type Handler struct {
	service      BriefingService
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(service BriefingService, log logger.Logger) *Handler {
	return &Handler{
		service:      service,
		errorHandler: errors.NewErrorHandler(log),
		logger:       log,
	}
}

// Handle serves POST {clientName, internalCode, additionalContext?}.
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
	r.POST(LegacyRoute, h.Handle)
}
