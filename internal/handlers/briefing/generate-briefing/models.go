package generatebriefing

import (
	"sales-briefing/internal/common/http"
	"sales-briefing/internal/common/logger"
	"sales-briefing/internal/common/observability"
	"sales-briefing/internal/models"
)

type Input = models.BriefingRequest

type Output = models.BriefingResponse

type ServiceDependencies struct {
	Logger        logger.Logger
	HTTPClient    *http.Client
	Observability *observability.Observability
}
