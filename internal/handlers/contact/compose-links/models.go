package composelinks

import (
	"sales-briefing/internal/common/logger"
	"sales-briefing/internal/models"
)

type Input struct {
	Contact models.ContactInfo  `json:"contact"`
	Client  models.ClientRecord `json:"client"`
	CRMData *models.CRMData     `json:"crmData,omitempty"`
}

// Output flattens the links so the body is a ContactLinks object, plus the
// contact after prefill.
type Output struct {
	models.ContactLinks
	Contact models.ContactInfo `json:"contact"`
}

type ServiceDependencies struct {
	Logger logger.Logger
}
