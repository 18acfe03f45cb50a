package authaudit

import (
	"sales-briefing/internal/common/database"
	"sales-briefing/internal/common/logger"
	"sales-briefing/internal/models"
)

type Input struct {
	EventType    models.AuthEventType `json:"eventType"`
	Email        string               `json:"email"`
	Success      bool                 `json:"success"`
	UserID       *string              `json:"userId,omitempty"`
	ErrorMessage *string              `json:"errorMessage,omitempty"`
}

// RequestMeta is stamped by the handler from the incoming request.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

type Output struct {
	Accepted bool   `json:"accepted"`
	ID       string `json:"id"`
}

type ServiceDependencies struct {
	Logger logger.Logger
	// DB is nil when no audit database is configured.
	DB *database.PostgresClient
}
