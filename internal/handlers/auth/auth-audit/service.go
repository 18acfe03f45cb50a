package authaudit

import (
	"context"
	"time"

	"sales-briefing/internal/common/logger"
	"sales-briefing/internal/models"

	"github.com/google/uuid"
)

type AuditService interface {
	Execute(ctx context.Context, input *Input, meta RequestMeta) (*Output, error)
}

type Service struct {
	recorder *Recorder
	logger   logger.Logger
	now      func() time.Time
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	log := deps.Logger.WithFields(map[string]interface{}{"handler": "auth-audit"})
	return &Service{
		recorder: NewRecorder(deps.DB, log, config.WriteTimeout),
		logger:   log,
		now:      time.Now,
	}
}

// Recorder exposes the recorder so shutdown can drain it.
func (s *Service) Recorder() *Recorder { return s.recorder }

func (s *Service) Execute(ctx context.Context, input *Input, meta RequestMeta) (*Output, error) {
	event := models.AuthEvent{
		ID:           uuid.NewString(),
		UserID:       input.UserID,
		EventType:    input.EventType,
		Email:        input.Email,
		Success:      input.Success,
		ErrorMessage: input.ErrorMessage,
		IPAddress:    meta.IPAddress,
		UserAgent:    meta.UserAgent,
		CreatedAt:    s.now().UTC(),
	}

	s.recorder.Record(event)

	return &Output{Accepted: true, ID: event.ID}, nil
}
