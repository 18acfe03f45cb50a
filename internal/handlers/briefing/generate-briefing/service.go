// Package generatebriefing turns a client name into a structured sales
// briefing through one chat-completion gateway call.
package generatebriefing

import (
	"context"
	"time"
	"unicode/utf8"

	"sales-briefing/internal/common/errors"
	"sales-briefing/internal/common/logger"
	"sales-briefing/internal/common/metrics"
	"sales-briefing/internal/common/observability"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// BriefingService is the Go API used by the HTTP handler and the CLI.
type BriefingService interface {
	Execute(ctx context.Context, input *Input) (*Output, error)
}

type Service struct {
	config  *Config
	logger  logger.Logger
	gateway ChatGateway
	obs     *observability.Observability
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	return &Service{
		config:  config,
		logger:  deps.Logger.Named("generate-briefing"),
		gateway: newOpenAIGateway(config, deps.HTTPClient),
		obs:     deps.Observability,
	}
}

// WithGateway replaces the chat gateway.
func (s *Service) WithGateway(g ChatGateway) *Service {
	s.gateway = g
	return s
}

func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	output, err := s.execute(ctx, input)
	if err != nil {
		stdErr := errors.AsStandardError(err)
		metrics.BriefingsFailed.WithLabelValues(string(stdErr.Code)).Inc()
		s.obs.RecordRequest(ctx, string(stdErr.Code))
		return nil, stdErr
	}
	metrics.BriefingsGenerated.WithLabelValues(s.config.Model).Inc()
	metrics.BriefingSolutions.Observe(float64(len(output.Briefing.SolutionMapping)))
	s.obs.RecordRequest(ctx, "success")
	return output, nil
}

func (s *Service) execute(ctx context.Context, input *Input) (*Output, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	apiKey := s.config.apiKey()
	if apiKey == "" {
		s.logger.Error("gateway API key is not configured", map[string]interface{}{
			"envVar": s.config.APIKeyEnv,
		})
		return nil, errors.NewConfigurationError(s.config.APIKeyEnv + " is not set")
	}

	s.logger.Info("generating briefing", map[string]interface{}{
		"clientName":   input.ClientName,
		"internalCode": input.InternalCode,
		"model":        s.config.Model,
	})

	content, err := s.complete(ctx, apiKey, input)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("raw model response", map[string]interface{}{
		"content": truncate(content, s.config.RawLogLimit),
	})

	briefing, err := parseBriefing(content)
	if err != nil {
		return nil, err
	}

	s.logger.Info("briefing generated", map[string]interface{}{
		"clientName": input.ClientName,
		"solutions":  len(briefing.SolutionMapping),
	})
	return &Output{Briefing: briefing}, nil
}

func (s *Service) complete(ctx context.Context, apiKey string, input *Input) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	ctx, span := s.obs.StartSpan(ctx, "gateway.chat_completion",
		attribute.String("gateway.model", s.config.Model),
	)
	defer span.End()

	metrics.GatewayRequestsActive.Inc()
	defer metrics.GatewayRequestsActive.Dec()

	start := time.Now()
	content, err := s.gateway.Complete(ctx,
		apiKey,
		buildSystemPrompt(s.config.Organization),
		buildUserPrompt(input, s.config.Organization),
	)
	duration := time.Since(start)

	outcome := "success"
	if err != nil {
		outcome = string(errors.AsStandardError(err).Code)
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
	}
	metrics.GatewayRequestDuration.WithLabelValues(s.config.Model, outcome).Observe(duration.Seconds())
	s.obs.RecordGatewayDuration(ctx, duration, s.config.Model, outcome)

	s.logger.Info("gateway call finished", map[string]interface{}{
		"model":      s.config.Model,
		"durationMs": duration.Milliseconds(),
		"outcome":    outcome,
	})
	return content, err
}

// truncate cuts s to at most limit bytes without splitting a rune.
func truncate(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
