package generatebriefing

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"

	"sales-briefing/internal/common/errors"
	httpclient "sales-briefing/internal/common/http"

	openai "github.com/sashabaranov/go-openai"
)

const bodyExcerptLimit = 512

// ChatGateway sends one chat completion and returns the assistant text.
type ChatGateway interface {
	Complete(ctx context.Context, apiKey, systemPrompt, userPrompt string) (string, error)
}

type openAIGateway struct {
	baseURL     string
	model       string
	temperature float32
	httpClient  *httpclient.Client
}

func newOpenAIGateway(cfg *Config, client *httpclient.Client) *openAIGateway {
	if client == nil {
		client = httpclient.NewClient(cfg.Timeout)
	}
	return &openAIGateway{
		baseURL:     cfg.BaseURL,
		model:       cfg.Model,
		temperature: float32(cfg.Temperature),
		httpClient:  client,
	}
}

// Complete issues exactly one request. Failures are classified, never retried.
func (g *openAIGateway) Complete(ctx context.Context, apiKey, systemPrompt, userPrompt string) (string, error) {
	clientCfg := openai.DefaultConfig(apiKey)
	clientCfg.BaseURL = g.baseURL
	clientCfg.HTTPClient = g.httpClient
	client := openai.NewClientWithConfig(clientCfg)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: g.temperature,
	})
	if err != nil {
		return "", classifyGatewayError(err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.NewResponseFormatError("", stderrors.New("gateway response has no choices"))
	}
	return resp.Choices[0].Message.Content, nil
}

// classifyGatewayError maps SDK errors onto the service taxonomy.
func classifyGatewayError(err error) error {
	status, ok := gatewayStatus(err)
	if !ok {
		return errors.NewUpstreamError(0, excerpt(err.Error()), isTimeout(err))
	}

	switch status {
	case http.StatusTooManyRequests:
		return errors.NewRateLimitError(excerpt(err.Error()))
	case http.StatusPaymentRequired:
		return errors.NewQuotaExceededError(excerpt(err.Error()))
	default:
		return errors.NewUpstreamError(status, excerpt(err.Error()), false)
	}
}

func gatewayStatus(err error) (int, bool) {
	var apiErr *openai.APIError
	if stderrors.As(err, &apiErr) && apiErr.HTTPStatusCode != 0 {
		return apiErr.HTTPStatusCode, true
	}
	var reqErr *openai.RequestError
	if stderrors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		return reqErr.HTTPStatusCode, true
	}
	return 0, false
}

func isTimeout(err error) bool {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return stderrors.As(err, &netErr) && netErr.Timeout()
}

func excerpt(s string) string {
	return truncate(s, bodyExcerptLimit)
}
