package generatebriefing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"

	"sales-briefing/internal/common/errors"
	"sales-briefing/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKeyEnv = "BRIEFING_TEST_GATEWAY_KEY"

type capturedRequest struct {
	Path          string
	Authorization string
	Body          struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
		Temperature float64 `json:"temperature"`
	}
}

type stubGateway struct {
	server   *httptest.Server
	calls    int32
	mu       sync.Mutex
	captured capturedRequest
	status   int
	respBody string
}

func chatResponse(content string) string {
	body, _ := json.Marshal(map[string]interface{}{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": time.Now().Unix(),
		"model":   "test-model",
		"choices": []map[string]interface{}{
			{
				"index":         0,
				"message":       map[string]string{"role": "assistant", "content": content},
				"finish_reason": "stop",
			},
		},
	})
	return string(body)
}

func newStubGateway(t *testing.T, status int, respBody string) *stubGateway {
	t.Helper()
	stub := &stubGateway{status: status, respBody: respBody}
	stub.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&stub.calls, 1)
		raw, _ := io.ReadAll(r.Body)
		stub.mu.Lock()
		stub.captured.Path = r.URL.Path
		stub.captured.Authorization = r.Header.Get("Authorization")
		_ = json.Unmarshal(raw, &stub.captured.Body)
		stub.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(stub.status)
		_, _ = w.Write([]byte(stub.respBody))
	}))
	t.Cleanup(stub.server.Close)
	return stub
}

func (s *stubGateway) last() capturedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.captured
}

func newTestService(t *testing.T, baseURL string) *Service {
	t.Helper()
	t.Setenv(testKeyEnv, "test-key")

	cfg := DefaultConfig()
	cfg.BaseURL = baseURL
	cfg.APIKeyEnv = testKeyEnv
	cfg.Model = "test-model"
	cfg.Timeout = 5 * time.Second

	return NewService(ServiceDependencies{Logger: logger.NewTestLogger(t)}, cfg)
}

func acmeInput() *Input {
	return &Input{ClientName: "Acme Corp", InternalCode: "AC-001"}
}

func TestExecute_FencedResponse(t *testing.T) {
	stub := newStubGateway(t, http.StatusOK, chatResponse("```json\n{\"summary\":\"test\"}\n```"))
	svc := newTestService(t, stub.server.URL+"/v1")

	out, err := svc.Execute(context.Background(), acmeInput())
	require.NoError(t, err)

	assert.Equal(t, "test", out.Briefing.Summary)
	assert.Equal(t, int32(1), atomic.LoadInt32(&stub.calls))
	assert.Equal(t, "/v1/chat/completions", stub.last().Path)
	assert.Equal(t, "Bearer test-key", stub.last().Authorization)
	assert.Equal(t, "test-model", stub.last().Body.Model)
	assert.InDelta(t, 0.7, stub.last().Body.Temperature, 0.0001)

	require.Len(t, stub.last().Body.Messages, 2)
	assert.Equal(t, "system", stub.last().Body.Messages[0].Role)
	assert.Contains(t, stub.last().Body.Messages[0].Content, "[ref:N]")
	assert.Equal(t, "user", stub.last().Body.Messages[1].Role)
	assert.Contains(t, stub.last().Body.Messages[1].Content, "Acme Corp")
	assert.NotContains(t, stub.last().Body.Messages[1].Content, "Additional Context")

	encoded, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t, `{"briefing":{"summary":"test"}}`, string(encoded))
}

func TestExecute_FenceStrippingIsTransparent(t *testing.T) {
	payload := `{"summary":"s","painPoints":["a","b"],"solutionMapping":[{"product":"p","compatibility":80}]}`

	for name, content := range map[string]string{
		"raw":          payload,
		"json fence":   "```json\n" + payload + "\n```",
		"bare fence":   "```\n" + payload + "\n```",
		"with prose":   "Here you go:\n```json\n" + payload + "\n```\nThanks",
		"inline fence": "```" + payload + "```",
	} {
		t.Run(name, func(t *testing.T) {
			stub := newStubGateway(t, http.StatusOK, chatResponse(content))
			svc := newTestService(t, stub.server.URL+"/v1")

			out, err := svc.Execute(context.Background(), acmeInput())
			require.NoError(t, err)
			assert.Equal(t, "s", out.Briefing.Summary)
			assert.Equal(t, []string{"a", "b"}, out.Briefing.PainPoints)
			require.Len(t, out.Briefing.SolutionMapping, 1)
			assert.Equal(t, 80, out.Briefing.SolutionMapping[0].Compatibility)
		})
	}
}

func TestExecute_StatusMapping(t *testing.T) {
	tests := []struct {
		status    int
		wantCode  errors.ErrorCode
		retryable bool
	}{
		{http.StatusBadRequest, errors.ErrCodeUpstream, false},
		{http.StatusUnauthorized, errors.ErrCodeUpstream, false},
		{http.StatusPaymentRequired, errors.ErrCodeQuotaExceeded, false},
		{http.StatusTooManyRequests, errors.ErrCodeRateLimited, true},
		{http.StatusInternalServerError, errors.ErrCodeUpstream, false},
		{http.StatusServiceUnavailable, errors.ErrCodeUpstream, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("status_%d", tt.status), func(t *testing.T) {
			stub := newStubGateway(t, tt.status, `{"error":{"message":"upstream said no","type":"test"}}`)
			svc := newTestService(t, stub.server.URL+"/v1")

			out, err := svc.Execute(context.Background(), acmeInput())
			require.Error(t, err)
			assert.Nil(t, out)

			stdErr := errors.AsStandardError(err)
			assert.Equal(t, tt.wantCode, stdErr.Code)
			assert.Equal(t, tt.retryable, stdErr.Retryable)
			assert.Equal(t, int32(1), atomic.LoadInt32(&stub.calls), "never retried")
			if tt.wantCode == errors.ErrCodeUpstream {
				assert.Equal(t, tt.status, stdErr.Metadata["upstreamStatus"])
			}
		})
	}

	t.Run("status_200", func(t *testing.T) {
		stub := newStubGateway(t, http.StatusOK, chatResponse(`{"summary":"ok"}`))
		svc := newTestService(t, stub.server.URL+"/v1")

		out, err := svc.Execute(context.Background(), acmeInput())
		require.NoError(t, err)
		assert.Equal(t, "ok", out.Briefing.Summary)
	})
}

func TestExecute_NonJSONBodyOnError(t *testing.T) {
	stub := newStubGateway(t, http.StatusTooManyRequests, "slow down")
	svc := newTestService(t, stub.server.URL+"/v1")

	_, err := svc.Execute(context.Background(), acmeInput())
	assert.True(t, errors.IsCode(err, errors.ErrCodeRateLimited))
}

func TestExecute_ResponseFormatErrors(t *testing.T) {
	for name, content := range map[string]string{
		"prose":          "I cannot help with that.",
		"truncated":      "```json\n{\"summary\": \"te\n```",
		"array":          `["not", "an", "object"]`,
		"string literal": `"just a string"`,
	} {
		t.Run(name, func(t *testing.T) {
			stub := newStubGateway(t, http.StatusOK, chatResponse(content))
			svc := newTestService(t, stub.server.URL+"/v1")

			var err error
			assert.NotPanics(t, func() {
				_, err = svc.Execute(context.Background(), acmeInput())
			})
			require.Error(t, err)

			stdErr := errors.AsStandardError(err)
			assert.Equal(t, errors.ErrCodeResponseFormat, stdErr.Code)
			assert.Equal(t, content, stdErr.Metadata["rawText"])
		})
	}
}

func TestExecute_NoChoices(t *testing.T) {
	stub := newStubGateway(t, http.StatusOK, `{"id":"x","object":"chat.completion","choices":[]}`)
	svc := newTestService(t, stub.server.URL+"/v1")

	_, err := svc.Execute(context.Background(), acmeInput())
	assert.True(t, errors.IsCode(err, errors.ErrCodeResponseFormat))
}

func TestExecute_SchemaViolations(t *testing.T) {
	for name, content := range map[string]string{
		"score out of range": `{"solutionMapping":[{"product":"p","compatibility":150}]}`,
		"painPoints string":  `{"painPoints":"everything"}`,
		"summary object":     `{"summary":{"text":"x"}}`,
	} {
		t.Run(name, func(t *testing.T) {
			stub := newStubGateway(t, http.StatusOK, chatResponse(content))
			svc := newTestService(t, stub.server.URL+"/v1")

			_, err := svc.Execute(context.Background(), acmeInput())
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeSchemaValidation, errors.AsStandardError(err).Code)
			assert.False(t, errors.IsCode(err, errors.ErrCodeResponseFormat))
		})
	}
}

func TestExecute_NormalizesDocument(t *testing.T) {
	content := `{
		"summary": "Acme grows [ref:1]",
		"companyInfo": {"name": "Acme", "revenue": null},
		"solutionMapping": [
			{"product": "a", "compatibility": 87.6, "unknownField": true},
			{"product": "b", "compatibility": 55}
		],
		"references": [{"id": 1, "source": "Annual report", "url": "https://acme.test/ar"}],
		"somethingNew": {"x": 1}
	}`
	stub := newStubGateway(t, http.StatusOK, chatResponse(content))
	svc := newTestService(t, stub.server.URL+"/v1")

	out, err := svc.Execute(context.Background(), acmeInput())
	require.NoError(t, err)

	b := out.Briefing
	require.NotNil(t, b.CompanyInfo)
	assert.Equal(t, "Acme", b.CompanyInfo.Name)
	assert.Empty(t, b.CompanyInfo.Revenue)
	assert.Equal(t, 88, b.SolutionMapping[0].Compatibility)
	assert.Equal(t, 55, b.SolutionMapping[1].Compatibility)
	require.Len(t, b.References, 1)
	assert.Equal(t, 1, b.References[0].ID)

	encoded, err := json.Marshal(b)
	require.NoError(t, err)
	assert.NotContains(t, string(encoded), "somethingNew")
	assert.NotContains(t, string(encoded), "unknownField")
}

func TestExecute_BlankClientNameNeverCallsGateway(t *testing.T) {
	stub := newStubGateway(t, http.StatusOK, chatResponse(`{}`))
	svc := newTestService(t, stub.server.URL+"/v1")

	for _, name := range []string{"", "   ", "\t\n"} {
		_, err := svc.Execute(context.Background(), &Input{ClientName: name, InternalCode: "X"})
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeValidation, errors.AsStandardError(err).Code)
	}
	assert.Equal(t, int32(0), atomic.LoadInt32(&stub.calls))
}

func TestExecute_MissingKeyNeverCallsGateway(t *testing.T) {
	stub := newStubGateway(t, http.StatusOK, chatResponse(`{}`))
	svc := newTestService(t, stub.server.URL+"/v1")
	t.Setenv(testKeyEnv, "")

	_, err := svc.Execute(context.Background(), acmeInput())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeConfiguration, errors.AsStandardError(err).Code)
	assert.Equal(t, int32(0), atomic.LoadInt32(&stub.calls))
}

func TestExecute_AdditionalContextInPrompt(t *testing.T) {
	stub := newStubGateway(t, http.StatusOK, chatResponse(`{"summary":"x"}`))
	svc := newTestService(t, stub.server.URL+"/v1")

	input := acmeInput()
	input.AdditionalContext = "Renewal due in Q3"
	_, err := svc.Execute(context.Background(), input)
	require.NoError(t, err)

	assert.Contains(t, stub.last().Body.Messages[1].Content, "Additional Context: Renewal due in Q3")
	assert.Contains(t, stub.last().Body.Messages[1].Content, "Internal Code: AC-001")
}

func TestExecute_TransportFailure(t *testing.T) {
	stub := newStubGateway(t, http.StatusOK, chatResponse(`{}`))
	url := stub.server.URL
	stub.server.Close()

	svc := newTestService(t, url+"/v1")

	_, err := svc.Execute(context.Background(), acmeInput())
	require.Error(t, err)

	stdErr := errors.AsStandardError(err)
	assert.Equal(t, errors.ErrCodeUpstream, stdErr.Code)
	assert.Equal(t, 0, stdErr.Metadata["upstreamStatus"])
}

func TestExecute_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	svc := newTestService(t, server.URL+"/v1")
	svc.config.Timeout = 50 * time.Millisecond

	_, err := svc.Execute(context.Background(), acmeInput())
	require.Error(t, err)

	stdErr := errors.AsStandardError(err)
	assert.Equal(t, errors.ErrCodeUpstream, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}

func TestTruncate_KeepsRunesWhole(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{"short", "héllo", 10, "héllo"},
		{"ascii cut", "abcdef", 3, "abc..."},
		{"inside two-byte rune", "aéb", 2, "a..."},
		{"inside four-byte rune", "ab🚀cd", 4, "ab..."},
		{"no limit", "abcdef", 0, "abcdef"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.in, tt.limit)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}

	long := strings.Repeat("é", bodyExcerptLimit)
	assert.True(t, utf8.ValidString(excerpt(long)))
}
