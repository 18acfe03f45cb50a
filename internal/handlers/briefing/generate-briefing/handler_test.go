package generatebriefing

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sales-briefing/internal/common/errors"
	"sales-briefing/internal/common/logger"
	"sales-briefing/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ==========================
// Mock Service Implementation
// ==========================

type MockService struct {
	mock.Mock
}

func (m *MockService) Execute(ctx context.Context, input *Input) (*Output, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Output), args.Error(1)
}

// ==========================
// Test Helpers
// ==========================

func setupRouter(t *testing.T, svc BriefingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(svc, logger.NewTestLogger(t)).Register(r)
	return r
}

func post(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errors.ErrorResponse {
	t.Helper()
	var body errors.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// ==========================
// Tests
// ==========================

func TestHandle_Success(t *testing.T) {
	svc := new(MockService)
	svc.On("Execute", mock.Anything, &Input{ClientName: "Acme Corp", InternalCode: "AC-001"}).
		Return(&Output{Briefing: &models.BriefingResult{Summary: "test"}}, nil).Twice()

	r := setupRouter(t, svc)

	for _, path := range []string{Route, LegacyRoute} {
		w := post(r, path, `{"clientName":"Acme Corp","internalCode":"AC-001"}`)

		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.JSONEq(t, `{"briefing":{"summary":"test"}}`, w.Body.String())
	}
	svc.AssertExpectations(t)
}

func TestHandle_InvalidInputNeverReachesService(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"clientName":`},
		{"not an object", `["Acme"]`},
		{"missing clientName", `{"internalCode":"AC-001"}`},
		{"clientName wrong type", `{"clientName":42}`},
		{"empty body", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			r := setupRouter(t, svc)

			w := post(r, Route, tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			body := decodeError(t, w)
			assert.Equal(t, string(errors.ErrCodeValidation), body.Code)
			assert.NotEmpty(t, body.Error)
			svc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
		})
	}
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
		retryable  bool
	}{
		{"rate limited", errors.NewRateLimitError("429"), http.StatusTooManyRequests, "Rate limits exceeded, please try again later.", true},
		{"quota", errors.NewQuotaExceededError("402"), http.StatusPaymentRequired, "Payment required, please add funds to your AI gateway workspace.", false},
		{"upstream", errors.NewUpstreamError(503, "unavailable", false), http.StatusBadGateway, "Failed to generate briefing", false},
		{"response format", errors.NewResponseFormatError("nope", nil), http.StatusBadGateway, "Failed to parse AI response as JSON", false},
		{"schema", errors.NewSchemaValidationError([]string{"painPoints: Invalid type"}), http.StatusBadGateway, "AI response did not match the briefing schema", false},
		{"configuration", errors.NewConfigurationError("AI_GATEWAY_API_KEY is not set"), http.StatusInternalServerError, "Service is not configured correctly", false},
		{"unknown", assert.AnError, http.StatusInternalServerError, "Unexpected error", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			svc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)
			r := setupRouter(t, svc)

			w := post(r, Route, `{"clientName":"Acme Corp","internalCode":"AC-001"}`)

			assert.Equal(t, tt.wantStatus, w.Code)
			body := decodeError(t, w)
			assert.Equal(t, tt.wantError, body.Error)
			assert.Equal(t, tt.retryable, body.Retryable)
			assert.NotContains(t, w.Body.String(), "nope", "raw model text stays in logs")
		})
	}
}

func TestParseInput_AdditionalContextOptional(t *testing.T) {
	input, err := ParseInput([]byte(`{"clientName":"Acme","internalCode":"A-1","extra":"ignored"}`))
	require.NoError(t, err)
	assert.Equal(t, "Acme", input.ClientName)
	assert.Empty(t, input.AdditionalContext)

	input, err = ParseInput([]byte(`{"clientName":"Acme","internalCode":"A-1","additionalContext":"renewal"}`))
	require.NoError(t, err)
	assert.Equal(t, "renewal", input.AdditionalContext)
}
