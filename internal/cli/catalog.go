package cli

import (
	"encoding/json"
	"net/http"

	"sales-briefing/internal/common/errors"
	"sales-briefing/internal/common/validation"
	authaudit "sales-briefing/internal/handlers/auth/auth-audit"
	generatebriefing "sales-briefing/internal/handlers/briefing/generate-briefing"
	renderbriefing "sales-briefing/internal/handlers/briefing/render-briefing"
	composelinks "sales-briefing/internal/handlers/contact/compose-links"
	"sales-briefing/pkg/registry"
)

const catalogVersion = "1.0.0"

// Catalog describes every HTTP operation the server exposes, with schemas
// taken from the handlers themselves.
func Catalog() *registry.OperationRegistry {
	return &registry.OperationRegistry{
		Version: catalogVersion,
		Operations: []registry.Operation{
			{
				ID:          "generate-briefing",
				DisplayName: "Generate Briefing",
				Description: "Generates a structured sales briefing through one chat-completion gateway call",
				Category:    "briefing",
				Method:      http.MethodPost,
				Paths:       []string{generatebriefing.Route, generatebriefing.LegacyRoute},
				InputSchema: schemaMap(generatebriefing.GetInputSchema()),
				OutputSchema: map[string]interface{}{
					"type":       "object",
					"properties": map[string]interface{}{"briefing": schemaMap(generatebriefing.GetBriefingSchema())},
				},
				ErrorCodes: codes(
					errors.ErrCodeValidation, errors.ErrCodeConfiguration, errors.ErrCodeRateLimited,
					errors.ErrCodeQuotaExceeded, errors.ErrCodeUpstream, errors.ErrCodeResponseFormat,
					errors.ErrCodeSchemaValidation, errors.ErrCodeUnauthorized, errors.ErrCodeSessionStoreError,
					errors.ErrCodeInternal,
				),
				Timeout: generatebriefing.DefaultConfig().Timeout.String(),
				Tags:    []string{"ai", "session"},
			},
			{
				ID:          "render-briefing",
				DisplayName: "Render Briefing",
				Description: "Renders a briefing as text, Markdown or HTML with sections, top pick and score stats",
				Category:    "briefing",
				Method:      http.MethodPost,
				Paths:       []string{renderbriefing.Route},
				InputSchema: schemaMap(renderbriefing.GetInputSchema()),
				ErrorCodes:  codes(errors.ErrCodeValidation, errors.ErrCodeUnauthorized, errors.ErrCodeSessionStoreError),
				Tags:        []string{"display", "session"},
			},
			{
				ID:          "compose-contact-links",
				DisplayName: "Compose Contact Links",
				Description: "Builds email, Teams, WhatsApp, calendar and share links for a contact",
				Category:    "contact",
				Method:      http.MethodPost,
				Paths:       []string{composelinks.Route},
				InputSchema: schemaMap(composelinks.GetInputSchema()),
				ErrorCodes:  codes(errors.ErrCodeValidation, errors.ErrCodeUnauthorized, errors.ErrCodeSessionStoreError),
				Tags:        []string{"contact", "session"},
			},
			{
				ID:          "record-auth-event",
				DisplayName: "Record Auth Event",
				Description: "Accepts a sign-in or sign-up outcome and writes it to auth_logs in the background",
				Category:    "auth",
				Method:      http.MethodPost,
				Paths:       []string{authaudit.Route},
				InputSchema: schemaMap(authaudit.GetInputSchema()),
				ErrorCodes:  codes(errors.ErrCodeValidation),
				Timeout:     authaudit.DefaultConfig().WriteTimeout.String(),
				Tags:        []string{"audit"},
			},
		},
	}
}

func schemaMap(s validation.JSONSchema) map[string]interface{} {
	data, err := json.Marshal(s)
	if err != nil {
		return map[string]interface{}{}
	}
	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return map[string]interface{}{}
	}
	return out
}

func codes(cs ...errors.ErrorCode) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = string(c)
	}
	return out
}
