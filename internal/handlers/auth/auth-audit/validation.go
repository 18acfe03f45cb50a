package authaudit

import (
	"encoding/json"
	"fmt"
	"strings"

	"sales-briefing/internal/common/errors"
	"sales-briefing/internal/common/validation"
	"sales-briefing/internal/models"
)

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"eventType", "email", "success"},
		Properties: map[string]validation.Property{
			"eventType": {
				Type:        "string",
				Description: "Auth outcome being recorded",
				Enum: []string{
					string(models.EventLoginSuccess), string(models.EventLoginFailed), string(models.EventLoginError),
					string(models.EventSignupSuccess), string(models.EventSignupFailed), string(models.EventSignupError),
				},
			},
			"email": {
				Type:        "string",
				Description: "Email the sign-in was attempted with",
				MaxLength:   validation.Int(320),
			},
			"success": {
				Type:        "boolean",
				Description: "Whether the attempt succeeded",
			},
			"userId": {
				Type:        "string",
				Description: "Identity backend user id when known",
			},
			"errorMessage": {
				Type:        "string",
				Description: "Error shown to the user",
				MaxLength:   validation.Int(2000),
			},
		},
		AdditionalProperties: false,
	}
}

func ParseInput(raw []byte) (*Input, error) {
	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.NewValidationError(fmt.Sprintf("malformed JSON body: %v", err))
	}
	if _, ok := doc.(map[string]interface{}); !ok {
		return nil, errors.NewValidationError("request body must be a JSON object")
	}

	result, err := validation.Validate(validation.PruneNulls(doc), GetInputSchema())
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if !result.Valid {
		return nil, errors.NewValidationError(strings.Join(result.GetErrorMessages(), "; "))
	}

	var input Input
	if err := json.Unmarshal(raw, &input); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if !input.EventType.Valid() {
		return nil, errors.NewValidationError(fmt.Sprintf("unknown event type %q", input.EventType))
	}
	return &input, nil
}
