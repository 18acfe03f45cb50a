package composelinks

import (
	"encoding/json"
	"fmt"
	"strings"

	"sales-briefing/internal/common/errors"
	"sales-briefing/internal/common/validation"
)

func contactString(description string) validation.Property {
	return validation.Property{Type: "string", Description: description, MaxLength: validation.Int(320)}
}

// GetInputSchema only checks shapes. Missing or malformed contact details
// disable individual links instead of rejecting the request.
func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"contact": {
				Type:        "object",
				Description: "Details entered by the salesperson",
				Properties: map[string]validation.Property{
					"name":     contactString("Contact name"),
					"email":    contactString("Contact email"),
					"phone":    contactString("Contact phone"),
					"language": contactString("Preferred language, e.g. en, es, pt-BR"),
				},
			},
			"client": {
				Type:        "object",
				Description: "Client the contact belongs to",
				Properties: map[string]validation.Property{
					"clientName":   contactString("Client name"),
					"internalCode": contactString("Internal account code"),
				},
			},
			"crmData": {
				Type:        "object",
				Description: "CRM block of the generated briefing, used to prefill empty fields",
			},
		},
		AdditionalProperties: true,
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

	normalized, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	var input Input
	if err := json.Unmarshal(normalized, &input); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	return &input, nil
}
