package generatebriefing

import (
	"encoding/json"
	"fmt"
	"strings"

	"sales-briefing/internal/common/errors"
	"sales-briefing/internal/common/validation"
)

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"clientName"},
		Properties: map[string]validation.Property{
			"clientName": {
				Type:        "string",
				Description: "Prospective client's name",
				MaxLength:   validation.Int(200),
			},
			"internalCode": {
				Type:        "string",
				Description: "Opaque internal account code",
				MaxLength:   validation.Int(100),
			},
			"additionalContext": {
				Type:        "string",
				Description: "Optional free-text context for the briefing",
				MaxLength:   validation.Int(4000),
			},
		},
		AdditionalProperties: true,
	}
}

func stringProp(description string) validation.Property {
	return validation.Property{Type: "string", Description: description}
}

func stringList(description string) validation.Property {
	return validation.Property{Type: "array", Description: description, Items: &validation.Property{Type: "string"}}
}

// GetBriefingSchema describes the model output. Every field is optional;
// types and the compatibility range are enforced.
func GetBriefingSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"companyInfo": {
				Type:        "object",
				Description: "Company profile",
				Properties: map[string]validation.Property{
					"name":         stringProp("Company name"),
					"industry":     stringProp("Industry"),
					"companySize":  stringProp("Head count band"),
					"headquarters": stringProp("Headquarters location"),
					"revenue":      stringProp("Annual revenue"),
					"founded":      stringProp("Founding year"),
				},
			},
			"crmData": {
				Type:        "object",
				Description: "CRM and contact metadata",
				Properties: map[string]validation.Property{
					"contactName":     stringProp("Primary contact"),
					"contactEmail":    stringProp("Primary contact email"),
					"contactPhone":    stringProp("Primary contact phone"),
					"contactTitle":    stringProp("Primary contact title"),
					"accountStatus":   stringProp("Account status"),
					"lastContactDate": stringProp("Last contact date"),
					"accountOwner":    stringProp("Account owner"),
					"region":          stringProp("Sales region"),
					"pastInteractions": {
						Type: "array",
						Items: &validation.Property{
							Type: "object",
							Properties: map[string]validation.Property{
								"date":    stringProp("Interaction date"),
								"type":    stringProp("Interaction type"),
								"summary": stringProp("Interaction summary"),
							},
						},
					},
				},
			},
			"summary": stringProp("Executive summary"),
			"context": stringProp("Strategic context"),
			"opportunities": {
				Type: "array",
				Items: &validation.Property{
					Type: "object",
					Properties: map[string]validation.Property{
						"title":       stringProp("Opportunity title"),
						"description": stringProp("Opportunity description"),
						"date":        stringProp("When it surfaced"),
					},
				},
			},
			"painPoints": stringList("Client pain points"),
			"solutionMapping": {
				Type: "array",
				Items: &validation.Property{
					Type: "object",
					Properties: map[string]validation.Property{
						"product": stringProp("Product name"),
						"compatibility": {
							Type:        "number",
							Description: "Fit score",
							Minimum:     validation.Float(0),
							Maximum:     validation.Float(100),
						},
						"shortDescription":  stringProp("One-line description"),
						"reason":            stringProp("Why it fits"),
						"whyInteresting":    stringProp("Upside for the client"),
						"whyNotInteresting": stringProp("Objections"),
						"useCases":          stringList("Use cases"),
					},
				},
			},
			"keyQuestions": stringList("Discovery questions"),
			"competitiveIntel": {
				Type: "object",
				Properties: map[string]validation.Property{
					"competitors": stringList("Competitor names"),
					"insights":    stringList("Competitive insights"),
				},
			},
			"nextSteps": stringList("Recommended next steps"),
			"references": {
				Type: "array",
				Items: &validation.Property{
					Type: "object",
					Properties: map[string]validation.Property{
						"id":     {Type: "integer", Description: "Citation id used in [ref:N]"},
						"source": stringProp("Source description"),
						"url":    stringProp("Source URL"),
					},
				},
			},
		},
		AdditionalProperties: true,
	}
}

// ParseInput decodes and validates a raw request body.
func ParseInput(raw []byte) (*Input, error) {
	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.NewValidationError(fmt.Sprintf("malformed JSON body: %v", err))
	}
	if _, ok := doc.(map[string]interface{}); !ok {
		return nil, errors.NewValidationError("request body must be a JSON object")
	}

	result, err := validation.Validate(doc, GetInputSchema())
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
	return &input, nil
}

func validateInput(input *Input) error {
	if input == nil || strings.TrimSpace(input.ClientName) == "" {
		return errors.NewValidationError("clientName is required")
	}
	return nil
}
