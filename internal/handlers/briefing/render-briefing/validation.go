package renderbriefing

import (
	"encoding/json"
	"fmt"
	"strings"

	"sales-briefing/internal/common/errors"
	"sales-briefing/internal/common/validation"
	generatebriefing "sales-briefing/internal/handlers/briefing/generate-briefing"
)

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"briefing": {
				Type:        "object",
				Description: "Briefing as returned by generate-briefing; every group is optional",
			},
		},
		AdditionalProperties: true,
	}
}

// ParseInput checks the envelope, then the briefing itself against the
// generation schema. Both failures are the caller's fault.
func ParseInput(raw []byte) (*Input, error) {
	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.NewValidationError(fmt.Sprintf("malformed JSON body: %v", err))
	}
	obj, ok := doc.(map[string]interface{})
	if !ok {
		return nil, errors.NewValidationError("request body must be a JSON object")
	}
	validation.PruneNulls(obj)

	if err := validateAgainst(obj, GetInputSchema()); err != nil {
		return nil, err
	}

	input := &Input{}
	briefing, ok := obj["briefing"]
	if !ok {
		return input, nil
	}
	if err := validateAgainst(briefing, generatebriefing.GetBriefingSchema()); err != nil {
		return nil, err
	}

	normalized, err := json.Marshal(briefing)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	// Rounds fractional scores the same way a fresh generation does.
	b, err := generatebriefing.ParseBriefingDocument(normalized)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	input.Briefing = b
	return input, nil
}

func validateAgainst(doc interface{}, schema validation.JSONSchema) error {
	result, err := validation.Validate(doc, schema)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if !result.Valid {
		return errors.NewValidationError(strings.Join(result.GetErrorMessages(), "; "))
	}
	return nil
}
