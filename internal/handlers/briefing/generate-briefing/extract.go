package generatebriefing

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"

	"sales-briefing/internal/common/errors"
	"sales-briefing/internal/common/validation"
	"sales-briefing/internal/models"
)

// fenceRegex matches one fenced code block. A language tag is only taken
// when it runs up to the end of the opening line.
var fenceRegex = regexp.MustCompile("(?s)```(?:[A-Za-z0-9_+-]*[ \\t]*\\r?\\n)?(.*?)\\s*```")

// stripCodeFence returns text unchanged (trimmed) when it is already valid
// JSON, else the body of the first fenced block, else the whole text.
func stripCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if json.Valid([]byte(trimmed)) {
		return trimmed
	}
	if m := fenceRegex.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return trimmed
}

// decodeDocument parses the extracted payload. Anything other than a JSON
// object is a response format error; there is no partial recovery.
func decodeDocument(payload, raw string) (map[string]interface{}, error) {
	var doc interface{}
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return nil, errors.NewResponseFormatError(raw, err)
	}
	obj, ok := doc.(map[string]interface{})
	if !ok {
		return nil, errors.NewResponseFormatError(raw, fmt.Errorf("top-level value is %T, want object", doc))
	}
	return obj, nil
}

// parseBriefing turns the assistant text into a typed briefing.
func parseBriefing(content string) (*models.BriefingResult, error) {
	doc, err := decodeDocument(stripCodeFence(content), content)
	if err != nil {
		return nil, err
	}

	validation.PruneNulls(doc)

	result, err := validation.Validate(doc, GetBriefingSchema())
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if !result.Valid {
		return nil, errors.NewSchemaValidationError(result.GetErrorMessages())
	}

	roundScores(doc)

	normalized, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	var briefing models.BriefingResult
	if err := json.Unmarshal(normalized, &briefing); err != nil {
		return nil, errors.NewSchemaValidationError([]string{err.Error()})
	}
	return &briefing, nil
}

// ParseBriefingDocument validates a stored briefing, either bare or wrapped as
// {"briefing": {...}}, through the same path as a model response.
func ParseBriefingDocument(raw []byte) (*models.BriefingResult, error) {
	var wrapper struct {
		Briefing json.RawMessage `json:"briefing"`
	}
	if err := json.Unmarshal(raw, &wrapper); err == nil && len(wrapper.Briefing) > 0 && string(wrapper.Briefing) != "null" {
		raw = wrapper.Briefing
	}
	return parseBriefing(string(raw))
}

// roundScores rounds non-integral compatibility values in place.
func roundScores(doc map[string]interface{}) {
	items, ok := doc["solutionMapping"].([]interface{})
	if !ok {
		return
	}
	for _, item := range items {
		sol, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		if score, ok := sol["compatibility"].(float64); ok {
			sol["compatibility"] = math.Round(score)
		}
	}
}
