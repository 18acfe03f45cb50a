package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"sales-briefing/internal/display"
	"sales-briefing/internal/models"

	"gopkg.in/yaml.v3"
)

// writeStructured encodes v as json or yaml.
func writeStructured(w io.Writer, v interface{}, format string) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(jsonShaped(v))
	default:
		return fmt.Errorf("unknown structured format %q (want json or yaml)", format)
	}
}

// jsonShaped round-trips v through JSON so YAML output uses the same field
// names and omissions as the API.
func jsonShaped(v interface{}) interface{} {
	data, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return v
	}
	return out
}

// writeBriefing prints b as text, markdown, html, json or yaml.
func writeBriefing(w io.Writer, b *models.BriefingResult, format string, st display.Styles) error {
	switch strings.ToLower(format) {
	case "json", "yaml", "yml":
		return writeStructured(w, models.BriefingResponse{Briefing: b}, format)
	}
	f, err := display.ParseFormat(format)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, display.Render(b, f, st))
	return err
}
