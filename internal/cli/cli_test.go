package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sales-briefing/pkg/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const acmeBriefing = `{
	"briefing": {
		"companyInfo": {"name": "Acme Corp"},
		"crmData": {"contactName": "Elena Petrova", "contactEmail": "elena@acme.example"},
		"summary": "Acme is consolidating plants.",
		"solutionMapping": [
			{"product": "Maximo", "compatibility": 92},
			{"product": "Instana", "compatibility": 70}
		]
	}
}`

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd("test")
	var out, errOut bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func writeConfig(t *testing.T, baseURL string) string {
	t.Helper()
	t.Setenv("BRIEFING_CLI_TEST_KEY", "cli-secret")
	return writeFile(t, "config.yaml", fmt.Sprintf(`
app:
  name: sales-briefing
gateway:
  base_url: %s
  api_key_env: BRIEFING_CLI_TEST_KEY
  model: test-model
  timeout: 5000
contact:
  organization: Globex
`, baseURL))
}

func TestCatalog_IsValid(t *testing.T) {
	reg := Catalog()
	require.NoError(t, reg.Validate())

	op, ok := reg.Find("generate-briefing")
	require.True(t, ok)
	assert.Equal(t, []string{"/api/generate-briefing", "/functions/v1/generate-briefing"}, op.Paths)
	assert.Contains(t, op.ErrorCodes, "SCHEMA_VALIDATION_FAILED")
	assert.Equal(t, "1m30s", op.Timeout)
}

func TestSchemaCommands(t *testing.T) {
	out, _, err := run(t, "", "schema", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "record-auth-event")
	assert.Contains(t, out, "/api/contact/links")

	out, _, err = run(t, "", "schema", "show", "record-auth-event")
	require.NoError(t, err)
	var op map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &op))
	assert.Equal(t, "POST", op["method"])

	_, _, err = run(t, "", "schema", "show", "nope")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "registry.json")
	_, _, err = run(t, "", "schema", "export", "--out", path)
	require.NoError(t, err)

	reg, err := registry.LoadRegistry(path)
	require.NoError(t, err)
	assert.Len(t, reg.Operations, 4)

	out, _, err = run(t, "", "schema", "validate", "--path", path)
	require.NoError(t, err)
	assert.Contains(t, out, "passed")
}

func TestSchemaValidate_ShippedRegistry(t *testing.T) {
	path := filepath.Join("..", "..", defaultRegistryPath)

	out, _, err := run(t, "", "schema", "validate", "--path", path)
	require.NoError(t, err)
	assert.Contains(t, out, "passed")

	shipped, err := registry.LoadRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, Catalog().Operations, shipped.Operations, "configs/operation-registry.json is out of date; run 'briefing-cli schema export'")
}

func TestSchemaValidate_MissingFileNamesExport(t *testing.T) {
	_, _, err := run(t, "", "schema", "validate", "--path", filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema export")
}

func TestSchemaValidate_Stale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")
	reg := Catalog()
	reg.Operations = reg.Operations[:1]
	require.NoError(t, registry.SaveRegistry(path, reg))

	_, _, err := run(t, "", "schema", "validate", "--path", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stale")
}

func TestRender_FromStdin(t *testing.T) {
	out, _, err := run(t, acmeBriefing, "render", "--format", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "# Sales Briefing: Acme Corp")
	assert.Contains(t, out, "**Top pick:** Maximo (92%)")
}

func TestRender_StructuredOutput(t *testing.T) {
	path := writeFile(t, "acme.json", acmeBriefing)

	out, _, err := run(t, "", "render", path, "--format", "yaml")
	require.NoError(t, err)
	var doc struct {
		Briefing struct {
			Summary string `yaml:"summary"`
		} `yaml:"briefing"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "Acme is consolidating plants.", doc.Briefing.Summary)
}

func TestRender_RejectsInvalidBriefing(t *testing.T) {
	_, _, err := run(t, `{"briefing":{"solutionMapping":[{"compatibility":150}]}}`, "render")
	assert.Error(t, err)

	_, _, err = run(t, "  ", "render")
	assert.Error(t, err)
}

func TestGenerate_Offline(t *testing.T) {
	sample := writeFile(t, "sample.json", acmeBriefing)

	out, _, err := run(t, "", "generate", "--client", "Acme Corp", "--sample", sample, "--offline", "--format", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "Maximo")

	_, _, err = run(t, "", "generate", "--client", "Acme Corp", "--offline")
	assert.Error(t, err)
}

func TestGenerate_CallsGateway(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		content := "```json\n{\"summary\":\"Fresh briefing\",\"solutionMapping\":[{\"product\":\"watsonx\",\"compatibility\":81}]}\n```"
		resp := map[string]interface{}{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"choices": []map[string]interface{}{{"index": 0, "message": map[string]string{"role": "assistant", "content": content}, "finish_reason": "stop"}},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	cfgPath := writeConfig(t, server.URL+"/v1")

	out, _, err := run(t, "", "--config", cfgPath, "generate", "--client", "Acme Corp", "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, "Bearer cli-secret", gotAuth)

	var resp struct {
		Briefing struct {
			Summary string `json:"summary"`
		} `json:"briefing"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "Fresh briefing", resp.Briefing.Summary)
}

func TestGenerate_FallsBackToSample(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"slow down"}}`))
	}))
	defer server.Close()

	cfgPath := writeConfig(t, server.URL+"/v1")
	sample := writeFile(t, "sample.json", acmeBriefing)

	out, errOut, err := run(t, "", "--config", cfgPath, "generate", "--client", "Acme Corp", "--sample", sample, "--format", "markdown")
	require.NoError(t, err)
	assert.Contains(t, errOut, "showing sample briefing")
	assert.Contains(t, out, "Maximo")

	_, _, err = run(t, "", "--config", cfgPath, "generate", "--client", "Acme Corp")
	assert.Error(t, err)
}

func TestContact_JSON(t *testing.T) {
	cfgPath := writeConfig(t, "https://gateway.example/v1")
	briefing := writeFile(t, "acme.json", acmeBriefing)

	out, _, err := run(t, "", "--config", cfgPath, "contact", "--briefing", briefing, "--output", "json")
	require.NoError(t, err)

	var links struct {
		Email struct {
			URL     string `json:"url"`
			Enabled bool   `json:"enabled"`
		} `json:"email"`
		WhatsApp struct {
			Enabled bool   `json:"enabled"`
			Reason  string `json:"reason"`
		} `json:"whatsapp"`
		Share struct {
			URL string `json:"url"`
		} `json:"share"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &links))
	assert.True(t, links.Email.Enabled)
	assert.Contains(t, links.Email.URL, "mailto:elena@acme.example?subject=Globex%20Solutions%20Briefing%20-%20Acme%20Corp")
	assert.False(t, links.WhatsApp.Enabled)
	assert.Equal(t, "phone number is required", links.WhatsApp.Reason)
	assert.True(t, strings.HasSuffix(links.Share.URL, "/?client=Acme%20Corp"))
}

func TestContact_Text(t *testing.T) {
	cfgPath := writeConfig(t, "https://gateway.example/v1")

	out, _, err := run(t, "", "--config", cfgPath, "contact", "--client", "Acme Corp", "--name", "Ana")
	require.NoError(t, err)
	assert.Contains(t, out, "unavailable: email address is required")
	assert.Contains(t, out, "https://teams.microsoft.com/l/meeting/new?")
}
