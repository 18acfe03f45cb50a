package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile_Defaults(t *testing.T) {
	path := writeConfig(t, "app:\n  name: briefing-test\n")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "briefing-test", cfg.App.Name)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "google/gemini-2.5-flash", cfg.Gateway.Model)
	assert.InDelta(t, 0.7, cfg.Gateway.Temperature, 0.0001)
	assert.Equal(t, DefaultAPIKeyEnv, cfg.Gateway.APIKeyEnv)
	assert.Equal(t, "session:", cfg.Auth.SessionPrefix)
	assert.Equal(t, "IBM", cfg.Contact.Organization)
	assert.Equal(t, "IBM Sales Team", cfg.Contact.SenderTeam)
	assert.Equal(t, "briefing-test", cfg.Observability.ServiceName)
	assert.False(t, cfg.Database.Postgres.Enabled())
	assert.False(t, cfg.Database.Redis.Enabled())
	assert.Contains(t, cfg.Server.AllowedHeaders, "x-client-info")
}

func TestLoadFromFile_ExpandsEnvPlaceholders(t *testing.T) {
	t.Setenv("BRIEFING_TEST_GATEWAY", "https://gateway.test/v1")
	path := writeConfig(t, "gateway:\n  base_url: ${BRIEFING_TEST_GATEWAY}\n  model: test-model\n")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "https://gateway.test/v1", cfg.Gateway.BaseURL)
	assert.Equal(t, "test-model", cfg.Gateway.Model)
}

func TestLoadFromFile_EnvFallbacksBeatDefaults(t *testing.T) {
	t.Setenv("AI_GATEWAY_URL", "https://fallback.test/v1")
	t.Setenv("REDIS_ADDR", "localhost:6390")
	path := writeConfig(t, "app:\n  name: briefing-test\n")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "https://fallback.test/v1", cfg.Gateway.BaseURL)
	assert.Equal(t, "localhost:6390", cfg.Database.Redis.Address)
}

func TestLoadFromFile_RequireSessionNeedsRedis(t *testing.T) {
	path := writeConfig(t, "auth:\n  require_session: true\n")

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.redis.address")
}

func TestLoadFromFile_RejectsBadGatewayURL(t *testing.T) {
	path := writeConfig(t, "gateway:\n  base_url: ftp://nope\n")

	_, err := LoadFromFile(path)
	require.Error(t, err)
}

func TestResolveAPIKey(t *testing.T) {
	g := GatewayConfig{APIKey: "from-file", APIKeyEnv: "BRIEFING_TEST_KEY"}

	t.Setenv("BRIEFING_TEST_KEY", "")
	assert.Equal(t, "from-file", g.ResolveAPIKey())

	t.Setenv("BRIEFING_TEST_KEY", "  from-env  ")
	assert.Equal(t, "from-env", g.ResolveAPIKey())

	assert.Equal(t, "", GatewayConfig{APIKeyEnv: "BRIEFING_TEST_UNSET_KEY"}.ResolveAPIKey())
}

func TestPostgresDSN(t *testing.T) {
	p := PostgresConfig{Host: "db", Port: 5432, User: "u", Password: "p", Database: "audit", SSLMode: "disable"}
	assert.True(t, p.Enabled())
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=audit sslmode=disable", p.GetDSN())
}
