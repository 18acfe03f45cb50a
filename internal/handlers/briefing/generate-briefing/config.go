package generatebriefing

import (
	"fmt"
	"time"

	"sales-briefing/internal/common/config"
)

type Config struct {
	BaseURL      string
	APIKey       string
	APIKeyEnv    string
	Model        string
	Temperature  float64
	Timeout      time.Duration
	Organization string
	// RawLogLimit caps how much of the raw model text is logged.
	RawLogLimit int
}

func DefaultConfig() *Config {
	return &Config{
		BaseURL:      "https://ai.gateway.lovable.dev/v1",
		APIKeyEnv:    config.DefaultAPIKeyEnv,
		Model:        "google/gemini-2.5-flash",
		Temperature:  0.7,
		Timeout:      90 * time.Second,
		Organization: "IBM",
		RawLogLimit:  4096,
	}
}

// FromAppConfig maps the loaded application config onto the handler config.
func FromAppConfig(cfg *config.Config) *Config {
	c := DefaultConfig()
	c.BaseURL = cfg.Gateway.BaseURL
	c.APIKey = cfg.Gateway.APIKey
	c.APIKeyEnv = cfg.Gateway.APIKeyEnv
	c.Model = cfg.Gateway.Model
	c.Temperature = cfg.Gateway.Temperature
	c.Timeout = config.GetDuration(cfg.Gateway.Timeout)
	if cfg.Contact.Organization != "" {
		c.Organization = cfg.Contact.Organization
	}
	return c
}

func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("gateway base url is required")
	}
	if c.Model == "" {
		return fmt.Errorf("gateway model is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}

// apiKey is resolved on every call.
func (c *Config) apiKey() string {
	return config.GatewayConfig{APIKey: c.APIKey, APIKeyEnv: c.APIKeyEnv}.ResolveAPIKey()
}
