package composelinks

import (
	"fmt"
	"net/url"
	"strings"

	"sales-briefing/internal/common/config"
)

type Config struct {
	Organization string
	SenderTeam   string
	ShareBaseURL string
}

func DefaultConfig() *Config {
	return &Config{
		Organization: "IBM",
		SenderTeam:   "IBM Sales Team",
		ShareBaseURL: "http://localhost:8080",
	}
}

func FromAppConfig(cfg *config.Config) *Config {
	c := DefaultConfig()
	if cfg.Contact.Organization != "" {
		c.Organization = cfg.Contact.Organization
		c.SenderTeam = cfg.Contact.Organization + " Sales Team"
	}
	if cfg.Contact.SenderTeam != "" {
		c.SenderTeam = cfg.Contact.SenderTeam
	}
	if cfg.Contact.ShareBaseURL != "" {
		c.ShareBaseURL = cfg.Contact.ShareBaseURL
	}
	return c
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Organization) == "" {
		return fmt.Errorf("organization is required")
	}
	u, err := url.Parse(c.ShareBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("share base url must be absolute: %q", c.ShareBaseURL)
	}
	return nil
}
