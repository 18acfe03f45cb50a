package authaudit

import (
	"fmt"
	"time"
)

type Config struct {
	// WriteTimeout bounds each detached insert.
	WriteTimeout time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		WriteTimeout: 5 * time.Second,
	}
}

func (c *Config) Validate() error {
	if c.WriteTimeout <= 0 {
		return fmt.Errorf("write timeout must be positive")
	}
	return nil
}
