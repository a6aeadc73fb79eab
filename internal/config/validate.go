package config

import (
	"fmt"
	"strings"
)

// Validate checks cross-field rules. Load calls it.
func (c *Config) Validate() error {
	switch c.AI.Provider {
	case "openai", "anthropic":
	default:
		return fmt.Errorf("ai.provider must be openai or anthropic (got %q)", c.AI.Provider)
	}
	if strings.TrimSpace(c.AI.APIKey) == "" {
		return fmt.Errorf("ai.api_key is required")
	}

	if c.Auth.RequireLogin && len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters when login is required (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.SessionTTL <= 0 {
		return fmt.Errorf("auth.session_ttl must be positive")
	}

	switch c.Database.Driver {
	case "", "mysql", "postgres":
	default:
		return fmt.Errorf("database.driver must be mysql, postgres or empty (got %q)", c.Database.Driver)
	}

	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server.max_body_bytes must be positive")
	}
	if !c.RateLimit.Disabled && (c.RateLimit.Rate <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("ratelimit rate and burst must be positive")
	}
	return nil
}
