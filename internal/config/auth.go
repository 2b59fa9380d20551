package config

import (
	"fmt"
	"time"
)

// AuthConfig holds JWT authentication configuration.
type AuthConfig struct {
	// Secret is the HMAC signing key for access tokens.
	Secret string
	// TokenTTL is how long an issued token stays valid.
	TokenTTL time.Duration
}

// LoadAuthConfigFromEnv loads authentication configuration from environment variables.
func LoadAuthConfigFromEnv() AuthConfig {
	return AuthConfig{
		Secret:   GetEnv("JWT_SECRET", "dev-secret-change-me"),
		TokenTTL: GetEnvDuration("JWT_TTL", 24*time.Hour),
	}
}

// Validate validates authentication configuration.
func (c AuthConfig) Validate() error {
	if c.Secret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be greater than 0")
	}
	return nil
}

// ActivityConfig holds activity feed fan-out configuration.
type ActivityConfig struct {
	// RedisAddr is the optional Redis address for pub/sub fan-out.
	// Empty disables publishing; the database feed still works.
	RedisAddr string
	// RedisChannel is the pub/sub channel activities are published to.
	RedisChannel string
}

// LoadActivityConfigFromEnv loads activity feed configuration from environment variables.
func LoadActivityConfigFromEnv() ActivityConfig {
	return ActivityConfig{
		RedisAddr:    GetEnv("REDIS_ADDR", ""),
		RedisChannel: GetEnv("ACTIVITY_CHANNEL", "activities"),
	}
}
