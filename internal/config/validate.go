package config

import (
	"fmt"
	"strings"

	"go.uber.org/zap/zapcore"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// Validate checks values cleanenv cannot express through tags.
func (c *Config) Validate() error {
	switch c.App.Env {
	case EnvDevelopment, EnvProduction, EnvTest:
	default:
		return fmt.Errorf("APP_ENV must be one of development, production, test (got %q)", c.App.Env)
	}
	if c.App.Port <= 0 || c.App.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535 (got %d)", c.App.Port)
	}
	if !strings.HasPrefix(c.App.APIPrefix, "/") {
		return fmt.Errorf("API_PREFIX must start with / (got %q)", c.App.APIPrefix)
	}
	if strings.TrimSpace(c.Postgres.DSN) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.AccessTokenTTL <= 0 {
		return fmt.Errorf("JWT_EXPIRES_IN must be positive")
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 31 (got %d)", c.Auth.BcryptCost)
	}
	if _, err := zapcore.ParseLevel(strings.ToLower(c.Logger.Level)); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	if c.Queue.MaxAttempts < 1 {
		return fmt.Errorf("QUEUE_MAX_ATTEMPTS must be >= 1 (got %d)", c.Queue.MaxAttempts)
	}
	if c.Queue.Concurrency < 1 {
		return fmt.Errorf("WORKER_CONCURRENCY must be >= 1 (got %d)", c.Queue.Concurrency)
	}
	if c.Queue.KeepCompleted < 0 || c.Queue.KeepFailed < 0 {
		return fmt.Errorf("queue retention limits must be >= 0")
	}
	seed := c.Admin
	if (seed.Email != "" || seed.Phone != "" || seed.Password != "") && !seed.Enabled() {
		return fmt.Errorf("DEFAULT_ADMIN_EMAIL, DEFAULT_ADMIN_PHONE and DEFAULT_ADMIN_PASSWORD must be set together")
	}
	return nil
}
