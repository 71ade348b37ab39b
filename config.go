package paylink

import (
	"fmt"
	"strings"
	"time"
)

// API origin and credential prefixes.
const (
	defaultBaseURL = "https://api.paylink.dev"

	// SandboxKeyPrefix starts every sandbox API key.
	SandboxKeyPrefix = "sk_test_"
	// LiveKeyPrefix starts every live API key.
	LiveKeyPrefix = "sk_live_"
)

// Defaults for unset options.
const (
	DefaultTimeout    = 5 * time.Second
	DefaultMaxRetries = 3
)

// Environment selects the remote environment the client talks to.
type Environment string

// Supported environments.
const (
	EnvironmentProduction Environment = "production"
	EnvironmentSandbox    Environment = "sandbox"
)

// Config holds the validated client settings. It has no setters and is safe
// to share between goroutines.
type Config struct {
	apiKey      string
	baseURL     string
	timeout     time.Duration
	maxRetries  int
	environment Environment
}

// Settings is a by-value snapshot of a Config.
// Modifying a Settings never affects the Config it came from.
type Settings struct {
	APIKey      string
	BaseURL     string
	Timeout     time.Duration
	MaxRetries  int
	Environment Environment
}

// NewConfig validates apiKey and the config options and returns an immutable Config.
// Checks run in order (API key, timeout, maxRetries, environment) and the first
// failure is returned as a KindValidation *Error. Performs no I/O.
func NewConfig(apiKey string, opts ...Option) (*Config, error) {
	s := newSettings(opts)
	return s.config(apiKey)
}

func (s *settings) config(apiKey string) (*Config, error) {
	if err := validateAPIKey(apiKey); err != nil {
		return nil, err
	}

	cfg := &Config{
		apiKey:      apiKey,
		baseURL:     defaultBaseURL,
		timeout:     DefaultTimeout,
		maxRetries:  DefaultMaxRetries,
		environment: EnvironmentProduction,
	}

	if s.timeout != nil {
		if *s.timeout <= 0 {
			return nil, NewValidationError(
				fmt.Sprintf("Invalid timeout: must be greater than 0, got %s", *s.timeout), nil)
		}
		cfg.timeout = *s.timeout
	}

	if s.maxRetries != nil {
		if *s.maxRetries < 0 {
			return nil, NewValidationError(
				fmt.Sprintf("Invalid maxRetries: must be 0 or greater, got %d", *s.maxRetries), nil)
		}
		cfg.maxRetries = *s.maxRetries
	}

	if s.environment != nil {
		switch *s.environment {
		case EnvironmentProduction, EnvironmentSandbox:
			cfg.environment = *s.environment
		default:
			return nil, NewValidationError(
				fmt.Sprintf("Invalid environment %q: must be %q or %q",
					*s.environment, EnvironmentProduction, EnvironmentSandbox), nil)
		}
	}

	if s.baseURL != "" {
		cfg.baseURL = strings.TrimSuffix(s.baseURL, "/")
	}

	return cfg, nil
}

// validateAPIKey checks that the key is non-blank and carries a known prefix.
func validateAPIKey(apiKey string) error {
	if strings.TrimSpace(apiKey) == "" {
		return NewValidationError("Invalid API key: API key is required", nil)
	}
	if !strings.HasPrefix(apiKey, SandboxKeyPrefix) && !strings.HasPrefix(apiKey, LiveKeyPrefix) {
		return NewValidationError(
			fmt.Sprintf("Invalid API key: must start with %q or %q", SandboxKeyPrefix, LiveKeyPrefix), nil)
	}
	return nil
}

// APIKey returns the credential.
func (c *Config) APIKey() string { return c.apiKey }

// BaseURL returns the API origin.
func (c *Config) BaseURL() string { return c.baseURL }

// Timeout returns the per-request timeout.
func (c *Config) Timeout() time.Duration { return c.timeout }

// MaxRetries returns the caller's retry preference. The client never retries
// on its own; the value is exposed for the caller's retry loop.
func (c *Config) MaxRetries() int { return c.maxRetries }

// Environment returns the configured environment.
func (c *Config) Environment() Environment { return c.environment }

// IsSandboxKey reports whether the API key is a sandbox key.
func (c *Config) IsSandboxKey() bool { return strings.HasPrefix(c.apiKey, SandboxKeyPrefix) }

// Settings returns a copy of all fields.
func (c *Config) Settings() Settings {
	return Settings{
		APIKey:      c.apiKey,
		BaseURL:     c.baseURL,
		Timeout:     c.timeout,
		MaxRetries:  c.maxRetries,
		Environment: c.environment,
	}
}
