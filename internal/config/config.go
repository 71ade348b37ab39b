// Package config persists CLI settings in a key=value file and merges them
// with PAYLINK_* environment variables.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	paylink "github.com/alnah/go-paylink"
)

// Config keys.
const (
	KeyAPIKey      = "api-key"
	KeyEnvironment = "environment"
	KeyTimeout     = "timeout"
	KeyMaxRetries  = "max-retries"
)

// Environment variable fallbacks.
const (
	EnvAPIKey      = "PAYLINK_API_KEY"
	EnvEnvironment = "PAYLINK_ENVIRONMENT"
	EnvTimeout     = "PAYLINK_TIMEOUT"
	EnvMaxRetries  = "PAYLINK_MAX_RETRIES"
)

// Errors returned by this package.
var (
	// ErrInvalidKey is returned for keys that cannot be stored in the file.
	ErrInvalidKey = errors.New("invalid config key")

	// ErrUnknownKey is returned for well-formed keys the CLI does not use.
	ErrUnknownKey = errors.New("unknown config key")

	// ErrInvalidValue is returned when a value does not parse for its key.
	ErrInvalidValue = errors.New("invalid config value")
)

// keyEnv maps each file key to its environment fallback.
var keyEnv = map[string]string{
	KeyAPIKey:      EnvAPIKey,
	KeyEnvironment: EnvEnvironment,
	KeyTimeout:     EnvTimeout,
	KeyMaxRetries:  EnvMaxRetries,
}

// Config is the resolved CLI configuration.
type Config struct {
	APIKey      string        `env:"PAYLINK_API_KEY"`
	Environment string        `env:"PAYLINK_ENVIRONMENT" envDefault:"production"`
	Timeout     time.Duration `env:"PAYLINK_TIMEOUT" envDefault:"5s"`
	MaxRetries  int           `env:"PAYLINK_MAX_RETRIES" envDefault:"3"`
}

// Options converts c to client options. The API key is passed separately to
// paylink.New.
func (c Config) Options() []paylink.Option {
	return []paylink.Option{
		paylink.WithEnvironment(paylink.Environment(c.Environment)),
		paylink.WithTimeout(c.Timeout),
		paylink.WithMaxRetries(c.MaxRetries),
	}
}

// EnvName returns the environment fallback of key.
func EnvName(key string) (string, bool) {
	name, ok := keyEnv[key]
	return name, ok
}

// Keys returns the supported keys in display order.
func Keys() []string {
	return []string{KeyAPIKey, KeyEnvironment, KeyTimeout, KeyMaxRetries}
}

// dir returns the configuration directory path.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config/go-paylink.
func dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "go-paylink"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "go-paylink"), nil
}

func path() (string, error) {
	d, err := dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "config"), nil
}

// Load reads the config file and fills unset keys from getenv.
// File values take precedence. A missing file is not an error.
func Load(getenv func(string) string) (Config, error) {
	var cfg Config

	p, err := path()
	if err != nil {
		return cfg, err
	}

	data, err := parseFile(p)
	if err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	merged := make(map[string]string, len(keyEnv))
	for key, name := range keyEnv {
		if v := data[key]; v != "" {
			merged[name] = v
		} else if v := getenv(name); v != "" {
			merged[name] = v
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Environment: merged}); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}
	return cfg, nil
}

// parseFile reads a key=value config file.
// Format: one key=value per line, # comments, empty lines ignored.
func parseFile(p string) (map[string]string, error) {
	f, err := os.Open(p) // #nosec G304 -- config path is constructed from home dir
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	data := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for lineNum := 1; scanner.Scan(); lineNum++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("invalid syntax at line %d: %q", lineNum, line)
		}
		data[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return data, nil
}

// Validate checks that key is supported and value parses for it.
func Validate(key, value string) error {
	if key == "" || strings.ContainsAny(key, "=\n\r") {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	if _, ok := keyEnv[key]; !ok {
		return fmt.Errorf("%w: %q (valid keys: %s)", ErrUnknownKey, key, strings.Join(Keys(), ", "))
	}
	if strings.ContainsAny(value, "\n\r") {
		return fmt.Errorf("%w: %s must be a single line", ErrInvalidValue, key)
	}

	switch key {
	case KeyAPIKey:
		if !strings.HasPrefix(value, paylink.SandboxKeyPrefix) && !strings.HasPrefix(value, paylink.LiveKeyPrefix) {
			return fmt.Errorf("%w: %s must start with %q or %q",
				ErrInvalidValue, key, paylink.SandboxKeyPrefix, paylink.LiveKeyPrefix)
		}
	case KeyEnvironment:
		if value != string(paylink.EnvironmentProduction) && value != string(paylink.EnvironmentSandbox) {
			return fmt.Errorf("%w: %s must be %q or %q",
				ErrInvalidValue, key, paylink.EnvironmentProduction, paylink.EnvironmentSandbox)
		}
	case KeyTimeout:
		d, err := time.ParseDuration(value)
		if err != nil || d <= 0 {
			return fmt.Errorf("%w: %s must be a positive duration such as 5s, got %q", ErrInvalidValue, key, value)
		}
	case KeyMaxRetries:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %s must be an integer >= 0, got %q", ErrInvalidValue, key, value)
		}
	}
	return nil
}

// Save validates and writes a single key=value to the config file.
// Creates the config directory and file if they don't exist.
// Preserves existing key=value pairs but discards comments.
func Save(key, value string) error {
	if err := Validate(key, value); err != nil {
		return err
	}

	p, err := path()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(p), 0750); err != nil { // #nosec G301 -- user config dir
		return fmt.Errorf("cannot create config directory: %w", err)
	}

	existing, err := parseFile(p)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read config: %w", err)
	}
	if existing == nil {
		existing = make(map[string]string)
	}
	existing[key] = value

	return writeFile(p, existing)
}

// writeFile writes data sorted by key. The file holds a credential, so it is
// readable by the owner only.
func writeFile(p string, data map[string]string) error {
	f, err := os.OpenFile(p, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600) // #nosec G304 -- path from home dir
	if err != nil {
		return fmt.Errorf("cannot write config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	for _, key := range slices.Sorted(maps.Keys(data)) {
		if _, err := fmt.Fprintf(f, "%s=%s\n", key, data[key]); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	return nil
}

// Get reads a single value from the config file.
// Returns empty string if the key doesn't exist.
func Get(key string) (string, error) {
	data, err := List()
	if err != nil {
		return "", err
	}
	return data[key], nil
}

// List returns all config file values as a map.
func List() (map[string]string, error) {
	p, err := path()
	if err != nil {
		return nil, err
	}

	data, err := parseFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, err
	}
	return data, nil
}

// Mask hides all but the prefix and last four characters of an API key.
func Mask(apiKey string) string {
	prefix := ""
	for _, p := range []string{paylink.SandboxKeyPrefix, paylink.LiveKeyPrefix} {
		if strings.HasPrefix(apiKey, p) {
			prefix = p
			break
		}
	}
	rest := apiKey[len(prefix):]
	if len(rest) <= 4 {
		return prefix + strings.Repeat("*", len(rest))
	}
	return prefix + strings.Repeat("*", len(rest)-4) + rest[len(rest)-4:]
}
