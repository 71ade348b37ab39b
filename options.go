package paylink

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// HTTPDoer abstracts the HTTP transport. *http.Client satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Option configures a Client (or a bare Config through NewConfig).
// Values are recorded as given and validated when the Config is built.
type Option func(*settings)

// settings collects option values before validation.
type settings struct {
	timeout     *time.Duration
	maxRetries  *int
	environment *Environment
	baseURL     string

	httpClient HTTPDoer
	logger     *zerolog.Logger
	registerer prometheus.Registerer
}

func newSettings(opts []Option) *settings {
	s := &settings{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithTimeout sets the per-request timeout. Must be greater than zero.
func WithTimeout(d time.Duration) Option {
	return func(s *settings) {
		s.timeout = &d
	}
}

// WithMaxRetries records the caller's retry preference. Must be zero or greater.
func WithMaxRetries(n int) Option {
	return func(s *settings) {
		s.maxRetries = &n
	}
}

// WithEnvironment selects production or sandbox.
func WithEnvironment(env Environment) Option {
	return func(s *settings) {
		s.environment = &env
	}
}

// WithHTTPClient replaces the default transport (for proxies, custom TLS, tests).
// The configured timeout is still applied to every request through its context.
func WithHTTPClient(c HTTPDoer) Option {
	return func(s *settings) {
		s.httpClient = c
	}
}

// WithLogger sets the logger used for request debug logs. Default: disabled.
func WithLogger(l zerolog.Logger) Option {
	return func(s *settings) {
		s.logger = &l
	}
}

// WithMetrics registers request metrics on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(s *settings) {
		s.registerer = reg
	}
}

// withBaseURL overrides the API origin (tests only).
func withBaseURL(url string) Option {
	return func(s *settings) {
		s.baseURL = url
	}
}

// Int returns a pointer to v, for optional integer parameters.
func Int(v int) *int {
	return &v
}
