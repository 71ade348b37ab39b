package paylink

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/alnah/go-paylink/internal/metrics"
)

// Version is sent in the User-Agent header.
const Version = "1.0.0"

// Response size limit to prevent OOM from malformed responses (10MB).
const maxResponseSize = 10 * 1024 * 1024

// RequestSpec describes one API call.
type RequestSpec struct {
	Method string
	Path   string // joined to the base URL; may include a query string
	Body   any    // JSON-encoded when non-nil
	Header http.Header
}

// RequestOption adjusts a RequestSpec built by the verb helpers.
type RequestOption func(*RequestSpec)

// WithHeader adds an extra header to a single request.
// The Authorization and Content-Type headers cannot be overridden.
func WithHeader(key, value string) RequestOption {
	return func(r *RequestSpec) {
		if r.Header == nil {
			r.Header = make(http.Header)
		}
		r.Header.Add(key, value)
	}
}

// Dispatcher is the single choke-point for outbound calls. It sends exactly
// one request per call and converts every failure into an *Error.
// It is safe for concurrent use.
type Dispatcher struct {
	cfg        *Config
	httpClient HTTPDoer
	logger     zerolog.Logger
	metrics    *metrics.Recorder
}

// NewDispatcher creates a Dispatcher for cfg. Only the transport options of opts
// (WithHTTPClient, WithLogger, WithMetrics) are used.
func NewDispatcher(cfg *Config, opts ...Option) (*Dispatcher, error) {
	if cfg == nil {
		return nil, NewValidationError("configuration is required", nil)
	}
	return newDispatcher(cfg, newSettings(opts))
}

func newDispatcher(cfg *Config, s *settings) (*Dispatcher, error) {
	rec, err := metrics.New(s.registerer)
	if err != nil {
		return nil, NewValidationError(err.Error(), nil)
	}

	d := &Dispatcher{
		cfg:        cfg,
		httpClient: s.httpClient,
		logger:     zerolog.Nop(),
		metrics:    rec,
	}
	if s.logger != nil {
		d.logger = s.logger.With().Str("component", "paylink").Logger()
	}
	// The timeout is applied per request through the context, so the default
	// client needs none of its own.
	if d.httpClient == nil {
		d.httpClient = &http.Client{}
	}

	if cfg.IsSandboxKey() != (cfg.Environment() == EnvironmentSandbox) {
		d.logger.Warn().
			Bool("sandbox_key", cfg.IsSandboxKey()).
			Str("environment", string(cfg.Environment())).
			Msg("API key type does not match the configured environment")
	}

	return d, nil
}

// Get sends a GET request to path.
func (d *Dispatcher) Get(ctx context.Context, path string, opts ...RequestOption) (json.RawMessage, error) {
	return d.Execute(ctx, buildSpec(http.MethodGet, path, nil, opts))
}

// Post sends a POST request with a JSON body.
func (d *Dispatcher) Post(ctx context.Context, path string, body any, opts ...RequestOption) (json.RawMessage, error) {
	return d.Execute(ctx, buildSpec(http.MethodPost, path, body, opts))
}

// Put sends a PUT request with a JSON body.
func (d *Dispatcher) Put(ctx context.Context, path string, body any, opts ...RequestOption) (json.RawMessage, error) {
	return d.Execute(ctx, buildSpec(http.MethodPut, path, body, opts))
}

// Patch sends a PATCH request with a JSON body.
func (d *Dispatcher) Patch(ctx context.Context, path string, body any, opts ...RequestOption) (json.RawMessage, error) {
	return d.Execute(ctx, buildSpec(http.MethodPatch, path, body, opts))
}

// Delete sends a DELETE request to path.
func (d *Dispatcher) Delete(ctx context.Context, path string, opts ...RequestOption) (json.RawMessage, error) {
	return d.Execute(ctx, buildSpec(http.MethodDelete, path, nil, opts))
}

func buildSpec(method, path string, body any, opts []RequestOption) RequestSpec {
	spec := RequestSpec{Method: method, Path: path, Body: body}
	for _, opt := range opts {
		opt(&spec)
	}
	return spec
}

// Execute sends spec and returns the raw response body of a 2xx response.
// Any other outcome is returned as an *Error produced by Classify.
func (d *Dispatcher) Execute(ctx context.Context, spec RequestSpec) (json.RawMessage, error) {
	start := time.Now()
	log := d.logger.With().
		Str("request_id", uuid.NewString()).
		Str("method", spec.Method).
		Str("path", spec.Path).
		Logger()

	body, status, err := d.do(ctx, spec)
	elapsed := time.Since(start)

	if err != nil {
		var pe *Error
		if errors.As(err, &pe) {
			d.metrics.Observe(spec.Method, pe.Code(), elapsed)
			log.Debug().
				Int("status", pe.StatusCode()).
				Str("code", pe.Code()).
				Dur("duration", elapsed).
				Msg("request failed")
		}
		return nil, err
	}

	d.metrics.Observe(spec.Method, metrics.CodeOK, elapsed)
	log.Debug().Int("status", status).Dur("duration", elapsed).Msg("request completed")
	return body, nil
}

// do performs the HTTP round trip. Every returned error is an *Error.
func (d *Dispatcher) do(ctx context.Context, spec RequestSpec) (json.RawMessage, int, error) {
	var reqBody io.Reader
	if spec.Body != nil {
		data, err := json.Marshal(spec.Body)
		if err != nil {
			return nil, 0, NewValidationError(fmt.Sprintf("failed to encode request body: %v", err), nil)
		}
		reqBody = bytes.NewReader(data)
	}

	ctx, cancel := context.WithTimeout(ctx, d.cfg.Timeout())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, spec.Method, d.cfg.BaseURL()+spec.Path, reqBody)
	if err != nil {
		return nil, 0, Classify(TransportOutcome{Failure: err})
	}

	for key, values := range spec.Header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+d.cfg.APIKey())
	req.Header.Set("User-Agent", "go-paylink/"+Version)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, 0, Classify(TransportOutcome{Failure: err})
	}
	defer func() { _ = resp.Body.Close() }()

	// Limit response size to prevent OOM from malformed responses
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, resp.StatusCode, Classify(TransportOutcome{
			Failure: fmt.Errorf("failed to read response: %w", err),
		})
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp.StatusCode, Classify(TransportOutcome{
			StatusCode: resp.StatusCode,
			Header:     resp.Header,
			Body:       decodeErrorBody(raw),
		})
	}

	return raw, resp.StatusCode, nil
}

// decodeErrorBody decodes a failure body as JSON, falling back to the raw
// text, or nil when empty.
func decodeErrorBody(raw []byte) any {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	return v
}

// decodeEnvelope decodes a 2xx body into an envelope and keeps the body in
// Raw. A body that does not match the expected shape is reported as a KindAPI
// error with status 200 carrying the raw body.
func decodeEnvelope[T any](raw json.RawMessage) (*Envelope[T], error) {
	var env Envelope[T]
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, NewAPIError(
			fmt.Sprintf("failed to decode response body: %v", err), http.StatusOK, string(raw))
	}
	env.Raw = raw
	return &env, nil
}
