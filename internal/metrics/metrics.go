// Package metrics records per-request Prometheus metrics for the API client.
// A nil *Recorder is valid and records nothing.
package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metric names.
const (
	RequestsTotalName   = "paylink_requests_total"
	RequestDurationName = "paylink_request_duration_seconds"
)

// CodeOK is the code label for successful requests. Failed requests use
// the error code (e.g. "RATE_LIMIT_ERROR").
const CodeOK = "OK"

// Recorder holds the client's request collectors.
type Recorder struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// New creates the collectors and registers them on reg.
// Returns a nil Recorder when reg is nil. If the collectors are already
// registered on reg (several clients sharing a registry), the existing ones are reused.
func New(reg prometheus.Registerer) (*Recorder, error) {
	if reg == nil {
		return nil, nil
	}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: RequestsTotalName,
		Help: "Requests sent to the payments API, by HTTP method and result code.",
	}, []string{"method", "code"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    RequestDurationName,
		Help:    "Round-trip duration of requests sent to the payments API.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})

	var err error
	if requests, err = register(reg, requests); err != nil {
		return nil, err
	}
	if duration, err = register(reg, duration); err != nil {
		return nil, err
	}

	return &Recorder{requests: requests, duration: duration}, nil
}

// register registers c, returning the already registered collector on conflict.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		var zero C
		return zero, fmt.Errorf("failed to register metrics: %w", err)
	}
	return c, nil
}

// Observe records one finished request.
func (r *Recorder) Observe(method, code string, d time.Duration) {
	if r == nil {
		return
	}
	r.requests.WithLabelValues(method, code).Inc()
	r.duration.WithLabelValues(method).Observe(d.Seconds())
}
