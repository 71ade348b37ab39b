package paylink

import (
	"fmt"
	"net/http"
	"strings"
)

// Default messages used when the response body carries no usable message.
const (
	defaultAuthMessage      = "Invalid API key or unauthorized access"
	defaultRateLimitMessage = "Rate limit exceeded"
	networkErrorMessage     = "Network error occurred"
)

// TransportOutcome is the result of one failed network attempt.
//
// When Failure is non-nil the transport never received a response and the
// other fields are ignored. Otherwise StatusCode, Header and Body describe the
// non-2xx response; Body is the decoded JSON value (map, string, nil, ...).
type TransportOutcome struct {
	Failure    error
	StatusCode int
	Header     http.Header
	Body       any
}

// Classify maps a failed transport outcome to exactly one typed error.
// It performs no I/O and never panics, whatever the shape of Body.
func Classify(o TransportOutcome) *Error {
	if o.Failure != nil {
		return newNetworkError(o.Failure)
	}

	switch o.StatusCode {
	case http.StatusUnauthorized:
		msg, ok := extractMessage(o.Body)
		if !ok {
			msg = defaultAuthMessage
		}
		return NewAuthenticationError(msg)

	case http.StatusTooManyRequests:
		return NewRateLimitError(defaultRateLimitMessage, parseRetryAfter(o.Header.Get("Retry-After")))
	}

	msg, ok := extractMessage(o.Body)
	if !ok {
		msg = fmt.Sprintf("API request failed with status code %d", o.StatusCode)
	}
	return NewAPIError(msg, o.StatusCode, o.Body)
}

// extractMessage looks for a message in the body, first non-empty match wins:
// body.message, body.error (string), body.error.message.
func extractMessage(body any) (string, bool) {
	obj, ok := body.(map[string]any)
	if !ok {
		return "", false
	}
	if msg, ok := obj["message"].(string); ok && msg != "" {
		return msg, true
	}
	switch e := obj["error"].(type) {
	case string:
		if e != "" {
			return e, true
		}
	case map[string]any:
		if msg, ok := e["message"].(string); ok && msg != "" {
			return msg, true
		}
	}
	return "", false
}

// parseRetryAfter reads the leading integer of a Retry-After value.
// Returns nil for missing, non-numeric (HTTP-date form) or negative values.
func parseRetryAfter(v string) *int {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	if v[0] == '+' {
		v = v[1:]
	}

	n, digits := 0, 0
	for _, c := range v {
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int(c-'0')
		digits++
		// Clamped to one day, which also bounds n against overflow. Callers
		// see the clamped value, so "100000" reads as 86400.
		if n > maxRetryAfterSeconds {
			n = maxRetryAfterSeconds
		}
	}
	if digits == 0 {
		return nil
	}
	return &n
}

const maxRetryAfterSeconds = 24 * 60 * 60
