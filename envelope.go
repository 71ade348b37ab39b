package paylink

import "encoding/json"

// Envelope is the remote API's uniform response wrapper. Its contents are
// passed through as received; the client never reinterprets Success or Error.
//
// Data holds the fields this package models. Raw holds the response body
// exactly as received, including fields Data has no place for.
type Envelope[T any] struct {
	Success bool           `json:"success"`
	Data    *T             `json:"data,omitempty"`
	Error   *EnvelopeError `json:"error,omitempty"`

	Raw json.RawMessage `json:"-"`
}

// EnvelopeError is the error object of an unsuccessful envelope.
// Code is whatever JSON value the API sent: usually a string, sometimes a number.
type EnvelopeError struct {
	Code    any    `json:"code"`
	Message string `json:"message"`
}

// MarshalJSON writes Raw when the envelope came from the API, and the typed
// fields otherwise.
func (e Envelope[T]) MarshalJSON() ([]byte, error) {
	if len(e.Raw) > 0 {
		return e.Raw, nil
	}
	return json.Marshal(struct {
		Success bool           `json:"success"`
		Data    *T             `json:"data,omitempty"`
		Error   *EnvelopeError `json:"error,omitempty"`
	}{e.Success, e.Data, e.Error})
}
