package cli

import "errors"

// CLI-specific sentinel errors.
// These are validation/usage errors that don't belong to domain packages.

var (
	// ErrAPIKeyMissing indicates no API key is configured.
	ErrAPIKeyMissing = errors.New("PAYLINK_API_KEY not set")

	// ErrInvalidAmount indicates the --amount flag is not a decimal number.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrUnsupportedFormat indicates an unknown --format value.
	ErrUnsupportedFormat = errors.New("unsupported output format")

	// ErrRequestRejected indicates a 2xx response whose envelope reports failure.
	ErrRequestRejected = errors.New("request rejected by the API")
)
