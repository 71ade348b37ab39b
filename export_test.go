package paylink

// Exports for testing. These allow black-box tests to reach internals
// without widening the public API.

// WithBaseURL points the client at a test server.
var WithBaseURL = withBaseURL

// QueryParam builds a query entry for BuildQuery.
type QueryParam = queryParam

// NewQueryParam creates a query entry.
func NewQueryParam(key string, value any) QueryParam {
	return queryParam{key: key, value: value}
}

// Function exports for unit testing internal logic.
var (
	JoinPath        = joinPath
	BuildQuery      = buildQuery
	ExtractMessage  = extractMessage
	ParseRetryAfter = parseRetryAfter
)
