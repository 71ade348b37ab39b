package paylink

import (
	"fmt"
	"net/url"
	"strings"
)

// joinPath appends each segment to base with a single "/" separator.
// Empty segments are kept, so joinPath("/v1/x", "a", "", "b") is "/v1/x/a//b".
func joinPath(base string, segments ...string) string {
	var b strings.Builder
	b.WriteString(base)
	for _, seg := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(seg))
	}
	return b.String()
}

// queryParam is one query-string entry. A nil value is omitted.
type queryParam struct {
	key   string
	value any
}

// optionalInt returns a query value for p, nil when p is nil.
func optionalInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

// buildQuery encodes params in order as "?k=v&k2=v2", skipping nil values.
// Returns "" when no parameter survives.
func buildQuery(params []queryParam) string {
	pairs := make([]string, 0, len(params))
	for _, p := range params {
		if p.value == nil {
			continue
		}
		pairs = append(pairs, encodeURIComponent(p.key)+"="+encodeURIComponent(fmt.Sprint(p.value)))
	}
	if len(pairs) == 0 {
		return ""
	}
	return "?" + strings.Join(pairs, "&")
}

// uriUnreserved restores the characters url.QueryEscape escapes but
// encodeURIComponent leaves alone, and writes spaces as %20.
var uriUnreserved = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeURIComponent escapes s for a query string. Letters, digits and
// -_.!~*'() are left as is.
func encodeURIComponent(s string) string {
	return uriUnreserved.Replace(url.QueryEscape(s))
}
