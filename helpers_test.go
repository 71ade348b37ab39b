package paylink_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	paylink "github.com/alnah/go-paylink"
)

// ---------------------------------------------------------------------------
// Helpers - mock payments API server
// ---------------------------------------------------------------------------

// apiCall is one request received by the mock server.
type apiCall struct {
	Method   string
	Path     string
	RawPath  string
	RawQuery string
	Header   http.Header
	Body     map[string]any
}

type mockResponse struct {
	statusCode int
	header     http.Header
	body       any // encoded as JSON unless it is a string
}

// mockAPIServer replays queued responses and records every call.
type mockAPIServer struct {
	*httptest.Server
	mu          sync.Mutex
	calls       []apiCall
	responses   []mockResponse
	responseIdx int
}

func newMockAPIServer(t *testing.T) *mockAPIServer {
	t.Helper()

	m := &mockAPIServer{}
	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.mu.Lock()
		defer m.mu.Unlock()

		call := apiCall{
			Method:   r.Method,
			Path:     r.URL.Path,
			RawPath:  r.URL.EscapedPath(),
			RawQuery: r.URL.RawQuery,
			Header:   r.Header.Clone(),
		}
		if data, _ := io.ReadAll(r.Body); len(data) > 0 {
			_ = json.Unmarshal(data, &call.Body)
		}
		m.calls = append(m.calls, call)

		var resp mockResponse
		switch {
		case m.responseIdx < len(m.responses):
			resp = m.responses[m.responseIdx]
			m.responseIdx++
		case len(m.responses) > 0:
			resp = m.responses[len(m.responses)-1]
		default:
			resp = mockResponse{statusCode: http.StatusOK, body: map[string]any{"success": true}}
		}

		for k, v := range resp.header {
			w.Header()[k] = v
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.statusCode)
		if s, ok := resp.body.(string); ok {
			_, _ = io.WriteString(w, s)
			return
		}
		_ = json.NewEncoder(w).Encode(resp.body)
	}))
	t.Cleanup(m.Close)
	return m
}

func (m *mockAPIServer) addResponse(statusCode int, body any) {
	m.addResponseWithHeader(statusCode, nil, body)
}

func (m *mockAPIServer) addResponseWithHeader(statusCode int, header http.Header, body any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, mockResponse{statusCode: statusCode, header: header, body: body})
}

func (m *mockAPIServer) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func (m *mockAPIServer) lastCall() apiCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return apiCall{}
	}
	return m.calls[len(m.calls)-1]
}

// mustNewClient creates a Client pointed at the mock server.
func mustNewClient(t *testing.T, srv *mockAPIServer, opts ...paylink.Option) *paylink.Client {
	t.Helper()
	opts = append([]paylink.Option{paylink.WithBaseURL(srv.URL)}, opts...)
	c, err := paylink.New(testSandboxKey, opts...)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return c
}

// doerFunc adapts a function to paylink.HTTPDoer.
type doerFunc func(*http.Request) (*http.Response, error)

func (f doerFunc) Do(r *http.Request) (*http.Response, error) { return f(r) }

// asPaylinkError fails the test unless err is a *paylink.Error.
func asPaylinkError(t *testing.T, err error) *paylink.Error {
	t.Helper()
	var pe *paylink.Error
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v (%T), want *paylink.Error", err, err)
	}
	return pe
}
