package cli

import (
	"bytes"
	"io"
	"sync"
	"time"

	"github.com/alnah/go-paylink/internal/config"
)

const testAPIKey = "sk_test_abc123"

// ---------------------------------------------------------------------------
// syncBuffer - thread-safe bytes.Buffer for concurrent test output
// ---------------------------------------------------------------------------

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (n int, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// Compile-time check that syncBuffer implements io.Writer.
var _ io.Writer = (*syncBuffer)(nil)

// ---------------------------------------------------------------------------
// testMocks - convenience struct for grouping all mocks
// ---------------------------------------------------------------------------

type testMocks struct {
	configLoader *mockConfigLoader
	factory      *mockClientFactory
	api          *mockPaymentsAPI
	stdout       *syncBuffer
	stderr       *syncBuffer
}

// testEnv creates an Env with every dependency mocked and retry delays
// shortened to a millisecond.
func testEnv() (*Env, *testMocks) {
	api := &mockPaymentsAPI{}
	m := &testMocks{
		configLoader: &mockConfigLoader{},
		factory:      &mockClientFactory{api: api},
		api:          api,
		stdout:       &syncBuffer{},
		stderr:       &syncBuffer{},
	}

	env := &Env{
		Stdout:         m.stdout,
		Stderr:         m.stderr,
		Getenv:         staticEnv(nil),
		ConfigLoader:   m.configLoader,
		ClientFactory:  m.factory,
		RetryBaseDelay: time.Millisecond,
		RetryMaxDelay:  time.Millisecond,
	}
	return env, m
}

// testConfig is the configuration returned by the default mock loader.
func testConfig() config.Config {
	return config.Config{
		APIKey:      testAPIKey,
		Environment: "sandbox",
		Timeout:     5 * time.Second,
		MaxRetries:  3,
	}
}

// configWith returns a loader that yields cfg.
func configWith(cfg config.Config) *mockConfigLoader {
	return &mockConfigLoader{
		LoadFunc: func(func(string) string) (config.Config, error) { return cfg, nil },
	}
}

// staticEnv returns a getenv function that returns values from the given map.
func staticEnv(env map[string]string) func(string) string {
	return func(key string) string {
		return env[key]
	}
}

var jsonOut = globals{format: FormatJSON}
var textOut = globals{format: FormatText}
