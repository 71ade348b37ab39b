package cli

import (
	"context"
	"io"
	"os"
	"time"

	paylink "github.com/alnah/go-paylink"
	"github.com/alnah/go-paylink/internal/config"
)

// Default retry backoff for API calls.
const (
	defaultRetryBaseDelay = 500 * time.Millisecond
	defaultRetryMaxDelay  = 8 * time.Second
)

// Env holds injectable dependencies for CLI commands.
// This is the central injection point for testing CLI commands in isolation.
//
// All fields have sensible defaults via DefaultEnv(). Tests can override
// specific fields using the With* options or by creating a custom Env.
//
// Env must not be nil when passed to command functions. Use DefaultEnv()
// or NewEnv() to create a valid instance.
type Env struct {
	// I/O and environment
	Stdout io.Writer
	Stderr io.Writer
	Getenv func(string) string

	// Factories for domain objects
	ConfigLoader  ConfigLoader
	ClientFactory ClientFactory

	// Backoff between retried API calls
	RetryBaseDelay time.Duration
	RetryMaxDelay  time.Duration
}

// ConfigLoader loads the merged file and environment configuration.
type ConfigLoader interface {
	Load(getenv func(string) string) (config.Config, error)
}

// PaymentsAPI is the subset of the payments client used by the commands.
type PaymentsAPI interface {
	CreateInvoice(ctx context.Context, params paylink.CreateInvoiceParams) (*paylink.Envelope[paylink.Invoice], error)
	VerifyInvoice(ctx context.Context, invoiceID string) (*paylink.Envelope[paylink.InvoiceVerification], error)
	ListTransactions(ctx context.Context, params *paylink.ListTransactionsParams) (*paylink.Envelope[paylink.TransactionList], error)
}

// ClientFactory creates payments API clients.
type ClientFactory interface {
	NewClient(apiKey string, opts ...paylink.Option) (PaymentsAPI, error)
}

// EnvOption configures an Env.
type EnvOption func(*Env)

// WithStdout sets the stdout writer.
func WithStdout(w io.Writer) EnvOption {
	return func(e *Env) {
		e.Stdout = w
	}
}

// WithStderr sets the stderr writer.
func WithStderr(w io.Writer) EnvOption {
	return func(e *Env) {
		e.Stderr = w
	}
}

// WithGetenv sets the environment variable getter.
func WithGetenv(fn func(string) string) EnvOption {
	return func(e *Env) {
		e.Getenv = fn
	}
}

// WithConfigLoader sets the config loader.
func WithConfigLoader(l ConfigLoader) EnvOption {
	return func(e *Env) {
		e.ConfigLoader = l
	}
}

// WithClientFactory sets the client factory.
func WithClientFactory(f ClientFactory) EnvOption {
	return func(e *Env) {
		e.ClientFactory = f
	}
}

// WithRetryDelays sets the backoff used between retried API calls.
func WithRetryDelays(base, maxDelay time.Duration) EnvOption {
	return func(e *Env) {
		e.RetryBaseDelay = base
		e.RetryMaxDelay = maxDelay
	}
}

// DefaultEnv returns an Env with production defaults.
func DefaultEnv() *Env {
	return &Env{
		Stdout:         os.Stdout,
		Stderr:         os.Stderr,
		Getenv:         os.Getenv,
		ConfigLoader:   &defaultConfigLoader{},
		ClientFactory:  &defaultClientFactory{},
		RetryBaseDelay: defaultRetryBaseDelay,
		RetryMaxDelay:  defaultRetryMaxDelay,
	}
}

// NewEnv creates an Env with the given options applied to defaults.
func NewEnv(opts ...EnvOption) *Env {
	env := DefaultEnv()
	for _, opt := range opts {
		opt(env)
	}
	return env
}

// ---------------------------------------------------------------------------
// Default implementations - delegate to real packages
// ---------------------------------------------------------------------------

// defaultConfigLoader implements ConfigLoader using the config package.
type defaultConfigLoader struct{}

func (defaultConfigLoader) Load(getenv func(string) string) (config.Config, error) {
	return config.Load(getenv)
}

// defaultClientFactory implements ClientFactory using paylink.New.
type defaultClientFactory struct{}

func (defaultClientFactory) NewClient(apiKey string, opts ...paylink.Option) (PaymentsAPI, error) {
	c, err := paylink.New(apiKey, opts...)
	if err != nil {
		return nil, err
	}
	return clientAdapter{c}, nil
}

// clientAdapter exposes a *paylink.Client as PaymentsAPI.
type clientAdapter struct {
	c *paylink.Client
}

func (a clientAdapter) CreateInvoice(ctx context.Context, params paylink.CreateInvoiceParams) (*paylink.Envelope[paylink.Invoice], error) {
	return a.c.Invoices.Create(ctx, params)
}

func (a clientAdapter) VerifyInvoice(ctx context.Context, invoiceID string) (*paylink.Envelope[paylink.InvoiceVerification], error) {
	return a.c.Invoices.Verify(ctx, invoiceID)
}

func (a clientAdapter) ListTransactions(ctx context.Context, params *paylink.ListTransactionsParams) (*paylink.Envelope[paylink.TransactionList], error) {
	return a.c.Transactions.List(ctx, params)
}

// Compile-time interface verification.
var (
	_ ConfigLoader  = (*defaultConfigLoader)(nil)
	_ ClientFactory = (*defaultClientFactory)(nil)
	_ PaymentsAPI   = clientAdapter{}
)
