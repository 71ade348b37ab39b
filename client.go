// Package paylink is a typed client for the Paylink payments API.
//
// It validates inputs before any network call and reports every failure as a
// *Error whose Kind is one of KindValidation, KindAuthentication,
// KindRateLimit or KindAPI:
//
//	client, err := paylink.New(os.Getenv("PAYLINK_API_KEY"),
//		paylink.WithEnvironment(paylink.EnvironmentSandbox))
//	if err != nil {
//		return err
//	}
//	env, err := client.Invoices.Create(ctx, paylink.CreateInvoiceParams{
//		Amount:   decimal.NewFromInt(50),
//		Currency: "ngn",
//	})
//	var pe *paylink.Error
//	if errors.As(err, &pe) && pe.Kind() == paylink.KindRateLimit {
//		wait, _ := pe.RetryAfter()
//		...
//	}
//
// The client never retries. Config().MaxRetries is a hint for the caller's own
// retry loop.
package paylink

// Client is the entry point of the library. It is safe for concurrent use.
type Client struct {
	cfg *Config

	// Invoices creates and verifies invoices.
	Invoices *InvoiceService
	// Transactions lists transactions.
	Transactions *TransactionService
}

// New validates apiKey and opts, then builds the client.
// An invalid configuration is returned as a KindValidation *Error before any
// transport is created.
func New(apiKey string, opts ...Option) (*Client, error) {
	s := newSettings(opts)

	cfg, err := s.config(apiKey)
	if err != nil {
		return nil, err
	}

	d, err := newDispatcher(cfg, s)
	if err != nil {
		return nil, err
	}

	return &Client{
		cfg:          cfg,
		Invoices:     newInvoiceService(d),
		Transactions: newTransactionService(d),
	}, nil
}

// Config returns a fresh copy of the client settings on every call.
func (c *Client) Config() Settings {
	return c.cfg.Settings()
}
