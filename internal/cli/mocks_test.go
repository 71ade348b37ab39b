package cli

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	paylink "github.com/alnah/go-paylink"
	"github.com/alnah/go-paylink/internal/config"
)

// ---------------------------------------------------------------------------
// Mock ConfigLoader
// ---------------------------------------------------------------------------

type mockConfigLoader struct {
	LoadFunc func(getenv func(string) string) (config.Config, error)

	mu        sync.Mutex
	loadCalls int
}

func (m *mockConfigLoader) Load(getenv func(string) string) (config.Config, error) {
	m.mu.Lock()
	m.loadCalls++
	m.mu.Unlock()

	if m.LoadFunc != nil {
		return m.LoadFunc(getenv)
	}
	return testConfig(), nil
}

func (m *mockConfigLoader) LoadCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadCalls
}

// ---------------------------------------------------------------------------
// Mock ClientFactory
// ---------------------------------------------------------------------------

type mockClientFactory struct {
	NewClientFunc func(apiKey string, opts ...paylink.Option) (PaymentsAPI, error)
	api           *mockPaymentsAPI

	mu       sync.Mutex
	calls    int
	lastKey  string
	lastOpts []paylink.Option
}

func (m *mockClientFactory) NewClient(apiKey string, opts ...paylink.Option) (PaymentsAPI, error) {
	m.mu.Lock()
	m.calls++
	m.lastKey = apiKey
	m.lastOpts = opts
	m.mu.Unlock()

	if m.NewClientFunc != nil {
		return m.NewClientFunc(apiKey, opts...)
	}
	if m.api == nil {
		m.api = &mockPaymentsAPI{}
	}
	return m.api, nil
}

func (m *mockClientFactory) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *mockClientFactory) LastOpts() []paylink.Option {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastOpts
}

// ---------------------------------------------------------------------------
// Mock PaymentsAPI
// ---------------------------------------------------------------------------

type mockPaymentsAPI struct {
	CreateInvoiceFunc    func(ctx context.Context, params paylink.CreateInvoiceParams) (*paylink.Envelope[paylink.Invoice], error)
	VerifyInvoiceFunc    func(ctx context.Context, invoiceID string) (*paylink.Envelope[paylink.InvoiceVerification], error)
	ListTransactionsFunc func(ctx context.Context, params *paylink.ListTransactionsParams) (*paylink.Envelope[paylink.TransactionList], error)

	mu          sync.Mutex
	createCalls int
	verifyCalls int
	listCalls   int
	lastCreate  paylink.CreateInvoiceParams
	lastList    *paylink.ListTransactionsParams
}

func (m *mockPaymentsAPI) CreateInvoice(ctx context.Context, params paylink.CreateInvoiceParams) (*paylink.Envelope[paylink.Invoice], error) {
	m.mu.Lock()
	m.createCalls++
	m.lastCreate = params
	m.mu.Unlock()

	if m.CreateInvoiceFunc != nil {
		return m.CreateInvoiceFunc(ctx, params)
	}
	return &paylink.Envelope[paylink.Invoice]{
		Success: true,
		Data: &paylink.Invoice{
			InvoiceID:   "inv_1",
			CheckoutURL: "https://pay.paylink.dev/c/inv_1",
			Amount:      params.Amount,
			Currency:    "NGN",
			Status:      "pending",
		},
	}, nil
}

func (m *mockPaymentsAPI) VerifyInvoice(ctx context.Context, invoiceID string) (*paylink.Envelope[paylink.InvoiceVerification], error) {
	m.mu.Lock()
	m.verifyCalls++
	m.mu.Unlock()

	if m.VerifyInvoiceFunc != nil {
		return m.VerifyInvoiceFunc(ctx, invoiceID)
	}
	return &paylink.Envelope[paylink.InvoiceVerification]{
		Success: true,
		Data: &paylink.InvoiceVerification{
			InvoiceID: invoiceID,
			Paid:      true,
			Status:    "completed",
			Payment: &paylink.Payment{
				Amount:   decimal.NewFromInt(50),
				Currency: "NGN",
				TxHash:   []string{"0x9f8e7d6c5b4a3210"},
			},
		},
	}, nil
}

func (m *mockPaymentsAPI) ListTransactions(ctx context.Context, params *paylink.ListTransactionsParams) (*paylink.Envelope[paylink.TransactionList], error) {
	m.mu.Lock()
	m.listCalls++
	m.lastList = params
	m.mu.Unlock()

	if m.ListTransactionsFunc != nil {
		return m.ListTransactionsFunc(ctx, params)
	}
	return &paylink.Envelope[paylink.TransactionList]{
		Success: true,
		Data: &paylink.TransactionList{
			Transactions: []paylink.Transaction{
				{ID: "tx_1", Status: "completed", Amount: decimal.NewFromInt(50), Currency: "NGN"},
			},
			Pagination: paylink.Pagination{Page: 1, Limit: 20, Total: 1, TotalPages: 1},
		},
	}, nil
}

func (m *mockPaymentsAPI) CreateCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createCalls
}

func (m *mockPaymentsAPI) VerifyCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.verifyCalls
}

func (m *mockPaymentsAPI) ListCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listCalls
}

// Compile-time interface verification.
var (
	_ ConfigLoader  = (*mockConfigLoader)(nil)
	_ ClientFactory = (*mockClientFactory)(nil)
	_ PaymentsAPI   = (*mockPaymentsAPI)(nil)
)
