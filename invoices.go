package paylink

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const invoicesPath = "/v1/invoices"

// CreateInvoiceParams are the inputs of Invoices.Create.
// Amount and Currency are required; Currency is case-insensitive.
type CreateInvoiceParams struct {
	Amount        decimal.Decimal
	Currency      string
	Description   string
	CustomerEmail string
	CallbackURL   string
	Metadata      map[string]string
}

// createInvoiceRequest is the wire form of CreateInvoiceParams.
// Amount is a json.Number so it is sent as a JSON number, not a string.
type createInvoiceRequest struct {
	Amount        json.Number       `json:"amount"`
	Currency      string            `json:"currency"`
	Description   string            `json:"description,omitempty"`
	CustomerEmail string            `json:"customer_email,omitempty"`
	CallbackURL   string            `json:"callback_url,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// Invoice is the data of a created invoice.
type Invoice struct {
	InvoiceID   string          `json:"invoice_id"`
	CheckoutURL string          `json:"checkout_url"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Status      string          `json:"status,omitempty"`
	Description string          `json:"description,omitempty"`
	ExpiresAt   string          `json:"expires_at,omitempty"`
	CreatedAt   string          `json:"created_at,omitempty"`
}

// InvoiceVerification is the payment state of an invoice.
type InvoiceVerification struct {
	InvoiceID string   `json:"invoice_id,omitempty"`
	Paid      bool     `json:"paid"`
	Status    string   `json:"status"`
	Payment   *Payment `json:"payment,omitempty"`
}

// Payment describes the funds received for an invoice.
type Payment struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Network  string          `json:"network,omitempty"`
	TxHash   []string        `json:"tx_hash"`
	PaidAt   string          `json:"paid_at,omitempty"`
}

// InvoiceService creates and verifies invoices.
type InvoiceService struct {
	d        *Dispatcher
	basePath string
}

func newInvoiceService(d *Dispatcher) *InvoiceService {
	return &InvoiceService{d: d, basePath: invoicesPath}
}

// Create validates params and creates an invoice.
// Validation failures (missing amount, unsupported currency) are returned
// as KindValidation errors before any request is sent. The zero Amount counts
// as missing; range checks are left to the API.
func (s *InvoiceService) Create(ctx context.Context, params CreateInvoiceParams) (*Envelope[Invoice], error) {
	if params.Amount.IsZero() {
		return nil, NewValidationError("Invalid amount: amount is required", nil)
	}

	currency := strings.ToUpper(params.Currency)
	if !currencySet[currency] {
		return nil, NewValidationError(
			fmt.Sprintf("Unsupported currency %q. Supported currencies: %s",
				params.Currency, strings.Join(supportedCurrencies, ", ")),
			map[string]any{"currency": params.Currency, "supported": SupportedCurrencies()})
	}

	req := createInvoiceRequest{
		Amount:        json.Number(params.Amount.String()),
		Currency:      currency,
		Description:   params.Description,
		CustomerEmail: params.CustomerEmail,
		CallbackURL:   params.CallbackURL,
		Metadata:      params.Metadata,
	}

	raw, err := s.d.Post(ctx, s.basePath, req)
	if err != nil {
		return nil, err
	}
	return decodeEnvelope[Invoice](raw)
}

// Verify returns the payment state of the invoice.
func (s *InvoiceService) Verify(ctx context.Context, invoiceID string) (*Envelope[InvoiceVerification], error) {
	raw, err := s.d.Get(ctx, joinPath(s.basePath, invoiceID, "verify"))
	if err != nil {
		return nil, err
	}
	return decodeEnvelope[InvoiceVerification](raw)
}
