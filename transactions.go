package paylink

import (
	"context"

	"github.com/shopspring/decimal"
)

const transactionsPath = "/v1/transactions"

// ListTransactionsParams are the optional inputs of Transactions.List.
// Values are sent as given; the server enforces bounds.
type ListTransactionsParams struct {
	Page  *int
	Limit *int
}

// Transaction is one entry of a transaction listing.
type Transaction struct {
	ID        string          `json:"id"`
	InvoiceID string          `json:"invoice_id,omitempty"`
	Type      string          `json:"type,omitempty"`
	Status    string          `json:"status"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	TxHash    []string        `json:"tx_hash,omitempty"`
	CreatedAt string          `json:"created_at,omitempty"`
}

// Pagination describes the position of a listing page.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasMore    bool `json:"has_more"`
}

// TransactionList is the data of a transaction listing.
type TransactionList struct {
	Transactions []Transaction `json:"transactions"`
	Pagination   Pagination    `json:"pagination"`
}

// TransactionService lists transactions.
type TransactionService struct {
	d        *Dispatcher
	basePath string
}

func newTransactionService(d *Dispatcher) *TransactionService {
	return &TransactionService{d: d, basePath: transactionsPath}
}

// List returns one page of transactions. params may be nil.
func (s *TransactionService) List(ctx context.Context, params *ListTransactionsParams) (*Envelope[TransactionList], error) {
	var query []queryParam
	if params != nil {
		query = []queryParam{
			{key: "page", value: optionalInt(params.Page)},
			{key: "limit", value: optionalInt(params.Limit)},
		}
	}

	raw, err := s.d.Get(ctx, s.basePath+buildQuery(query))
	if err != nil {
		return nil, err
	}
	return decodeEnvelope[TransactionList](raw)
}
