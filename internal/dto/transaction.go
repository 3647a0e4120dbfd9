package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/shakotgabriel/tanina/internal/core/domain"
)

// DepositRequest funds the account's default-currency wallet.
type DepositRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
	Reference   string          `json:"reference"` // Optional idempotency reference; generated when empty
}

// WithdrawRequest draws down the account's default-currency wallet.
type WithdrawRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
	Reference   string          `json:"reference"`
}

// TransferRequest moves funds between two accounts' wallets of the same
// currency, addressed by internal account ids.
type TransferRequest struct {
	FromAccountID string              `json:"fromAccountID" binding:"required"`
	ToAccountID   string              `json:"toAccountID" binding:"required"`
	Amount        decimal.Decimal     `json:"amount" binding:"required"`
	Currency      domain.CurrencyCode `json:"currency"` // Defaults to USD when empty
	Description   string              `json:"description"`
	Reference     string              `json:"reference"`
}

// SendMoneyRequest moves funds between accounts addressed by their
// externally visible 10-digit account numbers.
type SendMoneyRequest struct {
	SenderAccountNumber   string          `json:"senderAccountNumber" binding:"required,len=10,numeric"`
	ReceiverAccountNumber string          `json:"receiverAccountNumber" binding:"required,len=10,numeric"`
	Amount                decimal.Decimal `json:"amount" binding:"required"`
	Description           string          `json:"description"`
	Reference             string          `json:"reference"`
}

// ConvertCurrencyRequest exchanges funds between two of the user's wallets.
type ConvertCurrencyRequest struct {
	Amount       decimal.Decimal     `json:"amount" binding:"required"`
	FromCurrency domain.CurrencyCode `json:"fromCurrency" binding:"required,len=3,uppercase"`
	ToCurrency   domain.CurrencyCode `json:"toCurrency" binding:"required,len=3,uppercase"`
	Description  string              `json:"description"`
	Reference    string              `json:"reference"`
}

// EntryResponse is one debit/credit leg of a transaction.
type EntryResponse struct {
	EntryID     string           `json:"entryID"`
	WalletID    string           `json:"walletID"`
	EntryType   domain.EntryType `json:"entryType"`
	Amount      decimal.Decimal  `json:"amount"`
	Description string           `json:"description"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// TransactionResponse is the caller-facing shape of a transaction record.
type TransactionResponse struct {
	TransactionID  string                   `json:"transactionID"`
	Reference      string                   `json:"reference"`
	Type           domain.TransactionType   `json:"type"`
	Status         domain.TransactionStatus `json:"status"`
	Amount         decimal.Decimal          `json:"amount"`
	SourceCurrency domain.CurrencyCode      `json:"sourceCurrency"`
	TargetCurrency domain.CurrencyCode      `json:"targetCurrency"`
	ExchangeRate   *decimal.Decimal         `json:"exchangeRate,omitempty"`
	Description    string                   `json:"description"`
	AccountID      string                   `json:"accountID"`
	WalletID       string                   `json:"walletID"`
	CreatedAt      time.Time                `json:"createdAt"`
	CompletedAt    *time.Time               `json:"completedAt,omitempty"`
	Entries        []EntryResponse          `json:"entries,omitempty"`
}

// ConversionResult is returned by the currency-exchange operation.
type ConversionResult struct {
	Transaction  TransactionResponse `json:"transaction"`
	SourceAmount decimal.Decimal     `json:"sourceAmount"`
	TargetAmount decimal.Decimal     `json:"targetAmount"`
	ExchangeRate decimal.Decimal     `json:"exchangeRate"`
	FromCurrency domain.CurrencyCode `json:"fromCurrency"`
	ToCurrency   domain.CurrencyCode `json:"toCurrency"`
}

// ListTransactionsParams holds pagination parameters for history listing.
type ListTransactionsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse is a page of transaction history.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToEntryResponse converts a domain entry to its response DTO.
func ToEntryResponse(e domain.Entry) EntryResponse {
	return EntryResponse{
		EntryID:     e.EntryID,
		WalletID:    e.WalletID,
		EntryType:   e.EntryType,
		Amount:      e.Amount,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
	}
}

// ToTransactionResponse converts a domain transaction (with any loaded
// entries) to its response DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		TransactionID:  t.TransactionID,
		Reference:      t.Reference,
		Type:           t.Type,
		Status:         t.Status,
		Amount:         t.Amount,
		SourceCurrency: t.SourceCurrency,
		TargetCurrency: t.TargetCurrency,
		ExchangeRate:   t.ExchangeRate,
		Description:    t.Description,
		AccountID:      t.AccountID,
		WalletID:       t.WalletID,
		CreatedAt:      t.CreatedAt,
		CompletedAt:    t.CompletedAt,
	}
	if len(t.Entries) > 0 {
		resp.Entries = make([]EntryResponse, len(t.Entries))
		for i, e := range t.Entries {
			resp.Entries[i] = ToEntryResponse(e)
		}
	}
	return resp
}

// ToTransactionResponses converts a slice of domain transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}
