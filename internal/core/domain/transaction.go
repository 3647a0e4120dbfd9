package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType identifies the logical money-movement operation.
type TransactionType string

const (
	Deposit          TransactionType = "DEPOSIT"
	Withdrawal       TransactionType = "WITHDRAWAL"
	Transfer         TransactionType = "TRANSFER"
	CurrencyExchange TransactionType = "CURRENCY_EXCHANGE"
)

// TransactionStatus is the lifecycle state of a transaction. Transitions
// are monotonic: PENDING moves to a terminal state exactly once and never
// reverses. A failed unit of work rolls back entirely, so FAILED rows are
// never durably visible from an aborted attempt.
type TransactionStatus string

const (
	Pending   TransactionStatus = "PENDING"
	Completed TransactionStatus = "COMPLETED"
	Failed    TransactionStatus = "FAILED"
)

// Transaction is the immutable (post-completion) record of one logical
// money movement. Corrections require a new compensating transaction,
// never an edit of a completed row.
type Transaction struct {
	TransactionID  string            `json:"transactionID"` // Primary Key (UUID)
	Reference      string            `json:"reference"`     // Globally unique; client-supplied or generated
	Type           TransactionType   `json:"type"`
	Status         TransactionStatus `json:"status"`
	Amount         decimal.Decimal   `json:"amount"` // In SourceCurrency
	SourceCurrency CurrencyCode      `json:"sourceCurrency"`
	TargetCurrency CurrencyCode      `json:"targetCurrency"`
	ExchangeRate   *decimal.Decimal  `json:"exchangeRate,omitempty"` // Only for CURRENCY_EXCHANGE
	Description    string            `json:"description"`
	UserID         string            `json:"userID"`
	AccountID      string            `json:"accountID"`
	WalletID       string            `json:"walletID"` // Originating wallet
	CompletedAt    *time.Time        `json:"completedAt,omitempty"`
	AuditFields

	// Entries holds the debit/credit legs when loaded.
	Entries []Entry `json:"entries,omitempty"`
}
