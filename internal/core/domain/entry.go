package domain

import "github.com/shopspring/decimal"

// EntryType indicates whether a leg debits or credits its wallet.
type EntryType string

const (
	Debit  EntryType = "DEBIT"
	Credit EntryType = "CREDIT"
)

// Entry is one leg of a transaction, referencing exactly one wallet.
// A DEPOSIT carries a single credit leg, a WITHDRAWAL a single debit leg,
// and TRANSFER/CURRENCY_EXCHANGE exactly one of each.
type Entry struct {
	EntryID       string          `json:"entryID"`       // Primary Key (UUID)
	TransactionID string          `json:"transactionID"` // FK -> transactions.transaction_id
	WalletID      string          `json:"walletID"`      // FK -> wallets.wallet_id
	EntryType     EntryType       `json:"entryType"`
	Amount        decimal.Decimal `json:"amount"` // Positive; in the wallet's currency
	Description   string          `json:"description"`
	AuditFields
}
