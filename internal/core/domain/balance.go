package domain

import "github.com/shopspring/decimal"

// BalanceType indicates which entity a balance row is attached to.
type BalanceType string

const (
	AccountBalanceType BalanceType = "ACCOUNT_BALANCE"
	WalletBalanceType  BalanceType = "WALLET_BALANCE"
)

// Balance is the mutable monetary state attached 1:1 to an account or a
// wallet. Available is the only sub-amount spendable without further
// settlement and must never be negative post-commit. Balances are mutated
// exclusively through the ledger's unit of work.
type Balance struct {
	BalanceID   string          `json:"balanceID"` // Primary Key (UUID)
	BalanceType BalanceType     `json:"balanceType"`
	AccountID   string          `json:"accountID"` // Set when BalanceType is ACCOUNT_BALANCE
	WalletID    string          `json:"walletID"`  // Set when BalanceType is WALLET_BALANCE
	Available   decimal.Decimal `json:"available"`
	Pending     decimal.Decimal `json:"pending"`
	Reserved    decimal.Decimal `json:"reserved"`
	Currency    CurrencyCode    `json:"currency"`
	AuditFields
}
