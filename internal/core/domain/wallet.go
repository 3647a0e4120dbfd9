package domain

// Wallet is a currency-specific sub-ledger under an account. At most one
// active wallet exists per (account, currency) pair.
type Wallet struct {
	WalletID  string       `json:"walletID"`  // Primary Key (UUID)
	AccountID string       `json:"accountID"` // FK -> accounts.account_id
	UserID    string       `json:"userID"`    // FK -> users.user_id (denormalized owner)
	Currency  CurrencyCode `json:"currency"`
	IsActive  bool         `json:"isActive"`
	AuditFields
}
