package domain

// AccountType distinguishes personal from business accounts.
type AccountType string

const (
	Personal AccountType = "PERSONAL"
	Business AccountType = "BUSINESS"
)

// Account is a user's currency-denominated ledger root. The account number
// is the externally addressable identifier (10 numeric digits, globally
// unique, immutable once assigned); AccountID is the internal key.
type Account struct {
	AccountID     string       `json:"accountID"`     // Primary Key (UUID)
	UserID        string       `json:"userID"`        // FK -> users.user_id
	AccountNumber string       `json:"accountNumber"` // Unique, 10 digits
	AccountType   AccountType  `json:"accountType"`   // PERSONAL or BUSINESS
	Currency      CurrencyCode `json:"currency"`      // Account's primary currency
	IsActive      bool         `json:"isActive"`      // Soft delete flag; never hard-deleted while referenced
	AuditFields
}
