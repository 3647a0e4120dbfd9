package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/shakotgabriel/tanina/internal/core/domain"
)

// CreateAccountRequest opens a new account for the authenticated user.
type CreateAccountRequest struct {
	AccountType domain.AccountType  `json:"accountType" binding:"required,oneof=PERSONAL BUSINESS"`
	Currency    domain.CurrencyCode `json:"currency"` // Defaults to USD when empty
}

// OpenWalletRequest opens an additional currency wallet under an account.
type OpenWalletRequest struct {
	Currency domain.CurrencyCode `json:"currency" binding:"required,len=3,uppercase"`
}

// AccountResponse is the caller-facing shape of an account.
type AccountResponse struct {
	AccountID     string              `json:"accountID"`
	AccountNumber string              `json:"accountNumber"`
	AccountType   domain.AccountType  `json:"accountType"`
	Currency      domain.CurrencyCode `json:"currency"`
	IsActive      bool                `json:"isActive"`
	CreatedAt     time.Time           `json:"createdAt"`
}

// WalletResponse is the caller-facing shape of a wallet.
type WalletResponse struct {
	WalletID  string              `json:"walletID"`
	AccountID string              `json:"accountID"`
	Currency  domain.CurrencyCode `json:"currency"`
	IsActive  bool                `json:"isActive"`
	CreatedAt time.Time           `json:"createdAt"`
}

// BalanceResponse exposes the sub-amounts of a balance.
type BalanceResponse struct {
	Available decimal.Decimal     `json:"available"`
	Pending   decimal.Decimal     `json:"pending"`
	Reserved  decimal.Decimal     `json:"reserved"`
	Currency  domain.CurrencyCode `json:"currency"`
}

// AccountBalanceResponse is returned by the account balance query.
type AccountBalanceResponse struct {
	AccountNumber string              `json:"accountNumber"`
	Currency      domain.CurrencyCode `json:"currency"`
	Balance       BalanceResponse     `json:"balance"`
	Wallets       []WalletBalance     `json:"wallets"`
}

// WalletBalance pairs a wallet with its balance.
type WalletBalance struct {
	Wallet  WalletResponse  `json:"wallet"`
	Balance BalanceResponse `json:"balance"`
}

// ToAccountResponse converts a domain account to its response DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     a.AccountID,
		AccountNumber: a.AccountNumber,
		AccountType:   a.AccountType,
		Currency:      a.Currency,
		IsActive:      a.IsActive,
		CreatedAt:     a.CreatedAt,
	}
}

// ToWalletResponse converts a domain wallet to its response DTO.
func ToWalletResponse(w *domain.Wallet) WalletResponse {
	return WalletResponse{
		WalletID:  w.WalletID,
		AccountID: w.AccountID,
		Currency:  w.Currency,
		IsActive:  w.IsActive,
		CreatedAt: w.CreatedAt,
	}
}

// ToBalanceResponse converts a domain balance to its response DTO.
func ToBalanceResponse(b *domain.Balance) BalanceResponse {
	return BalanceResponse{
		Available: b.Available,
		Pending:   b.Pending,
		Reserved:  b.Reserved,
		Currency:  b.Currency,
	}
}
