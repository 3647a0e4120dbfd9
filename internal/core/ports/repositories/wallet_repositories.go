package repositories

import (
	"context"

	"github.com/shakotgabriel/tanina/internal/core/domain"
)

// WalletReader defines read operations for wallet data.
type WalletReader interface {
	// FindWalletByID retrieves a wallet by its identifier.
	FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error)

	// FindActiveWalletByAccountAndCurrency retrieves the single active wallet
	// of the given currency under an account.
	FindActiveWalletByAccountAndCurrency(ctx context.Context, accountID string, currency domain.CurrencyCode) (*domain.Wallet, error)

	// FindActiveWalletsByAccountID retrieves all active wallets under an
	// account, oldest first.
	FindActiveWalletsByAccountID(ctx context.Context, accountID string) ([]domain.Wallet, error)
}

// WalletWriter defines write operations for wallet data.
type WalletWriter interface {
	// SaveWalletWithBalance persists a new wallet and its zeroed balance row
	// atomically. Violating the one-active-wallet-per-currency constraint
	// surfaces as a duplicate error.
	SaveWalletWithBalance(ctx context.Context, wallet domain.Wallet, balance domain.Balance) error
}

// WalletRepositoryFacade combines all wallet-related repository interfaces.
type WalletRepositoryFacade interface {
	WalletReader
	WalletWriter
}
