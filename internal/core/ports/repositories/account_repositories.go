package repositories

import (
	"context"
	"time"

	"github.com/shakotgabriel/tanina/internal/core/domain"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its internal identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByNumber retrieves an account by its externally addressable
	// 10-digit account number.
	FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)

	// FindActiveAccountByUserID retrieves the user's single active account.
	FindActiveAccountByUserID(ctx context.Context, userID string) (*domain.Account, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// SaveAccountWithDefaults persists a new account together with its
	// account balance row, default-currency wallet and wallet balance row
	// in one atomic unit of work.
	SaveAccountWithDefaults(ctx context.Context, account domain.Account, wallet domain.Wallet, balances []domain.Balance) error

	// DeactivateAccount marks an account as inactive (soft delete).
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
