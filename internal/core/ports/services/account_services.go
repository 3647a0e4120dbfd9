package services

import (
	"context"

	"github.com/shakotgabriel/tanina/internal/core/domain"
	"github.com/shakotgabriel/tanina/internal/dto"
)

// AccountSvcFacade exposes account and wallet directory operations.
type AccountSvcFacade interface {
	// CreateAccount opens a new account for the user, provisioning its
	// balance row and a default-currency wallet.
	CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error)

	// OpenWallet opens an additional currency wallet under the account.
	OpenWallet(ctx context.Context, accountID string, currency domain.CurrencyCode, requestingUserID string) (*domain.Wallet, error)

	// GetAccountByID retrieves an account.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// GetAccountBalance returns the account balance and per-wallet balances.
	GetAccountBalance(ctx context.Context, accountID string) (*dto.AccountBalanceResponse, error)

	// DeactivateAccount soft-deletes an account.
	DeactivateAccount(ctx context.Context, accountID string, requestingUserID string) error
}

// UserSvcFacade exposes user operations.
type UserSvcFacade interface {
	// CreateUser registers a user and provisions their personal account,
	// default wallet and zero balances atomically.
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)

	// GetUserByID retrieves a user.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// AuthenticateUser verifies credentials and returns the user.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)
}
