package repositories

import (
	"context"

	"github.com/shakotgabriel/tanina/internal/core/domain"
)

// UserReader defines read operations for user data.
type UserReader interface {
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserWriter defines write operations for user data.
type UserWriter interface {
	// SaveUserWithAccount persists a new user together with their personal
	// account, default wallet and zeroed balances in one atomic unit of work.
	SaveUserWithAccount(ctx context.Context, user domain.User, account domain.Account, wallet domain.Wallet, balances []domain.Balance) error
}

// UserRepositoryFacade combines all user-related repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
