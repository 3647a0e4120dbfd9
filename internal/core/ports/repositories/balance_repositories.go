package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/shakotgabriel/tanina/internal/core/domain"
)

// BalanceReader defines read operations for balance data.
type BalanceReader interface {
	// FindBalanceByWalletID retrieves the balance row attached to a wallet.
	FindBalanceByWalletID(ctx context.Context, walletID string) (*domain.Balance, error)

	// FindBalanceByAccountID retrieves the account-level balance row.
	FindBalanceByAccountID(ctx context.Context, accountID string) (*domain.Balance, error)
}

// BalanceTransactionSupport defines the operations the ledger's unit of
// work uses to serialize concurrent mutations of the same balance row.
type BalanceTransactionSupport interface {
	// FindBalancesByWalletIDsForUpdate selects wallet balance rows and locks
	// them (SELECT ... FOR UPDATE) within the given transaction. Every
	// requested wallet must resolve or the call fails with not-found.
	FindBalancesByWalletIDsForUpdate(ctx context.Context, tx pgx.Tx, walletIDs []string) (map[string]domain.Balance, error)

	// ApplyBalanceChangesInTx applies signed available-amount deltas to the
	// previously locked wallet balance rows within the same transaction.
	ApplyBalanceChangesInTx(ctx context.Context, tx pgx.Tx, changes map[string]decimal.Decimal, userID string, now time.Time) error
}

// BalanceRepositoryFacade combines all balance-related repository interfaces.
type BalanceRepositoryFacade interface {
	BalanceReader
	BalanceTransactionSupport
}
