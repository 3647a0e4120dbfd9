package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/shakotgabriel/tanina/internal/core/ports/repositories"
)

// NewRepositoryProvider wires up all pgsql repositories over one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	walletRepo := newPgxWalletRepository(dbPool)
	balanceRepo := newPgxBalanceRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool, balanceRepo)
	userRepo := newPgxUserRepository(dbPool)

	return &portsrepo.RepositoryProvider{
		AccountRepo: accountRepo,
		WalletRepo:  walletRepo,
		BalanceRepo: balanceRepo,
		LedgerRepo:  ledgerRepo,
		UserRepo:    userRepo,
	}
}
