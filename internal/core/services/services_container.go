package services

import (
	portsrepo "github.com/shakotgabriel/tanina/internal/core/ports/repositories"
	portssvc "github.com/shakotgabriel/tanina/internal/core/ports/services"
	"github.com/shakotgabriel/tanina/pkg/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.ExchangeRate = NewExchangeRateService(cfg.ExchangeRates)

	container.Validator = NewTransactionValidatorService(
		repos.AccountRepo,
		repos.WalletRepo,
		repos.BalanceRepo,
	)

	container.Ledger = NewLedgerService(
		repos.LedgerRepo,
		repos.WalletRepo,
		container.Validator,
		container.ExchangeRate,
	)

	container.Account = NewAccountService(
		repos.AccountRepo,
		repos.WalletRepo,
		repos.BalanceRepo,
	)

	container.User = NewUserService(repos.UserRepo)

	return container
}
