package repositories

// RepositoryProvider aggregates the repository facades handed to the
// service layer. Implementations live under
// internal/repositories/database/pgsql.
type RepositoryProvider struct {
	AccountRepo AccountRepositoryFacade
	WalletRepo  WalletRepositoryFacade
	BalanceRepo BalanceRepositoryFacade
	LedgerRepo  LedgerRepositoryFacade
	UserRepo    UserRepositoryFacade
}
