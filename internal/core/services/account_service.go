package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shakotgabriel/tanina/internal/apperrors"
	"github.com/shakotgabriel/tanina/internal/core/domain"
	portsrepo "github.com/shakotgabriel/tanina/internal/core/ports/repositories"
	portssvc "github.com/shakotgabriel/tanina/internal/core/ports/services"
	"github.com/shakotgabriel/tanina/internal/dto"
	"github.com/shakotgabriel/tanina/internal/middleware"
	"github.com/shakotgabriel/tanina/internal/utils"
)

// accountService provides account and wallet directory operations.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	walletRepo  portsrepo.WalletRepositoryFacade
	balanceRepo portsrepo.BalanceRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, walletRepo portsrepo.WalletRepositoryFacade, balanceRepo portsrepo.BalanceRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
		walletRepo:  walletRepo,
		balanceRepo: balanceRepo,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// provisionAccount builds a fresh account with its account balance row, a
// wallet in the given currency and the wallet's balance row. Nothing is
// persisted here; the caller hands the set to an atomic repository write.
func provisionAccount(userID string, accountType domain.AccountType, currency domain.CurrencyCode, createdBy string, now time.Time) (domain.Account, domain.Wallet, []domain.Balance, error) {
	accountNumber, err := utils.GenerateAccountNumber()
	if err != nil {
		return domain.Account{}, domain.Wallet{}, nil, fmt.Errorf("failed to generate account number: %w", err)
	}
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     createdBy,
		LastUpdatedAt: now,
		LastUpdatedBy: createdBy,
	}
	account := domain.Account{
		AccountID:     uuid.NewString(),
		UserID:        userID,
		AccountNumber: accountNumber,
		AccountType:   accountType,
		Currency:      currency,
		IsActive:      true,
		AuditFields:   audit,
	}
	wallet := domain.Wallet{
		WalletID:    uuid.NewString(),
		AccountID:   account.AccountID,
		UserID:      userID,
		Currency:    currency,
		IsActive:    true,
		AuditFields: audit,
	}
	balances := []domain.Balance{
		{
			BalanceID:   uuid.NewString(),
			BalanceType: domain.AccountBalanceType,
			AccountID:   account.AccountID,
			Available:   decimal.Zero,
			Pending:     decimal.Zero,
			Reserved:    decimal.Zero,
			Currency:    currency,
			AuditFields: audit,
		},
		{
			BalanceID:   uuid.NewString(),
			BalanceType: domain.WalletBalanceType,
			WalletID:    wallet.WalletID,
			Available:   decimal.Zero,
			Pending:     decimal.Zero,
			Reserved:    decimal.Zero,
			Currency:    currency,
			AuditFields: audit,
		},
	}
	return account, wallet, balances, nil
}

// CreateAccount opens a new account for the user with a zeroed balance and
// a default-currency wallet. Account numbers are random 10-digit values;
// collision surfaces as a duplicate error and the caller may retry.
func (s *accountService) CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	currency := req.Currency
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	if !domain.IsSupportedCurrency(currency) {
		return nil, fmt.Errorf("%w: unsupported currency %s", apperrors.ErrValidation, currency)
	}

	now := time.Now().UTC()
	account, wallet, balances, err := provisionAccount(userID, req.AccountType, currency, userID, now)
	if err != nil {
		return nil, err
	}

	if err := s.accountRepo.SaveAccountWithDefaults(ctx, account, wallet, balances); err != nil {
		logger.Error("Failed to create account", slog.String("user_id", userID), slog.String("error", err.Error()))
		return nil, err
	}
	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("account_number", account.AccountNumber))
	return &account, nil
}

// OpenWallet opens an additional currency wallet under the account. At most
// one active wallet per currency is allowed per account.
func (s *accountService) OpenWallet(ctx context.Context, accountID string, currency domain.CurrencyCode, requestingUserID string) (*domain.Wallet, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !domain.IsSupportedCurrency(currency) {
		return nil, fmt.Errorf("%w: unsupported currency %s", apperrors.ErrValidation, currency)
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !account.IsActive {
		return nil, apperrors.NewNotFoundError("Account not found or inactive")
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     requestingUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: requestingUserID,
	}
	wallet := domain.Wallet{
		WalletID:    uuid.NewString(),
		AccountID:   accountID,
		UserID:      account.UserID,
		Currency:    currency,
		IsActive:    true,
		AuditFields: audit,
	}
	balance := domain.Balance{
		BalanceID:   uuid.NewString(),
		BalanceType: domain.WalletBalanceType,
		WalletID:    wallet.WalletID,
		Available:   decimal.Zero,
		Pending:     decimal.Zero,
		Reserved:    decimal.Zero,
		Currency:    currency,
		AuditFields: audit,
	}

	if err := s.walletRepo.SaveWalletWithBalance(ctx, wallet, balance); err != nil {
		logger.Error("Failed to open wallet", slog.String("account_id", accountID), slog.String("currency", string(currency)), slog.String("error", err.Error()))
		return nil, err
	}
	logger.Info("Wallet opened", slog.String("wallet_id", wallet.WalletID), slog.String("currency", string(currency)))
	return &wallet, nil
}

// GetAccountByID retrieves an account.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

// GetAccountBalance returns the account-level balance plus every active
// wallet's balance.
func (s *accountService) GetAccountBalance(ctx context.Context, accountID string) (*dto.AccountBalanceResponse, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	accountBalance, err := s.balanceRepo.FindBalanceByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch balance for account %s: %w", accountID, err)
	}

	wallets, err := s.walletRepo.FindActiveWalletsByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch wallets for account %s: %w", accountID, err)
	}

	walletBalances := make([]dto.WalletBalance, 0, len(wallets))
	for i := range wallets {
		balance, err := s.balanceRepo.FindBalanceByWalletID(ctx, wallets[i].WalletID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch balance for wallet %s: %w", wallets[i].WalletID, err)
		}
		walletBalances = append(walletBalances, dto.WalletBalance{
			Wallet:  dto.ToWalletResponse(&wallets[i]),
			Balance: dto.ToBalanceResponse(balance),
		})
	}

	return &dto.AccountBalanceResponse{
		AccountNumber: account.AccountNumber,
		Currency:      account.Currency,
		Balance:       dto.ToBalanceResponse(accountBalance),
		Wallets:       walletBalances,
	}, nil
}

// DeactivateAccount marks the account inactive. Records and balances are
// retained; only new activity is blocked.
func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return err
	}
	if err := s.accountRepo.DeactivateAccount(ctx, accountID, requestingUserID, time.Now().UTC()); err != nil {
		logger.Error("Failed to deactivate account", slog.String("account_id", accountID), slog.String("error", err.Error()))
		return err
	}
	logger.Info("Account deactivated", slog.String("account_id", accountID))
	return nil
}
