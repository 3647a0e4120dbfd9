package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/shakotgabriel/tanina/internal/apperrors"
	"github.com/shakotgabriel/tanina/internal/core/domain"
	portsrepo "github.com/shakotgabriel/tanina/internal/core/ports/repositories"
	portssvc "github.com/shakotgabriel/tanina/internal/core/ports/services"
	"github.com/shakotgabriel/tanina/internal/middleware"
)

// transactionValidatorService resolves the participants of a money movement
// and checks the preconditions that can be verified before any mutation.
// These checks are advisory latency savers: the binding non-negativity
// check runs again inside the unit of work under row locks.
type transactionValidatorService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	walletRepo  portsrepo.WalletRepositoryFacade
	balanceRepo portsrepo.BalanceRepositoryFacade
}

// NewTransactionValidatorService creates a new TransactionValidatorService.
func NewTransactionValidatorService(accountRepo portsrepo.AccountRepositoryFacade, walletRepo portsrepo.WalletRepositoryFacade, balanceRepo portsrepo.BalanceRepositoryFacade) portssvc.TransactionValidatorSvcFacade {
	return &transactionValidatorService{
		accountRepo: accountRepo,
		walletRepo:  walletRepo,
		balanceRepo: balanceRepo,
	}
}

var _ portssvc.TransactionValidatorSvcFacade = (*transactionValidatorService)(nil)

// findActiveAccount resolves an account by id and rejects inactive ones with
// the same not-found shape, so callers cannot distinguish the two cases.
func (s *transactionValidatorService) findActiveAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Account not found or inactive")
		}
		return nil, fmt.Errorf("failed to fetch account %s: %w", accountID, err)
	}
	if !account.IsActive {
		return nil, apperrors.NewNotFoundError("Account not found or inactive")
	}
	return account, nil
}

// findActiveWallet resolves the account's active wallet in the given currency.
func (s *transactionValidatorService) findActiveWallet(ctx context.Context, accountID string, currency domain.CurrencyCode) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.FindActiveWalletByAccountAndCurrency(ctx, accountID, currency)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("No active %s wallet found for account", currency))
		}
		return nil, fmt.Errorf("failed to fetch %s wallet for account %s: %w", currency, accountID, err)
	}
	return wallet, nil
}

// ValidateAccountBalance checks the account exists, is active and its
// account-level available balance covers the given amount.
func (s *transactionValidatorService) ValidateAccountBalance(ctx context.Context, accountID string, amount decimal.Decimal) (*domain.Account, error) {
	account, err := s.findActiveAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	balance, err := s.balanceRepo.FindBalanceByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch balance for account %s: %w", accountID, err)
	}
	if balance.Available.LessThan(amount) {
		return nil, fmt.Errorf("%w: Insufficient funds", apperrors.ErrInsufficientFunds)
	}
	return account, nil
}

// ValidateAccountWallet resolves the account and its active wallet in the
// given currency, optionally checking the wallet's available balance covers
// minBalance.
func (s *transactionValidatorService) ValidateAccountWallet(ctx context.Context, accountID string, currency domain.CurrencyCode, requireBalance bool, minBalance decimal.Decimal) (*domain.Account, *domain.Wallet, error) {
	account, err := s.findActiveAccount(ctx, accountID)
	if err != nil {
		return nil, nil, err
	}

	wallet, err := s.findActiveWallet(ctx, accountID, currency)
	if err != nil {
		return nil, nil, err
	}

	if requireBalance {
		balance, err := s.balanceRepo.FindBalanceByWalletID(ctx, wallet.WalletID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to fetch balance for wallet %s: %w", wallet.WalletID, err)
		}
		if balance.Available.LessThan(minBalance) {
			return nil, nil, fmt.Errorf("%w: Insufficient funds", apperrors.ErrInsufficientFunds)
		}
	}
	return account, wallet, nil
}

// ValidateTransferAccounts resolves both parties of a transfer and checks
// the source wallet can cover the amount.
func (s *transactionValidatorService) ValidateTransferAccounts(ctx context.Context, fromAccountID, toAccountID string, amount decimal.Decimal, currency domain.CurrencyCode) (*domain.TransferParticipants, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if fromAccountID == toAccountID {
		return nil, fmt.Errorf("%w: cannot transfer to the same account", apperrors.ErrValidation)
	}

	sourceAccount, sourceWallet, err := s.ValidateAccountWallet(ctx, fromAccountID, currency, true, amount)
	if err != nil {
		logger.Warn("Transfer source validation failed", slog.String("from_account_id", fromAccountID), slog.String("error", err.Error()))
		return nil, err
	}

	destAccount, destWallet, err := s.ValidateAccountWallet(ctx, toAccountID, currency, false, decimal.Zero)
	if err != nil {
		logger.Warn("Transfer destination validation failed", slog.String("to_account_id", toAccountID), slog.String("error", err.Error()))
		return nil, err
	}

	return &domain.TransferParticipants{
		SourceAccount:      *sourceAccount,
		SourceWallet:       *sourceWallet,
		DestinationAccount: *destAccount,
		DestinationWallet:  *destWallet,
	}, nil
}

// ValidateSendMoneyAccounts resolves sender and receiver by account number
// and checks the sender can cover the amount. The operation is restricted to
// same-currency wallet pairs; crossing currencies goes through the exchange
// operation where a rate is applied.
func (s *transactionValidatorService) ValidateSendMoneyAccounts(ctx context.Context, senderAccountNumber, receiverAccountNumber string, amount decimal.Decimal) (*domain.SendMoneyParticipants, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if senderAccountNumber == receiverAccountNumber {
		return nil, fmt.Errorf("%w: cannot send money to the same account", apperrors.ErrValidation)
	}

	sender, err := s.accountRepo.FindAccountByNumber(ctx, senderAccountNumber)
	if err != nil || !sender.IsActive {
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to fetch sender account: %w", err)
		}
		return nil, apperrors.NewNotFoundError("Sender account not found or inactive")
	}

	receiver, err := s.accountRepo.FindAccountByNumber(ctx, receiverAccountNumber)
	if err != nil || !receiver.IsActive {
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to fetch receiver account: %w", err)
		}
		return nil, apperrors.NewNotFoundError("Receiver account not found or inactive")
	}

	senderWallet, err := s.findActiveWallet(ctx, sender.AccountID, sender.Currency)
	if err != nil {
		return nil, err
	}
	receiverWallet, err := s.findActiveWallet(ctx, receiver.AccountID, receiver.Currency)
	if err != nil {
		return nil, err
	}
	if senderWallet.Currency != receiverWallet.Currency {
		return nil, fmt.Errorf("%w: sender and receiver wallets use different currencies, use currency exchange instead", apperrors.ErrValidation)
	}

	senderBalance, err := s.balanceRepo.FindBalanceByWalletID(ctx, senderWallet.WalletID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch balance for wallet %s: %w", senderWallet.WalletID, err)
	}
	if senderBalance.Available.LessThan(amount) {
		logger.Warn("Send money rejected for insufficient funds", slog.String("sender_account_id", sender.AccountID))
		return nil, fmt.Errorf("%w: Insufficient funds", apperrors.ErrInsufficientFunds)
	}

	return &domain.SendMoneyParticipants{
		Sender:         *sender,
		SenderWallet:   *senderWallet,
		Receiver:       *receiver,
		ReceiverWallet: *receiverWallet,
	}, nil
}

// ValidateCurrencyExchange resolves the user's account and both wallets for
// a conversion, checking the source wallet covers the amount.
func (s *transactionValidatorService) ValidateCurrencyExchange(ctx context.Context, userID string, amount decimal.Decimal, fromCurrency, toCurrency domain.CurrencyCode) (*domain.ExchangeParticipants, error) {
	if fromCurrency == toCurrency {
		return nil, fmt.Errorf("%w: cannot exchange between identical currencies", apperrors.ErrValidation)
	}

	account, err := s.accountRepo.FindActiveAccountByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Account not found or inactive")
		}
		return nil, fmt.Errorf("failed to fetch account for user %s: %w", userID, err)
	}

	sourceWallet, err := s.findActiveWallet(ctx, account.AccountID, fromCurrency)
	if err != nil {
		return nil, err
	}
	targetWallet, err := s.findActiveWallet(ctx, account.AccountID, toCurrency)
	if err != nil {
		return nil, err
	}

	sourceBalance, err := s.balanceRepo.FindBalanceByWalletID(ctx, sourceWallet.WalletID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch balance for wallet %s: %w", sourceWallet.WalletID, err)
	}
	if sourceBalance.Available.LessThan(amount) {
		return nil, fmt.Errorf("%w: Insufficient funds", apperrors.ErrInsufficientFunds)
	}

	return &domain.ExchangeParticipants{
		Account:      *account,
		SourceWallet: *sourceWallet,
		TargetWallet: *targetWallet,
	}, nil
}
