package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/shakotgabriel/tanina/internal/core/domain"
	portsrepo "github.com/shakotgabriel/tanina/internal/core/ports/repositories"
	portssvc "github.com/shakotgabriel/tanina/internal/core/ports/services"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindActiveAccountByUserID(ctx context.Context, userID string) (*domain.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccountWithDefaults(ctx context.Context, account domain.Account, wallet domain.Wallet, balances []domain.Balance) error {
	args := m.Called(ctx, account, wallet, balances)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

// --- Mock WalletRepository ---
type MockWalletRepository struct {
	mock.Mock
}

var _ portsrepo.WalletRepositoryFacade = (*MockWalletRepository)(nil)

func (m *MockWalletRepository) FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error) {
	args := m.Called(ctx, walletID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) FindActiveWalletByAccountAndCurrency(ctx context.Context, accountID string, currency domain.CurrencyCode) (*domain.Wallet, error) {
	args := m.Called(ctx, accountID, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) FindActiveWalletsByAccountID(ctx context.Context, accountID string) ([]domain.Wallet, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) SaveWalletWithBalance(ctx context.Context, wallet domain.Wallet, balance domain.Balance) error {
	args := m.Called(ctx, wallet, balance)
	return args.Error(0)
}

// --- Mock BalanceRepository ---
type MockBalanceRepository struct {
	mock.Mock
}

var _ portsrepo.BalanceRepositoryFacade = (*MockBalanceRepository)(nil)

func (m *MockBalanceRepository) FindBalanceByWalletID(ctx context.Context, walletID string) (*domain.Balance, error) {
	args := m.Called(ctx, walletID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Balance), args.Error(1)
}

func (m *MockBalanceRepository) FindBalanceByAccountID(ctx context.Context, accountID string) (*domain.Balance, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Balance), args.Error(1)
}

func (m *MockBalanceRepository) FindBalancesByWalletIDsForUpdate(ctx context.Context, tx pgx.Tx, walletIDs []string) (map[string]domain.Balance, error) {
	args := m.Called(ctx, tx, walletIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Balance), args.Error(1)
}

func (m *MockBalanceRepository) ApplyBalanceChangesInTx(ctx context.Context, tx pgx.Tx, changes map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, changes, userID, now)
	return args.Error(0)
}

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepositoryFacade = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerRepository) FindTransactionByReference(ctx context.Context, reference string) (*domain.Transaction, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerRepository) ListTransactionsByWalletID(ctx context.Context, walletID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, walletID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Transaction), returnedNextToken, args.Error(2)
}

func (m *MockLedgerRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, entries []domain.Entry, balanceChanges map[string]decimal.Decimal) (*domain.Transaction, error) {
	args := m.Called(ctx, txn, entries, balanceChanges)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUserWithAccount(ctx context.Context, user domain.User, account domain.Account, wallet domain.Wallet, balances []domain.Balance) error {
	args := m.Called(ctx, user, account, wallet, balances)
	return args.Error(0)
}

// --- Mock TransactionValidatorService ---
type MockValidatorService struct {
	mock.Mock
}

var _ portssvc.TransactionValidatorSvcFacade = (*MockValidatorService)(nil)

func (m *MockValidatorService) ValidateAccountBalance(ctx context.Context, accountID string, amount decimal.Decimal) (*domain.Account, error) {
	args := m.Called(ctx, accountID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockValidatorService) ValidateAccountWallet(ctx context.Context, accountID string, currency domain.CurrencyCode, requireBalance bool, minBalance decimal.Decimal) (*domain.Account, *domain.Wallet, error) {
	args := m.Called(ctx, accountID, currency, requireBalance, minBalance)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Account), args.Get(1).(*domain.Wallet), args.Error(2)
}

func (m *MockValidatorService) ValidateTransferAccounts(ctx context.Context, fromAccountID, toAccountID string, amount decimal.Decimal, currency domain.CurrencyCode) (*domain.TransferParticipants, error) {
	args := m.Called(ctx, fromAccountID, toAccountID, amount, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferParticipants), args.Error(1)
}

func (m *MockValidatorService) ValidateSendMoneyAccounts(ctx context.Context, senderAccountNumber, receiverAccountNumber string, amount decimal.Decimal) (*domain.SendMoneyParticipants, error) {
	args := m.Called(ctx, senderAccountNumber, receiverAccountNumber, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SendMoneyParticipants), args.Error(1)
}

func (m *MockValidatorService) ValidateCurrencyExchange(ctx context.Context, userID string, amount decimal.Decimal, fromCurrency, toCurrency domain.CurrencyCode) (*domain.ExchangeParticipants, error) {
	args := m.Called(ctx, userID, amount, fromCurrency, toCurrency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeParticipants), args.Error(1)
}
