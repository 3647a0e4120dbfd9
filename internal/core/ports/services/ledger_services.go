package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/shakotgabriel/tanina/internal/core/domain"
	"github.com/shakotgabriel/tanina/internal/dto"
)

// LedgerSvcFacade exposes the transactional ledger engine. Every mutation
// executes inside one atomic unit of work: a successful return means the
// transaction reached COMPLETED and all balance changes are durable; an
// error always means no money moved.
type LedgerSvcFacade interface {
	// Deposit credits the account's default-currency wallet.
	Deposit(ctx context.Context, req dto.DepositRequest, requestingUserID string) (*domain.Transaction, error)

	// Withdraw debits the account's default-currency wallet.
	Withdraw(ctx context.Context, req dto.WithdrawRequest, requestingUserID string) (*domain.Transaction, error)

	// Transfer moves funds between two accounts' same-currency wallets.
	Transfer(ctx context.Context, req dto.TransferRequest, requestingUserID string) (*domain.Transaction, error)

	// SendMoney moves funds between accounts addressed by account number.
	SendMoney(ctx context.Context, req dto.SendMoneyRequest, requestingUserID string) (*domain.Transaction, error)

	// ConvertCurrency exchanges funds between two of the user's wallets at
	// the configured rate.
	ConvertCurrency(ctx context.Context, userID string, req dto.ConvertCurrencyRequest) (*dto.ConversionResult, error)

	// CreditAccount is the low-level credit primitive against the account's
	// first active wallet.
	CreditAccount(ctx context.Context, accountID string, amount decimal.Decimal, description string, requestingUserID string) (*domain.Transaction, error)

	// DebitAccount is the low-level debit primitive against the account's
	// first active wallet.
	DebitAccount(ctx context.Context, accountID string, amount decimal.Decimal, description string, requestingUserID string) (*domain.Transaction, error)

	// GetTransactionHistory lists completed transactions touching the given
	// wallet, newest first.
	GetTransactionHistory(ctx context.Context, walletID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// TransactionValidatorSvcFacade resolves and validates the participants of
// an operation before any mutation is attempted. Binding enforcement of the
// funds invariant is repeated inside the unit of work under row locks.
type TransactionValidatorSvcFacade interface {
	ValidateAccountBalance(ctx context.Context, accountID string, amount decimal.Decimal) (*domain.Account, error)
	ValidateAccountWallet(ctx context.Context, accountID string, currency domain.CurrencyCode, requireBalance bool, minBalance decimal.Decimal) (*domain.Account, *domain.Wallet, error)
	ValidateTransferAccounts(ctx context.Context, fromAccountID, toAccountID string, amount decimal.Decimal, currency domain.CurrencyCode) (*domain.TransferParticipants, error)
	ValidateSendMoneyAccounts(ctx context.Context, senderAccountNumber, receiverAccountNumber string, amount decimal.Decimal) (*domain.SendMoneyParticipants, error)
	ValidateCurrencyExchange(ctx context.Context, userID string, amount decimal.Decimal, fromCurrency, toCurrency domain.CurrencyCode) (*domain.ExchangeParticipants, error)
}

// ExchangeRateSvcFacade supplies conversion multipliers between currency
// codes. Rates are a pure function of (from, to).
type ExchangeRateSvcFacade interface {
	// GetExchangeRate returns 1 when from == to, the configured directional
	// rate otherwise, or a rate-not-found error.
	GetExchangeRate(from, to domain.CurrencyCode) (decimal.Decimal, error)

	// ConvertAmount multiplies amount by the (from, to) rate.
	ConvertAmount(amount decimal.Decimal, from, to domain.CurrencyCode) (decimal.Decimal, error)
}
