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
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// ledgerService implements the transactional ledger engine. Each operation
// validates its participants, builds a transaction with its debit/credit
// entries and a map of wallet balance deltas, and hands the whole thing to
// the repository's unit of work. The service itself never mutates state.
type ledgerService struct {
	ledgerRepo portsrepo.LedgerRepositoryFacade
	walletRepo portsrepo.WalletRepositoryFacade
	validator  portssvc.TransactionValidatorSvcFacade
	rateSvc    portssvc.ExchangeRateSvcFacade
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, walletRepo portsrepo.WalletRepositoryFacade, validator portssvc.TransactionValidatorSvcFacade, rateSvc portssvc.ExchangeRateSvcFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{
		ledgerRepo: ledgerRepo,
		walletRepo: walletRepo,
		validator:  validator,
		rateSvc:    rateSvc,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// resolveReference returns the client-supplied idempotency reference or a
// fresh one. References are globally unique; a replayed reference surfaces
// as a duplicate error from the unit of work.
func resolveReference(reference string) string {
	if reference != "" {
		return reference
	}
	return uuid.NewString()
}

func validateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	return nil
}

func newAuditFields(userID string, now time.Time) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
}

// Deposit credits the account's default-currency wallet with the given
// amount. The external funding leg (card, mobile money) is settled outside
// the ledger, so a deposit carries a single credit entry.
func (s *ledgerService) Deposit(ctx context.Context, req dto.DepositRequest, requestingUserID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateAmount(req.Amount); err != nil {
		return nil, err
	}

	account, wallet, err := s.validator.ValidateAccountWallet(ctx, req.AccountID, domain.DefaultCurrency, false, decimal.Zero)
	if err != nil {
		logger.Warn("Deposit validation failed", slog.String("account_id", req.AccountID), slog.String("error", err.Error()))
		return nil, err
	}

	now := time.Now().UTC()
	audit := newAuditFields(requestingUserID, now)
	txn := domain.Transaction{
		TransactionID:  uuid.NewString(),
		Reference:      resolveReference(req.Reference),
		Type:           domain.Deposit,
		Status:         domain.Pending,
		Amount:         req.Amount,
		SourceCurrency: wallet.Currency,
		TargetCurrency: wallet.Currency,
		Description:    req.Description,
		UserID:         requestingUserID,
		AccountID:      account.AccountID,
		WalletID:       wallet.WalletID,
		AuditFields:    audit,
	}
	entries := []domain.Entry{
		{
			EntryID:       uuid.NewString(),
			TransactionID: txn.TransactionID,
			WalletID:      wallet.WalletID,
			EntryType:     domain.Credit,
			Amount:        req.Amount,
			Description:   req.Description,
			AuditFields:   audit,
		},
	}
	balanceChanges := map[string]decimal.Decimal{
		wallet.WalletID: req.Amount,
	}

	saved, err := s.ledgerRepo.SaveTransaction(ctx, txn, entries, balanceChanges)
	if err != nil {
		logger.Error("Deposit failed", slog.String("transaction_id", txn.TransactionID), slog.String("error", err.Error()))
		return nil, err
	}
	logger.Info("Deposit completed", slog.String("transaction_id", saved.TransactionID), slog.String("wallet_id", wallet.WalletID))
	return saved, nil
}

// Withdraw debits the account's default-currency wallet. The wallet must
// cover the amount; the non-negativity check runs again under row locks
// inside the unit of work.
func (s *ledgerService) Withdraw(ctx context.Context, req dto.WithdrawRequest, requestingUserID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateAmount(req.Amount); err != nil {
		return nil, err
	}

	account, wallet, err := s.validator.ValidateAccountWallet(ctx, req.AccountID, domain.DefaultCurrency, true, req.Amount)
	if err != nil {
		logger.Warn("Withdrawal validation failed", slog.String("account_id", req.AccountID), slog.String("error", err.Error()))
		return nil, err
	}

	now := time.Now().UTC()
	audit := newAuditFields(requestingUserID, now)
	txn := domain.Transaction{
		TransactionID:  uuid.NewString(),
		Reference:      resolveReference(req.Reference),
		Type:           domain.Withdrawal,
		Status:         domain.Pending,
		Amount:         req.Amount,
		SourceCurrency: wallet.Currency,
		TargetCurrency: wallet.Currency,
		Description:    req.Description,
		UserID:         requestingUserID,
		AccountID:      account.AccountID,
		WalletID:       wallet.WalletID,
		AuditFields:    audit,
	}
	entries := []domain.Entry{
		{
			EntryID:       uuid.NewString(),
			TransactionID: txn.TransactionID,
			WalletID:      wallet.WalletID,
			EntryType:     domain.Debit,
			Amount:        req.Amount,
			Description:   req.Description,
			AuditFields:   audit,
		},
	}
	balanceChanges := map[string]decimal.Decimal{
		wallet.WalletID: req.Amount.Neg(),
	}

	saved, err := s.ledgerRepo.SaveTransaction(ctx, txn, entries, balanceChanges)
	if err != nil {
		logger.Error("Withdrawal failed", slog.String("transaction_id", txn.TransactionID), slog.String("error", err.Error()))
		return nil, err
	}
	logger.Info("Withdrawal completed", slog.String("transaction_id", saved.TransactionID), slog.String("wallet_id", wallet.WalletID))
	return saved, nil
}

// Transfer moves funds between two accounts' same-currency wallets. The
// debit and credit legs carry the same amount, so the operation conserves
// money by construction.
func (s *ledgerService) Transfer(ctx context.Context, req dto.TransferRequest, requestingUserID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateAmount(req.Amount); err != nil {
		return nil, err
	}
	currency := req.Currency
	if currency == "" {
		currency = domain.DefaultCurrency
	}

	participants, err := s.validator.ValidateTransferAccounts(ctx, req.FromAccountID, req.ToAccountID, req.Amount, currency)
	if err != nil {
		logger.Warn("Transfer validation failed", slog.String("from_account_id", req.FromAccountID), slog.String("to_account_id", req.ToAccountID), slog.String("error", err.Error()))
		return nil, err
	}

	txn, entries, balanceChanges := s.buildTwoLegTransaction(
		domain.Transfer,
		req.Amount, req.Amount,
		currency, currency, nil,
		participants.SourceAccount.AccountID,
		participants.SourceWallet.WalletID,
		participants.DestinationWallet.WalletID,
		req.Description, resolveReference(req.Reference), requestingUserID,
	)

	saved, err := s.ledgerRepo.SaveTransaction(ctx, txn, entries, balanceChanges)
	if err != nil {
		logger.Error("Transfer failed", slog.String("transaction_id", txn.TransactionID), slog.String("error", err.Error()))
		return nil, err
	}
	logger.Info("Transfer completed", slog.String("transaction_id", saved.TransactionID))
	return saved, nil
}

// SendMoney moves funds between accounts addressed by their 10-digit
// account numbers. Both wallets must share a currency; cross-currency
// movement goes through ConvertCurrency where a rate is applied.
func (s *ledgerService) SendMoney(ctx context.Context, req dto.SendMoneyRequest, requestingUserID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateAmount(req.Amount); err != nil {
		return nil, err
	}

	participants, err := s.validator.ValidateSendMoneyAccounts(ctx, req.SenderAccountNumber, req.ReceiverAccountNumber, req.Amount)
	if err != nil {
		logger.Warn("Send money validation failed", slog.String("error", err.Error()))
		return nil, err
	}

	currency := participants.SenderWallet.Currency
	txn, entries, balanceChanges := s.buildTwoLegTransaction(
		domain.Transfer,
		req.Amount, req.Amount,
		currency, currency, nil,
		participants.Sender.AccountID,
		participants.SenderWallet.WalletID,
		participants.ReceiverWallet.WalletID,
		req.Description, resolveReference(req.Reference), requestingUserID,
	)

	saved, err := s.ledgerRepo.SaveTransaction(ctx, txn, entries, balanceChanges)
	if err != nil {
		logger.Error("Send money failed", slog.String("transaction_id", txn.TransactionID), slog.String("error", err.Error()))
		return nil, err
	}
	logger.Info("Send money completed", slog.String("transaction_id", saved.TransactionID))
	return saved, nil
}

// ConvertCurrency exchanges funds between two of the user's own wallets at
// the configured rate. The debit leg carries the source amount and the
// credit leg carries amount times rate, both exact decimals.
func (s *ledgerService) ConvertCurrency(ctx context.Context, userID string, req dto.ConvertCurrencyRequest) (*dto.ConversionResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateAmount(req.Amount); err != nil {
		return nil, err
	}

	participants, err := s.validator.ValidateCurrencyExchange(ctx, userID, req.Amount, req.FromCurrency, req.ToCurrency)
	if err != nil {
		logger.Warn("Currency exchange validation failed", slog.String("user_id", userID), slog.String("error", err.Error()))
		return nil, err
	}

	rate, err := s.rateSvc.GetExchangeRate(req.FromCurrency, req.ToCurrency)
	if err != nil {
		return nil, err
	}
	targetAmount := req.Amount.Mul(rate)

	txn, entries, balanceChanges := s.buildTwoLegTransaction(
		domain.CurrencyExchange,
		req.Amount, targetAmount,
		req.FromCurrency, req.ToCurrency, &rate,
		participants.Account.AccountID,
		participants.SourceWallet.WalletID,
		participants.TargetWallet.WalletID,
		req.Description, resolveReference(req.Reference), userID,
	)

	saved, err := s.ledgerRepo.SaveTransaction(ctx, txn, entries, balanceChanges)
	if err != nil {
		logger.Error("Currency exchange failed", slog.String("transaction_id", txn.TransactionID), slog.String("error", err.Error()))
		return nil, err
	}
	logger.Info("Currency exchange completed",
		slog.String("transaction_id", saved.TransactionID),
		slog.String("from", string(req.FromCurrency)),
		slog.String("to", string(req.ToCurrency)))

	return &dto.ConversionResult{
		Transaction:  dto.ToTransactionResponse(saved),
		SourceAmount: req.Amount,
		TargetAmount: targetAmount,
		ExchangeRate: rate,
		FromCurrency: req.FromCurrency,
		ToCurrency:   req.ToCurrency,
	}, nil
}

// buildTwoLegTransaction assembles the transaction, its debit/credit
// entries and the wallet balance deltas for any two-wallet movement.
func (s *ledgerService) buildTwoLegTransaction(
	txnType domain.TransactionType,
	debitAmount, creditAmount decimal.Decimal,
	sourceCurrency, targetCurrency domain.CurrencyCode,
	exchangeRate *decimal.Decimal,
	accountID, debitWalletID, creditWalletID string,
	description, reference, userID string,
) (domain.Transaction, []domain.Entry, map[string]decimal.Decimal) {
	now := time.Now().UTC()
	audit := newAuditFields(userID, now)
	txn := domain.Transaction{
		TransactionID:  uuid.NewString(),
		Reference:      reference,
		Type:           txnType,
		Status:         domain.Pending,
		Amount:         debitAmount,
		SourceCurrency: sourceCurrency,
		TargetCurrency: targetCurrency,
		ExchangeRate:   exchangeRate,
		Description:    description,
		UserID:         userID,
		AccountID:      accountID,
		WalletID:       debitWalletID,
		AuditFields:    audit,
	}
	entries := []domain.Entry{
		{
			EntryID:       uuid.NewString(),
			TransactionID: txn.TransactionID,
			WalletID:      debitWalletID,
			EntryType:     domain.Debit,
			Amount:        debitAmount,
			Description:   description,
			AuditFields:   audit,
		},
		{
			EntryID:       uuid.NewString(),
			TransactionID: txn.TransactionID,
			WalletID:      creditWalletID,
			EntryType:     domain.Credit,
			Amount:        creditAmount,
			Description:   description,
			AuditFields:   audit,
		},
	}
	balanceChanges := map[string]decimal.Decimal{
		debitWalletID:  debitAmount.Neg(),
		creditWalletID: creditAmount,
	}
	return txn, entries, balanceChanges
}

// CreditAccount credits the account's first active wallet. It backs
// internal flows (reversals, promotional credits) that address an account
// rather than a specific wallet.
func (s *ledgerService) CreditAccount(ctx context.Context, accountID string, amount decimal.Decimal, description string, requestingUserID string) (*domain.Transaction, error) {
	return s.singleLegMovement(ctx, accountID, amount, description, requestingUserID, domain.Deposit, domain.Credit)
}

// DebitAccount debits the account's first active wallet. The non-negativity
// check is enforced inside the unit of work under row locks.
func (s *ledgerService) DebitAccount(ctx context.Context, accountID string, amount decimal.Decimal, description string, requestingUserID string) (*domain.Transaction, error) {
	return s.singleLegMovement(ctx, accountID, amount, description, requestingUserID, domain.Withdrawal, domain.Debit)
}

func (s *ledgerService) singleLegMovement(ctx context.Context, accountID string, amount decimal.Decimal, description string, requestingUserID string, txnType domain.TransactionType, entryType domain.EntryType) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	wallet, err := s.firstActiveWallet(ctx, accountID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	audit := newAuditFields(requestingUserID, now)
	txn := domain.Transaction{
		TransactionID:  uuid.NewString(),
		Reference:      uuid.NewString(),
		Type:           txnType,
		Status:         domain.Pending,
		Amount:         amount,
		SourceCurrency: wallet.Currency,
		TargetCurrency: wallet.Currency,
		Description:    description,
		UserID:         requestingUserID,
		AccountID:      accountID,
		WalletID:       wallet.WalletID,
		AuditFields:    audit,
	}
	entries := []domain.Entry{
		{
			EntryID:       uuid.NewString(),
			TransactionID: txn.TransactionID,
			WalletID:      wallet.WalletID,
			EntryType:     entryType,
			Amount:        amount,
			Description:   description,
			AuditFields:   audit,
		},
	}
	delta := amount
	if entryType == domain.Debit {
		delta = amount.Neg()
	}
	balanceChanges := map[string]decimal.Decimal{
		wallet.WalletID: delta,
	}

	saved, err := s.ledgerRepo.SaveTransaction(ctx, txn, entries, balanceChanges)
	if err != nil {
		logger.Error("Account movement failed", slog.String("transaction_id", txn.TransactionID), slog.String("error", err.Error()))
		return nil, err
	}
	return saved, nil
}

func (s *ledgerService) firstActiveWallet(ctx context.Context, accountID string) (*domain.Wallet, error) {
	wallets, err := s.walletRepo.FindActiveWalletsByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch wallets for account %s: %w", accountID, err)
	}
	if len(wallets) == 0 {
		return nil, apperrors.NewNotFoundError("No active wallet found for account")
	}
	return &wallets[0], nil
}

// GetTransactionHistory lists completed transactions touching the wallet,
// newest first, with token-based pagination.
func (s *ledgerService) GetTransactionHistory(ctx context.Context, walletID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.walletRepo.FindWalletByID(ctx, walletID); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	txns, nextToken, err := s.ledgerRepo.ListTransactionsByWalletID(ctx, walletID, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list transactions", slog.String("wallet_id", walletID), slog.String("error", err.Error()))
		return nil, err
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}
