package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/shakotgabriel/tanina/internal/apperrors"
	"github.com/shakotgabriel/tanina/internal/core/domain"
	portssvc "github.com/shakotgabriel/tanina/internal/core/ports/services"
	"github.com/shakotgabriel/tanina/internal/core/services"
	"github.com/shakotgabriel/tanina/internal/dto"
)

// --- Test Suite Setup ---
type LedgerServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo *MockLedgerRepository
	mockWalletRepo *MockWalletRepository
	mockValidator  *MockValidatorService
	ledgerService  portssvc.LedgerSvcFacade

	ctx       context.Context
	userID    string
	account   domain.Account
	usdWallet domain.Wallet
	kesWallet domain.Wallet
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockWalletRepo = new(MockWalletRepository)
	suite.mockValidator = new(MockValidatorService)
	rates := map[string]decimal.Decimal{
		"USD_KES": decimal.RequireFromString("130.00"),
	}
	rateSvc := services.NewExchangeRateService(rates)
	suite.ledgerService = services.NewLedgerService(suite.mockLedgerRepo, suite.mockWalletRepo, suite.mockValidator, rateSvc)

	suite.ctx = context.Background()
	suite.userID = uuid.NewString()
	suite.account = domain.Account{
		AccountID:     uuid.NewString(),
		UserID:        suite.userID,
		AccountNumber: "1234567890",
		AccountType:   domain.Personal,
		Currency:      domain.USD,
		IsActive:      true,
	}
	suite.usdWallet = domain.Wallet{
		WalletID:  uuid.NewString(),
		AccountID: suite.account.AccountID,
		UserID:    suite.userID,
		Currency:  domain.USD,
		IsActive:  true,
	}
	suite.kesWallet = domain.Wallet{
		WalletID:  uuid.NewString(),
		AccountID: suite.account.AccountID,
		UserID:    suite.userID,
		Currency:  domain.KES,
		IsActive:  true,
	}
}

func (suite *LedgerServiceTestSuite) TestDeposit_Success() {
	amount := decimal.NewFromInt(100)
	req := dto.DepositRequest{AccountID: suite.account.AccountID, Amount: amount, Description: "initial funding"}

	suite.mockValidator.On("ValidateAccountWallet", suite.ctx, suite.account.AccountID, domain.DefaultCurrency, false, decimal.Zero).
		Return(&suite.account, &suite.usdWallet, nil).Once()

	suite.mockLedgerRepo.On("SaveTransaction", suite.ctx,
		mock.MatchedBy(func(txn domain.Transaction) bool {
			return txn.Type == domain.Deposit &&
				txn.Status == domain.Pending &&
				txn.Amount.Equal(amount) &&
				txn.WalletID == suite.usdWallet.WalletID &&
				txn.Reference != ""
		}),
		mock.MatchedBy(func(entries []domain.Entry) bool {
			return len(entries) == 1 &&
				entries[0].EntryType == domain.Credit &&
				entries[0].Amount.Equal(amount) &&
				entries[0].WalletID == suite.usdWallet.WalletID
		}),
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			return len(changes) == 1 && changes[suite.usdWallet.WalletID].Equal(amount)
		}),
	).Return(&domain.Transaction{TransactionID: uuid.NewString(), Type: domain.Deposit, Status: domain.Completed, Amount: amount}, nil).Once()

	txn, err := suite.ledgerService.Deposit(suite.ctx, req, suite.userID)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), txn)
	assert.Equal(suite.T(), domain.Completed, txn.Status)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
	suite.mockValidator.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestDeposit_NonPositiveAmount() {
	req := dto.DepositRequest{AccountID: suite.account.AccountID, Amount: decimal.Zero}

	txn, err := suite.ledgerService.Deposit(suite.ctx, req, suite.userID)

	assert.Nil(suite.T(), txn)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestDeposit_PreservesClientReference() {
	amount := decimal.NewFromInt(25)
	req := dto.DepositRequest{AccountID: suite.account.AccountID, Amount: amount, Reference: "client-ref-42"}

	suite.mockValidator.On("ValidateAccountWallet", suite.ctx, suite.account.AccountID, domain.DefaultCurrency, false, decimal.Zero).
		Return(&suite.account, &suite.usdWallet, nil).Once()
	suite.mockLedgerRepo.On("SaveTransaction", suite.ctx,
		mock.MatchedBy(func(txn domain.Transaction) bool { return txn.Reference == "client-ref-42" }),
		mock.Anything, mock.Anything,
	).Return(&domain.Transaction{Reference: "client-ref-42", Status: domain.Completed}, nil).Once()

	txn, err := suite.ledgerService.Deposit(suite.ctx, req, suite.userID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "client-ref-42", txn.Reference)
}

func (suite *LedgerServiceTestSuite) TestWithdraw_InsufficientFunds() {
	amount := decimal.NewFromInt(500)
	req := dto.WithdrawRequest{AccountID: suite.account.AccountID, Amount: amount}

	suite.mockValidator.On("ValidateAccountWallet", suite.ctx, suite.account.AccountID, domain.DefaultCurrency, true, amount).
		Return(nil, nil, apperrors.ErrInsufficientFunds).Once()

	txn, err := suite.ledgerService.Withdraw(suite.ctx, req, suite.userID)

	assert.Nil(suite.T(), txn)
	assert.ErrorIs(suite.T(), err, apperrors.ErrInsufficientFunds)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestWithdraw_Success() {
	amount := decimal.NewFromInt(40)
	req := dto.WithdrawRequest{AccountID: suite.account.AccountID, Amount: amount}

	suite.mockValidator.On("ValidateAccountWallet", suite.ctx, suite.account.AccountID, domain.DefaultCurrency, true, amount).
		Return(&suite.account, &suite.usdWallet, nil).Once()
	suite.mockLedgerRepo.On("SaveTransaction", suite.ctx,
		mock.MatchedBy(func(txn domain.Transaction) bool { return txn.Type == domain.Withdrawal }),
		mock.MatchedBy(func(entries []domain.Entry) bool {
			return len(entries) == 1 && entries[0].EntryType == domain.Debit
		}),
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			return changes[suite.usdWallet.WalletID].Equal(amount.Neg())
		}),
	).Return(&domain.Transaction{Type: domain.Withdrawal, Status: domain.Completed}, nil).Once()

	txn, err := suite.ledgerService.Withdraw(suite.ctx, req, suite.userID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.Withdrawal, txn.Type)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestTransfer_ConservesMoney() {
	amount := decimal.NewFromInt(50)
	destWallet := domain.Wallet{WalletID: uuid.NewString(), Currency: domain.USD, IsActive: true}
	participants := &domain.TransferParticipants{
		SourceAccount:      suite.account,
		SourceWallet:       suite.usdWallet,
		DestinationAccount: domain.Account{AccountID: uuid.NewString(), IsActive: true},
		DestinationWallet:  destWallet,
	}
	req := dto.TransferRequest{
		FromAccountID: suite.account.AccountID,
		ToAccountID:   participants.DestinationAccount.AccountID,
		Amount:        amount,
	}

	suite.mockValidator.On("ValidateTransferAccounts", suite.ctx, req.FromAccountID, req.ToAccountID, amount, domain.DefaultCurrency).
		Return(participants, nil).Once()
	suite.mockLedgerRepo.On("SaveTransaction", suite.ctx,
		mock.MatchedBy(func(txn domain.Transaction) bool { return txn.Type == domain.Transfer }),
		mock.MatchedBy(func(entries []domain.Entry) bool {
			if len(entries) != 2 {
				return false
			}
			return entries[0].EntryType == domain.Debit && entries[0].Amount.Equal(amount) &&
				entries[1].EntryType == domain.Credit && entries[1].Amount.Equal(amount)
		}),
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			// The deltas must sum to zero: transfers create no money.
			sum := changes[suite.usdWallet.WalletID].Add(changes[destWallet.WalletID])
			return sum.IsZero()
		}),
	).Return(&domain.Transaction{Type: domain.Transfer, Status: domain.Completed}, nil).Once()

	txn, err := suite.ledgerService.Transfer(suite.ctx, req, suite.userID)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), txn)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestSendMoney_ReceiverNotFound() {
	amount := decimal.NewFromInt(10)
	req := dto.SendMoneyRequest{
		SenderAccountNumber:   "1234567890",
		ReceiverAccountNumber: "0987654321",
		Amount:                amount,
	}

	suite.mockValidator.On("ValidateSendMoneyAccounts", suite.ctx, req.SenderAccountNumber, req.ReceiverAccountNumber, amount).
		Return(nil, apperrors.NewNotFoundError("Receiver account not found or inactive")).Once()

	txn, err := suite.ledgerService.SendMoney(suite.ctx, req, suite.userID)

	assert.Nil(suite.T(), txn)
	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
	assert.Contains(suite.T(), err.Error(), "Receiver account not found or inactive")
}

func (suite *LedgerServiceTestSuite) TestSendMoney_Success() {
	amount := decimal.NewFromInt(75)
	receiverWallet := domain.Wallet{WalletID: uuid.NewString(), Currency: domain.USD, IsActive: true}
	participants := &domain.SendMoneyParticipants{
		Sender:         suite.account,
		SenderWallet:   suite.usdWallet,
		Receiver:       domain.Account{AccountID: uuid.NewString(), AccountNumber: "0987654321", IsActive: true},
		ReceiverWallet: receiverWallet,
	}
	req := dto.SendMoneyRequest{
		SenderAccountNumber:   suite.account.AccountNumber,
		ReceiverAccountNumber: "0987654321",
		Amount:                amount,
	}

	suite.mockValidator.On("ValidateSendMoneyAccounts", suite.ctx, req.SenderAccountNumber, req.ReceiverAccountNumber, amount).
		Return(participants, nil).Once()
	suite.mockLedgerRepo.On("SaveTransaction", suite.ctx,
		mock.MatchedBy(func(txn domain.Transaction) bool {
			return txn.Type == domain.Transfer && txn.AccountID == suite.account.AccountID
		}),
		mock.Anything,
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			return changes[suite.usdWallet.WalletID].Equal(amount.Neg()) &&
				changes[receiverWallet.WalletID].Equal(amount)
		}),
	).Return(&domain.Transaction{Type: domain.Transfer, Status: domain.Completed}, nil).Once()

	txn, err := suite.ledgerService.SendMoney(suite.ctx, req, suite.userID)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), txn)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestConvertCurrency_AppliesConfiguredRate() {
	amount := decimal.NewFromInt(100)
	expectedTarget := decimal.RequireFromString("13000.00")
	participants := &domain.ExchangeParticipants{
		Account:      suite.account,
		SourceWallet: suite.usdWallet,
		TargetWallet: suite.kesWallet,
	}
	req := dto.ConvertCurrencyRequest{
		Amount:       amount,
		FromCurrency: domain.USD,
		ToCurrency:   domain.KES,
	}

	suite.mockValidator.On("ValidateCurrencyExchange", suite.ctx, suite.userID, amount, domain.USD, domain.KES).
		Return(participants, nil).Once()
	suite.mockLedgerRepo.On("SaveTransaction", suite.ctx,
		mock.MatchedBy(func(txn domain.Transaction) bool {
			return txn.Type == domain.CurrencyExchange &&
				txn.SourceCurrency == domain.USD &&
				txn.TargetCurrency == domain.KES &&
				txn.ExchangeRate != nil &&
				txn.ExchangeRate.Equal(decimal.RequireFromString("130.00"))
		}),
		mock.MatchedBy(func(entries []domain.Entry) bool {
			return len(entries) == 2 &&
				entries[0].Amount.Equal(amount) &&
				entries[1].Amount.Equal(expectedTarget)
		}),
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			return changes[suite.usdWallet.WalletID].Equal(amount.Neg()) &&
				changes[suite.kesWallet.WalletID].Equal(expectedTarget)
		}),
	).Return(&domain.Transaction{Type: domain.CurrencyExchange, Status: domain.Completed, Amount: amount}, nil).Once()

	result, err := suite.ledgerService.ConvertCurrency(suite.ctx, suite.userID, req)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), result)
	assert.True(suite.T(), result.TargetAmount.Equal(expectedTarget))
	assert.True(suite.T(), result.ExchangeRate.Equal(decimal.RequireFromString("130.00")))
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestConvertCurrency_MissingRate() {
	amount := decimal.NewFromInt(100)
	participants := &domain.ExchangeParticipants{
		Account:      suite.account,
		SourceWallet: suite.kesWallet,
		TargetWallet: suite.usdWallet,
	}
	req := dto.ConvertCurrencyRequest{
		Amount:       amount,
		FromCurrency: domain.KES,
		ToCurrency:   domain.USD,
	}

	// Only USD_KES is configured; the reverse direction has no rate.
	suite.mockValidator.On("ValidateCurrencyExchange", suite.ctx, suite.userID, amount, domain.KES, domain.USD).
		Return(participants, nil).Once()

	result, err := suite.ledgerService.ConvertCurrency(suite.ctx, suite.userID, req)

	assert.Nil(suite.T(), result)
	assert.ErrorIs(suite.T(), err, apperrors.ErrRateNotFound)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestDeposit_SaveErrorPropagates() {
	amount := decimal.NewFromInt(100)
	req := dto.DepositRequest{AccountID: suite.account.AccountID, Amount: amount}
	saveErr := errors.New("database connection lost")

	suite.mockValidator.On("ValidateAccountWallet", suite.ctx, suite.account.AccountID, domain.DefaultCurrency, false, decimal.Zero).
		Return(&suite.account, &suite.usdWallet, nil).Once()
	suite.mockLedgerRepo.On("SaveTransaction", suite.ctx, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, saveErr).Once()

	txn, err := suite.ledgerService.Deposit(suite.ctx, req, suite.userID)

	assert.Nil(suite.T(), txn)
	assert.ErrorIs(suite.T(), err, saveErr)
}

func (suite *LedgerServiceTestSuite) TestGetTransactionHistory_DefaultsLimit() {
	walletID := suite.usdWallet.WalletID
	token := "next-page"
	txns := []domain.Transaction{
		{TransactionID: uuid.NewString(), Type: domain.Deposit, Status: domain.Completed},
	}

	suite.mockWalletRepo.On("FindWalletByID", suite.ctx, walletID).Return(&suite.usdWallet, nil).Once()
	suite.mockLedgerRepo.On("ListTransactionsByWalletID", suite.ctx, walletID, 20, (*string)(nil)).
		Return(txns, token, nil).Once()

	page, err := suite.ledgerService.GetTransactionHistory(suite.ctx, walletID, dto.ListTransactionsParams{})

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), page.Transactions, 1)
	assert.Equal(suite.T(), token, *page.NextToken)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestGetTransactionHistory_UnknownWallet() {
	walletID := uuid.NewString()
	suite.mockWalletRepo.On("FindWalletByID", suite.ctx, walletID).Return(nil, apperrors.ErrNotFound).Once()

	page, err := suite.ledgerService.GetTransactionHistory(suite.ctx, walletID, dto.ListTransactionsParams{})

	assert.Nil(suite.T(), page)
	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
}

// --- Run Test Suite ---
func TestLedgerService(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
