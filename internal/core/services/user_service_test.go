package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/shakotgabriel/tanina/internal/apperrors"
	"github.com/shakotgabriel/tanina/internal/core/domain"
	portssvc "github.com/shakotgabriel/tanina/internal/core/ports/services"
	"github.com/shakotgabriel/tanina/internal/core/services"
	"github.com/shakotgabriel/tanina/internal/dto"
	"github.com/shakotgabriel/tanina/internal/utils"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	userService  portssvc.UserSvcFacade
	ctx          context.Context
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.userService = services.NewUserService(suite.mockUserRepo)
	suite.ctx = context.Background()
}

func (suite *UserServiceTestSuite) TestCreateUser_ProvisionsAccountAndWallet() {
	req := dto.CreateUserRequest{Name: "Achol Deng", Email: "Achol@Example.com ", Password: "s3cret-password"}

	suite.mockUserRepo.On("SaveUserWithAccount", suite.ctx,
		mock.MatchedBy(func(user domain.User) bool {
			// Email is normalized and the password is stored hashed.
			return user.Email == "achol@example.com" &&
				user.PasswordHash != req.Password &&
				utils.CheckPasswordHash("s3cret-password", user.PasswordHash)
		}),
		mock.MatchedBy(func(account domain.Account) bool {
			return account.AccountType == domain.Personal &&
				account.Currency == domain.DefaultCurrency &&
				len(account.AccountNumber) == 10
		}),
		mock.MatchedBy(func(wallet domain.Wallet) bool {
			return wallet.Currency == domain.DefaultCurrency && wallet.IsActive
		}),
		mock.MatchedBy(func(balances []domain.Balance) bool {
			return len(balances) == 2 && balances[0].Available.IsZero() && balances[1].Available.IsZero()
		}),
	).Return(nil).Once()

	user, err := suite.userService.CreateUser(suite.ctx, req)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "achol@example.com", user.Email)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_DuplicateEmail() {
	req := dto.CreateUserRequest{Name: "Achol Deng", Email: "achol@example.com", Password: "s3cret-password"}

	suite.mockUserRepo.On("SaveUserWithAccount", suite.ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(apperrors.NewAppError(409, "email already registered", apperrors.ErrDuplicate)).Once()

	user, err := suite.userService.CreateUser(suite.ctx, req)

	assert.Nil(suite.T(), user)
	assert.ErrorIs(suite.T(), err, apperrors.ErrDuplicate)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_Success() {
	hash, err := utils.HashPassword("correct-horse")
	suite.Require().NoError(err)
	stored := &domain.User{UserID: "u1", Email: "achol@example.com", PasswordHash: hash}

	suite.mockUserRepo.On("FindUserByEmail", suite.ctx, "achol@example.com").Return(stored, nil).Once()

	user, err := suite.userService.AuthenticateUser(suite.ctx, "Achol@Example.com", "correct-horse")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "u1", user.UserID)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_WrongPassword() {
	hash, err := utils.HashPassword("correct-horse")
	suite.Require().NoError(err)
	stored := &domain.User{UserID: "u1", Email: "achol@example.com", PasswordHash: hash}

	suite.mockUserRepo.On("FindUserByEmail", suite.ctx, "achol@example.com").Return(stored, nil).Once()

	user, err := suite.userService.AuthenticateUser(suite.ctx, "achol@example.com", "wrong")

	assert.Nil(suite.T(), user)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_UnknownEmail() {
	suite.mockUserRepo.On("FindUserByEmail", suite.ctx, "nobody@example.com").Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.userService.AuthenticateUser(suite.ctx, "nobody@example.com", "whatever")

	assert.Nil(suite.T(), user)
	// Unknown email and bad password are indistinguishable to the caller.
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
