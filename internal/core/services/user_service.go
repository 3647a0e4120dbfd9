package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shakotgabriel/tanina/internal/apperrors"
	"github.com/shakotgabriel/tanina/internal/core/domain"
	portsrepo "github.com/shakotgabriel/tanina/internal/core/ports/repositories"
	portssvc "github.com/shakotgabriel/tanina/internal/core/ports/services"
	"github.com/shakotgabriel/tanina/internal/dto"
	"github.com/shakotgabriel/tanina/internal/middleware"
	"github.com/shakotgabriel/tanina/internal/utils"
)

// userService provides user registration and authentication.
type userService struct {
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// CreateUser registers a user and provisions their personal account,
// default-currency wallet and zeroed balance rows in one atomic write. A
// duplicate email surfaces as a duplicate error.
func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	userID := uuid.NewString()
	user := domain.User{
		UserID:       userID,
		Name:         req.Name,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: passwordHash,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	account, wallet, balances, err := provisionAccount(userID, domain.Personal, domain.DefaultCurrency, userID, now)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.SaveUserWithAccount(ctx, user, account, wallet, balances); err != nil {
		logger.Error("Failed to create user", slog.String("email", user.Email), slog.String("error", err.Error()))
		return nil, err
	}
	logger.Info("User created", slog.String("user_id", userID), slog.String("account_id", account.AccountID))
	return &user, nil
}

// GetUserByID retrieves a user.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

// AuthenticateUser verifies the email/password pair. A bad email and a bad
// password return the same validation error so callers cannot probe for
// registered addresses.
func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid email or password", apperrors.ErrValidation)
		}
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		logger.Warn("Authentication failed", slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("%w: invalid email or password", apperrors.ErrValidation)
	}
	return user, nil
}
