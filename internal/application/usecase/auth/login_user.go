// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/finance-tracker/lucapp/internal/application/adapter"
	"github.com/finance-tracker/lucapp/internal/domain/entity"
	domainerror "github.com/finance-tracker/lucapp/internal/domain/error"
)

// LoginUserInput represents the input for user login.
type LoginUserInput struct {
	Login    string // Username or email
	Password string
}

// LoginUserOutput represents the output of user login.
type LoginUserOutput struct {
	AccessToken *adapter.AccessToken
	User        *entity.User
}

// LoginUserUseCase handles user login logic.
type LoginUserUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
	clock           adapter.Clock
}

// NewLoginUserUseCase creates a new LoginUserUseCase instance.
func NewLoginUserUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
	clock adapter.Clock,
) *LoginUserUseCase {
	return &LoginUserUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
		clock:           clock,
	}
}

// Execute performs the user login.
func (uc *LoginUserUseCase) Execute(ctx context.Context, input LoginUserInput) (*LoginUserOutput, error) {
	user, err := uc.userRepo.FindByLogin(ctx, input.Login)
	if err != nil {
		if !errors.Is(err, domainerror.ErrUserNotFound) {
			return nil, fmt.Errorf("failed to find user: %w", err)
		}
		// Return generic error to prevent username enumeration
		return nil, invalidCredentials()
	}

	if err := uc.passwordService.VerifyPassword(user.PasswordHash, input.Password); err != nil {
		return nil, invalidCredentials()
	}

	user.TouchLastLogin(uc.clock.Now())
	if err := uc.userRepo.Update(ctx, user); err != nil {
		// A stale last-login date does not block the session
		slog.Warn("Failed to record last login",
			"user_id", user.ID,
			"error", err,
		)
	}

	token, err := uc.tokenService.GenerateAccessToken(ctx, user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &LoginUserOutput{
		AccessToken: token,
		User:        user,
	}, nil
}

func invalidCredentials() error {
	return domainerror.NewAuthError(
		domainerror.ErrCodeInvalidCredentials,
		"invalid username or password",
		domainerror.ErrInvalidCredentials,
	)
}
