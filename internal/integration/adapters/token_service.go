// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/finance-tracker/lucapp/internal/application/adapter"
)

const tokenIssuer = "lucapp"

// CustomClaims represents the custom claims for JWT tokens.
type CustomClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// tokenService implements the adapter.TokenService interface.
type tokenService struct {
	secret   []byte
	duration time.Duration
	clock    adapter.Clock
}

// NewTokenService creates a new token service instance.
func NewTokenService(secret string, duration time.Duration, clock adapter.Clock) adapter.TokenService {
	return &tokenService{
		secret:   []byte(secret),
		duration: duration,
		clock:    clock,
	}
}

// GenerateAccessToken signs a new HS256 access token for the user.
func (s *tokenService) GenerateAccessToken(_ context.Context, userID, username string) (*adapter.AccessToken, error) {
	now := s.clock.Now().UTC()
	expiresAt := now.Add(s.duration)
	claims := CustomClaims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   userID,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	return &adapter.AccessToken{
		Token:     signed,
		ExpiresAt: expiresAt,
	}, nil
}

// ValidateAccessToken validates an access token and returns its claims.
func (s *tokenService) ValidateAccessToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.clock.Now), jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := parsed.Claims.(*CustomClaims)
	if !ok || !parsed.Valid || claims.UserID == "" {
		return nil, fmt.Errorf("invalid token claims")
	}

	return &adapter.TokenClaims{
		UserID:    claims.UserID,
		Username:  claims.Username,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
