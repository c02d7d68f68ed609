// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"
)

// TokenClaims represents the claims contained in a JWT token.
type TokenClaims struct {
	UserID    string
	Username  string
	ExpiresAt time.Time
}

// AccessToken is a signed token together with its expiry.
type AccessToken struct {
	Token     string
	ExpiresAt time.Time
}

// TokenService defines the interface for JWT token operations.
type TokenService interface {
	// GenerateAccessToken signs a new access token for the user.
	GenerateAccessToken(ctx context.Context, userID, username string) (*AccessToken, error)

	// ValidateAccessToken validates an access token and returns its claims.
	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)
}
