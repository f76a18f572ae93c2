// Package auth issues and verifies the bearer tokens API clients present
// when authentication is enabled.
package auth

import (
	"context"
	"time"
)

// TokenTypeAPI marks tokens issued to API clients.
const TokenTypeAPI = "api"

// JWTService defines operations for managing API client tokens.
type JWTService interface {
	// GenerateToken creates a signed token identifying clientID.
	// Returns ErrInvalidClientID when clientID is blank.
	GenerateToken(ctx context.Context, clientID string) (string, error)

	// ValidateToken verifies signature, expiry and type and returns the claims.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims are the verified contents of an API token.
type Claims struct {
	// ClientID names the integration the token was issued to.
	ClientID  string    `json:"cid"`
	TokenType string    `json:"type"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
	ID        string    `json:"jti"`
}
