// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/billing-panel/backend/internal/domain/entity"
)

// IssuedToken is a signed access token and its expiry.
type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
}

// TokenClaims represents the claims contained in an access token.
type TokenClaims struct {
	TokenID   string
	UserID    uuid.UUID
	Email     string
	Role      entity.Role
	ExpiresAt time.Time
}

// TokenService defines the interface for session token operations.
type TokenService interface {
	// IssueAccessToken signs a new session token for the user.
	IssueAccessToken(ctx context.Context, user *entity.User) (*IssuedToken, error)

	// ValidateAccessToken verifies signature, expiry and revocation and returns the claims.
	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)

	// RevokeAccessToken ends the session carried by the token.
	RevokeAccessToken(ctx context.Context, token string) error
}

// SessionStore tracks revoked token IDs until they would have expired anyway.
type SessionStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
