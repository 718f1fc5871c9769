// Package usecase defines business logic interfaces for authentication.
package usecase

import (
	"context"

	"github.com/google/uuid"

	authDomain "github.com/allisson/projecthub/internal/auth/domain"
	identityDomain "github.com/allisson/projecthub/internal/identity/domain"
)

// AuthUseCase defines the credential lifecycle operations.
type AuthUseCase interface {
	// Authenticate verifies email and password and records the login time.
	// It fails with ErrInvalidCredentials uniformly for unknown email,
	// wrong password and inactive accounts.
	Authenticate(ctx context.Context, email, password string) (*identityDomain.User, error)

	// Login establishes a new session for an authenticated user: it
	// generates a fresh rotation nonce, overwrites the stored one
	// unconditionally and signs a token pair. Any previously issued refresh
	// token stops working. A failed nonce write fails the login.
	Login(ctx context.Context, user *identityDomain.User) (*authDomain.TokenPair, error)

	// Logout invalidates the user's refresh token by rotating the stored
	// nonce. Already-issued access tokens stay valid until expiry.
	Logout(ctx context.Context, userID uuid.UUID) error

	// Refresh exchanges a valid refresh token for a new pair, rotating the
	// nonce. A replayed token whose nonce was already rotated out is
	// rejected, never retried.
	Refresh(ctx context.Context, refreshToken string) (*authDomain.TokenPair, error)

	// ValidateAccessToken verifies an access token and loads its principal.
	ValidateAccessToken(ctx context.Context, token string) (*identityDomain.User, error)
}
