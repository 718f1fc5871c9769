// Package service defines token signing and nonce generation for authentication.
package service

import (
	authDomain "github.com/allisson/projecthub/internal/auth/domain"
	identityDomain "github.com/allisson/projecthub/internal/identity/domain"
)

// SignerService signs and verifies the two token kinds with separate
// keypairs, so a leaked access verification key never validates refresh
// tokens.
type SignerService interface {
	// SignAccessToken signs an access token for the user.
	SignAccessToken(user *identityDomain.User) (string, error)

	// SignRefreshToken signs a refresh token embedding the rotation nonce.
	SignRefreshToken(user *identityDomain.User, rotationNonce string) (string, error)

	// VerifyAccessToken checks signature, expiry, issuer and audience of an
	// access token. Returns ErrInvalidToken on any failure.
	VerifyAccessToken(token string) (*authDomain.AccessClaims, error)

	// VerifyRefreshToken checks signature, expiry, issuer and audience of a
	// refresh token. Returns ErrInvalidToken on any failure. The embedded
	// rotation nonce is NOT checked here; that comparison happens against
	// the store.
	VerifyRefreshToken(token string) (*authDomain.RefreshClaims, error)
}

// NonceService generates rotation nonces.
type NonceService interface {
	// Generate returns a fresh unpredictable nonce.
	Generate() (string, error)
}
