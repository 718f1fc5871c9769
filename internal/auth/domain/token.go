// Package domain defines the credential models for authentication.
package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	identityDomain "github.com/allisson/projecthub/internal/identity/domain"
	"github.com/allisson/projecthub/internal/errors"
)

// TokenPair is the result of a successful login or refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AccessClaims is the claim set carried by access tokens.
type AccessClaims struct {
	Email     string                `json:"email"`
	Name      string                `json:"name"`
	LastLogin *time.Time            `json:"lastLogin,omitempty"`
	Roles     []identityDomain.Role `json:"roles"`
	IsActive  bool                  `json:"isActive"`
	jwt.RegisteredClaims
}

// RefreshClaims is the claim set carried by refresh tokens. It extends the
// access claim set with the rotation nonce: a refresh token is only valid
// while its embedded nonce equals the single nonce stored for the user.
type RefreshClaims struct {
	AccessClaims
	RotationNonce string `json:"rtk"`
}

// LoginInput contains the credentials presented at login.
type LoginInput struct {
	Email    string
	Password string
}

// Domain-specific errors for authentication operations.
var (
	// ErrInvalidCredentials indicates a failed login. It is returned
	// uniformly for unknown email, wrong password and inactive accounts so
	// responses do not reveal which credential part failed.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")

	// ErrInvalidToken indicates an unparseable, expired, tampered or
	// rotated-out token.
	ErrInvalidToken = errors.Wrap(errors.ErrUnauthorized, "invalid token")

	// ErrMissingToken indicates no token was presented.
	ErrMissingToken = errors.Wrap(errors.ErrInvalidInput, "missing token")

	// ErrStoreUnavailable indicates the principal store did not answer in
	// time. Transient; must not collapse into an auth rejection.
	ErrStoreUnavailable = errors.Wrap(errors.ErrUnavailable, "principal store unavailable")
)
