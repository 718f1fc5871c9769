package service

import (
	"crypto/rsa"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	authDomain "github.com/allisson/projecthub/internal/auth/domain"
	"github.com/allisson/projecthub/internal/config"
	apperrors "github.com/allisson/projecthub/internal/errors"
	identityDomain "github.com/allisson/projecthub/internal/identity/domain"
)

// jwtSignerService implements SignerService with RS256 and two RSA keypairs.
type jwtSignerService struct {
	issuer   string
	audience string

	accessTTL  time.Duration
	refreshTTL time.Duration

	accessPrivateKey  *rsa.PrivateKey
	accessPublicKey   *rsa.PublicKey
	refreshPrivateKey *rsa.PrivateKey
	refreshPublicKey  *rsa.PublicKey
}

func (j *jwtSignerService) accessClaims(user *identityDomain.User, ttl time.Duration) authDomain.AccessClaims {
	now := time.Now().UTC()
	return authDomain.AccessClaims{
		Email:     user.Email,
		Name:      user.FullName(),
		LastLogin: user.LastLoginAt,
		Roles:     user.Roles,
		IsActive:  user.IsActive,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.issuer,
			Audience:  jwt.ClaimStrings{j.audience},
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

// SignAccessToken signs an access token for the user.
func (j *jwtSignerService) SignAccessToken(user *identityDomain.User) (string, error) {
	claims := j.accessClaims(user, j.accessTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(j.accessPrivateKey)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to sign access token")
	}
	return signed, nil
}

// SignRefreshToken signs a refresh token embedding the rotation nonce.
func (j *jwtSignerService) SignRefreshToken(
	user *identityDomain.User,
	rotationNonce string,
) (string, error) {
	claims := authDomain.RefreshClaims{
		AccessClaims:  j.accessClaims(user, j.refreshTTL),
		RotationNonce: rotationNonce,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(j.refreshPrivateKey)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to sign refresh token")
	}
	return signed, nil
}

// VerifyAccessToken checks signature, expiry, issuer and audience of an
// access token.
func (j *jwtSignerService) VerifyAccessToken(token string) (*authDomain.AccessClaims, error) {
	claims := &authDomain.AccessClaims{}
	if err := j.verify(token, claims, j.accessPublicKey); err != nil {
		return nil, err
	}
	return claims, nil
}

// VerifyRefreshToken checks signature, expiry, issuer and audience of a
// refresh token.
func (j *jwtSignerService) VerifyRefreshToken(token string) (*authDomain.RefreshClaims, error) {
	claims := &authDomain.RefreshClaims{}
	if err := j.verify(token, claims, j.refreshPublicKey); err != nil {
		return nil, err
	}
	return claims, nil
}

func (j *jwtSignerService) verify(token string, claims jwt.Claims, key *rsa.PublicKey) error {
	parsed, err := jwt.ParseWithClaims(
		token,
		claims,
		func(t *jwt.Token) (any, error) {
			if t.Method != jwt.SigningMethodRS256 {
				return nil, authDomain.ErrInvalidToken
			}
			return key, nil
		},
		jwt.WithIssuer(j.issuer),
		jwt.WithAudience(j.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return authDomain.ErrInvalidToken
	}
	return nil
}

// SubjectUserID extracts the user ID from a verified claim set.
func SubjectUserID(claims *authDomain.AccessClaims) (uuid.UUID, error) {
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, authDomain.ErrInvalidToken
	}
	return id, nil
}

// NewJWTSignerService creates a SignerService from the configured PEM key
// material.
func NewJWTSignerService(cfg *config.Config) (SignerService, error) {
	accessPrivateKey, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(cfg.AccessTokenPrivateKey))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse access token private key")
	}
	accessPublicKey, err := jwt.ParseRSAPublicKeyFromPEM([]byte(cfg.AccessTokenPublicKey))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse access token public key")
	}
	refreshPrivateKey, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(cfg.RefreshTokenPrivateKey))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse refresh token private key")
	}
	refreshPublicKey, err := jwt.ParseRSAPublicKeyFromPEM([]byte(cfg.RefreshTokenPublicKey))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse refresh token public key")
	}

	return &jwtSignerService{
		issuer:            cfg.TokenIssuer,
		audience:          cfg.TokenAudience,
		accessTTL:         cfg.AccessTokenExpiration,
		refreshTTL:        cfg.RefreshTokenExpiration,
		accessPrivateKey:  accessPrivateKey,
		accessPublicKey:   accessPublicKey,
		refreshPrivateKey: refreshPrivateKey,
		refreshPublicKey:  refreshPublicKey,
	}, nil
}
