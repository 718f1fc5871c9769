// Package usecase implements the credential lifecycle: login, logout,
// refresh rotation and access token validation.
package usecase

import (
	"context"
	"database/sql/driver"
	"errors"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/projecthub/internal/auth/domain"
	authService "github.com/allisson/projecthub/internal/auth/service"
	"github.com/allisson/projecthub/internal/config"
	identityDomain "github.com/allisson/projecthub/internal/identity/domain"
	identityService "github.com/allisson/projecthub/internal/identity/service"
	identityUsecase "github.com/allisson/projecthub/internal/identity/usecase"
)

// authUseCase implements AuthUseCase.
type authUseCase struct {
	config          *config.Config
	userRepo        identityUsecase.UserRepository
	signerService   authService.SignerService
	nonceService    authService.NonceService
	passwordService identityService.PasswordService
}

// storeCtx bounds a principal store call so an unavailable store surfaces a
// timeout instead of hanging the request.
func (a *authUseCase) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, a.config.StoreTimeout)
}

// storeErr classifies a failed principal store call. A deadline hit or a bad
// connection means the store did not answer; callers report that as
// transient, not as an auth decision.
func storeErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, driver.ErrBadConn) {
		return authDomain.ErrStoreUnavailable
	}
	return err
}

// Authenticate verifies email and password and records the login time.
func (a *authUseCase) Authenticate(
	ctx context.Context,
	email, password string,
) (*identityDomain.User, error) {
	storeCtx, cancel := a.storeCtx(ctx)
	defer cancel()

	user, err := a.userRepo.GetByEmail(storeCtx, email)
	if err != nil {
		if errors.Is(err, identityDomain.ErrUserNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, storeErr(err)
	}

	if !a.passwordService.ComparePassword(password, user.PasswordHash) {
		return nil, authDomain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, authDomain.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err := a.userRepo.UpdateLastLogin(storeCtx, user.ID, now); err != nil {
		return nil, storeErr(err)
	}
	user.LastLoginAt = &now

	return user, nil
}

// Login establishes a new session, overwriting the stored rotation nonce.
func (a *authUseCase) Login(
	ctx context.Context,
	user *identityDomain.User,
) (*authDomain.TokenPair, error) {
	nonce, err := a.nonceService.Generate()
	if err != nil {
		return nil, err
	}

	storeCtx, cancel := a.storeCtx(ctx)
	defer cancel()

	// The nonce must be durable before any token embedding it leaves the
	// process.
	if err := a.userRepo.SetRotationNonce(storeCtx, user.ID, nonce); err != nil {
		return nil, storeErr(err)
	}
	user.RotationNonce = nonce

	return a.signTokenPair(user, nonce)
}

// Logout rotates the stored nonce, invalidating the outstanding refresh
// token.
func (a *authUseCase) Logout(ctx context.Context, userID uuid.UUID) error {
	nonce, err := a.nonceService.Generate()
	if err != nil {
		return err
	}

	storeCtx, cancel := a.storeCtx(ctx)
	defer cancel()

	return storeErr(a.userRepo.SetRotationNonce(storeCtx, userID, nonce))
}

// Refresh exchanges a valid refresh token for a new pair.
func (a *authUseCase) Refresh(
	ctx context.Context,
	refreshToken string,
) (*authDomain.TokenPair, error) {
	// Cheap rejection before any signature work.
	if refreshToken == "" {
		return nil, authDomain.ErrMissingToken
	}

	claims, err := a.signerService.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	userID, err := authService.SubjectUserID(&claims.AccessClaims)
	if err != nil {
		return nil, err
	}

	storeCtx, cancel := a.storeCtx(ctx)
	defer cancel()

	user, err := a.userRepo.GetByID(storeCtx, userID)
	if err != nil {
		if errors.Is(err, identityDomain.ErrUserNotFound) {
			return nil, authDomain.ErrInvalidToken
		}
		return nil, storeErr(err)
	}
	if !user.IsActive {
		return nil, authDomain.ErrInvalidToken
	}

	nextNonce, err := a.nonceService.Generate()
	if err != nil {
		return nil, err
	}

	// Atomic compare-and-swap against the stored nonce. A mismatch means
	// the presented token was already rotated out, either by a newer
	// refresh, a login, a logout, or a concurrent refresh that won the
	// race. A row deleted since GetByID is the same final rejection.
	err = a.userRepo.CompareAndSwapRotationNonce(storeCtx, userID, claims.RotationNonce, nextNonce)
	if err != nil {
		if errors.Is(err, identityDomain.ErrNonceMismatch) ||
			errors.Is(err, identityDomain.ErrUserNotFound) {
			return nil, authDomain.ErrInvalidToken
		}
		return nil, storeErr(err)
	}
	user.RotationNonce = nextNonce

	return a.signTokenPair(user, nextNonce)
}

// ValidateAccessToken verifies an access token and loads its principal.
func (a *authUseCase) ValidateAccessToken(
	ctx context.Context,
	token string,
) (*identityDomain.User, error) {
	if token == "" {
		return nil, authDomain.ErrMissingToken
	}

	claims, err := a.signerService.VerifyAccessToken(token)
	if err != nil {
		return nil, err
	}

	userID, err := authService.SubjectUserID(claims)
	if err != nil {
		return nil, err
	}

	storeCtx, cancel := a.storeCtx(ctx)
	defer cancel()

	user, err := a.userRepo.GetByID(storeCtx, userID)
	if err != nil {
		if errors.Is(err, identityDomain.ErrUserNotFound) {
			return nil, authDomain.ErrInvalidToken
		}
		return nil, storeErr(err)
	}
	if !user.IsActive {
		return nil, authDomain.ErrInvalidToken
	}

	return user, nil
}

func (a *authUseCase) signTokenPair(
	user *identityDomain.User,
	nonce string,
) (*authDomain.TokenPair, error) {
	accessToken, err := a.signerService.SignAccessToken(user)
	if err != nil {
		return nil, err
	}
	refreshToken, err := a.signerService.SignRefreshToken(user, nonce)
	if err != nil {
		return nil, err
	}
	return &authDomain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// NewAuthUseCase creates a new AuthUseCase with the provided dependencies.
func NewAuthUseCase(
	cfg *config.Config,
	userRepo identityUsecase.UserRepository,
	signerService authService.SignerService,
	nonceService authService.NonceService,
	passwordService identityService.PasswordService,
) AuthUseCase {
	return &authUseCase{
		config:          cfg,
		userRepo:        userRepo,
		signerService:   signerService,
		nonceService:    nonceService,
		passwordService: passwordService,
	}
}
