package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/projecthub/internal/auth/domain"
	identityDomain "github.com/allisson/projecthub/internal/identity/domain"
	"github.com/allisson/projecthub/internal/metrics"
)

// authUseCaseWithMetrics decorates AuthUseCase with metrics instrumentation.
type authUseCaseWithMetrics struct {
	next    AuthUseCase
	metrics metrics.BusinessMetrics
}

// NewAuthUseCaseWithMetrics wraps an AuthUseCase with metrics recording.
func NewAuthUseCaseWithMetrics(useCase AuthUseCase, m metrics.BusinessMetrics) AuthUseCase {
	return &authUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (a *authUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "auth", operation, status)
	a.metrics.RecordDuration(ctx, "auth", operation, time.Since(start), status)
}

// Authenticate records metrics for credential verification.
func (a *authUseCaseWithMetrics) Authenticate(
	ctx context.Context,
	email, password string,
) (*identityDomain.User, error) {
	start := time.Now()
	user, err := a.next.Authenticate(ctx, email, password)
	a.record(ctx, "authenticate", start, err)
	return user, err
}

// Login records metrics for session establishment.
func (a *authUseCaseWithMetrics) Login(
	ctx context.Context,
	user *identityDomain.User,
) (*authDomain.TokenPair, error) {
	start := time.Now()
	pair, err := a.next.Login(ctx, user)
	a.record(ctx, "login", start, err)
	return pair, err
}

// Logout records metrics for session invalidation.
func (a *authUseCaseWithMetrics) Logout(ctx context.Context, userID uuid.UUID) error {
	start := time.Now()
	err := a.next.Logout(ctx, userID)
	a.record(ctx, "logout", start, err)
	return err
}

// Refresh records metrics for token rotation.
func (a *authUseCaseWithMetrics) Refresh(
	ctx context.Context,
	refreshToken string,
) (*authDomain.TokenPair, error) {
	start := time.Now()
	pair, err := a.next.Refresh(ctx, refreshToken)
	a.record(ctx, "token_refresh", start, err)
	return pair, err
}

// ValidateAccessToken records metrics for access token validation.
func (a *authUseCaseWithMetrics) ValidateAccessToken(
	ctx context.Context,
	token string,
) (*identityDomain.User, error) {
	start := time.Now()
	user, err := a.next.ValidateAccessToken(ctx, token)
	a.record(ctx, "token_validate", start, err)
	return user, err
}
