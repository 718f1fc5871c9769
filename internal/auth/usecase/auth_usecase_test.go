package usecase

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/projecthub/internal/auth/domain"
	authService "github.com/allisson/projecthub/internal/auth/service"
	"github.com/allisson/projecthub/internal/config"
	apperrors "github.com/allisson/projecthub/internal/errors"
	identityDomain "github.com/allisson/projecthub/internal/identity/domain"
	identityService "github.com/allisson/projecthub/internal/identity/service"
	identityMocks "github.com/allisson/projecthub/internal/identity/usecase/mocks"
)

func generateKeyPair(t *testing.T) (privatePEM, publicPEM string) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	privateBytes := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	publicDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	publicBytes := pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: publicDER,
	})
	return string(privateBytes), string(publicBytes)
}

func newAuthConfig(t *testing.T) *config.Config {
	t.Helper()

	accessPrivate, accessPublic := generateKeyPair(t)
	refreshPrivate, refreshPublic := generateKeyPair(t)
	return &config.Config{
		TokenIssuer:            "projecthub",
		TokenAudience:          "projecthub-api",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 168 * time.Hour,
		AccessTokenPrivateKey:  accessPrivate,
		AccessTokenPublicKey:   accessPublic,
		RefreshTokenPrivateKey: refreshPrivate,
		RefreshTokenPublicKey:  refreshPublic,
		StoreTimeout:           5 * time.Second,
	}
}

func newSigner(t *testing.T, cfg *config.Config) authService.SignerService {
	t.Helper()

	signer, err := authService.NewJWTSignerService(cfg)
	require.NoError(t, err)
	return signer
}

func activeUser() *identityDomain.User {
	return &identityDomain.User{
		ID:        uuid.Must(uuid.NewV7()),
		Email:     "jane@example.com",
		FirstName: "Jane",
		LastName:  "Doe",
		Roles:     []identityDomain.Role{identityDomain.RoleUser},
		IsActive:  true,
	}
}

// inMemoryUserRepo is a minimal UserRepository backed by a map, with a real
// mutex-guarded compare-and-swap. Used where tests exercise the rotation
// race itself rather than call wiring.
type inMemoryUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*identityDomain.User
}

func newInMemoryUserRepo(users ...*identityDomain.User) *inMemoryUserRepo {
	repo := &inMemoryUserRepo{users: map[uuid.UUID]*identityDomain.User{}}
	for _, user := range users {
		repo.users[user.ID] = user
	}
	return repo
}

func (r *inMemoryUserRepo) Create(ctx context.Context, user *identityDomain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

func (r *inMemoryUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*identityDomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, identityDomain.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *inMemoryUserRepo) GetByEmail(ctx context.Context, email string) (*identityDomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, identityDomain.ErrUserNotFound
}

func (r *inMemoryUserRepo) List(ctx context.Context, offset, limit int) ([]*identityDomain.User, error) {
	return nil, nil
}

func (r *inMemoryUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *inMemoryUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		user.LastLoginAt = &at
	}
	return nil
}

func (r *inMemoryUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		user.PasswordHash = passwordHash
	}
	return nil
}

func (r *inMemoryUserRepo) SetRotationNonce(ctx context.Context, id uuid.UUID, nonce string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return identityDomain.ErrUserNotFound
	}
	user.RotationNonce = nonce
	return nil
}

func (r *inMemoryUserRepo) CompareAndSwapRotationNonce(
	ctx context.Context,
	id uuid.UUID,
	current, next string,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return identityDomain.ErrUserNotFound
	}
	if user.RotationNonce != current {
		return identityDomain.ErrNonceMismatch
	}
	user.RotationNonce = next
	return nil
}

func (r *inMemoryUserRepo) SetResetChallenge(
	ctx context.Context,
	id uuid.UUID,
	codeHash string,
	expiresAt time.Time,
) error {
	return nil
}

func (r *inMemoryUserRepo) ClearResetChallenge(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (r *inMemoryUserRepo) deactivate(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return identityDomain.ErrUserNotFound
	}
	user.IsActive = false
	return nil
}

func newAuthUseCaseWithRepo(t *testing.T, cfg *config.Config, repo *inMemoryUserRepo) AuthUseCase {
	t.Helper()
	return NewAuthUseCase(
		cfg,
		repo,
		newSigner(t, cfg),
		authService.NewNonceService(),
		identityService.NewPasswordService(),
	)
}

// TestAuthUseCase_Authenticate tests the Authenticate method.
func TestAuthUseCase_Authenticate(t *testing.T) {
	ctx := context.Background()
	passwordService := identityService.NewPasswordService()

	t.Run("Success", func(t *testing.T) {
		cfg := newAuthConfig(t)
		user := activeUser()
		hash, err := passwordService.HashPassword("correct-horse")
		require.NoError(t, err)
		user.PasswordHash = hash
		repo := newInMemoryUserRepo(user)

		useCase := newAuthUseCaseWithRepo(t, cfg, repo)
		got, err := useCase.Authenticate(ctx, "jane@example.com", "correct-horse")

		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		assert.NotNil(t, got.LastLoginAt)
	})

	t.Run("Error_UnknownEmailAndWrongPasswordLookTheSame", func(t *testing.T) {
		cfg := newAuthConfig(t)
		user := activeUser()
		hash, err := passwordService.HashPassword("correct-horse")
		require.NoError(t, err)
		user.PasswordHash = hash
		repo := newInMemoryUserRepo(user)

		useCase := newAuthUseCaseWithRepo(t, cfg, repo)

		_, unknownErr := useCase.Authenticate(ctx, "nobody@example.com", "correct-horse")
		_, wrongErr := useCase.Authenticate(ctx, "jane@example.com", "wrong")

		assert.ErrorIs(t, unknownErr, authDomain.ErrInvalidCredentials)
		assert.ErrorIs(t, wrongErr, authDomain.ErrInvalidCredentials)
		assert.Equal(t, unknownErr.Error(), wrongErr.Error())
	})

	t.Run("Error_InactiveUser", func(t *testing.T) {
		cfg := newAuthConfig(t)
		user := activeUser()
		user.IsActive = false
		hash, err := passwordService.HashPassword("correct-horse")
		require.NoError(t, err)
		user.PasswordHash = hash
		repo := newInMemoryUserRepo(user)

		useCase := newAuthUseCaseWithRepo(t, cfg, repo)
		_, err = useCase.Authenticate(ctx, "jane@example.com", "correct-horse")

		assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
	})
}

// TestAuthUseCase_Login tests the Login method.
func TestAuthUseCase_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_NoncePersistedBeforeTokensReturned", func(t *testing.T) {
		cfg := newAuthConfig(t)
		user := activeUser()
		repo := newInMemoryUserRepo(user)

		useCase := newAuthUseCaseWithRepo(t, cfg, repo)
		pair, err := useCase.Login(ctx, user)

		require.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)

		stored, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.NotEmpty(t, stored.RotationNonce)

		signer := newSigner(t, cfg)
		claims, err := signer.VerifyRefreshToken(pair.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, stored.RotationNonce, claims.RotationNonce)
	})

	t.Run("Error_NonceWriteFailureFailsLogin", func(t *testing.T) {
		cfg := newAuthConfig(t)
		user := activeUser()
		mockRepo := &identityMocks.MockUserRepository{}
		mockRepo.On("SetRotationNonce", mock.Anything, user.ID, mock.AnythingOfType("string")).
			Return(identityDomain.ErrUserNotFound)

		useCase := NewAuthUseCase(
			cfg,
			mockRepo,
			newSigner(t, cfg),
			authService.NewNonceService(),
			identityService.NewPasswordService(),
		)
		pair, err := useCase.Login(ctx, user)

		assert.Error(t, err)
		assert.Nil(t, pair)
	})

	t.Run("Success_SecondLoginInvalidatesFirstRefreshToken", func(t *testing.T) {
		cfg := newAuthConfig(t)
		user := activeUser()
		repo := newInMemoryUserRepo(user)

		useCase := newAuthUseCaseWithRepo(t, cfg, repo)

		firstPair, err := useCase.Login(ctx, user)
		require.NoError(t, err)
		_, err = useCase.Login(ctx, user)
		require.NoError(t, err)

		_, err = useCase.Refresh(ctx, firstPair.RefreshToken)
		assert.ErrorIs(t, err, authDomain.ErrInvalidToken)
	})
}

// TestAuthUseCase_Refresh tests the Refresh method.
func TestAuthUseCase_Refresh(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_RotatesNonce", func(t *testing.T) {
		cfg := newAuthConfig(t)
		user := activeUser()
		repo := newInMemoryUserRepo(user)

		useCase := newAuthUseCaseWithRepo(t, cfg, repo)
		pair, err := useCase.Login(ctx, user)
		require.NoError(t, err)

		before, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)

		newPair, err := useCase.Refresh(ctx, pair.RefreshToken)
		require.NoError(t, err)
		assert.NotEqual(t, pair.RefreshToken, newPair.RefreshToken)

		after, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.NotEqual(t, before.RotationNonce, after.RotationNonce)
	})

	t.Run("Error_ReplayedTokenRejected", func(t *testing.T) {
		cfg := newAuthConfig(t)
		user := activeUser()
		repo := newInMemoryUserRepo(user)

		useCase := newAuthUseCaseWithRepo(t, cfg, repo)
		pair, err := useCase.Login(ctx, user)
		require.NoError(t, err)

		_, err = useCase.Refresh(ctx, pair.RefreshToken)
		require.NoError(t, err)

		// Same token again: its nonce was rotated out by the first use.
		replayed, err := useCase.Refresh(ctx, pair.RefreshToken)
		assert.ErrorIs(t, err, authDomain.ErrInvalidToken)
		assert.Nil(t, replayed)
	})

	t.Run("Error_ConcurrentRefreshesHaveOneWinner", func(t *testing.T) {
		cfg := newAuthConfig(t)
		user := activeUser()
		repo := newInMemoryUserRepo(user)

		useCase := newAuthUseCaseWithRepo(t, cfg, repo)
		pair, err := useCase.Login(ctx, user)
		require.NoError(t, err)

		const attempts = 8
		errs := make([]error, attempts)
		var wg sync.WaitGroup
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = useCase.Refresh(ctx, pair.RefreshToken)
			}(i)
		}
		wg.Wait()

		winners := 0
		for _, err := range errs {
			if err == nil {
				winners++
			} else {
				assert.ErrorIs(t, err, authDomain.ErrInvalidToken)
			}
		}
		assert.Equal(t, 1, winners)
	})

	t.Run("Error_EmptyToken", func(t *testing.T) {
		cfg := newAuthConfig(t)
		repo := newInMemoryUserRepo()

		useCase := newAuthUseCaseWithRepo(t, cfg, repo)
		pair, err := useCase.Refresh(ctx, "")

		assert.ErrorIs(t, err, authDomain.ErrMissingToken)
		assert.Nil(t, pair)
	})

	t.Run("Error_ExpiredToken", func(t *testing.T) {
		cfg := newAuthConfig(t)
		cfg.RefreshTokenExpiration = -time.Minute
		user := activeUser()
		repo := newInMemoryUserRepo(user)

		useCase := newAuthUseCaseWithRepo(t, cfg, repo)
		pair, err := useCase.Login(ctx, user)
		require.NoError(t, err)

		refreshed, err := useCase.Refresh(ctx, pair.RefreshToken)
		assert.ErrorIs(t, err, authDomain.ErrInvalidToken)
		assert.Nil(t, refreshed)
	})

	t.Run("Error_InactiveUser", func(t *testing.T) {
		cfg := newAuthConfig(t)
		user := activeUser()
		repo := newInMemoryUserRepo(user)

		useCase := newAuthUseCaseWithRepo(t, cfg, repo)
		pair, err := useCase.Login(ctx, user)
		require.NoError(t, err)

		require.NoError(t, repo.deactivate(user.ID))

		refreshed, err := useCase.Refresh(ctx, pair.RefreshToken)
		assert.ErrorIs(t, err, authDomain.ErrInvalidToken)
		assert.Nil(t, refreshed)
	})

	t.Run("Error_StoreTimeoutSurfacesUnavailable", func(t *testing.T) {
		cfg := newAuthConfig(t)
		user := activeUser()
		repo := newInMemoryUserRepo(user)

		useCase := newAuthUseCaseWithRepo(t, cfg, repo)
		pair, err := useCase.Login(ctx, user)
		require.NoError(t, err)

		// Same keys, but the store stops answering within the deadline.
		mockRepo := &identityMocks.MockUserRepository{}
		mockRepo.On("GetByID", mock.Anything, user.ID).
			Return(nil, apperrors.Wrap(context.DeadlineExceeded, "query user"))

		timeoutUseCase := NewAuthUseCase(
			cfg,
			mockRepo,
			newSigner(t, cfg),
			authService.NewNonceService(),
			identityService.NewPasswordService(),
		)
		refreshed, err := timeoutUseCase.Refresh(ctx, pair.RefreshToken)

		assert.ErrorIs(t, err, apperrors.ErrUnavailable)
		assert.NotErrorIs(t, err, apperrors.ErrUnauthorized)
		assert.Nil(t, refreshed)
	})

	t.Run("Error_UserDeletedBetweenLoadAndSwap", func(t *testing.T) {
		cfg := newAuthConfig(t)
		user := activeUser()
		repo := newInMemoryUserRepo(user)

		useCase := newAuthUseCaseWithRepo(t, cfg, repo)
		pair, err := useCase.Login(ctx, user)
		require.NoError(t, err)

		mockRepo := &identityMocks.MockUserRepository{}
		mockRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)
		mockRepo.On(
			"CompareAndSwapRotationNonce",
			mock.Anything, user.ID, mock.AnythingOfType("string"), mock.AnythingOfType("string"),
		).Return(identityDomain.ErrUserNotFound)

		racedUseCase := NewAuthUseCase(
			cfg,
			mockRepo,
			newSigner(t, cfg),
			authService.NewNonceService(),
			identityService.NewPasswordService(),
		)
		refreshed, err := racedUseCase.Refresh(ctx, pair.RefreshToken)

		assert.ErrorIs(t, err, authDomain.ErrInvalidToken)
		assert.NotErrorIs(t, err, apperrors.ErrNotFound)
		assert.Nil(t, refreshed)
	})
}

// TestAuthUseCase_Logout tests the Logout method.
func TestAuthUseCase_Logout(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_RefreshTokenStopsWorking", func(t *testing.T) {
		cfg := newAuthConfig(t)
		user := activeUser()
		repo := newInMemoryUserRepo(user)

		useCase := newAuthUseCaseWithRepo(t, cfg, repo)
		pair, err := useCase.Login(ctx, user)
		require.NoError(t, err)

		require.NoError(t, useCase.Logout(ctx, user.ID))

		refreshed, err := useCase.Refresh(ctx, pair.RefreshToken)
		assert.ErrorIs(t, err, authDomain.ErrInvalidToken)
		assert.Nil(t, refreshed)
	})

	t.Run("Success_AccessTokenStillValidatesUntilExpiry", func(t *testing.T) {
		cfg := newAuthConfig(t)
		user := activeUser()
		repo := newInMemoryUserRepo(user)

		useCase := newAuthUseCaseWithRepo(t, cfg, repo)
		pair, err := useCase.Login(ctx, user)
		require.NoError(t, err)

		require.NoError(t, useCase.Logout(ctx, user.ID))

		// Logout cannot recall signed access tokens; they age out.
		got, err := useCase.ValidateAccessToken(ctx, pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})
}

// TestAuthUseCase_ValidateAccessToken tests the ValidateAccessToken method.
func TestAuthUseCase_ValidateAccessToken(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		cfg := newAuthConfig(t)
		user := activeUser()
		repo := newInMemoryUserRepo(user)

		useCase := newAuthUseCaseWithRepo(t, cfg, repo)
		pair, err := useCase.Login(ctx, user)
		require.NoError(t, err)

		got, err := useCase.ValidateAccessToken(ctx, pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		assert.Equal(t, user.Email, got.Email)
	})

	t.Run("Error_RefreshTokenIsNotAnAccessToken", func(t *testing.T) {
		cfg := newAuthConfig(t)
		user := activeUser()
		repo := newInMemoryUserRepo(user)

		useCase := newAuthUseCaseWithRepo(t, cfg, repo)
		pair, err := useCase.Login(ctx, user)
		require.NoError(t, err)

		got, err := useCase.ValidateAccessToken(ctx, pair.RefreshToken)
		assert.ErrorIs(t, err, authDomain.ErrInvalidToken)
		assert.Nil(t, got)
	})

	t.Run("Error_DeletedUser", func(t *testing.T) {
		cfg := newAuthConfig(t)
		user := activeUser()
		repo := newInMemoryUserRepo(user)

		useCase := newAuthUseCaseWithRepo(t, cfg, repo)
		pair, err := useCase.Login(ctx, user)
		require.NoError(t, err)

		require.NoError(t, repo.Delete(ctx, user.ID))

		got, err := useCase.ValidateAccessToken(ctx, pair.AccessToken)
		assert.ErrorIs(t, err, authDomain.ErrInvalidToken)
		assert.Nil(t, got)
	})
}
