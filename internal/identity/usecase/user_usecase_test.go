package usecase

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/projecthub/internal/config"
	emailMocks "github.com/allisson/projecthub/internal/email/mocks"
	identityDomain "github.com/allisson/projecthub/internal/identity/domain"
	identityService "github.com/allisson/projecthub/internal/identity/service"
	serviceMocks "github.com/allisson/projecthub/internal/identity/service/mocks"
	usecaseMocks "github.com/allisson/projecthub/internal/identity/usecase/mocks"
)

func newTestConfig() *config.Config {
	return &config.Config{
		PasswordResetCodeTTL: 5 * time.Minute,
	}
}

// TestUserUseCase_Create tests the Create method of userUseCase.
func TestUserUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_DefaultRoleInjected", func(t *testing.T) {
		mockRepo := &usecaseMocks.MockUserRepository{}
		mockPassword := &serviceMocks.MockPasswordService{}
		mockResetCode := &serviceMocks.MockResetCodeService{}
		mockSender := &emailMocks.MockSender{}

		input := &identityDomain.CreateUserInput{
			Email:     "jane@example.com",
			FirstName: "Jane",
			LastName:  "Doe",
			Password:  "super-secret",
			Roles:     []identityDomain.Role{identityDomain.RoleProjectAdmin},
		}

		mockPassword.On("HashPassword", "super-secret").Return("hashed-password", nil)
		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

		useCase := NewUserUseCase(newTestConfig(), mockRepo, mockPassword, mockResetCode, mockSender)
		user, err := useCase.Create(ctx, input)

		assert.NoError(t, err)
		assert.Equal(t, "jane@example.com", user.Email)
		assert.Equal(t, "hashed-password", user.PasswordHash)
		assert.True(t, user.IsActive)
		assert.Equal(
			t,
			[]identityDomain.Role{identityDomain.RoleUser, identityDomain.RoleProjectAdmin},
			user.Roles,
		)
		mockRepo.AssertExpectations(t)
		mockPassword.AssertExpectations(t)
	})

	t.Run("Success_DefaultRoleNotDuplicated", func(t *testing.T) {
		mockRepo := &usecaseMocks.MockUserRepository{}
		mockPassword := &serviceMocks.MockPasswordService{}
		mockResetCode := &serviceMocks.MockResetCodeService{}
		mockSender := &emailMocks.MockSender{}

		input := &identityDomain.CreateUserInput{
			Email:    "jane@example.com",
			Password: "super-secret",
			Roles:    []identityDomain.Role{identityDomain.RoleUser},
		}

		mockPassword.On("HashPassword", "super-secret").Return("hashed-password", nil)
		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

		useCase := NewUserUseCase(newTestConfig(), mockRepo, mockPassword, mockResetCode, mockSender)
		user, err := useCase.Create(ctx, input)

		assert.NoError(t, err)
		assert.Equal(t, []identityDomain.Role{identityDomain.RoleUser}, user.Roles)
	})

	t.Run("Error_InvalidRole", func(t *testing.T) {
		mockRepo := &usecaseMocks.MockUserRepository{}
		mockPassword := &serviceMocks.MockPasswordService{}
		mockResetCode := &serviceMocks.MockResetCodeService{}
		mockSender := &emailMocks.MockSender{}

		input := &identityDomain.CreateUserInput{
			Email:    "jane@example.com",
			Password: "super-secret",
			Roles:    []identityDomain.Role{"SUPERUSER"},
		}

		useCase := NewUserUseCase(newTestConfig(), mockRepo, mockPassword, mockResetCode, mockSender)
		user, err := useCase.Create(ctx, input)

		assert.ErrorIs(t, err, identityDomain.ErrInvalidRole)
		assert.Nil(t, user)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Error_DuplicateEmail", func(t *testing.T) {
		mockRepo := &usecaseMocks.MockUserRepository{}
		mockPassword := &serviceMocks.MockPasswordService{}
		mockResetCode := &serviceMocks.MockResetCodeService{}
		mockSender := &emailMocks.MockSender{}

		input := &identityDomain.CreateUserInput{
			Email:    "jane@example.com",
			Password: "super-secret",
		}

		mockPassword.On("HashPassword", "super-secret").Return("hashed-password", nil)
		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).
			Return(identityDomain.ErrUserAlreadyExists)

		useCase := NewUserUseCase(newTestConfig(), mockRepo, mockPassword, mockResetCode, mockSender)
		user, err := useCase.Create(ctx, input)

		assert.ErrorIs(t, err, identityDomain.ErrUserAlreadyExists)
		assert.Nil(t, user)
	})
}

// TestUserUseCase_ChangePassword tests the ChangePassword method of userUseCase.
func TestUserUseCase_ChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_DoesNotTouchRotationNonce", func(t *testing.T) {
		mockRepo := &usecaseMocks.MockUserRepository{}
		mockPassword := &serviceMocks.MockPasswordService{}
		mockResetCode := &serviceMocks.MockResetCodeService{}
		mockSender := &emailMocks.MockSender{}

		userID := uuid.Must(uuid.NewV7())
		user := &identityDomain.User{ID: userID, Email: "jane@example.com"}

		mockRepo.On("GetByID", ctx, userID).Return(user, nil)
		mockPassword.On("HashPassword", "new-password").Return("new-hash", nil)
		mockRepo.On("UpdatePassword", ctx, userID, "new-hash").Return(nil)

		useCase := NewUserUseCase(newTestConfig(), mockRepo, mockPassword, mockResetCode, mockSender)
		err := useCase.ChangePassword(ctx, userID, "new-password")

		assert.NoError(t, err)
		mockRepo.AssertNotCalled(t, "SetRotationNonce", mock.Anything, mock.Anything, mock.Anything)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error_UserNotFound", func(t *testing.T) {
		mockRepo := &usecaseMocks.MockUserRepository{}
		mockPassword := &serviceMocks.MockPasswordService{}
		mockResetCode := &serviceMocks.MockResetCodeService{}
		mockSender := &emailMocks.MockSender{}

		userID := uuid.Must(uuid.NewV7())
		mockRepo.On("GetByID", ctx, userID).Return(nil, identityDomain.ErrUserNotFound)

		useCase := NewUserUseCase(newTestConfig(), mockRepo, mockPassword, mockResetCode, mockSender)
		err := useCase.ChangePassword(ctx, userID, "new-password")

		assert.ErrorIs(t, err, identityDomain.ErrUserNotFound)
		mockRepo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
	})
}

// TestUserUseCase_RequestPasswordReset tests the RequestPasswordReset method of userUseCase.
func TestUserUseCase_RequestPasswordReset(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := &usecaseMocks.MockUserRepository{}
		mockPassword := &serviceMocks.MockPasswordService{}
		mockResetCode := &serviceMocks.MockResetCodeService{}
		mockSender := &emailMocks.MockSender{}

		userID := uuid.Must(uuid.NewV7())
		user := &identityDomain.User{
			ID:        userID,
			Email:     "jane@example.com",
			FirstName: "Jane",
			LastName:  "Doe",
		}

		mockRepo.On("GetByEmail", ctx, "jane@example.com").Return(user, nil)
		mockResetCode.On("GenerateCode").Return("A1B2C3", "code-hash", nil)
		mockRepo.On("SetResetChallenge", ctx, userID, "code-hash", mock.AnythingOfType("time.Time")).
			Run(func(args mock.Arguments) {
				expiresAt := args.Get(3).(time.Time)
				assert.WithinDuration(t, time.Now().UTC().Add(5*time.Minute), expiresAt, 5*time.Second)
			}).
			Return(nil)
		mockSender.On(
			"Send",
			ctx,
			"jane@example.com",
			"Verification code",
			mock.MatchedBy(func(body string) bool { return body != "" }),
		).Return(nil)

		useCase := NewUserUseCase(newTestConfig(), mockRepo, mockPassword, mockResetCode, mockSender)
		err := useCase.RequestPasswordReset(ctx, "jane@example.com")

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
		mockResetCode.AssertExpectations(t)
		mockSender.AssertExpectations(t)
	})

	t.Run("Error_UnknownEmail", func(t *testing.T) {
		mockRepo := &usecaseMocks.MockUserRepository{}
		mockPassword := &serviceMocks.MockPasswordService{}
		mockResetCode := &serviceMocks.MockResetCodeService{}
		mockSender := &emailMocks.MockSender{}

		mockRepo.On("GetByEmail", ctx, "missing@example.com").
			Return(nil, identityDomain.ErrUserNotFound)

		useCase := NewUserUseCase(newTestConfig(), mockRepo, mockPassword, mockResetCode, mockSender)
		err := useCase.RequestPasswordReset(ctx, "missing@example.com")

		assert.ErrorIs(t, err, identityDomain.ErrUserNotFound)
		mockSender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

// TestUserUseCase_ResetPassword tests the ResetPassword method of userUseCase.
func TestUserUseCase_ResetPassword(t *testing.T) {
	ctx := context.Background()

	activeUser := func() *identityDomain.User {
		expiresAt := time.Now().UTC().Add(4 * time.Minute)
		return &identityDomain.User{
			ID:                 uuid.Must(uuid.NewV7()),
			Email:              "jane@example.com",
			ResetCodeHash:      "code-hash",
			ResetCodeExpiresAt: &expiresAt,
		}
	}

	t.Run("Success_ChallengeClearedAndNonceUntouched", func(t *testing.T) {
		mockRepo := &usecaseMocks.MockUserRepository{}
		mockPassword := &serviceMocks.MockPasswordService{}
		mockResetCode := &serviceMocks.MockResetCodeService{}
		mockSender := &emailMocks.MockSender{}

		user := activeUser()
		mockRepo.On("GetByEmail", ctx, "jane@example.com").Return(user, nil)
		mockResetCode.On("CompareCode", "A1B2C3", "code-hash").Return(true)
		mockPassword.On("HashPassword", "new-password").Return("new-hash", nil)
		mockRepo.On("UpdatePassword", ctx, user.ID, "new-hash").Return(nil)
		mockRepo.On("ClearResetChallenge", ctx, user.ID).Return(nil)

		useCase := NewUserUseCase(newTestConfig(), mockRepo, mockPassword, mockResetCode, mockSender)
		err := useCase.ResetPassword(ctx, "jane@example.com", "A1B2C3", "new-password")

		assert.NoError(t, err)
		mockRepo.AssertNotCalled(t, "SetRotationNonce", mock.Anything, mock.Anything, mock.Anything)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error_ExpiredCode", func(t *testing.T) {
		mockRepo := &usecaseMocks.MockUserRepository{}
		mockPassword := &serviceMocks.MockPasswordService{}
		mockResetCode := &serviceMocks.MockResetCodeService{}
		mockSender := &emailMocks.MockSender{}

		expiresAt := time.Now().UTC().Add(-1 * time.Second)
		user := &identityDomain.User{
			ID:                 uuid.Must(uuid.NewV7()),
			Email:              "jane@example.com",
			ResetCodeHash:      "code-hash",
			ResetCodeExpiresAt: &expiresAt,
		}
		mockRepo.On("GetByEmail", ctx, "jane@example.com").Return(user, nil)

		useCase := NewUserUseCase(newTestConfig(), mockRepo, mockPassword, mockResetCode, mockSender)
		err := useCase.ResetPassword(ctx, "jane@example.com", "A1B2C3", "new-password")

		assert.ErrorIs(t, err, identityDomain.ErrInvalidResetCode)
		mockResetCode.AssertNotCalled(t, "CompareCode", mock.Anything, mock.Anything)
		mockRepo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_WrongCode", func(t *testing.T) {
		mockRepo := &usecaseMocks.MockUserRepository{}
		mockPassword := &serviceMocks.MockPasswordService{}
		mockResetCode := &serviceMocks.MockResetCodeService{}
		mockSender := &emailMocks.MockSender{}

		user := activeUser()
		mockRepo.On("GetByEmail", ctx, "jane@example.com").Return(user, nil)
		mockResetCode.On("CompareCode", "WRONG0", "code-hash").Return(false)

		useCase := NewUserUseCase(newTestConfig(), mockRepo, mockPassword, mockResetCode, mockSender)
		err := useCase.ResetPassword(ctx, "jane@example.com", "WRONG0", "new-password")

		assert.ErrorIs(t, err, identityDomain.ErrInvalidResetCode)
		mockRepo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_NoOutstandingChallenge", func(t *testing.T) {
		mockRepo := &usecaseMocks.MockUserRepository{}
		mockPassword := &serviceMocks.MockPasswordService{}
		mockResetCode := &serviceMocks.MockResetCodeService{}
		mockSender := &emailMocks.MockSender{}

		user := &identityDomain.User{ID: uuid.Must(uuid.NewV7()), Email: "jane@example.com"}
		mockRepo.On("GetByEmail", ctx, "jane@example.com").Return(user, nil)

		useCase := NewUserUseCase(newTestConfig(), mockRepo, mockPassword, mockResetCode, mockSender)
		err := useCase.ResetPassword(ctx, "jane@example.com", "A1B2C3", "new-password")

		assert.ErrorIs(t, err, identityDomain.ErrInvalidResetCode)
	})

	t.Run("Error_UnknownEmailMapsToInvalidCode", func(t *testing.T) {
		mockRepo := &usecaseMocks.MockUserRepository{}
		mockPassword := &serviceMocks.MockPasswordService{}
		mockResetCode := &serviceMocks.MockResetCodeService{}
		mockSender := &emailMocks.MockSender{}

		mockRepo.On("GetByEmail", ctx, "missing@example.com").
			Return(nil, identityDomain.ErrUserNotFound)

		useCase := NewUserUseCase(newTestConfig(), mockRepo, mockPassword, mockResetCode, mockSender)
		err := useCase.ResetPassword(ctx, "missing@example.com", "A1B2C3", "new-password")

		assert.ErrorIs(t, err, identityDomain.ErrInvalidResetCode)
		assert.NotErrorIs(t, err, identityDomain.ErrUserNotFound)
	})
}

// challengeRepo is a minimal UserRepository backed by a single user. Used
// where tests exercise the challenge lifecycle itself rather than call
// wiring, with the real code and password services.
type challengeRepo struct {
	user *identityDomain.User
}

func (r *challengeRepo) Create(ctx context.Context, user *identityDomain.User) error { return nil }

func (r *challengeRepo) GetByID(ctx context.Context, id uuid.UUID) (*identityDomain.User, error) {
	copied := *r.user
	return &copied, nil
}

func (r *challengeRepo) GetByEmail(ctx context.Context, email string) (*identityDomain.User, error) {
	if email != r.user.Email {
		return nil, identityDomain.ErrUserNotFound
	}
	copied := *r.user
	return &copied, nil
}

func (r *challengeRepo) List(ctx context.Context, offset, limit int) ([]*identityDomain.User, error) {
	return nil, nil
}

func (r *challengeRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (r *challengeRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return nil
}

func (r *challengeRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	r.user.PasswordHash = passwordHash
	return nil
}

func (r *challengeRepo) SetRotationNonce(ctx context.Context, id uuid.UUID, nonce string) error {
	return nil
}

func (r *challengeRepo) CompareAndSwapRotationNonce(
	ctx context.Context,
	id uuid.UUID,
	current, next string,
) error {
	return nil
}

func (r *challengeRepo) SetResetChallenge(
	ctx context.Context,
	id uuid.UUID,
	codeHash string,
	expiresAt time.Time,
) error {
	r.user.ResetCodeHash = codeHash
	r.user.ResetCodeExpiresAt = &expiresAt
	return nil
}

func (r *challengeRepo) ClearResetChallenge(ctx context.Context, id uuid.UUID) error {
	r.user.ResetCodeHash = ""
	r.user.ResetCodeExpiresAt = nil
	return nil
}

// captureSender records delivered bodies so tests can read the plain code
// back out.
type captureSender struct {
	bodies []string
}

func (s *captureSender) Send(ctx context.Context, to, subject, body string) error {
	s.bodies = append(s.bodies, body)
	return nil
}

var verificationCodePattern = regexp.MustCompile(`verification code is ([0-9A-F]{6})\.`)

func (s *captureSender) lastCode(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, s.bodies)
	match := verificationCodePattern.FindStringSubmatch(s.bodies[len(s.bodies)-1])
	require.Len(t, match, 2)
	return match[1]
}

// TestUserUseCase_ResetChallengeSuperseded verifies that issuing a second
// challenge invalidates the first code while the second still works.
func TestUserUseCase_ResetChallengeSuperseded(t *testing.T) {
	ctx := context.Background()

	repo := &challengeRepo{user: &identityDomain.User{
		ID:        uuid.Must(uuid.NewV7()),
		Email:     "jane@example.com",
		FirstName: "Jane",
		LastName:  "Doe",
	}}
	sender := &captureSender{}

	useCase := NewUserUseCase(
		newTestConfig(),
		repo,
		identityService.NewPasswordService(),
		identityService.NewResetCodeService(),
		sender,
	)

	require.NoError(t, useCase.RequestPasswordReset(ctx, "jane@example.com"))
	firstCode := sender.lastCode(t)

	require.NoError(t, useCase.RequestPasswordReset(ctx, "jane@example.com"))
	secondCode := sender.lastCode(t)
	require.NotEqual(t, firstCode, secondCode)

	// Only one challenge is outstanding at a time; the older code is dead.
	err := useCase.ResetPassword(ctx, "jane@example.com", firstCode, "n3w-password")
	assert.ErrorIs(t, err, identityDomain.ErrInvalidResetCode)

	require.NoError(t, useCase.ResetPassword(ctx, "jane@example.com", secondCode, "n3w-password"))
	assert.Empty(t, repo.user.ResetCodeHash)
	assert.Nil(t, repo.user.ResetCodeExpiresAt)
}
