// Package usecase implements business logic orchestration for identity operations.
package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/projecthub/internal/config"
	"github.com/allisson/projecthub/internal/email"
	identityDomain "github.com/allisson/projecthub/internal/identity/domain"
	identityService "github.com/allisson/projecthub/internal/identity/service"
)

// userUseCase implements UserUseCase.
type userUseCase struct {
	config           *config.Config
	userRepo         UserRepository
	passwordService  identityService.PasswordService
	resetCodeService identityService.ResetCodeService
	emailSender      email.Sender
}

// Create registers a new user with a hashed password.
//
// The default USER role is always included in the stored role set, so the
// capability resolver never sees an empty role list. Unknown roles are
// rejected before anything is persisted.
func (u *userUseCase) Create(
	ctx context.Context,
	createUserInput *identityDomain.CreateUserInput,
) (*identityDomain.User, error) {
	roles := createUserInput.Roles
	for _, role := range roles {
		if !identityDomain.IsValidRole(role) {
			return nil, identityDomain.ErrInvalidRole
		}
	}
	if !containsRole(roles, identityDomain.RoleUser) {
		roles = append([]identityDomain.Role{identityDomain.RoleUser}, roles...)
	}

	passwordHash, err := u.passwordService.HashPassword(createUserInput.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &identityDomain.User{
		ID:           uuid.Must(uuid.NewV7()),
		Email:        createUserInput.Email,
		FirstName:    createUserInput.FirstName,
		LastName:     createUserInput.LastName,
		Avatar:       createUserInput.Avatar,
		PasswordHash: passwordHash,
		Roles:        roles,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Get retrieves a user by ID.
func (u *userUseCase) Get(ctx context.Context, userID uuid.UUID) (*identityDomain.User, error) {
	return u.userRepo.GetByID(ctx, userID)
}

// List retrieves users with pagination.
func (u *userUseCase) List(ctx context.Context, offset, limit int) ([]*identityDomain.User, error) {
	return u.userRepo.List(ctx, offset, limit)
}

// Delete removes a user account.
func (u *userUseCase) Delete(ctx context.Context, userID uuid.UUID) error {
	return u.userRepo.Delete(ctx, userID)
}

// ChangePassword replaces an authenticated user's password.
//
// Changing a password does not rotate the session nonce: existing sessions
// stay valid until they are logged out or refreshed.
func (u *userUseCase) ChangePassword(ctx context.Context, userID uuid.UUID, newPassword string) error {
	if _, err := u.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}

	passwordHash, err := u.passwordService.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return u.userRepo.UpdatePassword(ctx, userID, passwordHash)
}

// RequestPasswordReset issues a verification code for the given email.
//
// This is a lookup operation, so an unknown email surfaces as a distinct
// not-found error rather than a generic rejection. The code itself is never
// stored: only its hash and an absolute expiry, replacing any outstanding
// challenge (single active challenge per user).
func (u *userUseCase) RequestPasswordReset(ctx context.Context, emailAddr string) error {
	user, err := u.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		return err
	}

	plainCode, codeHash, err := u.resetCodeService.GenerateCode()
	if err != nil {
		return err
	}

	expiresAt := time.Now().UTC().Add(u.config.PasswordResetCodeTTL)
	if err := u.userRepo.SetResetChallenge(ctx, user.ID, codeHash, expiresAt); err != nil {
		return err
	}

	body := email.VerificationCodeBody(user.FirstName, user.LastName, plainCode)
	return u.emailSender.Send(ctx, user.Email, "Verification code", body)
}

// ResetPassword verifies the code and replaces the password.
//
// Both conditions are mandatory: the hash must match and the current time
// must be before the stored expiry. An expired-but-matching code fails
// closed. The challenge is cleared on success, making each code productively
// usable at most once. The session rotation nonce is deliberately left
// untouched.
func (u *userUseCase) ResetPassword(ctx context.Context, emailAddr, code, newPassword string) error {
	user, err := u.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, identityDomain.ErrUserNotFound) {
			// Do not reveal whether the account exists on the verify path.
			return identityDomain.ErrInvalidResetCode
		}
		return err
	}

	if user.ResetCodeHash == "" || user.ResetCodeExpiresAt == nil {
		return identityDomain.ErrInvalidResetCode
	}
	if time.Now().UTC().After(*user.ResetCodeExpiresAt) {
		return identityDomain.ErrInvalidResetCode
	}
	if !u.resetCodeService.CompareCode(code, user.ResetCodeHash) {
		return identityDomain.ErrInvalidResetCode
	}

	passwordHash, err := u.passwordService.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := u.userRepo.UpdatePassword(ctx, user.ID, passwordHash); err != nil {
		return err
	}

	return u.userRepo.ClearResetChallenge(ctx, user.ID)
}

func containsRole(roles []identityDomain.Role, role identityDomain.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// NewUserUseCase creates a new UserUseCase with the provided dependencies.
func NewUserUseCase(
	cfg *config.Config,
	userRepo UserRepository,
	passwordService identityService.PasswordService,
	resetCodeService identityService.ResetCodeService,
	emailSender email.Sender,
) UserUseCase {
	return &userUseCase{
		config:           cfg,
		userRepo:         userRepo,
		passwordService:  passwordService,
		resetCodeService: resetCodeService,
		emailSender:      emailSender,
	}
}
