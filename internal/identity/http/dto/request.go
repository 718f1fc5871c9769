// Package dto provides data transfer objects for user management endpoints.
package dto

import (
	validation "github.com/jellydator/validation"

	identityDomain "github.com/allisson/projecthub/internal/identity/domain"
	customValidation "github.com/allisson/projecthub/internal/validation"
)

// CreateUserRequest contains the parameters for registering a new user.
type CreateUserRequest struct {
	Email     string   `json:"email"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Avatar    string   `json:"avatar"`
	Password  string   `json:"password"`
	Roles     []string `json:"roles"`
}

// Validate checks if the create user request is valid.
func (r *CreateUserRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email,
			validation.Required,
			customValidation.Email,
		),
		validation.Field(&r.FirstName,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 100),
		),
		validation.Field(&r.LastName,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 100),
		),
		validation.Field(&r.Password,
			validation.Required,
			customValidation.PasswordStrength{MinLength: 8},
		),
		validation.Field(&r.Roles,
			validation.Each(validation.By(validateRole)),
		),
	)
}

// DomainRoles converts the raw role strings to domain roles.
func (r *CreateUserRequest) DomainRoles() []identityDomain.Role {
	roles := make([]identityDomain.Role, 0, len(r.Roles))
	for _, role := range r.Roles {
		roles = append(roles, identityDomain.Role(role))
	}
	return roles
}

// validateRole validates a single role value.
func validateRole(value interface{}) error {
	role, ok := value.(string)
	if !ok {
		return validation.NewError("validation_role_type", "must be a string")
	}
	if !identityDomain.IsValidRole(identityDomain.Role(role)) {
		return validation.NewError("validation_role_unknown", "must be a known role")
	}
	return nil
}

// ChangePasswordRequest contains the parameters for replacing the caller's
// password.
type ChangePasswordRequest struct {
	Password string `json:"password"`
}

// Validate checks if the change password request is valid.
func (r *ChangePasswordRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Password,
			validation.Required,
			customValidation.PasswordStrength{MinLength: 8},
		),
	)
}

// ForgotPasswordRequest contains the parameters for requesting a password
// reset code.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// Validate checks if the forgot password request is valid.
func (r *ForgotPasswordRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email,
			validation.Required,
			customValidation.Email,
		),
	)
}

// ResetPasswordRequest contains the parameters for completing a password
// reset.
type ResetPasswordRequest struct {
	Email    string `json:"email"`
	Code     string `json:"code"`
	Password string `json:"password"`
}

// Validate checks if the reset password request is valid.
func (r *ResetPasswordRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email,
			validation.Required,
			customValidation.Email,
		),
		validation.Field(&r.Code,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(6, 6),
		),
		validation.Field(&r.Password,
			validation.Required,
			customValidation.PasswordStrength{MinLength: 8},
		),
	)
}
