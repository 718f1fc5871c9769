// Package dto provides data transfer objects for access grant endpoints.
package dto

import (
	validation "github.com/jellydator/validation"

	accessDomain "github.com/allisson/projecthub/internal/access/domain"
	customValidation "github.com/allisson/projecthub/internal/validation"
)

// SetGrantRequest contains the parameters for granting a user access to a
// project.
type SetGrantRequest struct {
	UserID string `json:"user_id"`
	Level  string `json:"level"`
}

// Validate checks if the set grant request is valid.
func (r *SetGrantRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.UserID,
			validation.Required,
			customValidation.UUID,
		),
		validation.Field(&r.Level,
			validation.Required,
			validation.By(validateLevel),
		),
	)
}

// validateLevel validates a single access level value.
func validateLevel(value interface{}) error {
	level, ok := value.(string)
	if !ok {
		return validation.NewError("validation_level_type", "must be a string")
	}
	if !accessDomain.IsValidLevel(accessDomain.Level(level)) {
		return validation.NewError("validation_level_unknown", "must be a known access level")
	}
	return nil
}
