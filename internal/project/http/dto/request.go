// Package dto provides data transfer objects for project endpoints.
package dto

import (
	validation "github.com/jellydator/validation"

	projectDomain "github.com/allisson/projecthub/internal/project/domain"
	customValidation "github.com/allisson/projecthub/internal/validation"
)

// CreateProjectRequest contains the parameters for creating a project.
type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

// Validate checks if the create project request is valid.
func (r *CreateProjectRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 200),
		),
		validation.Field(&r.Description,
			validation.Length(0, 2000),
		),
		validation.Field(&r.Priority,
			validation.By(validatePriority),
		),
	)
}

// UpdateProjectRequest contains the parameters for updating a project. Nil
// fields are left unchanged.
type UpdateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
}

// Validate checks if the update project request is valid.
func (r *UpdateProjectRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.NilOrNotEmpty,
			validation.Length(1, 200),
		),
		validation.Field(&r.Description,
			validation.Length(0, 2000),
		),
		validation.Field(&r.Status,
			validation.By(validateOptionalStatus),
		),
		validation.Field(&r.Priority,
			validation.By(validateOptionalPriority),
		),
	)
}

// DomainInput converts the request to the domain update input.
func (r *UpdateProjectRequest) DomainInput() *projectDomain.UpdateProjectInput {
	input := &projectDomain.UpdateProjectInput{
		Name:        r.Name,
		Description: r.Description,
	}
	if r.Status != nil {
		status := projectDomain.Status(*r.Status)
		input.Status = &status
	}
	if r.Priority != nil {
		priority := projectDomain.Priority(*r.Priority)
		input.Priority = &priority
	}
	return input
}

// validatePriority validates a priority value, accepting empty for the
// default.
func validatePriority(value interface{}) error {
	priority, ok := value.(string)
	if !ok {
		return validation.NewError("validation_priority_type", "must be a string")
	}
	if priority == "" {
		return nil
	}
	if !projectDomain.IsValidPriority(projectDomain.Priority(priority)) {
		return validation.NewError("validation_priority_unknown", "must be a known priority")
	}
	return nil
}

// validateOptionalStatus validates a status value, accepting nil.
func validateOptionalStatus(value interface{}) error {
	status, err := optionalString(value, "validation_status_type")
	if err != nil || status == "" {
		return err
	}
	if !projectDomain.IsValidStatus(projectDomain.Status(status)) {
		return validation.NewError("validation_status_unknown", "must be a known status")
	}
	return nil
}

// validateOptionalPriority validates a priority value, accepting nil.
func validateOptionalPriority(value interface{}) error {
	priority, err := optionalString(value, "validation_priority_type")
	if err != nil || priority == "" {
		return err
	}
	if !projectDomain.IsValidPriority(projectDomain.Priority(priority)) {
		return validation.NewError("validation_priority_unknown", "must be a known priority")
	}
	return nil
}

// optionalString unwraps a string or *string rule value. Nil pointers
// resolve to the empty string.
func optionalString(value interface{}, code string) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case *string:
		if v == nil {
			return "", nil
		}
		return *v, nil
	default:
		return "", validation.NewError(code, "must be a string")
	}
}
