package report

import (
	"github.com/uniteam-app/uniteam-backend-go/internal/pkg/validator"
)

type AccountResponse struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	AllowedJobs []string `json:"allowed_jobs"`
}

type CreateAccountRequest struct {
	Username    string   `json:"username"`
	Password    string   `json:"password"`
	AllowedJobs []string `json:"allowed_jobs"`
}

func (r *CreateAccountRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username is required",
		})
	}

	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	if len(r.AllowedJobs) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "allowed_jobs",
			Message: "at least one allowed job is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateAccountRequest struct {
	ID          string   `json:"id"`
	Username    *string  `json:"username,omitempty"`
	Password    *string  `json:"password,omitempty"`
	AllowedJobs []string `json:"allowed_jobs,omitempty"`
}

func (r *UpdateAccountRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.Username != nil && validator.IsEmpty(*r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username must not be empty",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
