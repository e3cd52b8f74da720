package user

import (
	"github.com/uniteam-app/uniteam-backend-go/internal/pkg/validator"
)

type UserResponse struct {
	ID               string  `json:"id"`
	FullName         string  `json:"full_name"`
	NationalID       string  `json:"national_id"`
	Role             Role    `json:"role"`
	DeviceID         *string `json:"device_id,omitempty"`
	JobTitle         string  `json:"job_title"`
	DefaultBranchID  *string `json:"default_branch_id,omitempty"`
	RegistrationDate *string `json:"registration_date,omitempty"`
}

// UpdateUserRequest carries admin edits to an employee record. Device
// binding is not editable here; ResetDevice is a separate operation.
type UpdateUserRequest struct {
	ID              string  `json:"id"`
	FullName        *string `json:"full_name,omitempty"`
	NationalID      *string `json:"national_id,omitempty"`
	JobTitle        *string `json:"job_title,omitempty"`
	DefaultBranchID *string `json:"default_branch_id,omitempty"`
}

func (r *UpdateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name must not be empty",
		})
	}

	if r.NationalID != nil && !validator.IsValidNationalID(*r.NationalID) {
		errs = append(errs, validator.ValidationError{
			Field:   "national_id",
			Message: "national_id must be exactly 14 digits",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
